package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Rafals/storefront/internal/apiclient"
	"github.com/Rafals/storefront/internal/domain/model"
	"github.com/Rafals/storefront/internal/session"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// CartUsecase mirrors the server cart. Every mutation goes to the server and
// is followed by a full refresh; the local lines are never edited in place.
type CartUsecase struct {
	api      CartAPI
	sessions *session.Service
	notifier Notifier
	log      *zap.Logger
	tracer   trace.Tracer

	// held across a mutation and its follow-up refresh
	mutMu sync.Mutex

	mu      sync.RWMutex
	lines   []model.CartLine
	lastErr error

	// bumped by ClearCart; a refresh started before the bump is discarded
	clearGen uint64

	unsubscribe func()
}

// NewCartUsecase starts with an empty cart and follows session changes.
func NewCartUsecase(api CartAPI, sessions *session.Service, notifier Notifier, log *zap.Logger) *CartUsecase {
	if notifier == nil {
		notifier = NopNotifier
	}
	if log == nil {
		log = zap.NewNop()
	}

	u := &CartUsecase{
		api:      api,
		sessions: sessions,
		notifier: notifier,
		log:      log.Named("cart"),
		tracer:   otel.Tracer("github.com/Rafals/storefront/internal/usecase"),
		lines:    []model.CartLine{},
	}
	u.unsubscribe = sessions.Subscribe(u.onSessionChange)
	return u
}

// Start loads the cart when a valid session is already stored.
func (u *CartUsecase) Start(ctx context.Context) error {
	if !u.sessions.Authenticated(ctx) {
		return nil
	}
	return u.RefreshCart(ctx)
}

// Close stops following session changes.
func (u *CartUsecase) Close() {
	if u.unsubscribe != nil {
		u.unsubscribe()
		u.unsubscribe = nil
	}
}

// RefreshCart replaces the lines with the server cart.
// Without a token the cart becomes empty and nothing is sent.
func (u *CartUsecase) RefreshCart(ctx context.Context) error {
	u.mutMu.Lock()
	defer u.mutMu.Unlock()

	return u.refreshLocked(ctx)
}

// AddToCart sends delta (negative decrements) and refreshes after the server answers.
// Without a token it does nothing.
func (u *CartUsecase) AddToCart(ctx context.Context, productID int64, delta int64) error {
	if delta == 0 {
		return nil
	}

	u.mutMu.Lock()
	defer u.mutMu.Unlock()

	// token is read at call time
	token := u.sessions.Token(ctx)
	if token == "" {
		return nil
	}

	ctx, span := u.tracer.Start(ctx, "cart.add", trace.WithAttributes(
		attribute.Int64("product.id", productID),
		attribute.Int64("cart.delta", delta),
	))
	defer span.End()

	if err := u.api.AddToCart(ctx, token, productID, delta); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return u.fail(ctx, "add to cart", err)
	}
	return u.refreshLocked(ctx)
}

// IncreaseQuantity adds one unit unless the line is already at its known stock.
func (u *CartUsecase) IncreaseQuantity(ctx context.Context, productID int64) error {
	line, ok := u.Line(productID)
	if ok && line.Quantity >= line.StockQuantity {
		u.record(ErrStockExceeded)
		u.notifier.Info("Cannot add more than available stock")
		return ErrStockExceeded
	}
	return u.AddToCart(ctx, productID, 1)
}

// DecreaseQuantity removes one unit; a line at 1 is left alone (use RemoveFromCart).
func (u *CartUsecase) DecreaseQuantity(ctx context.Context, productID int64) error {
	line, ok := u.Line(productID)
	if !ok || line.Quantity <= 1 {
		return nil
	}
	return u.AddToCart(ctx, productID, -1)
}

// RemoveFromCart deletes the line on the server and refreshes.
func (u *CartUsecase) RemoveFromCart(ctx context.Context, productID int64) error {
	u.mutMu.Lock()
	defer u.mutMu.Unlock()

	token := u.sessions.Token(ctx)
	if token == "" {
		return nil
	}

	ctx, span := u.tracer.Start(ctx, "cart.remove", trace.WithAttributes(
		attribute.Int64("product.id", productID),
	))
	defer span.End()

	if err := u.api.RemoveFromCart(ctx, token, productID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return u.fail(ctx, "remove from cart", err)
	}
	return u.refreshLocked(ctx)
}

// ClearCart empties the local lines only. Call it after a successful order,
// when the server has already emptied its cart. A refresh still in flight
// does not bring the old lines back. No mutation lock: session listeners call
// it while a mutation holds one.
func (u *CartUsecase) ClearCart() {
	u.mu.Lock()
	u.lines = []model.CartLine{}
	u.clearGen++
	u.mu.Unlock()
}

// Lines returns a copy of the current lines in server order.
func (u *CartUsecase) Lines() []model.CartLine {
	u.mu.RLock()
	defer u.mu.RUnlock()

	out := make([]model.CartLine, len(u.lines))
	copy(out, u.lines)
	return out
}

// Line finds the line for productID.
func (u *CartUsecase) Line(productID int64) (model.CartLine, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	for _, l := range u.lines {
		if l.ID == productID {
			return l, true
		}
	}
	return model.CartLine{}, false
}

// Total is recomputed from the lines on every call.
func (u *CartUsecase) Total() model.Money {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return model.CartTotal(u.lines)
}

// LastError is the most recent failure, nil after a successful sync.
func (u *CartUsecase) LastError() error {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return u.lastErr
}

func (u *CartUsecase) refreshLocked(ctx context.Context) error {
	token := u.sessions.Token(ctx)
	if token == "" {
		u.setLines(nil)
		return nil
	}

	ctx, span := u.tracer.Start(ctx, "cart.refresh")
	defer span.End()

	u.mu.RLock()
	gen := u.clearGen
	u.mu.RUnlock()

	items, err := u.api.GetCart(ctx, token)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return u.fail(ctx, "refresh cart", err)
	}

	lines := model.LinesFromServer(items)
	span.SetAttributes(attribute.Int("cart.lines", len(lines)))

	u.mu.Lock()
	defer u.mu.Unlock()
	if u.clearGen != gen {
		span.AddEvent("cleared during refresh, result dropped")
		return nil
	}
	u.lines = lines
	u.lastErr = nil
	return nil
}

func (u *CartUsecase) setLines(lines []model.CartLine) {
	if lines == nil {
		lines = []model.CartLine{}
	}
	u.mu.Lock()
	u.lines = lines
	u.mu.Unlock()
}

// fail leaves the lines untouched, records the error and tells the user.
func (u *CartUsecase) fail(ctx context.Context, op string, err error) error {
	switch {
	case apiclient.IsUnauthorized(err):
		u.log.Info("token rejected, logging out", zap.String("op", op))
		// clearing the session empties the cart through onSessionChange
		if cerr := u.sessions.Clear(ctx); cerr != nil {
			u.log.Warn("clear session failed", zap.Error(cerr))
		}
		err = fmt.Errorf("%s: %w", op, errors.Join(ErrSessionExpired, err))
		u.notifier.Error(ErrSessionExpired.Error())

	case apiclient.IsStockExceeded(err):
		err = fmt.Errorf("%s: %w", op, errors.Join(ErrStockExceeded, err))
		u.notifier.Info("Cannot add more than available stock")

	default:
		err = fmt.Errorf("%s: %w", op, err)
		u.notifier.Error("Could not sync cart with server")
	}

	u.log.Warn("cart sync failed", zap.String("op", op), zap.Error(err))
	u.record(err)
	return err
}

func (u *CartUsecase) record(err error) {
	u.mu.Lock()
	u.lastErr = err
	u.mu.Unlock()
}

// onSessionChange: login refreshes, logout empties, switching accounts refreshes.
func (u *CartUsecase) onSessionChange(ctx context.Context, prev model.Session, next model.Session) {
	was := u.sessions.Present(prev)
	is := u.sessions.Present(next)

	switch {
	case !was && is:
		_ = u.RefreshCart(ctx)
	case was && !is:
		u.ClearCart()
	case was && is && prev.Token != next.Token && prev.Username != next.Username:
		_ = u.RefreshCart(ctx)
	}
}
