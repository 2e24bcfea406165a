// Package session owns the stored credential and tells listeners when it changes.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Rafals/storefront/internal/domain/model"
	"github.com/Rafals/storefront/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Listener runs after a Set or Clear that changed the stored session.
type Listener func(ctx context.Context, prev model.Session, next model.Session)

type Service struct {
	repo repository.CredentialRepository
	log  *zap.Logger
	now  func() time.Time

	// writes are serialized so prev/next pairs are consistent
	writeMu sync.Mutex

	mu     sync.Mutex
	subs   map[int]Listener
	nextID int
}

func NewService(repo repository.CredentialRepository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo: repo,
		log:  log.Named("session"),
		now:  time.Now,
		subs: make(map[int]Listener),
	}
}

// WithClock replaces time.Now; tests use it for the expiry rule.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Current reads the store. Nothing is cached between calls.
func (s *Service) Current(ctx context.Context) (model.Session, error) {
	sess, err := s.repo.Load(ctx)
	if errors.Is(err, repository.ErrCredentialNotFound) {
		return model.Session{}, nil
	}
	if err != nil {
		return model.Session{}, err
	}
	return sess, nil
}

// Token returns the stored token, or "" when it is absent or invalid.
// A store read failure counts as absent.
func (s *Service) Token(ctx context.Context) string {
	sess, err := s.Current(ctx)
	if err != nil {
		s.log.Warn("credential store read failed", zap.Error(err))
		return ""
	}
	if !s.Present(sess) {
		return ""
	}
	return sess.Token
}

func (s *Service) Authenticated(ctx context.Context) bool {
	return s.Token(ctx) != ""
}

// Present applies the absent-token rules to a session.
func (s *Service) Present(sess model.Session) bool {
	return TokenPresent(sess.Token, s.now())
}

// Set stores the session and notifies listeners.
func (s *Service) Set(ctx context.Context, next model.Session) error {
	next.Token = strings.TrimSpace(next.Token)

	s.writeMu.Lock()
	prev, err := s.Current(ctx)
	if err != nil {
		s.log.Warn("credential store read failed", zap.Error(err))
		prev = model.Session{}
	}
	if err := s.repo.Save(ctx, next); err != nil {
		s.writeMu.Unlock()
		return err
	}
	s.writeMu.Unlock()

	if prev != next {
		s.notify(ctx, prev, next)
	}
	return nil
}

// Clear removes the stored session (logout or invalidated token).
func (s *Service) Clear(ctx context.Context) error {
	s.writeMu.Lock()
	prev, err := s.Current(ctx)
	if err != nil {
		s.log.Warn("credential store read failed", zap.Error(err))
		prev = model.Session{}
	}
	if err := s.repo.Clear(ctx); err != nil {
		s.writeMu.Unlock()
		return err
	}
	s.writeMu.Unlock()

	if prev != (model.Session{}) {
		s.notify(ctx, prev, model.Session{})
	}
	return nil
}

// Subscribe registers fn and returns the func that removes it.
func (s *Service) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Service) notify(ctx context.Context, prev model.Session, next model.Session) {
	s.mu.Lock()
	listeners := make([]Listener, 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ctx, prev, next)
	}
}

// TokenPresent is false for "", whitespace, "null", "undefined" and JWTs past exp.
// Tokens that are not JWTs are opaque and count as present.
func TokenPresent(token string, now time.Time) bool {
	token = strings.TrimSpace(token)
	switch token {
	case "", "null", "undefined":
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return now.Before(exp.Time)
}
