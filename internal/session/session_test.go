package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rafals/storefront/internal/domain/model"
	"github.com/Rafals/storefront/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mocks
// =====================

type CredentialRepoMock struct{ mock.Mock }

func (m *CredentialRepoMock) Load(ctx context.Context) (model.Session, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(model.Session)
	return s, args.Error(1)
}

func (m *CredentialRepoMock) Save(ctx context.Context, s model.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *CredentialRepoMock) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

// =====================
// TokenPresent
// =====================

func TestTokenPresent(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "empty", token: "", want: false},
		{name: "whitespace", token: "  \t", want: false},
		{name: "null literal", token: "null", want: false},
		{name: "undefined literal", token: "undefined", want: false},
		{name: "opaque", token: "abc123", want: true},
		{name: "jwt future exp", token: signed(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}), want: true},
		{name: "jwt past exp", token: signed(t, jwt.MapClaims{"exp": now.Add(-time.Second).Unix()}), want: false},
		{name: "jwt without exp", token: signed(t, jwt.MapClaims{"sub": "1"}), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TokenPresent(tt.token, now))
		})
	}
}

// =====================
// Service
// =====================

func TestService_Current_NotFoundIsEmpty(t *testing.T) {
	repo := new(CredentialRepoMock)
	repo.On("Load", mock.Anything).Return(model.Session{}, repository.ErrCredentialNotFound)

	s := NewService(repo, nil)
	sess, err := s.Current(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.Session{}, sess)
	assert.False(t, s.Authenticated(context.Background()))
}

func TestService_Current_ReadsStoreEveryCall(t *testing.T) {
	repo := new(CredentialRepoMock)
	repo.On("Load", mock.Anything).Return(model.Session{Token: "a"}, nil).Once()
	repo.On("Load", mock.Anything).Return(model.Session{Token: "b"}, nil).Once()

	s := NewService(repo, nil)

	assert.Equal(t, "a", s.Token(context.Background()))
	assert.Equal(t, "b", s.Token(context.Background()))
	repo.AssertNumberOfCalls(t, "Load", 2)
}

func TestService_Token_StoreErrorCountsAsAbsent(t *testing.T) {
	repo := new(CredentialRepoMock)
	repo.On("Load", mock.Anything).Return(model.Session{}, errors.New("disk gone"))

	s := NewService(repo, nil)

	assert.Equal(t, "", s.Token(context.Background()))
}

func TestService_Token_ExpiryUsesClock(t *testing.T) {
	exp := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tok := signed(t, jwt.MapClaims{"exp": exp.Unix()})

	repo := new(CredentialRepoMock)
	repo.On("Load", mock.Anything).Return(model.Session{Token: tok}, nil)

	now := exp.Add(-time.Minute)
	s := NewService(repo, nil).WithClock(func() time.Time { return now })
	assert.True(t, s.Authenticated(context.Background()))

	now = exp.Add(time.Minute)
	assert.False(t, s.Authenticated(context.Background()))
}

func TestService_Set_NotifiesWithPrevAndNext(t *testing.T) {
	repo := new(CredentialRepoMock)
	repo.On("Load", mock.Anything).Return(model.Session{}, repository.ErrCredentialNotFound).Once()
	repo.On("Save", mock.Anything, model.Session{Token: "tok", Username: "alice"}).Return(nil).Once()

	s := NewService(repo, nil)

	var got [][2]model.Session
	s.Subscribe(func(_ context.Context, prev model.Session, next model.Session) {
		got = append(got, [2]model.Session{prev, next})
	})

	require.NoError(t, s.Set(context.Background(), model.Session{Token: " tok ", Username: "alice"}))

	require.Len(t, got, 1)
	assert.Equal(t, model.Session{}, got[0][0])
	assert.Equal(t, "tok", got[0][1].Token)
	repo.AssertExpectations(t)
}

func TestService_Set_SameSession_NoNotification(t *testing.T) {
	sess := model.Session{Token: "tok", Username: "alice"}
	repo := new(CredentialRepoMock)
	repo.On("Load", mock.Anything).Return(sess, nil)
	repo.On("Save", mock.Anything, sess).Return(nil)

	s := NewService(repo, nil)
	calls := 0
	s.Subscribe(func(context.Context, model.Session, model.Session) { calls++ })

	require.NoError(t, s.Set(context.Background(), sess))
	assert.Equal(t, 0, calls)
}

func TestService_Set_SaveError_NoNotification(t *testing.T) {
	repo := new(CredentialRepoMock)
	repo.On("Load", mock.Anything).Return(model.Session{}, repository.ErrCredentialNotFound)
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("read-only"))

	s := NewService(repo, nil)
	calls := 0
	s.Subscribe(func(context.Context, model.Session, model.Session) { calls++ })

	assert.Error(t, s.Set(context.Background(), model.Session{Token: "tok"}))
	assert.Equal(t, 0, calls)
}

func TestService_Clear_NotifiesOnlyWhenSomethingStored(t *testing.T) {
	repo := new(CredentialRepoMock)
	repo.On("Load", mock.Anything).Return(model.Session{Token: "tok"}, nil).Once()
	repo.On("Load", mock.Anything).Return(model.Session{}, repository.ErrCredentialNotFound).Once()
	repo.On("Clear", mock.Anything).Return(nil)

	s := NewService(repo, nil)
	var nexts []model.Session
	s.Subscribe(func(_ context.Context, _ model.Session, next model.Session) { nexts = append(nexts, next) })

	require.NoError(t, s.Clear(context.Background()))
	require.NoError(t, s.Clear(context.Background()))

	assert.Equal(t, []model.Session{{}}, nexts)
}

func TestService_Unsubscribe(t *testing.T) {
	repo := new(CredentialRepoMock)
	repo.On("Load", mock.Anything).Return(model.Session{}, repository.ErrCredentialNotFound)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	s := NewService(repo, nil)
	calls := 0
	unsubscribe := s.Subscribe(func(context.Context, model.Session, model.Session) { calls++ })
	unsubscribe()

	require.NoError(t, s.Set(context.Background(), model.Session{Token: "tok"}))
	assert.Equal(t, 0, calls)
}

func TestService_ListenerMayReadSession(t *testing.T) {
	repo := new(CredentialRepoMock)
	repo.On("Load", mock.Anything).Return(model.Session{}, repository.ErrCredentialNotFound).Once()
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	repo.On("Load", mock.Anything).Return(model.Session{Token: "tok"}, nil)

	s := NewService(repo, nil)
	var seen string
	s.Subscribe(func(ctx context.Context, _ model.Session, _ model.Session) {
		seen = s.Token(ctx)
	})

	require.NoError(t, s.Set(context.Background(), model.Session{Token: "tok"}))
	assert.Equal(t, "tok", seen)
}
