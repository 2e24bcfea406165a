package repository

import (
	"context"
	"sync"

	"github.com/Rafals/storefront/internal/domain/model"
	repo "github.com/Rafals/storefront/internal/repository"
)

// CredentialMemoryRepository lives for the process only. Used by tests and CREDENTIAL_STORE=memory.
type CredentialMemoryRepository struct {
	mu  sync.RWMutex
	s   model.Session
	set bool
}

func NewCredentialMemoryRepository() *CredentialMemoryRepository {
	return &CredentialMemoryRepository{}
}

var _ repo.CredentialRepository = (*CredentialMemoryRepository)(nil)

func (r *CredentialMemoryRepository) Load(_ context.Context) (model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.set {
		return model.Session{}, repo.ErrCredentialNotFound
	}
	return r.s, nil
}

func (r *CredentialMemoryRepository) Save(_ context.Context, s model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s = s
	r.set = true
	return nil
}

func (r *CredentialMemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s = model.Session{}
	r.set = false
	return nil
}

// SetToken overwrites only the token, simulating another component writing the store.
func (r *CredentialMemoryRepository) SetToken(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.Token = token
	r.set = true
}
