package repository

import (
	"context"
	"errors"

	"github.com/Rafals/storefront/internal/domain/model"
)

// ErrCredentialNotFound means nothing is stored; callers treat it as logged out.
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialRepository keeps {token, username, role} across process restarts.
type CredentialRepository interface {
	Load(ctx context.Context) (model.Session, error)
	Save(ctx context.Context, s model.Session) error
	Clear(ctx context.Context) error
}
