package auth

import (
	"context"
	"errors"

	"go-gestion-ws/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrRoleNotFound       = errors.New("no role assigned")
)

// Directory resolves credentials and roles. Two implementations: the fixed
// local demo table and the Postgres-backed remote directory. Role resolution
// is a separate call so the provider can run its two-phase login
// (session established, then role resolved) against either backend.
type Directory interface {
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	LookupRole(ctx context.Context, userID string) (model.Role, error)
	FindByID(ctx context.Context, userID string) (*model.User, error)
	UpdateTokenVersion(ctx context.Context, userID, version string) error
}
