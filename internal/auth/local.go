package auth

import (
	"context"
	"log"
	"sync"

	"go-gestion-ws/internal/model"
)

// demo credential seeds for the local variant
var demoSeeds = []struct {
	id       string
	username string
	email    string
	password string
	role     model.Role
}{
	{"1", "admin", "admin@example.com", "admin123", model.RoleAdmin},
	{"2", "supervisor", "supervisor@example.com", "super123", model.RoleSupervisor},
	{"3", "cajero", "cajero@example.com", "cajero123", model.RoleCajero},
}

// LocalDirectory is the pre-provisioned demo credential table. Passwords are
// bcrypt-hashed at construction; roles come straight from the records.
type LocalDirectory struct {
	mu      sync.RWMutex
	byEmail map[string]*model.User
	byID    map[string]*model.User
}

func NewLocalDirectory() *LocalDirectory {
	d := &LocalDirectory{
		byEmail: make(map[string]*model.User),
		byID:    make(map[string]*model.User),
	}
	for _, seed := range demoSeeds {
		u := &model.User{
			ID:       seed.id,
			Username: seed.username,
			Email:    seed.email,
			Role:     seed.role,
			IsActive: true,
		}
		if err := u.SetPassword(seed.password); err != nil {
			log.Fatalf("auth: failed to hash demo password for %s: %v", seed.username, err)
		}
		d.byEmail[u.Email] = u
		d.byID[u.ID] = u
	}
	log.Println("auth: local directory seeded with demo accounts")
	return d
}

func (d *LocalDirectory) Authenticate(_ context.Context, email, password string) (*model.User, error) {
	d.mu.RLock()
	u, ok := d.byEmail[email]
	d.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}
	if !u.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	copied := *u
	return &copied, nil
}

func (d *LocalDirectory) LookupRole(_ context.Context, userID string) (model.Role, error) {
	d.mu.RLock()
	u, ok := d.byID[userID]
	d.mu.RUnlock()
	if !ok {
		return "", ErrUserNotFound
	}
	if !u.Role.Valid() {
		return "", ErrRoleNotFound
	}
	return u.Role, nil
}

func (d *LocalDirectory) FindByID(_ context.Context, userID string) (*model.User, error) {
	d.mu.RLock()
	u, ok := d.byID[userID]
	d.mu.RUnlock()
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (d *LocalDirectory) UpdateTokenVersion(_ context.Context, userID, version string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.byID[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.TokenVersion = version
	return nil
}
