package auth

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"go-gestion-ws/internal/model"
)

// RemoteDirectory is the hosted identity variant: users live in Postgres and
// roles resolve through a secondary user_roles lookup keyed by user id.
type RemoteDirectory struct {
	db *gorm.DB
}

func NewRemoteDirectory(db *gorm.DB) *RemoteDirectory {
	return &RemoteDirectory{db: db}
}

func (d *RemoteDirectory) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	var user model.User
	if err := d.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	// Role is resolved separately via LookupRole.
	user.Role = ""
	return &user, nil
}

func (d *RemoteDirectory) LookupRole(ctx context.Context, userID string) (model.Role, error) {
	var row model.UserRole
	if err := d.db.WithContext(ctx).First(&row, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrRoleNotFound
		}
		return "", err
	}
	return row.Role, nil
}

func (d *RemoteDirectory) FindByID(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	if err := d.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (d *RemoteDirectory) UpdateTokenVersion(ctx context.Context, userID, version string) error {
	return d.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("token_version", version).Error
}

// UpdatePassword replaces a user's stored password hash. Used by the
// reset-password tool.
func (d *RemoteDirectory) UpdatePassword(ctx context.Context, userID, hashedPassword string) error {
	return d.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("password", hashedPassword).Error
}

// SeedDemoUsers creates the demo accounts and their role rows if they don't
// exist yet.
func SeedDemoUsers(db *gorm.DB) {
	for _, seed := range demoSeeds {
		var existing model.User
		err := db.Where("email = ?", seed.email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Warning: failed to check user %s: %v", seed.email, err)
			continue
		}

		user := &model.User{
			Username: seed.username,
			Email:    seed.email,
			IsActive: true,
		}
		if err := user.SetPassword(seed.password); err != nil {
			log.Printf("Warning: failed to hash password for %s: %v", seed.email, err)
			continue
		}
		if err := db.Create(user).Error; err != nil {
			log.Printf("Warning: failed to create user %s: %v", seed.email, err)
			continue
		}
		if err := db.Create(&model.UserRole{UserID: user.ID, Role: seed.role}).Error; err != nil {
			log.Printf("Warning: failed to assign role for %s: %v", seed.email, err)
			continue
		}
		log.Printf("✅ Demo user created: %s (%s)", seed.email, seed.role)
	}
}
