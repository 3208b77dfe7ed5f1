package model

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role governs route-level authorization only; there is no finer-grained
// permission model.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
	RoleCajero     Role = "cajero"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleCajero:
		return true
	}
	return false
}

// User represents an authenticated user. The same struct backs the fixed
// local credential table and the Postgres directory.
type User struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	Username string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username" validate:"required"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Role     Role   `gorm:"type:varchar(20)" json:"role,omitempty"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
	// TokenVersion enforces a single active session per user.
	TokenVersion string `gorm:"type:varchar(255);default:''" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserRole is the secondary role lookup table of the Postgres directory,
// keyed by user id. A user without a row has no resolved role yet.
type UserRole struct {
	UserID string `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role   Role   `gorm:"type:varchar(20);not null" json:"role"`
}

// Session is the serialized currentUser snapshot: the authenticated user
// (without credentials) plus the resolved role.
type Session struct {
	User User `json:"user"`
	Role Role `json:"role,omitempty"`
}

// PublicUser is the API-facing view of a user.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role,omitempty"`
}

// Public strips credentials for API responses.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}
