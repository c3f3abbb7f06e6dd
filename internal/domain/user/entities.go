package user

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("user not found")
	ErrNotAdmin = errors.New("admin privileges required")
)

type User struct {
	ID           uint64    `gorm:"primaryKey;column:id"`
	Username     string    `gorm:"column:username;size:150;not null;uniqueIndex:ux_users_username"`
	Email        string    `gorm:"column:email;size:254;not null"`
	PasswordHash string    `gorm:"column:password_hash;size:60;not null"`
	IsAdmin      bool      `gorm:"column:is_admin;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string { return "users" }

// EmailDomain returns the lowercased part after the last '@'. An email
// without '@' degrades to the whole address, which then only matches itself.
func (u *User) EmailDomain() string {
	return strings.ToLower(u.Email[strings.LastIndex(u.Email, "@")+1:])
}

// Actor is the authenticated identity attached to each request.
type Actor struct {
	UserID  uint64
	IsAdmin bool
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)

	// CountDistinctByEmailDomain counts distinct users whose email ends with
	// the given domain, case-insensitively.
	CountDistinctByEmailDomain(ctx context.Context, domain string) (int64, error)
}
