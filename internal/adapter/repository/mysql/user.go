package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	userDomain "loanguard-backend/internal/domain/user"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).First(&out, id)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, userDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("username = ?", username).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, userDomain.ErrNotFound
	}
	return &out, res.Error
}

// Escapes LIKE metacharacters so a literal % or _ in a domain cannot turn
// into a wildcard.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *UserRepository) CountDistinctByEmailDomain(ctx context.Context, domain string) (int64, error) {
	var n int64
	// Case-insensitive suffix match on the email domain.
	pattern := "%" + likeEscaper.Replace(strings.ToLower(domain))
	err := r.db.WithContext(ctx).
		Model(&userDomain.User{}).
		Where(`LOWER(email) LIKE ? ESCAPE '\'`, pattern).
		Distinct("id").
		Count(&n).Error
	return n, err
}
