package mysql

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	fraudDomain "loanguard-backend/internal/domain/fraud"
	loanDomain "loanguard-backend/internal/domain/loan"
	userDomain "loanguard-backend/internal/domain/user"
)

// openTestDB creates an in-memory sqlite DB with the full schema. The domain
// models use portable column types, so they migrate cleanly on sqlite.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&userDomain.User{}, &loanDomain.Application{}, &fraudDomain.FraudFlag{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, email string) *userDomain.User {
	t.Helper()
	u := &userDomain.User{Username: username, Email: email, PasswordHash: "x"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func seedLoan(t *testing.T, db *gorm.DB, userID uint64, cents int64, status loanDomain.Status) *loanDomain.Application {
	t.Helper()
	l := &loanDomain.Application{UserID: userID, AmountCents: cents, Status: status}
	if err := db.Create(l).Error; err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	return l
}
