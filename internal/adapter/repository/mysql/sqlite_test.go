package mysql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no ENUM) ---

type memberSQLite struct {
	ID           uint64         `gorm:"primaryKey;column:id"`
	MemberID     string         `gorm:"size:32;column:member_id"`
	MemberNumber string         `gorm:"size:16;column:member_number"`
	FirstName    string         `gorm:"size:64;column:first_name"`
	LastName     string         `gorm:"size:64;column:last_name"`
	Email        string         `gorm:"size:255;column:email"`
	JoiningDate  time.Time      `gorm:"column:joining_date"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (memberSQLite) TableName() string { return "members" }

type shareDepositSQLite struct {
	ID          uint64          `gorm:"primaryKey;column:id"`
	MemberID    uint64          `gorm:"column:member_id"`
	Amount      decimal.Decimal `gorm:"type:numeric;column:amount"`
	DepositedAt time.Time       `gorm:"column:deposited_at"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
}

func (shareDepositSQLite) TableName() string { return "share_deposits" }

type loanSQLite struct {
	ID              uint64          `gorm:"primaryKey;column:id"`
	LoanID          string          `gorm:"size:32;column:loan_id"`
	MemberID        uint64          `gorm:"column:member_id"`
	Amount          decimal.Decimal `gorm:"type:numeric;column:amount"`
	Status          string          `gorm:"type:text;column:status"` // ← no enum
	StatusUpdatedAt time.Time       `gorm:"column:status_updated_at"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"column:deleted_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type guaranteeSQLite struct {
	ID                uint64          `gorm:"primaryKey;column:id"`
	GuaranteeID       string          `gorm:"size:32;column:guarantee_id"`
	LoanID            uint64          `gorm:"column:loan_id;uniqueIndex:ux_guarantees_loan_guarantor"`
	GuarantorMemberID uint64          `gorm:"column:guarantor_member_id;uniqueIndex:ux_guarantees_loan_guarantor"`
	Amount            decimal.Decimal `gorm:"type:numeric;column:amount"`
	Status            string          `gorm:"type:text;column:status"` // ← no enum
	SignatureKey      string          `gorm:"column:signature_key"`
	DeclineReason     string          `gorm:"column:decline_reason"`
	ApprovedAt        *time.Time      `gorm:"column:approved_at"`
	DeclinedAt        *time.Time      `gorm:"column:declined_at"`
	CreatedAt         time.Time       `gorm:"column:created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"column:deleted_at"`
}

func (guaranteeSQLite) TableName() string { return "guarantees" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schemas. TranslateError matches the production config so
// unique violations surface as gorm.ErrDuplicatedKey.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&memberSQLite{}, &shareDepositSQLite{}, &loanSQLite{}, &guaranteeSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func mustDec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
