package member

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("member not found")

// Member mirrors the registry record owned by the membership subsystem.
// This service reads it for tenure and share-capacity checks only.
type Member struct {
	ID           uint64         `gorm:"primaryKey;column:id" json:"-"`
	MemberID     string         `gorm:"size:32;uniqueIndex:ux_members_member_id_active" json:"member_id"`
	MemberNumber string         `gorm:"size:16;uniqueIndex:ux_members_member_number_active" json:"member_number"`
	FirstName    string         `gorm:"size:64" json:"first_name"`
	LastName     string         `gorm:"size:64" json:"last_name"`
	Email        string         `gorm:"size:255" json:"email"`
	JoiningDate  time.Time      `gorm:"type:date" json:"joining_date"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Member) TableName() string { return "members" }

func (m *Member) FullName() string { return m.FirstName + " " + m.LastName }

// ShareDeposit is one share-capital lodgement recorded by the teller
// subsystem. The guarantor core only ever aggregates these rows; the
// member's total share value is SUM(amount) over them.
type ShareDeposit struct {
	ID          uint64          `gorm:"primaryKey;column:id" json:"-"`
	MemberID    uint64          `gorm:"column:member_id;not null;index:idx_share_deposits_member" json:"-"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	DepositedAt time.Time       `gorm:"column:deposited_at" json:"deposited_at"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (ShareDeposit) TableName() string { return "share_deposits" }
