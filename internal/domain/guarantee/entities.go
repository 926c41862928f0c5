package guarantee

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusDeclined Status = "DECLINED"
)

// Active reports whether the guarantee still counts against the
// guarantor's capacity and toward loan coverage.
func (s Status) Active() bool { return s == StatusPending || s == StatusApproved }

// Guarantee is one member's pledge toward one loan. At most one row may
// exist per (loan, guarantor) pair; PENDING rows resolve exactly once to
// APPROVED or DECLINED and are immutable afterwards.
type Guarantee struct {
	ID                uint64          `gorm:"primaryKey;column:id" json:"-"`
	GuaranteeID       string          `gorm:"size:32;uniqueIndex:ux_guarantees_guarantee_id_active" json:"guarantee_id"`
	LoanID            uint64          `gorm:"column:loan_id;not null;index:idx_guarantees_loan;uniqueIndex:ux_guarantees_loan_guarantor" json:"-"`
	GuarantorMemberID uint64          `gorm:"column:guarantor_member_id;not null;index:idx_guarantees_guarantor;uniqueIndex:ux_guarantees_loan_guarantor" json:"-"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Status            Status          `gorm:"type:enum('PENDING','APPROVED','DECLINED');default:'PENDING';index:idx_guarantees_status" json:"status"`
	SignatureKey      string          `gorm:"size:255" json:"signature_key,omitempty"`
	DeclineReason     string          `gorm:"type:text" json:"decline_reason,omitempty"`
	ApprovedAt        *time.Time      `gorm:"column:approved_at" json:"approved_at,omitempty"`
	DeclinedAt        *time.Time      `gorm:"column:declined_at" json:"declined_at,omitempty"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Guarantee) TableName() string { return "guarantees" }
