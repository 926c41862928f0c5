package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("loan not found")
	ErrInvalidState = errors.New("loan state does not allow this operation")
)

type Status string

const (
	StatusDraft       Status = "DRAFT"
	StatusSubmitted   Status = "SUBMITTED"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusApproved    Status = "APPROVED"
	StatusDisbursed   Status = "DISBURSED"
	StatusRejected    Status = "REJECTED"
	StatusClosed      Status = "CLOSED"
)

type Loan struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string          `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	MemberID        uint64          `gorm:"column:member_id;not null;index:idx_loans_member" json:"-"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Status          Status          `gorm:"type:enum('DRAFT','SUBMITTED','UNDER_REVIEW','APPROVED','DISBURSED','REJECTED','CLOSED');default:'DRAFT';index:idx_loans_status" json:"status"`
	StatusUpdatedAt time.Time       `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// GuaranteeOpen reports whether guarantors may still be added or removed.
func (l *Loan) GuaranteeOpen() bool {
	return l.Status == StatusDraft || l.Status == StatusSubmitted
}

// ExposureRetired reports whether guarantees on a loan in this status no
// longer count against their guarantors' capacity.
func (s Status) ExposureRetired() bool {
	return s == StatusClosed || s == StatusRejected
}
