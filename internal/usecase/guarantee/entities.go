package guarantee

import (
	"time"

	"github.com/shopspring/decimal"
)

type AddGuarantorInput struct {
	LoanID            string
	GuarantorMemberID string
	Amount            decimal.Decimal
}

type ResolveInput struct {
	GuaranteeID    string
	ActingMemberID string
	// SignatureKey for approve, Reason for decline.
	SignatureKey string
	Reason       string
}

type GuaranteeDTO struct {
	GuaranteeID       string          `json:"guarantee_id"`
	LoanID            string          `json:"loan_id"`
	GuarantorMemberID string          `json:"guarantor_member_id"`
	Amount            decimal.Decimal `json:"amount"`
	Status            string          `json:"status"`
	SignatureKey      string          `json:"signature_key,omitempty"`
	DeclineReason     string          `json:"decline_reason,omitempty"`
	ApprovedAt        *time.Time      `json:"approved_at,omitempty"`
	DeclinedAt        *time.Time      `json:"declined_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}
