package eligibility

import "github.com/shopspring/decimal"

type EvaluationDTO struct {
	MemberID          string          `json:"member_id"`
	Eligible          bool            `json:"eligible"`
	Reason            string          `json:"reason,omitempty"`
	AvailableCapacity decimal.Decimal `json:"available_capacity"`
}

// CandidateDTO is one row of the guarantor search result for a loan.
type CandidateDTO struct {
	MemberID          string          `json:"member_id"`
	MemberNumber      string          `json:"member_number"`
	Name              string          `json:"name"`
	AvailableCapacity decimal.Decimal `json:"available_capacity"`
	IsEligible        bool            `json:"is_eligible"`
}
