package uow

import (
	"context"

	"sacco-guarantor-service/internal/domain/guarantee"
	"sacco-guarantor-service/internal/domain/loan"
	"sacco-guarantor-service/internal/domain/member"
)

type Repos struct {
	Members    member.Repository
	Loans      loan.Repository
	Guarantees guarantee.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
	// lock the guarantor's member row for the duration of the tx; this
	// serializes capacity checks against concurrent guarantee inserts
	// for the same member.
	WithinGuarantorTx(ctx context.Context, memberID string, fn func(r Repos, m *member.Member) error) error
}
