package uowmock

import (
	"context"
	"errors"

	"sacco-guarantor-service/internal/domain/loan"
	"sacco-guarantor-service/internal/domain/member"
	"sacco-guarantor-service/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn          func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanTxFn      func(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error
	WithinGuarantorTxFn func(ctx context.Context, memberID string, fn func(r uow.Repos, m *member.Member) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough builds a UoW whose transactions just run fn against the
// given repos, resolving the locked row through them. Most usecase
// tests want exactly that.
func Passthrough(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(uow.Repos) error) error {
			return fn(r)
		},
		WithinLoanTxFn: func(ctx context.Context, loanID string, fn func(uow.Repos, *loan.Loan) error) error {
			l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
			if err != nil {
				return err
			}
			return fn(r, l)
		},
		WithinGuarantorTxFn: func(ctx context.Context, memberID string, fn func(uow.Repos, *member.Member) error) error {
			m, err := r.Members.GetByMemberIDForUpdate(ctx, memberID)
			if err != nil {
				return err
			}
			return fn(r, m)
		},
	}
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, loanID, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinGuarantorTx(ctx context.Context, memberID string, fn func(r uow.Repos, m *member.Member) error) error {
	if m.WithinGuarantorTxFn != nil {
		return m.WithinGuarantorTxFn(ctx, memberID, fn)
	}
	return errUnimplemented
}
