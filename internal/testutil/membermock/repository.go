package membermock

import (
	"context"

	domain "sacco-guarantor-service/internal/domain/member"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies member.Repository.
// Unset functions behave like an empty table.
type Repo struct {
	GetByMemberIDFn          func(ctx context.Context, memberID string) (*domain.Member, error)
	GetByMemberIDForUpdateFn func(ctx context.Context, memberID string) (*domain.Member, error)
	GetByIDFn                func(ctx context.Context, id uint64) (*domain.Member, error)
	TotalSharesFn            func(ctx context.Context, id uint64) (decimal.Decimal, error)
	SearchFn                 func(ctx context.Context, query string, limit int) ([]domain.Member, error)
}

func (m *Repo) GetByMemberID(ctx context.Context, memberID string) (*domain.Member, error) {
	if m.GetByMemberIDFn != nil {
		return m.GetByMemberIDFn(ctx, memberID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByMemberIDForUpdate(ctx context.Context, memberID string) (*domain.Member, error) {
	if m.GetByMemberIDForUpdateFn != nil {
		return m.GetByMemberIDForUpdateFn(ctx, memberID)
	}
	// fall through to the plain getter so tests only wire one of them
	return m.GetByMemberID(ctx, memberID)
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Member, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) TotalShares(ctx context.Context, id uint64) (decimal.Decimal, error) {
	if m.TotalSharesFn != nil {
		return m.TotalSharesFn(ctx, id)
	}
	return decimal.Zero, nil
}

func (m *Repo) Search(ctx context.Context, query string, limit int) ([]domain.Member, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, query, limit)
	}
	return nil, nil
}
