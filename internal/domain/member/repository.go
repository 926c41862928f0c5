package member

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	GetByMemberID(ctx context.Context, memberID string) (*Member, error)
	// Locks the member row for the duration of the surrounding transaction.
	GetByMemberIDForUpdate(ctx context.Context, memberID string) (*Member, error)
	GetByID(ctx context.Context, id uint64) (*Member, error)
	// TotalShares aggregates the member's share-deposit ledger.
	TotalShares(ctx context.Context, id uint64) (decimal.Decimal, error)
	// Search matches member number or name, case-insensitive.
	Search(ctx context.Context, query string, limit int) ([]Member, error)
}
