package mysql

import (
	"context"
	"strings"

	memberDomain "sacco-guarantor-service/internal/domain/member"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MemberRepository struct{ db *gorm.DB }

func NewMemberRepository(db *gorm.DB) *MemberRepository { return &MemberRepository{db: db} }

func (r *MemberRepository) GetByMemberID(ctx context.Context, memberID string) (*memberDomain.Member, error) {
	var out memberDomain.Member
	res := r.db.WithContext(ctx).Where("member_id = ?", memberID).First(&out)
	return &out, res.Error
}

func (r *MemberRepository) GetByMemberIDForUpdate(ctx context.Context, memberID string) (*memberDomain.Member, error) {
	var out memberDomain.Member
	res := forUpdate(r.db.WithContext(ctx)).Where("member_id = ?", memberID).First(&out)
	return &out, res.Error
}

func (r *MemberRepository) GetByID(ctx context.Context, id uint64) (*memberDomain.Member, error) {
	var out memberDomain.Member
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

// TotalShares is the member's aggregate share value: SUM over the
// share-deposit ledger written by the teller subsystem.
func (r *MemberRepository) TotalShares(ctx context.Context, id uint64) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).
		Model(&memberDomain.ShareDeposit{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("member_id = ?", id).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *MemberRepository) Search(ctx context.Context, query string, limit int) ([]memberDomain.Member, error) {
	q := r.db.WithContext(ctx).Model(&memberDomain.Member{})
	if s := strings.TrimSpace(query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where(
			"LOWER(member_number) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			like, like, like,
		)
	}
	var out []memberDomain.Member
	res := q.Order("member_number ASC").Limit(limit).Find(&out)
	return out, res.Error
}
