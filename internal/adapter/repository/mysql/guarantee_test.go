package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	guaranteeDomain "sacco-guarantor-service/internal/domain/guarantee"
	loanDomain "sacco-guarantor-service/internal/domain/loan"
	"sacco-guarantor-service/pkg/id"

	"gorm.io/gorm"
)

func seedLoan(t *testing.T, db *gorm.DB, status string) uint64 {
	t.Helper()
	l := &loanSQLite{
		LoanID:          id.NewID32(),
		MemberID:        1,
		Amount:          mustDec("50000.00"),
		Status:          status,
		StatusUpdatedAt: time.Now().UTC(),
	}
	if err := db.Create(l).Error; err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	return l.ID
}

func makeGuarantee(loanID, guarantorID uint64, amount string) *guaranteeDomain.Guarantee {
	return &guaranteeDomain.Guarantee{
		GuaranteeID:       id.NewID32(),
		LoanID:            loanID,
		GuarantorMemberID: guarantorID,
		Amount:            mustDec(amount),
		Status:            guaranteeDomain.StatusPending,
	}
}

func TestGuaranteeCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewGuaranteeRepository(db)
	ctx := context.Background()

	loanID := seedLoan(t, db, string(loanDomain.StatusDraft))
	g := makeGuarantee(loanID, 2, "6000.00")
	if err := repo.Create(ctx, g); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByGuaranteeID(ctx, g.GuaranteeID)
	if err != nil {
		t.Fatalf("GetByGuaranteeID: %v", err)
	}
	if got.LoanID != loanID || got.GuarantorMemberID != 2 || got.Status != guaranteeDomain.StatusPending {
		t.Errorf("unexpected guarantee: %+v", got)
	}

	byPair, err := repo.GetByLoanAndGuarantor(ctx, loanID, 2)
	if err != nil {
		t.Fatalf("GetByLoanAndGuarantor: %v", err)
	}
	if byPair.GuaranteeID != g.GuaranteeID {
		t.Errorf("pair lookup mismatch: %+v", byPair)
	}

	_, err = repo.GetByLoanAndGuarantor(ctx, loanID, 99)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestGuaranteeDuplicatePairRejected(t *testing.T) {
	db := openTestDB(t)
	repo := NewGuaranteeRepository(db)
	ctx := context.Background()

	loanID := seedLoan(t, db, string(loanDomain.StatusDraft))
	if err := repo.Create(ctx, makeGuarantee(loanID, 2, "1000.00")); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	err := repo.Create(ctx, makeGuarantee(loanID, 2, "2000.00"))
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey, got %v", err)
	}

	// same member on another loan is fine
	otherLoan := seedLoan(t, db, string(loanDomain.StatusDraft))
	if err := repo.Create(ctx, makeGuarantee(otherLoan, 2, "2000.00")); err != nil {
		t.Fatalf("Create on other loan: %v", err)
	}
}

func TestListByLoanID(t *testing.T) {
	db := openTestDB(t)
	repo := NewGuaranteeRepository(db)
	ctx := context.Background()

	loanID := seedLoan(t, db, string(loanDomain.StatusDraft))
	for i, amt := range []string{"1000.00", "2000.00", "3000.00"} {
		if err := repo.Create(ctx, makeGuarantee(loanID, uint64(10+i), amt)); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.ListByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("ListByLoanID: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len=%d want 3", len(got))
	}
	if got[0].GuarantorMemberID != 10 || got[2].GuarantorMemberID != 12 {
		t.Errorf("insertion order not preserved: %+v", got)
	}
}

func TestActiveExposure(t *testing.T) {
	db := openTestDB(t)
	repo := NewGuaranteeRepository(db)
	ctx := context.Background()

	const guarantor = 2
	draft := seedLoan(t, db, string(loanDomain.StatusDraft))
	submitted := seedLoan(t, db, string(loanDomain.StatusSubmitted))
	closed := seedLoan(t, db, string(loanDomain.StatusClosed))
	rejected := seedLoan(t, db, string(loanDomain.StatusRejected))

	// counts: PENDING on an open loan
	if err := repo.Create(ctx, makeGuarantee(draft, guarantor, "3000.00")); err != nil {
		t.Fatal(err)
	}
	// counts: APPROVED on an open loan
	approved := makeGuarantee(submitted, guarantor, "2000.00")
	approved.Status = guaranteeDomain.StatusApproved
	if err := repo.Create(ctx, approved); err != nil {
		t.Fatal(err)
	}
	// retired loans release exposure
	onClosed := makeGuarantee(closed, guarantor, "5000.00")
	onClosed.Status = guaranteeDomain.StatusApproved
	if err := repo.Create(ctx, onClosed); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(ctx, makeGuarantee(rejected, guarantor, "4000.00")); err != nil {
		t.Fatal(err)
	}
	// declined pledges never count
	declined := makeGuarantee(draft, 3, "9000.00")
	declined.Status = guaranteeDomain.StatusDeclined
	if err := repo.Create(ctx, declined); err != nil {
		t.Fatal(err)
	}

	total, err := repo.ActiveExposure(ctx, guarantor)
	if err != nil {
		t.Fatalf("ActiveExposure: %v", err)
	}
	if !total.Equal(mustDec("5000")) {
		t.Errorf("exposure=%s want 5000", total)
	}

	noPledges, err := repo.ActiveExposure(ctx, 99)
	if err != nil {
		t.Fatalf("ActiveExposure empty: %v", err)
	}
	if !noPledges.IsZero() {
		t.Errorf("empty exposure=%s want 0", noPledges)
	}
}

func TestActiveCoverage(t *testing.T) {
	db := openTestDB(t)
	repo := NewGuaranteeRepository(db)
	ctx := context.Background()

	loanID := seedLoan(t, db, string(loanDomain.StatusDraft))
	if err := repo.Create(ctx, makeGuarantee(loanID, 2, "30000.00")); err != nil {
		t.Fatal(err)
	}
	approved := makeGuarantee(loanID, 3, "25000.00")
	approved.Status = guaranteeDomain.StatusApproved
	if err := repo.Create(ctx, approved); err != nil {
		t.Fatal(err)
	}
	declined := makeGuarantee(loanID, 4, "10000.00")
	declined.Status = guaranteeDomain.StatusDeclined
	if err := repo.Create(ctx, declined); err != nil {
		t.Fatal(err)
	}

	cov, err := repo.ActiveCoverage(ctx, loanID)
	if err != nil {
		t.Fatalf("ActiveCoverage: %v", err)
	}
	if !cov.TotalGuaranteed.Equal(mustDec("55000")) {
		t.Errorf("total=%s want 55000", cov.TotalGuaranteed)
	}
	if cov.GuarantorCount != 2 {
		t.Errorf("count=%d want 2", cov.GuarantorCount)
	}
}

func TestMarkApproved(t *testing.T) {
	db := openTestDB(t)
	repo := NewGuaranteeRepository(db)
	ctx := context.Background()

	loanID := seedLoan(t, db, string(loanDomain.StatusDraft))
	g := makeGuarantee(loanID, 2, "6000.00")
	if err := repo.Create(ctx, g); err != nil {
		t.Fatal(err)
	}

	at := time.Now().UTC()
	rows, err := repo.MarkApproved(ctx, g.GuaranteeID, "sig-key-1", at)
	if err != nil {
		t.Fatalf("MarkApproved: %v", err)
	}
	if rows != 1 {
		t.Fatalf("rows=%d want 1", rows)
	}

	got, err := repo.GetByGuaranteeID(ctx, g.GuaranteeID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != guaranteeDomain.StatusApproved || got.SignatureKey != "sig-key-1" || got.ApprovedAt == nil {
		t.Errorf("approval fields not set: %+v", got)
	}

	// conditional update: a resolved row is untouched
	rows, err = repo.MarkApproved(ctx, g.GuaranteeID, "sig-key-2", time.Now().UTC())
	if err != nil {
		t.Fatalf("second MarkApproved: %v", err)
	}
	if rows != 0 {
		t.Fatalf("rows=%d want 0 on resolved row", rows)
	}
}

func TestMarkDeclined(t *testing.T) {
	db := openTestDB(t)
	repo := NewGuaranteeRepository(db)
	ctx := context.Background()

	loanID := seedLoan(t, db, string(loanDomain.StatusDraft))
	g := makeGuarantee(loanID, 2, "6000.00")
	if err := repo.Create(ctx, g); err != nil {
		t.Fatal(err)
	}

	rows, err := repo.MarkDeclined(ctx, g.GuaranteeID, "overextended", time.Now().UTC())
	if err != nil {
		t.Fatalf("MarkDeclined: %v", err)
	}
	if rows != 1 {
		t.Fatalf("rows=%d want 1", rows)
	}

	got, err := repo.GetByGuaranteeID(ctx, g.GuaranteeID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != guaranteeDomain.StatusDeclined || got.DeclineReason != "overextended" || got.DeclinedAt == nil {
		t.Errorf("decline fields not set: %+v", got)
	}

	// approving a declined row must not flip it back
	rows, err = repo.MarkApproved(ctx, g.GuaranteeID, "sig", time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}
	if rows != 0 {
		t.Fatalf("rows=%d want 0", rows)
	}
}

func TestDeletePending(t *testing.T) {
	db := openTestDB(t)
	repo := NewGuaranteeRepository(db)
	ctx := context.Background()

	loanID := seedLoan(t, db, string(loanDomain.StatusDraft))
	g := makeGuarantee(loanID, 2, "6000.00")
	if err := repo.Create(ctx, g); err != nil {
		t.Fatal(err)
	}

	rows, err := repo.DeletePending(ctx, loanID, 2)
	if err != nil {
		t.Fatalf("DeletePending: %v", err)
	}
	if rows != 1 {
		t.Fatalf("rows=%d want 1", rows)
	}
	if _, err := repo.GetByLoanAndGuarantor(ctx, loanID, 2); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("pledge still visible after delete: %v", err)
	}

	// the pair index slot is freed, so the guarantor can pledge again
	if err := repo.Create(ctx, makeGuarantee(loanID, 2, "5500.00")); err != nil {
		t.Fatalf("re-add after remove should succeed, got: %v", err)
	}

	// resolved pledges are not deletable
	resolved := makeGuarantee(loanID, 3, "1000.00")
	resolved.Status = guaranteeDomain.StatusApproved
	if err := repo.Create(ctx, resolved); err != nil {
		t.Fatal(err)
	}
	rows, err = repo.DeletePending(ctx, loanID, 3)
	if err != nil {
		t.Fatalf("DeletePending resolved: %v", err)
	}
	if rows != 0 {
		t.Fatalf("rows=%d want 0 for resolved pledge", rows)
	}
}
