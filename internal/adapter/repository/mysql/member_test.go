package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"
)

func seedMember(t *testing.T, db *gorm.DB, memberID, number, first, last string) uint64 {
	t.Helper()
	m := &memberSQLite{
		MemberID:     memberID,
		MemberNumber: number,
		FirstName:    first,
		LastName:     last,
		JoiningDate:  time.Now().UTC().AddDate(-2, 0, 0),
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return m.ID
}

func TestMemberGetByMemberID(t *testing.T) {
	db := openTestDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	pk := seedMember(t, db, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "MEM001", "John", "Mwangi")

	got, err := repo.GetByMemberID(ctx, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	if err != nil {
		t.Fatalf("GetByMemberID: %v", err)
	}
	if got.ID != pk || got.MemberNumber != "MEM001" {
		t.Errorf("unexpected member: %+v", got)
	}

	byPK, err := repo.GetByID(ctx, pk)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byPK.MemberID != got.MemberID {
		t.Errorf("GetByID mismatch: %+v", byPK)
	}

	_, err = repo.GetByMemberID(ctx, "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestMemberGetForUpdate(t *testing.T) {
	db := openTestDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	seedMember(t, db, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", "MEM002", "Grace", "Achieng")

	// sqlite has no FOR UPDATE; the locking clause must be skipped
	got, err := repo.GetByMemberIDForUpdate(ctx, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	if err != nil {
		t.Fatalf("GetByMemberIDForUpdate: %v", err)
	}
	if got.MemberNumber != "MEM002" {
		t.Errorf("unexpected member: %+v", got)
	}
}

func TestTotalShares(t *testing.T) {
	db := openTestDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	m1 := seedMember(t, db, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "MEM001", "John", "Mwangi")
	m2 := seedMember(t, db, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", "MEM002", "Grace", "Achieng")

	deposits := []shareDepositSQLite{
		{MemberID: m1, Amount: mustDec("3000.50"), DepositedAt: time.Now().UTC()},
		{MemberID: m1, Amount: mustDec("1999.50"), DepositedAt: time.Now().UTC()},
		{MemberID: m2, Amount: mustDec("100.00"), DepositedAt: time.Now().UTC()},
	}
	if err := db.Create(&deposits).Error; err != nil {
		t.Fatalf("seed deposits: %v", err)
	}

	total, err := repo.TotalShares(ctx, m1)
	if err != nil {
		t.Fatalf("TotalShares: %v", err)
	}
	if !total.Equal(mustDec("5000")) {
		t.Errorf("total=%s want 5000", total)
	}

	// member with no deposits sums to zero
	empty, err := repo.TotalShares(ctx, 999)
	if err != nil {
		t.Fatalf("TotalShares empty: %v", err)
	}
	if !empty.IsZero() {
		t.Errorf("empty total=%s want 0", empty)
	}
}

func TestMemberSearch(t *testing.T) {
	db := openTestDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	seedMember(t, db, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "MEM002", "Grace", "Achieng")
	seedMember(t, db, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", "MEM001", "John", "Mwangi")
	seedMember(t, db, "cccccccccccccccccccccccccccccccc", "MEM003", "Peter", "Otieno")

	byName, err := repo.Search(ctx, "grace", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(byName) != 1 || byName[0].MemberNumber != "MEM002" {
		t.Errorf("unexpected result: %+v", byName)
	}

	byNumber, err := repo.Search(ctx, "MEM", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(byNumber) != 3 || byNumber[0].MemberNumber != "MEM001" {
		t.Errorf("expected all members ordered by number, got %+v", byNumber)
	}

	limited, err := repo.Search(ctx, "", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit not applied, got %d rows", len(limited))
	}
}
