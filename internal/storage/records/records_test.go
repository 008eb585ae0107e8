package records

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"bankcore/internal/core"
)

func newAccount(number, name string) *core.Account {
	return &core.Account{
		AccountNumber: number,
		Name:          name,
		Balance:       decimal.Zero,
		Type:          core.Saving,
	}
}

func TestAscendYieldsAscendingKeys(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	for _, n := range []string{"30", "10", "25", "15", "20"} {
		if err := s.Insert(ctx, newAccount(n, "holder "+n)); err != nil {
			t.Fatalf("Insert(%s) err=%v", n, err)
		}
	}

	var keys []string
	s.Ascend(ctx, func(acc *core.Account) bool {
		keys = append(keys, acc.AccountNumber)
		return true
	})

	if len(keys) != 5 {
		t.Fatalf("visited %d records, want 5", len(keys))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("keys not strictly increasing: %v", keys)
		}
	}
}

func TestInsertDuplicateLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if err := s.Insert(ctx, newAccount("1001", "original")); err != nil {
		t.Fatal(err)
	}
	err := s.Insert(ctx, newAccount("1001", "impostor"))
	if !errors.Is(err, core.ErrDuplicateAccount) {
		t.Fatalf("want ErrDuplicateAccount, got %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len=%d want=1", s.Len())
	}
	acc, err := s.Find(ctx, "1001")
	if err != nil {
		t.Fatal(err)
	}
	if acc.Name != "original" {
		t.Fatalf("record replaced by duplicate insert: %q", acc.Name)
	}
}

func TestFindMissing(t *testing.T) {
	s := NewStore()
	if _, err := s.Find(context.Background(), "9999"); !errors.Is(err, core.ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}
}

func TestFindByName(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	s.Insert(ctx, newAccount("3", "Charlie Smith"))
	s.Insert(ctx, newAccount("1", "Alice Smith"))
	s.Insert(ctx, newAccount("2", "Bob Jones"))

	matches := s.FindByName(ctx, "sMiTh")
	if len(matches) != 2 {
		t.Fatalf("matches=%d want=2", len(matches))
	}
	// ascending key order regardless of insertion order
	if matches[0].AccountNumber != "1" || matches[1].AccountNumber != "3" {
		t.Fatalf("matches out of order: %s, %s", matches[0].AccountNumber, matches[1].AccountNumber)
	}

	if got := s.FindByName(ctx, ""); len(got) != 3 {
		t.Fatalf("empty query matched %d, want all 3", len(got))
	}
	if got := s.FindByName(ctx, "nobody"); len(got) != 0 {
		t.Fatalf("want no matches, got %d", len(got))
	}
}

func TestAscendEarlyStop(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for _, n := range []string{"1", "2", "3"} {
		s.Insert(ctx, newAccount(n, "x"))
	}

	visited := 0
	s.Ascend(ctx, func(acc *core.Account) bool {
		visited++
		return visited < 2
	})
	if visited != 2 {
		t.Fatalf("visited=%d want=2", visited)
	}
}
