package ledger

import (
	"strconv"
	"testing"

	"github.com/shopspring/decimal"

	"bankcore/internal/core"
)

func appendN(l *Ledger, n int) {
	for i := 1; i <= n; i++ {
		l.Append(core.Transaction{
			Reference: strconv.Itoa(i),
			Kind:      core.Deposit,
			Amount:    decimal.NewFromInt(int64(i)),
			To:        "1001",
		})
	}
}

func TestRecentReturnsLastTenNewestFirst(t *testing.T) {
	l := New()
	appendN(l, 15)

	recent := l.Recent(10)
	if len(recent) != 10 {
		t.Fatalf("Recent(10) len=%d want=10", len(recent))
	}
	for i, tx := range recent {
		want := strconv.Itoa(15 - i)
		if tx.Reference != want {
			t.Fatalf("recent[%d]=%s want=%s", i, tx.Reference, want)
		}
	}
	if l.Len() != 15 {
		t.Fatalf("Recent must not consume the ledger: Len=%d want=15", l.Len())
	}

	// snapshot is repeatable
	again := l.Recent(10)
	if len(again) != 10 || again[0].Reference != "15" {
		t.Fatalf("second Recent differs: len=%d first=%s", len(again), again[0].Reference)
	}
}

func TestRecentWithFewerThanN(t *testing.T) {
	l := New()
	appendN(l, 3)

	recent := l.Recent(10)
	if len(recent) != 3 {
		t.Fatalf("Recent(10) len=%d want=3", len(recent))
	}
	if recent[0].Reference != "3" || recent[2].Reference != "1" {
		t.Fatalf("unexpected order: %s ... %s", recent[0].Reference, recent[2].Reference)
	}
}

func TestAllPreservesCommitOrder(t *testing.T) {
	l := New()
	appendN(l, 5)

	all := l.All()
	if len(all) != 5 {
		t.Fatalf("All len=%d want=5", len(all))
	}
	for i, tx := range all {
		if tx.Reference != strconv.Itoa(i+1) {
			t.Fatalf("all[%d]=%s want=%d", i, tx.Reference, i+1)
		}
	}

	// the returned slice is a copy
	all[0].Reference = "tampered"
	if l.All()[0].Reference != "1" {
		t.Fatal("mutating the copy changed the ledger")
	}
}
