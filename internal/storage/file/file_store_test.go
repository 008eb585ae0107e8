package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"bankcore/internal/core"
	"bankcore/internal/storage/credentials"
	"bankcore/internal/storage/records"
)

func newAdapter(t *testing.T) *Adapter {
	t.Helper()
	dir := t.TempDir()
	return NewAdapter(
		filepath.Join(dir, "Bank_Record.csv"),
		filepath.Join(dir, "Account_info.csv"),
		filepath.Join(dir, "Employee_info.csv"),
	)
}

func sampleAccount(number, name string, balance string) *core.Account {
	bal, _ := decimal.NewFromString(balance)
	created := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)
	return &core.Account{
		AccountNumber:   number,
		Name:            name,
		DOB:             "01/02/1990",
		Age:             "34",
		Address:         "12 High Street",
		Phone:           "5550001",
		Balance:         bal,
		Type:            core.Saving,
		CreatedAt:       created,
		LastTransaction: created.Add(time.Hour),
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := newAdapter(t)

	store := records.NewStore()
	want := []*core.Account{
		sampleAccount("1001", "Alice", "70.00"),
		sampleAccount("1002", "Bob, Jr.", "0.00"), // embedded comma must survive
		sampleAccount("1003", "Carol", "12345.67"),
	}
	for _, acc := range want {
		if err := store.Insert(ctx, acc); err != nil {
			t.Fatal(err)
		}
	}

	if err := a.SaveRecords(ctx, store); err != nil {
		t.Fatalf("SaveRecords err=%v", err)
	}
	loaded, skipped, err := a.LoadRecords(ctx)
	if err != nil {
		t.Fatalf("LoadRecords err=%v", err)
	}
	if skipped != 0 {
		t.Fatalf("skipped=%d want=0", skipped)
	}
	if loaded.Len() != len(want) {
		t.Fatalf("loaded %d records, want %d", loaded.Len(), len(want))
	}

	for _, orig := range want {
		got, err := loaded.Find(ctx, orig.AccountNumber)
		if err != nil {
			t.Fatalf("Find(%s) err=%v", orig.AccountNumber, err)
		}
		if got.Name != orig.Name || got.DOB != orig.DOB || got.Age != orig.Age ||
			got.Address != orig.Address || got.Phone != orig.Phone || got.Type != orig.Type {
			t.Fatalf("field mismatch: got=%+v want=%+v", got, orig)
		}
		if !got.Balance.Equal(orig.Balance) {
			t.Fatalf("balance %s want %s", got.Balance, orig.Balance)
		}
		if !got.CreatedAt.Equal(orig.CreatedAt) || !got.LastTransaction.Equal(orig.LastTransaction) {
			t.Fatalf("timestamps drifted: got=%v/%v want=%v/%v",
				got.CreatedAt, got.LastTransaction, orig.CreatedAt, orig.LastTransaction)
		}
	}
}

func TestLoadRecordsMissingFile(t *testing.T) {
	a := newAdapter(t)
	store, skipped, err := a.LoadRecords(context.Background())
	if err != nil {
		t.Fatalf("missing file should not be an error, got %v", err)
	}
	if skipped != 0 || store.Len() != 0 {
		t.Fatalf("want empty store, got len=%d skipped=%d", store.Len(), skipped)
	}
}

func TestLoadRecordsSkipsMalformedLines(t *testing.T) {
	ctx := context.Background()
	a := newAdapter(t)

	content := strings.Join([]string{
		"1001,Alice,01/02/1990,34,12 High Street,5550001,70.00,Saving,Tue Mar  5 10:30:00 2024,Tue Mar  5 11:30:00 2024",
		"2002,too,few,fields",
		"3003,Bad,01/01/1990,30,addr,555,not-a-number,Saving,x,y",
		"4004,Dave,01/01/1990,30,addr,555,10.00,Checking,Tue Mar  5 10:30:00 2024,Tue Mar  5 10:30:00 2024",
		"",
	}, "\n")
	if err := os.WriteFile(a.recordsPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	store, skipped, err := a.LoadRecords(ctx)
	if err != nil {
		t.Fatalf("LoadRecords err=%v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("loaded %d records, want 1", store.Len())
	}
	if skipped != 3 {
		t.Fatalf("skipped=%d want=3", skipped)
	}
	if _, err := store.Find(ctx, "1001"); err != nil {
		t.Fatalf("good line not loaded: %v", err)
	}
}

func TestSaveRecordsOverwrites(t *testing.T) {
	ctx := context.Background()
	a := newAdapter(t)

	big := records.NewStore()
	big.Insert(ctx, sampleAccount("1", "A", "1.00"))
	big.Insert(ctx, sampleAccount("2", "B", "2.00"))
	if err := a.SaveRecords(ctx, big); err != nil {
		t.Fatal(err)
	}

	small := records.NewStore()
	small.Insert(ctx, sampleAccount("9", "Z", "9.00"))
	if err := a.SaveRecords(ctx, small); err != nil {
		t.Fatal(err)
	}

	loaded, _, err := a.LoadRecords(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 1 {
		t.Fatalf("save must fully overwrite: len=%d want=1", loaded.Len())
	}
}

func TestCredentialsRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := newAdapter(t)

	store := credentials.FromMap(map[string]string{
		"1001": "hunter2",
		"1002": "pass,with,commas",
	})
	if err := a.SaveCustomerCredentials(ctx, store); err != nil {
		t.Fatal(err)
	}

	loaded, err := a.LoadCustomerCredentials(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.Verify("1001", "hunter2") {
		t.Fatal("plain secret did not round-trip")
	}
	if !loaded.Verify("1002", "pass,with,commas") {
		t.Fatal("secret with embedded commas did not round-trip")
	}
}

func TestLoadLegacyUnquotedCredentialRow(t *testing.T) {
	a := newAdapter(t)
	// a row written without quoting, comma inside the secret
	if err := os.WriteFile(a.customerCredsPath, []byte("1001,a,b,c\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	loaded, err := a.LoadCustomerCredentials(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.Verify("1001", "a,b,c") {
		t.Fatal("legacy row not parsed as identifier + remainder")
	}
}

func TestBootstrapStaffSeedsDefaultAdmin(t *testing.T) {
	ctx := context.Background()
	a := newAdapter(t)

	staff, err := a.BootstrapStaff(ctx)
	if err != nil {
		t.Fatalf("BootstrapStaff err=%v", err)
	}
	if !staff.Verify(DefaultStaffID, "admin123") {
		t.Fatal("default administrator not seeded")
	}

	// the seed must already be on disk
	data, err := os.ReadFile(a.staffCredsPath)
	if err != nil {
		t.Fatalf("staff file not written: %v", err)
	}
	if !strings.Contains(string(data), "admin,admin123") {
		t.Fatalf("unexpected staff file contents: %q", data)
	}

	// a later run must load the file instead of re-seeding
	staff.Set("emp1", "pw")
	if err := a.SaveStaffCredentials(ctx, staff); err != nil {
		t.Fatal(err)
	}
	again, err := a.BootstrapStaff(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !again.Verify("emp1", "pw") || again.Len() != 2 {
		t.Fatal("existing staff file not loaded on second run")
	}
}
