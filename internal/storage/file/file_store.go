package file

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"bankcore/internal/core"
	"bankcore/internal/storage/credentials"
	"bankcore/internal/storage/records"
)

// TimeLayout is the timestamp text format carried in the records file.
const TimeLayout = time.ANSIC

// recordFields is the column count of one account row:
// number,name,dob,age,address,phone,balance,type,created,last_transaction.
const recordFields = 10

// Default staff entry written on first run when no staff file exists yet.
const (
	DefaultStaffID     = "admin"
	defaultStaffSecret = "admin123"
)

// Adapter reads and writes the flat comma-delimited data files: one for
// account records and one credential file per namespace. Saves fully
// overwrite the target via a temp file and rename, so a crash mid-write
// never truncates the previous contents.
type Adapter struct {
	recordsPath       string
	customerCredsPath string
	staffCredsPath    string
}

// NewAdapter creates an adapter over the three data file paths.
func NewAdapter(recordsPath, customerCredsPath, staffCredsPath string) *Adapter {
	return &Adapter{
		recordsPath:       recordsPath,
		customerCredsPath: customerCredsPath,
		staffCredsPath:    staffCredsPath,
	}
}

// LoadRecords parses the records file into a fresh store. A missing file is
// not an error; it yields an empty store. Rows that cannot be decoded are
// skipped, and the skip count is returned so the caller can report it.
func (a *Adapter) LoadRecords(ctx context.Context) (*records.Store, int, error) {
	store := records.NewStore()

	f, err := os.Open(a.recordsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return store, 0, nil
		}
		return nil, 0, fmt.Errorf("open records file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	skipped := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				skipped++
				continue
			}
			return nil, skipped, fmt.Errorf("read records file: %w", err)
		}

		acc, err := decodeRecord(row)
		if err != nil {
			skipped++
			continue
		}
		if err := store.Insert(ctx, acc); err != nil {
			// duplicate key in the file; first occurrence wins
			skipped++
		}
	}
	return store, skipped, nil
}

// SaveRecords overwrites the records file with a full ascending-order dump.
func (a *Adapter) SaveRecords(ctx context.Context, store *records.Store) error {
	var rows [][]string
	store.Ascend(ctx, func(acc *core.Account) bool {
		rows = append(rows, encodeRecord(acc))
		return true
	})
	if err := writeCSV(a.recordsPath, rows); err != nil {
		return fmt.Errorf("%w: save records: %v", core.ErrWriteFailed, err)
	}
	return nil
}

// LoadCustomerCredentials parses the customer credential file. A missing
// file yields an empty store.
func (a *Adapter) LoadCustomerCredentials(ctx context.Context) (*credentials.Store, error) {
	return loadCredentials(a.customerCredsPath)
}

// SaveCustomerCredentials overwrites the customer credential file.
func (a *Adapter) SaveCustomerCredentials(ctx context.Context, store *credentials.Store) error {
	if err := writeCSV(a.customerCredsPath, credentialRows(store)); err != nil {
		return fmt.Errorf("%w: save customer credentials: %v", core.ErrWriteFailed, err)
	}
	return nil
}

// SaveStaffCredentials overwrites the staff credential file.
func (a *Adapter) SaveStaffCredentials(ctx context.Context, store *credentials.Store) error {
	if err := writeCSV(a.staffCredsPath, credentialRows(store)); err != nil {
		return fmt.Errorf("%w: save staff credentials: %v", core.ErrWriteFailed, err)
	}
	return nil
}

// BootstrapStaff loads the staff credential file. If the file does not exist
// this is the first run: a default administrator entry is seeded and saved
// immediately, so the staff login is never empty.
func (a *Adapter) BootstrapStaff(ctx context.Context) (*credentials.Store, error) {
	if _, err := os.Stat(a.staffCredsPath); os.IsNotExist(err) {
		store := credentials.FromMap(map[string]string{DefaultStaffID: defaultStaffSecret})
		if err := a.SaveStaffCredentials(ctx, store); err != nil {
			return nil, err
		}
		return store, nil
	}
	return loadCredentials(a.staffCredsPath)
}

func loadCredentials(path string) (*credentials.Store, error) {
	store := credentials.NewStore()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("open credentials file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				continue
			}
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		if len(row) < 2 {
			continue
		}
		// legacy rows may carry an unquoted comma inside the secret;
		// everything after the identifier belongs to it
		secret := row[1]
		for _, extra := range row[2:] {
			secret += "," + extra
		}
		store.Set(row[0], secret)
	}
	return store, nil
}

func credentialRows(store *credentials.Store) [][]string {
	entries := store.Snapshot()
	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []string{id, entries[id]})
	}
	return rows
}

func encodeRecord(acc *core.Account) []string {
	return []string{
		acc.AccountNumber,
		acc.Name,
		acc.DOB,
		acc.Age,
		acc.Address,
		acc.Phone,
		acc.Balance.StringFixed(2),
		string(acc.Type),
		acc.CreatedAt.Format(TimeLayout),
		acc.LastTransaction.Format(TimeLayout),
	}
}

func decodeRecord(row []string) (*core.Account, error) {
	if len(row) < recordFields {
		return nil, fmt.Errorf("record has %d fields, want %d", len(row), recordFields)
	}
	balance, err := decimal.NewFromString(row[6])
	if err != nil {
		return nil, fmt.Errorf("parse balance %q: %w", row[6], err)
	}
	accType := core.AccountType(row[7])
	if accType != core.Saving && accType != core.Current {
		return nil, fmt.Errorf("unknown account type %q", row[7])
	}
	// timestamps are informational; unparsable text loads as the zero time
	created, _ := time.Parse(TimeLayout, row[8])
	lastTx, _ := time.Parse(TimeLayout, row[9])

	return &core.Account{
		AccountNumber:   row[0],
		Name:            row[1],
		DOB:             row[2],
		Age:             row[3],
		Address:         row[4],
		Phone:           row[5],
		Balance:         balance,
		Type:            accType,
		CreatedAt:       created,
		LastTransaction: lastTx,
	}, nil
}

// writeCSV writes rows to path atomically: the data goes to a temp file
// first and replaces the target only after a clean close.
func writeCSV(path string, rows [][]string) error {
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	// flush to stable storage before the rename makes the data current
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
