package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bankcore/internal/core"
	"bankcore/internal/ledger"
	"bankcore/internal/queue"
	"bankcore/internal/storage/credentials"
	"bankcore/internal/storage/file"
	"bankcore/internal/storage/records"
)

var validate = validator.New()

// Bank is the use-case layer. It owns the record store, both credential
// stores, the transaction ledger, and the service queue, and flushes every
// durable mutation through the file adapter before reporting success.
// Construct it once and pass it to callers; there is no ambient state.
type Bank struct {
	records   *records.Store
	customers *credentials.Store
	staff     *credentials.Store
	ledger    *ledger.Ledger
	queue     *queue.Queue
	files     *file.Adapter
	logger    *slog.Logger
}

// New assembles a Bank from already-loaded components.
func New(recs *records.Store, customers, staff *credentials.Store, files *file.Adapter, logger *slog.Logger) *Bank {
	return &Bank{
		records:   recs,
		customers: customers,
		staff:     staff,
		ledger:    ledger.New(),
		queue:     queue.New(),
		files:     files,
		logger:    logger,
	}
}

// Open loads all persisted state through the adapter and assembles a Bank.
// On a first run the staff store is seeded with the default administrator.
func Open(ctx context.Context, files *file.Adapter, logger *slog.Logger) (*Bank, error) {
	recs, skipped, err := files.LoadRecords(ctx)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		logger.Warn("skipped malformed record lines", "count", skipped)
	}

	customers, err := files.LoadCustomerCredentials(ctx)
	if err != nil {
		return nil, err
	}
	staff, err := files.BootstrapStaff(ctx)
	if err != nil {
		return nil, err
	}

	return New(recs, customers, staff, files, logger), nil
}

// CreateAccountParams carries the input for opening a new account.
type CreateAccountParams struct {
	AccountNumber  string `validate:"required"`
	Name           string `validate:"required"`
	DOB            string
	Age            string
	Address        string
	Phone          string
	InitialDeposit decimal.Decimal
	Type           core.AccountType `validate:"required,oneof=Saving Current"`
	Password       string           `validate:"required"`
}

// CreateAccount opens a new account and its login credential in one use
// case, then persists both stores.
func (b *Bank) CreateAccount(ctx context.Context, p CreateAccountParams) (*core.Account, error) {
	if err := validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidInput, err)
	}
	if p.InitialDeposit.IsNegative() {
		return nil, core.ErrInvalidAmount
	}
	if b.customers.Exists(p.AccountNumber) {
		return nil, core.ErrDuplicateAccount
	}

	now := time.Now()
	acc := &core.Account{
		AccountNumber:   p.AccountNumber,
		Name:            p.Name,
		DOB:             p.DOB,
		Age:             p.Age,
		Address:         p.Address,
		Phone:           p.Phone,
		Balance:         p.InitialDeposit,
		Type:            p.Type,
		CreatedAt:       now,
		LastTransaction: now,
	}
	if err := b.records.Insert(ctx, acc); err != nil {
		return nil, err
	}
	b.customers.Set(p.AccountNumber, p.Password)

	if err := b.files.SaveCustomerCredentials(ctx, b.customers); err != nil {
		b.logger.Error("failed to save credentials", "err", err)
		return nil, err
	}
	if err := b.files.SaveRecords(ctx, b.records); err != nil {
		b.logger.Error("failed to save records", "err", err)
		return nil, err
	}

	b.logger.Info("account created", "account", acc.AccountNumber, "type", acc.Type)
	cp := *acc
	return &cp, nil
}

// Deposit adds a strictly positive amount to an account's balance.
func (b *Bank) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (*core.Account, error) {
	if !amount.IsPositive() {
		return nil, core.ErrInvalidAmount
	}
	acc, err := b.records.Find(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	acc.Balance = acc.Balance.Add(amount)
	acc.LastTransaction = now

	b.ledger.Append(core.Transaction{
		Reference: uuid.NewString(),
		Kind:      core.Deposit,
		Amount:    amount,
		To:        accountNumber,
		Timestamp: now,
	})

	if err := b.files.SaveRecords(ctx, b.records); err != nil {
		b.logger.Error("failed to save records", "err", err)
		return nil, err
	}

	cp := *acc
	return &cp, nil
}

// Withdraw removes a strictly positive amount from an account's balance.
// The amount may not exceed the balance; there is no partial withdrawal.
func (b *Bank) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (*core.Account, error) {
	if !amount.IsPositive() {
		return nil, core.ErrInvalidAmount
	}
	acc, err := b.records.Find(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(acc.Balance) {
		return nil, core.ErrInsufficientFunds
	}

	now := time.Now()
	acc.Balance = acc.Balance.Sub(amount)
	acc.LastTransaction = now

	b.ledger.Append(core.Transaction{
		Reference: uuid.NewString(),
		Kind:      core.Withdrawal,
		Amount:    amount,
		From:      accountNumber,
		Timestamp: now,
	})

	if err := b.files.SaveRecords(ctx, b.records); err != nil {
		b.logger.Error("failed to save records", "err", err)
		return nil, err
	}

	cp := *acc
	return &cp, nil
}

// Transfer moves an amount between two accounts. Both balances change in
// memory, two ledger entries are appended (debit then credit), and a single
// records flush covers both rows. Any validation failure leaves every
// account untouched.
func (b *Bank) Transfer(ctx context.Context, fromNumber, toNumber string, amount decimal.Decimal) (*core.Account, *core.Account, error) {
	if !amount.IsPositive() {
		return nil, nil, core.ErrInvalidAmount
	}
	if fromNumber == toNumber {
		return nil, nil, core.ErrSameAccount
	}
	from, err := b.records.Find(ctx, fromNumber)
	if err != nil {
		return nil, nil, err
	}
	to, err := b.records.Find(ctx, toNumber)
	if err != nil {
		return nil, nil, err
	}
	if amount.GreaterThan(from.Balance) {
		return nil, nil, core.ErrInsufficientFunds
	}

	now := time.Now()
	from.Balance = from.Balance.Sub(amount)
	to.Balance = to.Balance.Add(amount)
	from.LastTransaction = now
	to.LastTransaction = now

	b.ledger.Append(core.Transaction{
		Reference: uuid.NewString(),
		Kind:      core.TransferOut,
		Amount:    amount,
		From:      fromNumber,
		To:        toNumber,
		Timestamp: now,
	})
	b.ledger.Append(core.Transaction{
		Reference: uuid.NewString(),
		Kind:      core.TransferIn,
		Amount:    amount,
		From:      fromNumber,
		To:        toNumber,
		Timestamp: now,
	})

	if err := b.files.SaveRecords(ctx, b.records); err != nil {
		b.logger.Error("failed to save records", "err", err)
		return nil, nil, err
	}

	fromCp, toCp := *from, *to
	return &fromCp, &toCp, nil
}

// AccountUpdate names the profile fields a modification may change. Nil
// fields are left as they are.
type AccountUpdate struct {
	Name    *string
	DOB     *string
	Age     *string
	Address *string
	Phone   *string
}

// ModifyAccount applies a partial profile update and persists the records.
// Balance and timestamps are not touched here.
func (b *Bank) ModifyAccount(ctx context.Context, accountNumber string, upd AccountUpdate) (*core.Account, error) {
	acc, err := b.records.Find(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		acc.Name = *upd.Name
	}
	if upd.DOB != nil {
		acc.DOB = *upd.DOB
	}
	if upd.Age != nil {
		acc.Age = *upd.Age
	}
	if upd.Address != nil {
		acc.Address = *upd.Address
	}
	if upd.Phone != nil {
		acc.Phone = *upd.Phone
	}

	if err := b.files.SaveRecords(ctx, b.records); err != nil {
		b.logger.Error("failed to save records", "err", err)
		return nil, err
	}

	cp := *acc
	return &cp, nil
}

// ChangePassword replaces the customer's secret and persists the credential
// store, independently of any record flush.
func (b *Bank) ChangePassword(ctx context.Context, accountNumber, newSecret string) error {
	if _, err := b.records.Find(ctx, accountNumber); err != nil {
		return err
	}
	b.customers.Set(accountNumber, newSecret)
	if err := b.files.SaveCustomerCredentials(ctx, b.customers); err != nil {
		b.logger.Error("failed to save credentials", "err", err)
		return err
	}
	return nil
}

// SearchByNumber returns a snapshot of one account.
func (b *Bank) SearchByNumber(ctx context.Context, accountNumber string) (*core.Account, error) {
	acc, err := b.records.Find(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	cp := *acc
	return &cp, nil
}

// SearchByName returns snapshots of every account whose name contains text,
// case-insensitively, in ascending account-number order. No match is an
// empty result, not an error.
func (b *Bank) SearchByName(ctx context.Context, text string) []*core.Account {
	matches := b.records.FindByName(ctx, text)
	out := make([]*core.Account, 0, len(matches))
	for _, acc := range matches {
		cp := *acc
		out = append(out, &cp)
	}
	return out
}

// ListAccounts returns snapshots of every account in ascending order.
func (b *Bank) ListAccounts(ctx context.Context) []*core.Account {
	out := make([]*core.Account, 0, b.records.Len())
	b.records.Ascend(ctx, func(acc *core.Account) bool {
		cp := *acc
		out = append(out, &cp)
		return true
	})
	return out
}

// RecentTransactions returns up to n committed transactions, newest first.
func (b *Bank) RecentTransactions(n int) []core.Transaction {
	return b.ledger.Recent(n)
}

// TransactionHistory returns the full ledger in commit order.
func (b *Bank) TransactionHistory() []core.Transaction {
	return b.ledger.All()
}

// TransactionCount reports the ledger length.
func (b *Bank) TransactionCount() int {
	return b.ledger.Len()
}

// ServiceRequestParams carries the input for a customer-service submission.
type ServiceRequestParams struct {
	AccountNumber string               `validate:"required"`
	Category      core.RequestCategory `validate:"required,oneof='Technical Issue' 'Account Query' 'Loan Information' 'Other'"`
	Description   string               `validate:"required"`
}

// SubmitServiceRequest queues a service request for an existing account and
// returns it together with its queue position.
func (b *Bank) SubmitServiceRequest(ctx context.Context, p ServiceRequestParams) (core.ServiceRequest, int, error) {
	if err := validate.Struct(p); err != nil {
		return core.ServiceRequest{}, 0, fmt.Errorf("%w: %v", core.ErrInvalidInput, err)
	}
	acc, err := b.records.Find(ctx, p.AccountNumber)
	if err != nil {
		return core.ServiceRequest{}, 0, err
	}

	req := core.ServiceRequest{
		ID:            uuid.NewString(),
		AccountNumber: p.AccountNumber,
		Name:          acc.Name,
		Category:      p.Category,
		Description:   p.Description,
		SubmittedAt:   time.Now(),
	}
	pos := b.queue.Enqueue(req)
	b.logger.Info("service request queued", "account", req.AccountNumber, "category", req.Category, "position", pos)
	return req, pos, nil
}

// NextServiceRequest shows the front of the queue without removing it.
func (b *Bank) NextServiceRequest() (core.ServiceRequest, error) {
	return b.queue.Peek()
}

// ProcessNextRequest removes and returns the front of the queue.
func (b *Bank) ProcessNextRequest() (core.ServiceRequest, error) {
	req, err := b.queue.Dequeue()
	if err != nil {
		return core.ServiceRequest{}, err
	}
	b.logger.Info("service request processed", "account", req.AccountNumber, "id", req.ID)
	return req, nil
}

// PendingRequests returns the queue contents, front to back.
func (b *Bank) PendingRequests() []core.ServiceRequest {
	return b.queue.List()
}

// PendingCount reports the queue length.
func (b *Bank) PendingCount() int {
	return b.queue.Len()
}

// CustomerLogin verifies a customer credential. A wrong secret and an
// unknown account number are indistinguishable.
func (b *Bank) CustomerLogin(accountNumber, secret string) bool {
	return b.customers.Verify(accountNumber, secret)
}

// StaffLogin verifies a staff credential.
func (b *Bank) StaffLogin(employeeID, secret string) bool {
	return b.staff.Verify(employeeID, secret)
}

// AddStaff creates a new employee login and persists the staff store.
func (b *Bank) AddStaff(ctx context.Context, employeeID, secret string) error {
	if employeeID == "" || secret == "" {
		return core.ErrInvalidInput
	}
	if b.staff.Exists(employeeID) {
		return core.ErrDuplicateStaff
	}
	b.staff.Set(employeeID, secret)
	if err := b.files.SaveStaffCredentials(ctx, b.staff); err != nil {
		b.logger.Error("failed to save staff credentials", "err", err)
		return err
	}
	b.logger.Info("employee account created", "employee", employeeID)
	return nil
}

// Flush rewrites every persisted file from the in-memory state. Used at
// shutdown and after a reported save failure.
func (b *Bank) Flush(ctx context.Context) error {
	if err := b.files.SaveRecords(ctx, b.records); err != nil {
		return err
	}
	if err := b.files.SaveCustomerCredentials(ctx, b.customers); err != nil {
		return err
	}
	return b.files.SaveStaffCredentials(ctx, b.staff)
}
