package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"bankcore/internal/core"
	"bankcore/internal/service"
)

// screen is one state of the menu loop. Every menu returns the next screen
// instead of calling into it, so navigation is a flat loop rather than
// nested calls.
type screen int

const (
	screenMain screen = iota
	screenLogin
	screenCustomer
	screenEmployee
	screenExit
)

type console struct {
	bank *service.Bank
	in   *bufio.Scanner
	out  io.Writer
}

func newConsole(bank *service.Bank, in io.Reader, out io.Writer) *console {
	return &console{bank: bank, in: bufio.NewScanner(in), out: out}
}

func (c *console) run(ctx context.Context) {
	for state := screenMain; state != screenExit; {
		switch state {
		case screenMain:
			state = c.mainMenu()
		case screenLogin:
			state = c.loginMenu(ctx)
		case screenCustomer:
			state = c.customerMenu(ctx)
		case screenEmployee:
			state = c.employeeMenu(ctx)
		}
	}
	fmt.Fprintln(c.out, "Thank you for using the banking system.")
}

func (c *console) prompt(label string) string {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *console) report(err error) {
	if errors.Is(err, core.ErrWriteFailed) {
		// the in-memory change is kept; a later flush can still succeed
		fmt.Fprintf(c.out, "WARNING: %v (changes not yet on disk)\n", err)
		return
	}
	fmt.Fprintln(c.out, "Error:", err)
}

func parseAmount(text string) (decimal.Decimal, error) {
	amt, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, core.ErrInvalidAmount
	}
	return amt, nil
}

func (c *console) mainMenu() screen {
	fmt.Fprintln(c.out, "\nWELCOME TO THE BANKING SYSTEM")
	fmt.Fprintln(c.out, "1. Login")
	fmt.Fprintln(c.out, "2. Instructions")
	fmt.Fprintln(c.out, "0. Exit")

	switch c.prompt("Enter your choice: ") {
	case "1":
		return screenLogin
	case "2":
		c.showInstructions()
		return screenMain
	case "0", "":
		return screenExit
	default:
		fmt.Fprintln(c.out, "Invalid choice.")
		return screenMain
	}
}

func (c *console) showInstructions() {
	fmt.Fprintln(c.out, "\nIMPORTANT INSTRUCTIONS:")
	fmt.Fprintln(c.out, "1. Keep your account number and password confidential.")
	fmt.Fprintln(c.out, "2. Always log out after completing your transactions.")
	fmt.Fprintln(c.out, "3. Report any suspicious activity to the bank immediately.")
}

func (c *console) loginMenu(ctx context.Context) screen {
	fmt.Fprintln(c.out, "\nLOGIN PAGE")
	fmt.Fprintln(c.out, "1. Employee Login")
	fmt.Fprintln(c.out, "2. Customer Login")
	fmt.Fprintln(c.out, "3. New Customer Registration")
	fmt.Fprintln(c.out, "4. Return to Main Menu")
	fmt.Fprintln(c.out, "0. Exit")

	switch c.prompt("Enter your choice: ") {
	case "1":
		id := c.prompt("Employee ID: ")
		secret := c.prompt("Password: ")
		if c.bank.StaffLogin(id, secret) {
			fmt.Fprintf(c.out, "Login successful. Welcome, %s!\n", id)
			return screenEmployee
		}
		fmt.Fprintln(c.out, "Invalid employee ID or password.")
		return screenLogin
	case "2":
		accNo := c.prompt("Account Number: ")
		secret := c.prompt("Password: ")
		if c.bank.CustomerLogin(accNo, secret) {
			fmt.Fprintln(c.out, "Login successful.")
			return screenCustomer
		}
		fmt.Fprintln(c.out, "Invalid account number or password.")
		return screenLogin
	case "3":
		c.createAccount(ctx)
		return screenLogin
	case "4":
		return screenMain
	case "0", "":
		return screenExit
	default:
		fmt.Fprintln(c.out, "Invalid choice.")
		return screenLogin
	}
}

func (c *console) customerMenu(ctx context.Context) screen {
	fmt.Fprintln(c.out, "\nCUSTOMER MENU")
	fmt.Fprintln(c.out, "1. Create New Account")
	fmt.Fprintln(c.out, "2. Search My Account")
	fmt.Fprintln(c.out, "3. Deposit/Withdraw Funds")
	fmt.Fprintln(c.out, "4. Modify My Account Details")
	fmt.Fprintln(c.out, "5. Transfer Funds")
	fmt.Fprintln(c.out, "6. View Transaction History")
	fmt.Fprintln(c.out, "7. Request Customer Service")
	fmt.Fprintln(c.out, "8. Log Out")
	fmt.Fprintln(c.out, "0. Exit")

	switch c.prompt("Enter your choice: ") {
	case "1":
		c.createAccount(ctx)
	case "2":
		c.searchAccount(ctx)
	case "3":
		c.depositWithdraw(ctx)
	case "4":
		c.modifyAccount(ctx)
	case "5":
		c.transferFunds(ctx)
	case "6":
		c.showHistory()
	case "7":
		c.submitRequest(ctx)
	case "8":
		return screenMain
	case "0", "":
		return screenExit
	default:
		fmt.Fprintln(c.out, "Invalid choice.")
	}
	return screenCustomer
}

func (c *console) employeeMenu(ctx context.Context) screen {
	fmt.Fprintln(c.out, "\nEMPLOYEE MENU")
	fmt.Fprintln(c.out, "1. Create New Customer Account")
	fmt.Fprintln(c.out, "2. Search Customer Account")
	fmt.Fprintln(c.out, "3. Modify Customer Account Details")
	fmt.Fprintln(c.out, "4. View All Bank Accounts")
	fmt.Fprintln(c.out, "5. Process Customer Service Requests")
	fmt.Fprintln(c.out, "6. Add New Employee Account")
	fmt.Fprintln(c.out, "7. Log Out")
	fmt.Fprintln(c.out, "0. Exit")

	switch c.prompt("Enter your choice: ") {
	case "1":
		c.createAccount(ctx)
	case "2":
		c.searchAccount(ctx)
	case "3":
		c.modifyAccount(ctx)
	case "4":
		c.listAccounts(ctx)
	case "5":
		c.manageQueue(ctx)
	case "6":
		c.addEmployee(ctx)
	case "7":
		return screenMain
	case "0", "":
		return screenExit
	default:
		fmt.Fprintln(c.out, "Invalid choice.")
	}
	return screenEmployee
}

func (c *console) createAccount(ctx context.Context) {
	fmt.Fprintln(c.out, "\nACCOUNT CREATION")
	p := service.CreateAccountParams{
		AccountNumber: c.prompt("Account Number: "),
		Name:          c.prompt("Name: "),
		DOB:           c.prompt("Date of Birth (DD/MM/YYYY): "),
		Age:           c.prompt("Age: "),
		Address:       c.prompt("Address: "),
		Phone:         c.prompt("Phone Number: "),
	}

	if c.prompt("Make an initial deposit? (y/n): ") == "y" {
		amt, err := parseAmount(c.prompt("Amount to deposit: "))
		if err != nil {
			c.report(err)
			return
		}
		p.InitialDeposit = amt
	}

	if c.prompt("Account type (1. Saving / 2. Current): ") == "2" {
		p.Type = core.Current
	} else {
		p.Type = core.Saving
	}
	p.Password = c.prompt("Password for your account: ")

	acc, err := c.bank.CreateAccount(ctx, p)
	if err != nil {
		c.report(err)
		return
	}
	fmt.Fprintln(c.out, "Account created successfully!")
	fmt.Fprintf(c.out, "Account Number: %s\nInitial Balance: %s\n", acc.AccountNumber, acc.Balance.StringFixed(2))
}

func (c *console) printAccount(acc *core.Account) {
	fmt.Fprintf(c.out, "Account No.: %s\n", acc.AccountNumber)
	fmt.Fprintf(c.out, "Name: %s\n", acc.Name)
	fmt.Fprintf(c.out, "DOB: %s\n", acc.DOB)
	fmt.Fprintf(c.out, "Age: %s\n", acc.Age)
	fmt.Fprintf(c.out, "Address: %s\n", acc.Address)
	fmt.Fprintf(c.out, "Phone: %s\n", acc.Phone)
	fmt.Fprintf(c.out, "Account Type: %s\n", acc.Type)
	fmt.Fprintf(c.out, "Balance: %s\n", acc.Balance.StringFixed(2))
	if !acc.CreatedAt.IsZero() {
		fmt.Fprintf(c.out, "Created: %s\n", acc.CreatedAt.Format("Mon Jan 2 15:04:05 2006"))
	}
	if !acc.LastTransaction.IsZero() {
		fmt.Fprintf(c.out, "Last Transaction: %s\n", acc.LastTransaction.Format("Mon Jan 2 15:04:05 2006"))
	}
}

func (c *console) searchAccount(ctx context.Context) {
	fmt.Fprintln(c.out, "\nACCOUNT SEARCH")
	switch c.prompt("Search by (1. Account Number / 2. Name): ") {
	case "1":
		acc, err := c.bank.SearchByNumber(ctx, c.prompt("Account Number: "))
		if err != nil {
			c.report(err)
			return
		}
		c.printAccount(acc)
	case "2":
		matches := c.bank.SearchByName(ctx, c.prompt("Name (or part of name): "))
		if len(matches) == 0 {
			fmt.Fprintln(c.out, "No matching accounts found.")
			return
		}
		for _, acc := range matches {
			fmt.Fprintf(c.out, "%s  %s  %s  %s\n",
				acc.AccountNumber, acc.Name, acc.Type, acc.Balance.StringFixed(2))
		}
	default:
		fmt.Fprintln(c.out, "Invalid choice.")
	}
}

func (c *console) depositWithdraw(ctx context.Context) {
	fmt.Fprintln(c.out, "\nTRANSACTIONS")
	accNo := c.prompt("Account Number: ")

	acc, err := c.bank.SearchByNumber(ctx, accNo)
	if err != nil {
		c.report(err)
		return
	}
	fmt.Fprintf(c.out, "Current Balance: %s\n", acc.Balance.StringFixed(2))

	choice := c.prompt("1. Deposit / 2. Withdraw: ")
	amt, err := parseAmount(c.prompt("Amount: "))
	if err != nil {
		c.report(err)
		return
	}

	switch choice {
	case "1":
		acc, err = c.bank.Deposit(ctx, accNo, amt)
	case "2":
		acc, err = c.bank.Withdraw(ctx, accNo, amt)
	default:
		fmt.Fprintln(c.out, "Invalid choice.")
		return
	}
	if err != nil {
		c.report(err)
		return
	}
	fmt.Fprintf(c.out, "Transaction successful. New Balance: %s\n", acc.Balance.StringFixed(2))
}

func (c *console) modifyAccount(ctx context.Context) {
	fmt.Fprintln(c.out, "\nACCOUNT MODIFICATION")
	accNo := c.prompt("Account Number to modify: ")

	acc, err := c.bank.SearchByNumber(ctx, accNo)
	if err != nil {
		c.report(err)
		return
	}
	c.printAccount(acc)

	var upd service.AccountUpdate
	for done := false; !done; {
		fmt.Fprintln(c.out, "\nWhat would you like to update?")
		fmt.Fprintln(c.out, "1. Name")
		fmt.Fprintln(c.out, "2. Date of Birth")
		fmt.Fprintln(c.out, "3. Age")
		fmt.Fprintln(c.out, "4. Address")
		fmt.Fprintln(c.out, "5. Phone Number")
		fmt.Fprintln(c.out, "6. Change Account Password")
		fmt.Fprintln(c.out, "7. Done Updating")

		switch c.prompt("Choice: ") {
		case "1":
			v := c.prompt("New Name: ")
			upd.Name = &v
		case "2":
			v := c.prompt("New Date of Birth (DD/MM/YYYY): ")
			upd.DOB = &v
		case "3":
			v := c.prompt("New Age: ")
			upd.Age = &v
		case "4":
			v := c.prompt("New Address: ")
			upd.Address = &v
		case "5":
			v := c.prompt("New Phone Number: ")
			upd.Phone = &v
		case "6":
			if err := c.bank.ChangePassword(ctx, accNo, c.prompt("New Password: ")); err != nil {
				c.report(err)
			} else {
				fmt.Fprintln(c.out, "Password updated.")
			}
		case "7", "":
			done = true
		default:
			fmt.Fprintln(c.out, "Invalid choice.")
		}
	}

	if _, err := c.bank.ModifyAccount(ctx, accNo, upd); err != nil {
		c.report(err)
		return
	}
	fmt.Fprintln(c.out, "Account details saved.")
}

func (c *console) transferFunds(ctx context.Context) {
	fmt.Fprintln(c.out, "\nFUND TRANSFER")
	from := c.prompt("Your Account Number (sender): ")
	to := c.prompt("Recipient Account Number: ")
	amt, err := parseAmount(c.prompt("Amount to transfer: "))
	if err != nil {
		c.report(err)
		return
	}

	sender, _, err := c.bank.Transfer(ctx, from, to, amt)
	if err != nil {
		c.report(err)
		return
	}
	fmt.Fprintf(c.out, "Transfer successful. Your new balance: %s\n", sender.Balance.StringFixed(2))
}

func (c *console) showHistory() {
	fmt.Fprintln(c.out, "\nTRANSACTION HISTORY")
	recent := c.bank.RecentTransactions(10)
	if len(recent) == 0 {
		fmt.Fprintln(c.out, "No recent transactions to display.")
		return
	}
	fmt.Fprintln(c.out, "Last transactions (newest first):")
	for _, tx := range recent {
		fmt.Fprintf(c.out, "  %s\n", tx.Describe())
	}
	if c.bank.TransactionCount() > len(recent) {
		fmt.Fprintln(c.out, "(More transactions available, showing last 10.)")
	}
}

func (c *console) submitRequest(ctx context.Context) {
	fmt.Fprintln(c.out, "\nREQUEST CUSTOMER SERVICE")
	p := service.ServiceRequestParams{
		AccountNumber: c.prompt("Your Account Number: "),
	}

	fmt.Fprintln(c.out, "Service type:")
	fmt.Fprintln(c.out, "1. Technical Issue")
	fmt.Fprintln(c.out, "2. Account Query")
	fmt.Fprintln(c.out, "3. Loan Information")
	fmt.Fprintln(c.out, "4. Other")
	switch c.prompt("Choice: ") {
	case "1":
		p.Category = core.Technical
	case "2":
		p.Category = core.AccountQuery
	case "3":
		p.Category = core.Loan
	default:
		p.Category = core.Other
	}
	p.Description = c.prompt("Describe your request: ")

	_, pos, err := c.bank.SubmitServiceRequest(ctx, p)
	if err != nil {
		c.report(err)
		return
	}
	fmt.Fprintf(c.out, "Your service request has been queued. Queue position: %d\n", pos)
}

func (c *console) listAccounts(ctx context.Context) {
	fmt.Fprintln(c.out, "\nALL ACCOUNT HOLDERS")
	accounts := c.bank.ListAccounts(ctx)
	if len(accounts) == 0 {
		fmt.Fprintln(c.out, "No accounts to display.")
		return
	}
	fmt.Fprintf(c.out, "%-20s %-30s %-10s %s\n", "Account No.", "Name", "Type", "Balance")
	for _, acc := range accounts {
		fmt.Fprintf(c.out, "%-20s %-30s %-10s %s\n",
			acc.AccountNumber, acc.Name, acc.Type, acc.Balance.StringFixed(2))
	}
}

func (c *console) manageQueue(ctx context.Context) {
	for {
		fmt.Fprintln(c.out, "\nSERVICE QUEUE MANAGEMENT")
		next, err := c.bank.NextServiceRequest()
		if err != nil {
			fmt.Fprintln(c.out, "No pending service requests.")
			return
		}
		fmt.Fprintf(c.out, "Pending requests: %d\n", c.bank.PendingCount())
		fmt.Fprintf(c.out, "Next in queue: %s\n", describeRequest(next))

		fmt.Fprintln(c.out, "1. Process Next Request")
		fmt.Fprintln(c.out, "2. View All Requests")
		fmt.Fprintln(c.out, "3. Return to Employee Menu")

		switch c.prompt("Choice: ") {
		case "1":
			req, err := c.bank.ProcessNextRequest()
			if err != nil {
				c.report(err)
				return
			}
			fmt.Fprintf(c.out, "Processed: %s\n", describeRequest(req))
			fmt.Fprintf(c.out, "Remaining requests: %d\n", c.bank.PendingCount())
		case "2":
			for i, req := range c.bank.PendingRequests() {
				fmt.Fprintf(c.out, "%d. %s\n", i+1, describeRequest(req))
			}
		default:
			return
		}
	}
}

func describeRequest(req core.ServiceRequest) string {
	return fmt.Sprintf("%s | Account: %s | Name: %s | Type: %s | Desc: %s",
		req.SubmittedAt.Format("Mon Jan 2 15:04:05 2006"),
		req.AccountNumber, req.Name, req.Category, req.Description)
}

func (c *console) addEmployee(ctx context.Context) {
	fmt.Fprintln(c.out, "\nADD NEW EMPLOYEE ACCOUNT")
	id := c.prompt("New Employee ID: ")
	secret := c.prompt("Password for new employee: ")

	if err := c.bank.AddStaff(ctx, id, secret); err != nil {
		c.report(err)
		return
	}
	fmt.Fprintf(c.out, "Employee account %q created successfully.\n", id)
}
