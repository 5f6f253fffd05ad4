package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kopilka/internal/config"
	"kopilka/internal/database/repository"
	"kopilka/internal/logging"
	"kopilka/internal/service"
)

type fakeAccounts struct {
	loginID     int64
	loginErr    error
	registerErr error
	resetErr    error

	registered []string
	resets     []string
}

func (f *fakeAccounts) Login(_ context.Context, _, _ string) (int64, error) {
	return f.loginID, f.loginErr
}

func (f *fakeAccounts) Register(_ context.Context, username, _, _ string) error {
	f.registered = append(f.registered, username)
	return f.registerErr
}

func (f *fakeAccounts) ResetPassword(_ context.Context, username, _, _ string) error {
	f.resets = append(f.resets, username)
	return f.resetErr
}

type expenseCall struct {
	store      string
	amount     float64
	categoryID *int64
}

type fakeLedger struct {
	snap      service.Snapshot
	deleteErr error

	expenses []expenseCall
	incomes  []float64
	deleted  []string
}

func (f *fakeLedger) AddExpense(_ context.Context, _ int64, store string, _ time.Time, amount float64, categoryID *int64) error {
	f.expenses = append(f.expenses, expenseCall{store: store, amount: amount, categoryID: categoryID})
	return nil
}

func (f *fakeLedger) AddIncome(_ context.Context, _ int64, _ string, _ time.Time, amount float64) error {
	f.incomes = append(f.incomes, amount)
	return nil
}

func (f *fakeLedger) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeLedger) ListTransactions(_ context.Context, _ int64) ([]repository.Transaction, error) {
	return f.snap.Transactions, nil
}

func (f *fakeLedger) Snapshot(_ context.Context, _ int64) (service.Snapshot, error) {
	return f.snap, nil
}

func newTestApp(accounts *fakeAccounts, ledger *fakeLedger) *App {
	cfg := config.Config{}
	cfg.UI.CurrencySymbol = "$"
	cfg.UI.DateFormat = "2006-01-02"
	return New(context.Background(), cfg, accounts, ledger, logging.Discard())
}

// drain feeds effect results back through Update until the chain settles.
func drain(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	for depth := 0; cmd != nil; depth++ {
		if depth > 32 {
			t.Fatal("effect chain did not settle")
		}
		msg := cmd()
		if _, quit := msg.(tea.QuitMsg); quit {
			return
		}
		_, cmd = a.Update(msg)
	}
}

func apply(t *testing.T, a *App, msg tea.Msg) {
	t.Helper()
	_, cmd := a.Update(msg)
	drain(t, a, cmd)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleSnapshot() service.Snapshot {
	comment := "weekly shop"
	cat := int64(1)
	return service.Snapshot{
		Transactions: []repository.Transaction{
			{ID: "t2", Kind: repository.KindIncome, UserID: 42, Source: "Salary",
				Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Amount: 900},
			{ID: "t1", Kind: repository.KindExpense, UserID: 42, Source: "Coop",
				Date:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				Amount: 35.50, Comment: &comment, CategoryID: &cat},
		},
		Categories: []repository.Category{
			{ID: 1, Name: "Groceries", SortOrder: 1},
			{ID: 2, Name: "Transport", SortOrder: 2},
		},
	}
}

func login(t *testing.T, a *App) {
	t.Helper()
	apply(t, a, fieldChangedMsg{field: fieldLoginUsername, value: "alice"})
	apply(t, a, fieldChangedMsg{field: fieldLoginPassword, value: "Passw0rd"})
	apply(t, a, loginPressedMsg{})
}

func TestLoginSuccessLoadsDashboard(t *testing.T) {
	accounts := &fakeAccounts{loginID: 42}
	ledger := &fakeLedger{snap: sampleSnapshot()}
	a := newTestApp(accounts, ledger)

	login(t, a)

	if a.sess.screen != ScreenDashboard || a.sess.mode != ModeMain {
		t.Fatalf("screen = %v/%v, want dashboard main", a.sess.screen, a.sess.mode)
	}
	if a.sess.user == nil || a.sess.user.id != 42 || a.sess.user.name != "alice" {
		t.Fatalf("user = %+v, want id 42 name alice", a.sess.user)
	}
	if len(a.sess.transactions) != 2 || len(a.sess.categories) != 2 {
		t.Fatalf("loaded %d transactions, %d categories", len(a.sess.transactions), len(a.sess.categories))
	}
}

func TestLoginFailureStaysOnLogin(t *testing.T) {
	accounts := &fakeAccounts{loginErr: service.ErrInvalidPassword}
	a := newTestApp(accounts, &fakeLedger{})

	login(t, a)

	if a.sess.screen != ScreenLogin {
		t.Fatalf("screen = %v, want login", a.sess.screen)
	}
	if a.sess.login.status != "Invalid password" {
		t.Fatalf("status = %q", a.sess.login.status)
	}
}

func TestRegisterValidationOrder(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		want     string
	}{
		{"mismatch wins over length", "a", "b", "Passwords do not match"},
		{"length before case", "ab1", "ab1", "Password must be at least 6 characters"},
		{"case before digit", "abcdef", "abcdef", "Password must contain at least one uppercase letter"},
		{"digit last", "Abcdef", "Abcdef", "Password must contain at least one number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := &fakeAccounts{}
			a := newTestApp(accounts, &fakeLedger{})
			apply(t, a, switchToRegistrationMsg{})
			apply(t, a, fieldChangedMsg{field: fieldRegUsername, value: "bob"})
			apply(t, a, fieldChangedMsg{field: fieldRegPassword, value: tt.password})
			apply(t, a, fieldChangedMsg{field: fieldRegConfirm, value: tt.confirm})

			apply(t, a, registerPressedMsg{})

			if a.sess.reg.status != tt.want {
				t.Fatalf("status = %q, want %q", a.sess.reg.status, tt.want)
			}
			if len(accounts.registered) != 0 {
				t.Fatal("store effect issued despite local validation failure")
			}
		})
	}
}

func TestRegisterSuccessReturnsToLogin(t *testing.T) {
	accounts := &fakeAccounts{}
	a := newTestApp(accounts, &fakeLedger{})
	apply(t, a, switchToRegistrationMsg{})
	apply(t, a, fieldChangedMsg{field: fieldRegUsername, value: "bob"})
	apply(t, a, fieldChangedMsg{field: fieldRegPassword, value: "Passw0rd"})
	apply(t, a, fieldChangedMsg{field: fieldRegConfirm, value: "Passw0rd"})
	apply(t, a, fieldChangedMsg{field: fieldRegSecret, value: "MIT"})

	apply(t, a, registerPressedMsg{})

	if len(accounts.registered) != 1 || accounts.registered[0] != "bob" {
		t.Fatalf("registered = %v", accounts.registered)
	}
	if a.sess.screen != ScreenLogin {
		t.Fatalf("screen = %v, want login", a.sess.screen)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	accounts := &fakeAccounts{}
	a := newTestApp(accounts, &fakeLedger{})
	apply(t, a, fieldChangedMsg{field: fieldLoginUsername, value: "alice"})
	apply(t, a, requestPasswordResetMsg{})
	apply(t, a, fieldChangedMsg{field: fieldResetSecret, value: "MIT"})
	apply(t, a, fieldChangedMsg{field: fieldResetNewPassword, value: "Newpass1"})
	apply(t, a, fieldChangedMsg{field: fieldResetConfirm, value: "Newpass1"})

	apply(t, a, submitPasswordResetMsg{})

	if len(accounts.resets) != 1 {
		t.Fatalf("resets = %v", accounts.resets)
	}
	if a.sess.screen != ScreenLogin {
		t.Fatalf("screen = %v, want login", a.sess.screen)
	}
	if a.sess.login.status != "Password has been reset. Please login." {
		t.Fatalf("status = %q", a.sess.login.status)
	}
}

func TestPasswordResetMismatchIssuesNoEffect(t *testing.T) {
	accounts := &fakeAccounts{}
	a := newTestApp(accounts, &fakeLedger{})
	apply(t, a, requestPasswordResetMsg{})
	apply(t, a, fieldChangedMsg{field: fieldResetNewPassword, value: "Newpass1"})
	apply(t, a, fieldChangedMsg{field: fieldResetConfirm, value: "Newpass2"})

	apply(t, a, submitPasswordResetMsg{})

	if len(accounts.resets) != 0 {
		t.Fatal("reset effect issued despite mismatch")
	}
	if a.sess.reset.status != "Passwords do not match" {
		t.Fatalf("status = %q", a.sess.reset.status)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	a := newTestApp(&fakeAccounts{loginID: 42}, &fakeLedger{snap: sampleSnapshot()})
	login(t, a)

	apply(t, a, switchToLoginMsg{})

	if a.sess.user != nil {
		t.Fatal("user survives logout")
	}
	if a.sess.transactions != nil {
		t.Fatal("transactions survive logout")
	}
	if a.sess.login.password != "" {
		t.Fatal("typed password survives logout")
	}
	if a.sess.screen != ScreenLogin {
		t.Fatalf("screen = %v, want login", a.sess.screen)
	}
}

func TestSortCyclesWithoutMutatingCache(t *testing.T) {
	a := newTestApp(&fakeAccounts{loginID: 42}, &fakeLedger{snap: sampleSnapshot()})
	login(t, a)

	firstID := a.sess.transactions[0].ID
	for i := 0; i < 4; i++ {
		apply(t, a, sortTypeChangedMsg{sortType: a.sess.sortType.next()})
	}
	if a.sess.sortType != SortNewestFirst {
		t.Fatalf("sortType = %v after full cycle", a.sess.sortType)
	}
	if a.sess.transactions[0].ID != firstID {
		t.Fatal("sorting mutated the cached sequence")
	}

	apply(t, a, sortTypeChangedMsg{sortType: SortOldestFirst})
	visible := a.sess.visibleTransactions()
	if visible[0].ID != "t1" {
		t.Fatalf("oldest-first head = %s", visible[0].ID)
	}
	if a.sess.transactions[0].ID != firstID {
		t.Fatal("visibleTransactions mutated the cached sequence")
	}

	apply(t, a, sortTypeChangedMsg{sortType: SortOnlyIncome})
	for _, tr := range a.sess.visibleTransactions() {
		if tr.Kind != repository.KindIncome {
			t.Fatalf("income filter leaked %s", tr.Kind)
		}
	}
}

func TestAddExpenseParsesAmountLeniently(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   float64
	}{
		{"numeric", "35.50", 35.50},
		{"empty", "", 0},
		{"garbage", "abc", 0},
		{"negative", "-5", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &fakeLedger{snap: sampleSnapshot()}
			a := newTestApp(&fakeAccounts{loginID: 42}, ledger)
			login(t, a)
			apply(t, a, chooseAddExpenseMsg{})
			apply(t, a, fieldChangedMsg{field: fieldExpenseStore, value: "Coop"})
			apply(t, a, fieldChangedMsg{field: fieldExpenseAmount, value: tt.amount})

			apply(t, a, confirmAddExpenseMsg{})

			if len(ledger.expenses) != 1 {
				t.Fatalf("expenses = %v", ledger.expenses)
			}
			if got := ledger.expenses[0].amount; got != tt.want {
				t.Fatalf("amount = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddExpenseResolvesCategoryByPosition(t *testing.T) {
	ledger := &fakeLedger{snap: sampleSnapshot()}
	a := newTestApp(&fakeAccounts{loginID: 42}, ledger)
	login(t, a)
	apply(t, a, chooseAddExpenseMsg{})
	apply(t, a, fieldChangedMsg{field: fieldExpenseStore, value: "Bus"})
	apply(t, a, fieldChangedMsg{field: fieldExpenseAmount, value: "3"})
	name := "Transport"
	apply(t, a, categorySelectedMsg{name: &name})

	apply(t, a, confirmAddExpenseMsg{})

	got := ledger.expenses[0].categoryID
	if got == nil || *got != 2 {
		t.Fatalf("categoryID = %v, want 2", got)
	}
	if a.sess.expense.store != "" || a.sess.expense.category != nil {
		t.Fatal("form not cleared on confirm")
	}
}

func TestAddIncomeClearsFormAndReloads(t *testing.T) {
	ledger := &fakeLedger{snap: sampleSnapshot()}
	a := newTestApp(&fakeAccounts{loginID: 42}, ledger)
	login(t, a)
	apply(t, a, chooseAddIncomeMsg{})
	apply(t, a, fieldChangedMsg{field: fieldIncomeSource, value: "Salary"})
	apply(t, a, fieldChangedMsg{field: fieldIncomeAmount, value: "900"})

	apply(t, a, confirmAddIncomeMsg{})

	if len(ledger.incomes) != 1 || ledger.incomes[0] != 900 {
		t.Fatalf("incomes = %v", ledger.incomes)
	}
	if a.sess.income.source != "" || a.sess.income.amount != "" {
		t.Fatal("income form not cleared")
	}
}

func TestDeleteFailureSurfacesOnStatusLine(t *testing.T) {
	ledger := &fakeLedger{snap: sampleSnapshot(), deleteErr: repository.ErrNotFound}
	a := newTestApp(&fakeAccounts{loginID: 42}, ledger)
	login(t, a)

	apply(t, a, deleteTransactionMsg{id: "t1"})

	if !strings.HasPrefix(a.sess.status, "Delete failed: ") {
		t.Fatalf("status = %q", a.sess.status)
	}
}

func TestDeleteSuccessReloadsSnapshot(t *testing.T) {
	ledger := &fakeLedger{snap: sampleSnapshot()}
	a := newTestApp(&fakeAccounts{loginID: 42}, ledger)
	login(t, a)
	ledger.snap.Transactions = ledger.snap.Transactions[:1]

	apply(t, a, deleteTransactionMsg{id: "t1"})

	if len(ledger.deleted) != 1 || ledger.deleted[0] != "t1" {
		t.Fatalf("deleted = %v", ledger.deleted)
	}
	if len(a.sess.transactions) != 1 {
		t.Fatalf("transactions = %d after reload", len(a.sess.transactions))
	}
	if a.sess.mode != ModeMain {
		t.Fatalf("mode = %v, want main", a.sess.mode)
	}
}

func TestDeleteLastRowClampsCursorToNewEnd(t *testing.T) {
	snap := sampleSnapshot()
	snap.Transactions = append(snap.Transactions, repository.Transaction{
		ID: "t3", Kind: repository.KindIncome, UserID: 42, Source: "Refund",
		Date: time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), Amount: 10,
	})
	ledger := &fakeLedger{snap: snap}
	a := newTestApp(&fakeAccounts{loginID: 42}, ledger)
	login(t, a)

	a.cursor = 2 // last row
	ledger.snap.Transactions = ledger.snap.Transactions[:2]
	apply(t, a, deleteTransactionMsg{id: "t3"})

	if a.cursor != 1 {
		t.Fatalf("cursor = %d after deleting the last row, want 1", a.cursor)
	}
}

func TestNavigationDiscardsInFlightLogin(t *testing.T) {
	a := newTestApp(&fakeAccounts{loginID: 42}, &fakeLedger{snap: sampleSnapshot()})
	apply(t, a, fieldChangedMsg{field: fieldLoginUsername, value: "alice"})
	apply(t, a, fieldChangedMsg{field: fieldLoginPassword, value: "Passw0rd"})

	_, inflight := a.Update(loginPressedMsg{})
	apply(t, a, switchToRegistrationMsg{})
	drain(t, a, inflight) // login result lands after the navigation

	if a.sess.user != nil {
		t.Fatal("in-flight login authenticated after leaving the screen")
	}
	if a.sess.screen != ScreenRegistration {
		t.Fatalf("screen = %v, want registration", a.sess.screen)
	}
}

func TestStaleResultsAreDiscarded(t *testing.T) {
	a := newTestApp(&fakeAccounts{loginID: 42}, &fakeLedger{snap: sampleSnapshot()})
	login(t, a)
	apply(t, a, switchToLoginMsg{}) // bumps the generation

	apply(t, a, loginResultMsg{gen: a.sess.gen - 1, userID: 7})

	if a.sess.user != nil {
		t.Fatal("stale login result re-authenticated the session")
	}
	if a.sess.screen != ScreenLogin {
		t.Fatalf("screen = %v, want login", a.sess.screen)
	}
}

func TestKeyTypingEditsFocusedField(t *testing.T) {
	a := newTestApp(&fakeAccounts{}, &fakeLedger{})

	for _, r := range "alice" {
		apply(t, a, keyRunes(string(r)))
	}
	if a.sess.login.username != "alice" {
		t.Fatalf("username = %q", a.sess.login.username)
	}

	apply(t, a, tea.KeyMsg{Type: tea.KeyBackspace})
	if a.sess.login.username != "alic" {
		t.Fatalf("username = %q after backspace", a.sess.login.username)
	}

	apply(t, a, tea.KeyMsg{Type: tea.KeyTab})
	apply(t, a, keyRunes("x"))
	if a.sess.login.password != "x" {
		t.Fatalf("password = %q after tab", a.sess.login.password)
	}
}

func TestDashboardKeysDriveIntents(t *testing.T) {
	a := newTestApp(&fakeAccounts{loginID: 42}, &fakeLedger{snap: sampleSnapshot()})
	login(t, a)

	apply(t, a, keyRunes("s"))
	if a.sess.sortType != SortOldestFirst {
		t.Fatalf("sortType = %v after s", a.sess.sortType)
	}

	apply(t, a, keyRunes("e"))
	if a.sess.mode != ModeAddExpense {
		t.Fatalf("mode = %v after e", a.sess.mode)
	}
	apply(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.sess.mode != ModeMain {
		t.Fatalf("mode = %v after esc", a.sess.mode)
	}

	apply(t, a, keyRunes("l"))
	if a.sess.screen != ScreenLogin {
		t.Fatalf("screen = %v after l", a.sess.screen)
	}
}

func TestViewRendersEachScreen(t *testing.T) {
	a := newTestApp(&fakeAccounts{loginID: 42}, &fakeLedger{snap: sampleSnapshot()})

	if v := a.View(); !strings.Contains(v, "Login") {
		t.Fatalf("login view missing title: %q", v)
	}

	apply(t, a, fieldChangedMsg{field: fieldLoginPassword, value: "secret"})
	if v := a.View(); strings.Contains(v, "secret") {
		t.Fatal("password rendered in clear text")
	}

	login(t, a)
	v := a.View()
	for _, want := range []string{"alice", "Salary", "Coop", "Groceries"} {
		if !strings.Contains(v, want) {
			t.Fatalf("dashboard view missing %q", want)
		}
	}

	apply(t, a, chooseAddExpenseMsg{})
	if v := a.View(); !strings.Contains(v, "Add expense") {
		t.Fatal("expense form not rendered")
	}
	apply(t, a, cancelDashboardActionMsg{})
	apply(t, a, chooseAddIncomeMsg{})
	if v := a.View(); !strings.Contains(v, "Add income") {
		t.Fatal("income form not rendered")
	}
}
