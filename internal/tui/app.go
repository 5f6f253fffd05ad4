// Package tui implements the screen controller: a single reducer over a
// closed intent set, driving screen transitions and asynchronous store
// effects.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kopilka/internal/auth"
	"kopilka/internal/chart"
	"kopilka/internal/config"
	"kopilka/internal/database/repository"
	"kopilka/internal/service"
)

const dateInputFormat = "2006-01-02"

// AccountService is the credential store collaborator.
type AccountService interface {
	Login(ctx context.Context, username, password string) (int64, error)
	Register(ctx context.Context, username, password, secretAnswer string) error
	ResetPassword(ctx context.Context, username, secretAnswer, newPassword string) error
}

// LedgerService is the transaction/category store collaborator.
type LedgerService interface {
	AddExpense(ctx context.Context, userID int64, store string, date time.Time, amount float64, categoryID *int64) error
	AddIncome(ctx context.Context, userID int64, source string, date time.Time, amount float64) error
	Delete(ctx context.Context, id string) error
	ListTransactions(ctx context.Context, userID int64) ([]repository.Transaction, error)
	Snapshot(ctx context.Context, userID int64) (service.Snapshot, error)
}

// App is the bubbletea model: session state plus collaborators.
type App struct {
	ctx      context.Context
	cfg      config.Config
	accounts AccountService
	ledger   LedgerService
	log      *slog.Logger

	sess   session
	keys   keyMap
	focus  int // focused field within the active form
	cursor int // selection in the dashboard transaction list
	width  int
	height int
}

func New(ctx context.Context, cfg config.Config, accounts AccountService, ledger LedgerService, logger *slog.Logger) *App {
	return &App{
		ctx:      ctx,
		cfg:      cfg,
		accounts: accounts,
		ledger:   ledger,
		log:      logger,
		sess:     newSession(),
		keys:     defaultKeyMap(),
	}
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case tea.KeyMsg:
		return a, a.handleKey(m)
	default:
		return a, a.apply(msg)
	}
}

// apply is the reducer: one intent in, mutated session and at most one
// pending effect out.
func (a *App) apply(intent tea.Msg) tea.Cmd {
	switch m := intent.(type) {
	case fieldChangedMsg:
		a.setField(m.field, m.value)

	case switchToLoginMsg:
		a.sess.logout()
		a.focus = 0
	case switchToRegistrationMsg:
		a.sess.screen = ScreenRegistration
		a.sess.gen++ // in-flight login effects no longer apply
		a.focus = 0
	case requestPasswordResetMsg:
		a.sess.screen = ScreenResetPassword
		a.sess.gen++
		a.focus = 0
	case chooseAddExpenseMsg:
		if a.sess.authenticated() {
			a.sess.mode = ModeAddExpense
			a.focus = 0
		}
	case chooseAddIncomeMsg:
		if a.sess.authenticated() {
			a.sess.mode = ModeAddIncome
			a.focus = 0
		}
	case cancelDashboardActionMsg:
		a.sess.mode = ModeMain
		a.focus = 0

	case loginPressedMsg:
		return a.loginCmd(a.sess.login.username, a.sess.login.password)
	case loginResultMsg:
		if m.gen != a.sess.gen {
			a.dropStale("loginResult")
			return nil
		}
		if m.err != nil {
			a.sess.login.status = m.err.Error()
			return nil
		}
		a.sess.user = &authUser{id: m.userID, name: a.sess.login.username}
		return a.snapshotCmd(m.userID)
	case combinedLoadedMsg:
		if m.gen != a.sess.gen {
			a.dropStale("combinedLoaded")
			return nil
		}
		if m.err != nil {
			if a.sess.screen == ScreenDashboard {
				a.sess.status = m.err.Error()
			} else {
				a.sess.login.status = m.err.Error()
			}
			return nil
		}
		a.sess.transactions = m.snap.Transactions
		a.sess.categories = m.snap.Categories
		a.sess.screen = ScreenDashboard
		a.sess.mode = ModeMain
		a.clampCursor()

	case registerPressedMsg:
		return a.registerLocally()
	case registerResultMsg:
		if m.gen != a.sess.gen {
			a.dropStale("registerResult")
			return nil
		}
		if m.err != nil {
			a.sess.reg.status = m.err.Error()
			return nil
		}
		a.sess.screen = ScreenLogin
		a.focus = 0

	case submitPasswordResetMsg:
		if a.sess.reset.newPassword != a.sess.reset.confirmNew {
			a.sess.reset.status = "Passwords do not match"
			return nil
		}
		return a.resetCmd(a.sess.login.username, a.sess.reset.secretAnswer, a.sess.reset.newPassword)
	case resetResultMsg:
		if m.gen != a.sess.gen {
			a.dropStale("resetResult")
			return nil
		}
		if m.err != nil {
			a.sess.reset.status = m.err.Error()
			return nil
		}
		a.sess.reset = resetForm{}
		a.sess.login.status = "Password has been reset. Please login."
		a.sess.screen = ScreenLogin
		a.focus = 0

	case confirmAddExpenseMsg:
		if !a.sess.authenticated() {
			return nil
		}
		uid := a.sess.user.id
		store := a.sess.expense.store
		amount := parseAmount(a.sess.expense.amount)
		date := parseDateOrNow(a.sess.expense.date)
		var categoryID *int64
		if a.sess.expense.category != nil {
			categoryID = a.sess.categoryPosition(*a.sess.expense.category)
		}
		a.sess.clearExpenseForm()
		return a.addExpenseCmd(uid, store, date, amount, categoryID)
	case confirmAddIncomeMsg:
		if !a.sess.authenticated() {
			return nil
		}
		uid := a.sess.user.id
		source := a.sess.income.source
		amount := parseAmount(a.sess.income.amount)
		a.sess.clearIncomeForm()
		return a.addIncomeCmd(uid, source, time.Now(), amount)
	case transactionsReloadedMsg:
		if m.gen != a.sess.gen {
			a.dropStale("transactionsReloaded")
			return nil
		}
		if m.err != nil {
			a.sess.status = m.err.Error()
			a.log.Error("transaction reload failed", "err", m.err)
			return nil
		}
		a.sess.transactions = m.txs
		a.clampCursor()

	case deleteTransactionMsg:
		return a.deleteCmd(m.id)
	case deleteResultMsg:
		if m.gen != a.sess.gen {
			a.dropStale("deleteResult")
			return nil
		}
		if m.err != nil {
			// surfaced on the status line as well as the log
			a.sess.status = "Delete failed: " + m.err.Error()
			a.log.Error("delete transaction failed", "err", m.err)
			return nil
		}
		if a.sess.authenticated() {
			return a.snapshotCmd(a.sess.user.id)
		}

	case sortTypeChangedMsg:
		a.sess.sortType = m.sortType
		a.clampCursor()
	case categorySelectedMsg:
		a.sess.expense.category = m.name
	case setExpenseDateTodayMsg:
		a.sess.expense.date = time.Now().Format(dateInputFormat)

	case exportChartMsg:
		return a.exportChartCmd()
	case chartSavedMsg:
		if m.gen != a.sess.gen {
			a.dropStale("chartSaved")
			return nil
		}
		if m.err != nil {
			a.sess.status = "Chart export failed: " + m.err.Error()
			return nil
		}
		a.sess.status = "Chart saved to " + m.path

	case exitPressedMsg:
		return tea.Quit

	default:
		a.log.Warn("unhandled intent", "type", fmt.Sprintf("%T", intent))
	}
	return nil
}

// registerLocally runs the ordered local validation before issuing the
// create-user effect. Order is significant for which message wins.
func (a *App) registerLocally() tea.Cmd {
	reg := &a.sess.reg
	if reg.password != reg.confirm {
		reg.status = "Passwords do not match"
		return nil
	}
	if err := auth.ValidatePassword(reg.password); err != nil {
		reg.status = err.Error()
		return nil
	}
	return a.registerCmd(reg.username, reg.password, reg.secretAnswer)
}

func (a *App) dropStale(kind string) {
	a.log.Debug("dropping stale effect result", "kind", kind)
}

// clampCursor keeps the selection on the last row when the list shrinks
// underneath it.
func (a *App) clampCursor() {
	if n := len(a.sess.visibleTransactions()); a.cursor >= n {
		if n == 0 {
			a.cursor = 0
		} else {
			a.cursor = n - 1
		}
	}
}

// parseAmount treats unparsable input as a zero amount rather than a
// validation failure.
func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseDateOrNow(s string) time.Time {
	if t, err := time.Parse(dateInputFormat, s); err == nil {
		return t
	}
	return time.Now()
}

// ---------------------------------------------------------------------------
// Effects. Each captures cloned primitives and the current generation before
// crossing the async boundary; none holds a reference into the session.
// ---------------------------------------------------------------------------

func (a *App) loginCmd(username, password string) tea.Cmd {
	gen := a.sess.gen
	return func() tea.Msg {
		id, err := a.accounts.Login(a.ctx, username, password)
		return loginResultMsg{gen: gen, userID: id, err: err}
	}
}

func (a *App) snapshotCmd(userID int64) tea.Cmd {
	gen := a.sess.gen
	return func() tea.Msg {
		snap, err := a.ledger.Snapshot(a.ctx, userID)
		return combinedLoadedMsg{gen: gen, snap: snap, err: err}
	}
}

func (a *App) registerCmd(username, password, secretAnswer string) tea.Cmd {
	gen := a.sess.gen
	return func() tea.Msg {
		err := a.accounts.Register(a.ctx, username, password, secretAnswer)
		return registerResultMsg{gen: gen, err: err}
	}
}

func (a *App) resetCmd(username, secretAnswer, newPassword string) tea.Cmd {
	gen := a.sess.gen
	return func() tea.Msg {
		err := a.accounts.ResetPassword(a.ctx, username, secretAnswer, newPassword)
		return resetResultMsg{gen: gen, err: err}
	}
}

func (a *App) addExpenseCmd(userID int64, store string, date time.Time, amount float64, categoryID *int64) tea.Cmd {
	gen := a.sess.gen
	return func() tea.Msg {
		if err := a.ledger.AddExpense(a.ctx, userID, store, date, amount, categoryID); err != nil {
			return transactionsReloadedMsg{gen: gen, err: err}
		}
		txs, err := a.ledger.ListTransactions(a.ctx, userID)
		return transactionsReloadedMsg{gen: gen, txs: txs, err: err}
	}
}

func (a *App) addIncomeCmd(userID int64, source string, date time.Time, amount float64) tea.Cmd {
	gen := a.sess.gen
	return func() tea.Msg {
		if err := a.ledger.AddIncome(a.ctx, userID, source, date, amount); err != nil {
			return transactionsReloadedMsg{gen: gen, err: err}
		}
		txs, err := a.ledger.ListTransactions(a.ctx, userID)
		return transactionsReloadedMsg{gen: gen, txs: txs, err: err}
	}
}

func (a *App) deleteCmd(id string) tea.Cmd {
	gen := a.sess.gen
	return func() tea.Msg {
		err := a.ledger.Delete(a.ctx, id)
		return deleteResultMsg{gen: gen, err: err}
	}
}

func (a *App) exportChartCmd() tea.Cmd {
	gen := a.sess.gen
	shares := a.sess.expenseShares()
	data := make([]chart.Share, len(shares))
	for i, s := range shares {
		data[i] = chart.Share{Label: s.name, Value: s.total}
	}
	dir := a.cfg.Chart.Dir
	path := filepath.Join(dir, "expenses-"+time.Now().Format("20060102-150405")+".png")
	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return chartSavedMsg{gen: gen, err: err}
		}
		f, err := os.Create(path)
		if err != nil {
			return chartSavedMsg{gen: gen, err: err}
		}
		defer f.Close()
		if err := chart.WritePie(f, "Expenses by category", data); err != nil {
			os.Remove(path)
			return chartSavedMsg{gen: gen, err: err}
		}
		return chartSavedMsg{gen: gen, path: path}
	}
}
