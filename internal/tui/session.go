package tui

import (
	"sort"

	"kopilka/internal/database/repository"
)

// Screen is the closed set of top-level screens.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenRegistration
	ScreenResetPassword
	ScreenDashboard
)

// DashboardMode is the closed set of dashboard sub-modes.
type DashboardMode int

const (
	ModeMain DashboardMode = iota
	ModeAddExpense
	ModeAddIncome
)

// SortType selects the presentation order/filter of the transaction list.
// It never mutates the underlying cached sequence.
type SortType int

const (
	SortNewestFirst SortType = iota
	SortOldestFirst
	SortOnlyIncome
	SortOnlyExpense
)

func (s SortType) String() string {
	switch s {
	case SortOldestFirst:
		return "First old"
	case SortOnlyIncome:
		return "Income only"
	case SortOnlyExpense:
		return "Expenses only"
	default:
		return "New first"
	}
}

func (s SortType) next() SortType {
	return (s + 1) % 4
}

type authUser struct {
	id   int64
	name string
}

type loginForm struct {
	username string
	password string
	status   string
}

type registrationForm struct {
	username     string
	password     string
	confirm      string
	secretAnswer string
	status       string
}

type resetForm struct {
	secretAnswer string
	newPassword  string
	confirmNew   string
	status       string
}

type expenseForm struct {
	store    string
	amount   string // parsed lazily on confirm
	date     string // YYYY-MM-DD, parsed lazily
	category *string
}

type incomeForm struct {
	source string
	amount string
}

// session is the complete in-memory application state. It is mutated only by
// the reducer on the event-loop goroutine; effects read cloned primitives
// before crossing the async boundary.
type session struct {
	screen Screen
	mode   DashboardMode
	user   *authUser

	login   loginForm
	reg     registrationForm
	reset   resetForm
	expense expenseForm
	income  incomeForm

	transactions []repository.Transaction // store order, valid while authenticated
	categories   []repository.Category
	sortType     SortType
	status       string // dashboard status line

	// gen tags async effects; it is bumped whenever the session leaves the
	// screen that issued them, and results carrying a stale gen are discarded.
	gen int
}

func newSession() session {
	return session{screen: ScreenLogin, sortType: SortNewestFirst}
}

func (s *session) authenticated() bool { return s.user != nil }

// logout returns to the login screen and drops everything tied to the
// authenticated user, including the typed password.
func (s *session) logout() {
	s.screen = ScreenLogin
	s.mode = ModeMain
	s.user = nil
	s.transactions = nil
	s.login.password = ""
	s.status = ""
	s.gen++
}

func (s *session) clearExpenseForm() {
	s.expense.store = ""
	s.expense.amount = ""
	s.expense.category = nil
}

func (s *session) clearIncomeForm() {
	s.income.source = ""
	s.income.amount = ""
}

// categoryPosition resolves a selected category name to its 1-based position
// in the loaded category sequence, which doubles as the category id.
func (s *session) categoryPosition(name string) *int64 {
	for i, c := range s.categories {
		if c.Name == name {
			id := int64(i + 1)
			return &id
		}
	}
	return nil
}

func (s *session) categoryName(id int64) string {
	idx := int(id) - 1
	if idx < 0 || idx >= len(s.categories) {
		return "?"
	}
	return s.categories[idx].Name
}

// visibleTransactions applies sortType at render time and leaves the cached
// sequence untouched.
func (s *session) visibleTransactions() []repository.Transaction {
	out := make([]repository.Transaction, 0, len(s.transactions))
	switch s.sortType {
	case SortOnlyIncome:
		for _, t := range s.transactions {
			if t.Kind == repository.KindIncome {
				out = append(out, t)
			}
		}
	case SortOnlyExpense:
		for _, t := range s.transactions {
			if t.Kind == repository.KindExpense {
				out = append(out, t)
			}
		}
	default:
		out = append(out, s.transactions...)
		sort.SliceStable(out, func(i, j int) bool {
			if s.sortType == SortOldestFirst {
				return out[i].Date.Before(out[j].Date)
			}
			return out[j].Date.Before(out[i].Date)
		})
	}
	return out
}

// expenseShares totals expense amounts per category for the summary chart.
// Uncategorized expenses are excluded, matching the pie on the dashboard.
func (s *session) expenseShares() []share {
	totals := make([]float64, len(s.categories))
	for _, t := range s.transactions {
		if t.Kind != repository.KindExpense || t.CategoryID == nil {
			continue
		}
		idx := int(*t.CategoryID) - 1
		if idx >= 0 && idx < len(totals) {
			totals[idx] += t.Amount
		}
	}
	var out []share
	for i, v := range totals {
		if v > 0 {
			out = append(out, share{name: s.categories[i].Name, total: v})
		}
	}
	return out
}

type share struct {
	name  string
	total float64
}
