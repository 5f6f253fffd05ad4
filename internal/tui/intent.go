package tui

import (
	"kopilka/internal/database/repository"
	"kopilka/internal/service"
)

// The closed intent set of the screen controller. Key presses are translated
// into these before reaching the reducer; asynchronous effect results come
// back as the *ResultMsg variants. All of them are plain data.

// formField names a single string buffer in the session.
type formField int

const (
	fieldLoginUsername formField = iota
	fieldLoginPassword
	fieldRegUsername
	fieldRegPassword
	fieldRegConfirm
	fieldRegSecret
	fieldResetSecret
	fieldResetNewPassword
	fieldResetConfirm
	fieldExpenseStore
	fieldExpenseAmount
	fieldExpenseDate
	fieldIncomeSource
	fieldIncomeAmount
)

// fieldChangedMsg replaces a form buffer, unconditionally and without
// validation.
type fieldChangedMsg struct {
	field formField
	value string
}

// Navigation intents.
type (
	switchToLoginMsg         struct{}
	switchToRegistrationMsg  struct{}
	requestPasswordResetMsg  struct{}
	chooseAddExpenseMsg      struct{}
	chooseAddIncomeMsg       struct{}
	cancelDashboardActionMsg struct{}
)

// Submission intents.
type (
	loginPressedMsg        struct{}
	registerPressedMsg     struct{}
	submitPasswordResetMsg struct{}
	confirmAddExpenseMsg   struct{}
	confirmAddIncomeMsg    struct{}
	exitPressedMsg         struct{}
	exportChartMsg         struct{}
	setExpenseDateTodayMsg struct{}
)

type deleteTransactionMsg struct{ id string }

type sortTypeChangedMsg struct{ sortType SortType }

// categorySelectedMsg carries nil to clear the selection.
type categorySelectedMsg struct{ name *string }

// Async effect results. Each carries the session generation the effect was
// issued under; stale results are discarded by the reducer.
type loginResultMsg struct {
	gen    int
	userID int64
	err    error
}

type combinedLoadedMsg struct {
	gen  int
	snap service.Snapshot
	err  error
}

type registerResultMsg struct {
	gen int
	err error
}

type resetResultMsg struct {
	gen int
	err error
}

type transactionsReloadedMsg struct {
	gen int
	txs []repository.Transaction
	err error
}

type deleteResultMsg struct {
	gen int
	err error
}

type chartSavedMsg struct {
	gen  int
	path string
	err  error
}
