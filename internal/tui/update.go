package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Field focus order per screen/mode. The expense form has a pseudo-field for
// the category picker after its text fields.
var (
	loginFields   = []formField{fieldLoginUsername, fieldLoginPassword}
	regFields     = []formField{fieldRegUsername, fieldRegPassword, fieldRegConfirm, fieldRegSecret}
	resetFields   = []formField{fieldLoginUsername, fieldResetSecret, fieldResetNewPassword, fieldResetConfirm}
	expenseFields = []formField{fieldExpenseStore, fieldExpenseAmount, fieldExpenseDate}
	incomeFields  = []formField{fieldIncomeSource, fieldIncomeAmount}
)

// expense focus slots: the three text fields plus the category picker.
const expenseCategorySlot = 3

// handleKey translates key presses into intents for the reducer. Text keys
// edit the focused buffer; everything else maps to a navigation or
// submission intent.
func (a *App) handleKey(m tea.KeyMsg) tea.Cmd {
	if key.Matches(m, a.keys.Quit) {
		return a.apply(exitPressedMsg{})
	}

	switch a.sess.screen {
	case ScreenLogin:
		return a.handleFormKey(m, loginFields, loginPressedMsg{}, exitPressedMsg{})
	case ScreenRegistration:
		return a.handleFormKey(m, regFields, registerPressedMsg{}, switchToLoginMsg{})
	case ScreenResetPassword:
		return a.handleFormKey(m, resetFields, submitPasswordResetMsg{}, switchToLoginMsg{})
	case ScreenDashboard:
		switch a.sess.mode {
		case ModeAddExpense:
			return a.handleExpenseKey(m)
		case ModeAddIncome:
			return a.handleFormKey(m, incomeFields, confirmAddIncomeMsg{}, cancelDashboardActionMsg{})
		default:
			return a.handleDashboardKey(m)
		}
	}
	return nil
}

// handleFormKey covers the plain text-field screens.
func (a *App) handleFormKey(m tea.KeyMsg, fields []formField, submit, cancel tea.Msg) tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Submit):
		return a.apply(submit)
	case key.Matches(m, a.keys.Cancel):
		return a.apply(cancel)
	case key.Matches(m, a.keys.NextField):
		a.focus = (a.focus + 1) % len(fields)
		return nil
	case key.Matches(m, a.keys.PrevField):
		a.focus = (a.focus - 1 + len(fields)) % len(fields)
		return nil
	}
	if a.sess.screen == ScreenLogin {
		switch {
		case key.Matches(m, a.keys.Register):
			return a.apply(switchToRegistrationMsg{})
		case key.Matches(m, a.keys.Reset):
			return a.apply(requestPasswordResetMsg{})
		}
	}
	if a.focus < len(fields) {
		return a.editField(fields[a.focus], m)
	}
	return nil
}

func (a *App) handleExpenseKey(m tea.KeyMsg) tea.Cmd {
	slots := len(expenseFields) + 1 // text fields + category picker
	switch {
	case key.Matches(m, a.keys.Submit):
		return a.apply(confirmAddExpenseMsg{})
	case key.Matches(m, a.keys.Cancel):
		return a.apply(cancelDashboardActionMsg{})
	case key.Matches(m, a.keys.NextField):
		a.focus = (a.focus + 1) % slots
		return nil
	case key.Matches(m, a.keys.PrevField):
		a.focus = (a.focus - 1 + slots) % slots
		return nil
	case key.Matches(m, a.keys.Today):
		return a.apply(setExpenseDateTodayMsg{})
	}
	if a.focus == expenseCategorySlot {
		switch m.String() {
		case "left", "right", " ":
			return a.apply(categorySelectedMsg{name: a.nextCategory(m.String() != "left")})
		case "backspace", "delete":
			return a.apply(categorySelectedMsg{name: nil})
		}
		return nil
	}
	return a.editField(expenseFields[a.focus], m)
}

// nextCategory cycles the picker through the loaded category names.
func (a *App) nextCategory(forward bool) *string {
	cats := a.sess.categories
	if len(cats) == 0 {
		return nil
	}
	idx := -1
	if cur := a.sess.expense.category; cur != nil {
		for i, c := range cats {
			if c.Name == *cur {
				idx = i
				break
			}
		}
	}
	if forward {
		idx = (idx + 1) % len(cats)
	} else if idx <= 0 {
		idx = len(cats) - 1
	} else {
		idx--
	}
	name := cats[idx].Name
	return &name
}

func (a *App) handleDashboardKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.cursor < len(a.sess.visibleTransactions())-1 {
			a.cursor++
		}
	case key.Matches(m, a.keys.AddExpense):
		return a.apply(chooseAddExpenseMsg{})
	case key.Matches(m, a.keys.AddIncome):
		return a.apply(chooseAddIncomeMsg{})
	case key.Matches(m, a.keys.Sort):
		return a.apply(sortTypeChangedMsg{sortType: a.sess.sortType.next()})
	case key.Matches(m, a.keys.Delete):
		visible := a.sess.visibleTransactions()
		if a.cursor < len(visible) {
			return a.apply(deleteTransactionMsg{id: visible[a.cursor].ID})
		}
	case key.Matches(m, a.keys.Chart):
		return a.apply(exportChartMsg{})
	case key.Matches(m, a.keys.Logout):
		return a.apply(switchToLoginMsg{})
	default:
		if m.String() == "q" {
			return a.apply(exitPressedMsg{})
		}
	}
	return nil
}

// editField turns text keys into field-change intents on the focused buffer.
func (a *App) editField(f formField, m tea.KeyMsg) tea.Cmd {
	cur := a.fieldValue(f)
	switch m.Type {
	case tea.KeyRunes:
		return a.apply(fieldChangedMsg{field: f, value: cur + string(m.Runes)})
	case tea.KeySpace:
		return a.apply(fieldChangedMsg{field: f, value: cur + " "})
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if cur != "" {
			r := []rune(cur)
			return a.apply(fieldChangedMsg{field: f, value: string(r[:len(r)-1])})
		}
	}
	return nil
}

func (a *App) fieldValue(f formField) string {
	s := &a.sess
	switch f {
	case fieldLoginUsername:
		return s.login.username
	case fieldLoginPassword:
		return s.login.password
	case fieldRegUsername:
		return s.reg.username
	case fieldRegPassword:
		return s.reg.password
	case fieldRegConfirm:
		return s.reg.confirm
	case fieldRegSecret:
		return s.reg.secretAnswer
	case fieldResetSecret:
		return s.reset.secretAnswer
	case fieldResetNewPassword:
		return s.reset.newPassword
	case fieldResetConfirm:
		return s.reset.confirmNew
	case fieldExpenseStore:
		return s.expense.store
	case fieldExpenseAmount:
		return s.expense.amount
	case fieldExpenseDate:
		return s.expense.date
	case fieldIncomeSource:
		return s.income.source
	case fieldIncomeAmount:
		return s.income.amount
	}
	return ""
}

func (a *App) setField(f formField, v string) {
	s := &a.sess
	switch f {
	case fieldLoginUsername:
		s.login.username = v
	case fieldLoginPassword:
		s.login.password = v
	case fieldRegUsername:
		s.reg.username = v
	case fieldRegPassword:
		s.reg.password = v
	case fieldRegConfirm:
		s.reg.confirm = v
	case fieldRegSecret:
		s.reg.secretAnswer = v
	case fieldResetSecret:
		s.reset.secretAnswer = v
	case fieldResetNewPassword:
		s.reset.newPassword = v
	case fieldResetConfirm:
		s.reset.confirmNew = v
	case fieldExpenseStore:
		s.expense.store = v
	case fieldExpenseAmount:
		s.expense.amount = v
	case fieldExpenseDate:
		s.expense.date = v
	case fieldIncomeSource:
		s.income.source = v
	case fieldIncomeAmount:
		s.income.amount = v
	}
}
