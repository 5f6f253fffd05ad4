package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"kopilka/internal/database/repository"
)

// View renders the session. It is a total function over the screen set and
// never mutates state.
func (a *App) View() string {
	switch a.sess.screen {
	case ScreenRegistration:
		return a.renderRegistration()
	case ScreenResetPassword:
		return a.renderReset()
	case ScreenDashboard:
		switch a.sess.mode {
		case ModeAddExpense:
			return a.renderAddExpense()
		case ModeAddIncome:
			return a.renderAddIncome()
		default:
			return a.renderDashboard()
		}
	default:
		return a.renderLogin()
	}
}

func (a *App) renderLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("kopilka — Login") + "\n\n")
	b.WriteString(a.field("Username", a.sess.login.username, a.focus == 0, false) + "\n")
	b.WriteString(a.field("Password", a.sess.login.password, a.focus == 1, true) + "\n")
	b.WriteString(statusLine(a.sess.login.status))
	b.WriteString(footerStyle.Render("[enter] login  [ctrl+r] register  [ctrl+p] reset password  [esc] quit"))
	return boxStyle.Render(b.String())
}

func (a *App) renderRegistration() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("kopilka — Registration") + "\n\n")
	b.WriteString(a.field("Username", a.sess.reg.username, a.focus == 0, false) + "\n")
	b.WriteString(a.field("Password", a.sess.reg.password, a.focus == 1, true) + "\n")
	b.WriteString(a.field("Confirm password", a.sess.reg.confirm, a.focus == 2, true) + "\n")
	b.WriteString(a.field("Secret answer", a.sess.reg.secretAnswer, a.focus == 3, false) + "\n")
	b.WriteString(statusLine(a.sess.reg.status))
	b.WriteString(footerStyle.Render("[enter] create account  [esc] back to login"))
	return boxStyle.Render(b.String())
}

func (a *App) renderReset() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("kopilka — Reset password") + "\n\n")
	b.WriteString(a.field("Username", a.sess.login.username, a.focus == 0, false) + "\n")
	b.WriteString(a.field("Secret answer", a.sess.reset.secretAnswer, a.focus == 1, false) + "\n")
	b.WriteString(a.field("New password", a.sess.reset.newPassword, a.focus == 2, true) + "\n")
	b.WriteString(a.field("Confirm new password", a.sess.reset.confirmNew, a.focus == 3, true) + "\n")
	b.WriteString(statusLine(a.sess.reset.status))
	b.WriteString(footerStyle.Render("[enter] reset  [esc] back to login"))
	return boxStyle.Render(b.String())
}

func (a *App) renderDashboard() string {
	var b strings.Builder
	name := ""
	if a.sess.user != nil {
		name = a.sess.user.name
	}
	b.WriteString(titleStyle.Render("kopilka — "+name) + "\n")
	b.WriteString(labelStyle.Render("Sort: ") + a.sess.sortType.String() + "\n\n")

	visible := a.sess.visibleTransactions()
	if len(visible) == 0 {
		b.WriteString(labelStyle.Render("No transactions yet.") + "\n")
	}
	for i, t := range visible {
		prefix := "  "
		if i == a.cursor {
			prefix = cursorStyle.Render("> ")
		}
		b.WriteString(prefix + a.transactionLine(t) + "\n")
	}

	if shares := a.sess.expenseShares(); len(shares) > 0 {
		b.WriteString("\n" + titleStyle.Render("Expenses by category") + "\n")
		var total float64
		for _, s := range shares {
			total += s.total
		}
		for _, s := range shares {
			b.WriteString(fmt.Sprintf("  %-16s %s%.2f (%.0f%%)\n",
				s.name, a.cfg.UI.CurrencySymbol, s.total, s.total/total*100))
		}
	}

	b.WriteString(statusLine(a.sess.status))
	b.WriteString(footerStyle.Render("[e] expense  [i] income  [s] sort  [d] delete  [c] chart  [l] logout  [q] quit"))
	return b.String()
}

func (a *App) transactionLine(t repository.Transaction) string {
	sign := "+"
	style := incomeStyle
	category := "-"
	if t.Kind == repository.KindExpense {
		sign = "-"
		style = expenseStyle
		if t.CategoryID != nil {
			category = a.sess.categoryName(*t.CategoryID)
		}
	}
	line := fmt.Sprintf("%-22s %s%s%.2f  [%s]  %s",
		t.Source, sign, a.cfg.UI.CurrencySymbol, t.Amount,
		t.Date.Format(a.cfg.UI.DateFormat), category)
	return style.Render(line)
}

func (a *App) renderAddExpense() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Add expense") + "\n\n")
	b.WriteString(a.field("Store", a.sess.expense.store, a.focus == 0, false) + "\n")
	b.WriteString(a.field("Amount", a.sess.expense.amount, a.focus == 1, false) + "\n")
	b.WriteString(a.field("Date (YYYY-MM-DD)", a.sess.expense.date, a.focus == 2, false) + "\n")

	selected := "none"
	if a.sess.expense.category != nil {
		selected = *a.sess.expense.category
	}
	picker := fmt.Sprintf("%-20s ◀ %s ▶", labelStyle.Render("Category"), selected)
	if a.focus == expenseCategorySlot {
		picker = cursorStyle.Render("> ") + picker
	} else {
		picker = "  " + picker
	}
	b.WriteString(picker + "\n")

	b.WriteString(statusLine(a.sess.status))
	b.WriteString(footerStyle.Render("[enter] save  [tab] next  [ctrl+t] today  [esc] cancel"))
	return boxStyle.Render(b.String())
}

func (a *App) renderAddIncome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Add income") + "\n\n")
	b.WriteString(a.field("Source", a.sess.income.source, a.focus == 0, false) + "\n")
	b.WriteString(a.field("Amount", a.sess.income.amount, a.focus == 1, false) + "\n")
	b.WriteString(statusLine(a.sess.status))
	b.WriteString(footerStyle.Render("[enter] save  [tab] next  [esc] cancel"))
	return boxStyle.Render(b.String())
}

// field renders one labeled input line; masked fields show bullets.
func (a *App) field(label, value string, focused, masked bool) string {
	shown := value
	if masked {
		shown = strings.Repeat("•", utf8.RuneCountInString(value))
	}
	prefix := "  "
	if focused {
		prefix = cursorStyle.Render("> ")
		shown += cursorStyle.Render("_")
	}
	return fmt.Sprintf("%s%-20s %s", prefix, labelStyle.Render(label), shown)
}

// statusLine colors errors red and notices green; the reset confirmation is
// the only success message routed through a form status field.
func statusLine(status string) string {
	if status == "" {
		return "\n"
	}
	style := errorStyle
	if strings.HasPrefix(status, "Password has been reset") || strings.HasPrefix(status, "Chart saved") {
		style = noticeStyle
	}
	return "\n" + style.Render(status) + "\n\n"
}
