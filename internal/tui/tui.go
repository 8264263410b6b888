// Package tui renders the invoice form and history in the terminal. It only
// emits intents to the ledger and reads its computed view; required-field
// validation before finalize lives here, at the presentation boundary.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"invoicepad/internal/compute"
	"invoicepad/internal/ledger"
)

type pane int

const (
	paneForm pane = iota
	paneHistory
)

type fieldKind int

const (
	fInvoiceNumber fieldKind = iota
	fCashier
	fCustomer
	fItemName
	fItemQty
	fItemPrice
	fTax
	fDiscount
)

// fieldRef addresses one editable field on the form; item fields carry the
// id of the row they belong to.
type fieldRef struct {
	kind   fieldKind
	itemID string
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle    = lipgloss.NewStyle().Bold(true)
	focusedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	paidStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	viewingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	historyStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

type Model struct {
	ledger *ledger.Ledger
	ctx    context.Context

	pane       pane
	fields     []fieldRef
	focus      int
	input      textinput.Model
	historyCur int
	status     string
	statusErr  bool
	width      int
}

func New(led *ledger.Ledger) Model {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 64
	input.Width = 24

	m := Model{ledger: led, ctx: context.Background(), input: input}
	m.rebuildFields()
	m.setFocus(0)
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// rebuildFields recomputes the focus order from the current draft: header
// fields, then the item grid row by row, then tax and discount.
func (m *Model) rebuildFields() {
	v := m.ledger.View()
	fields := []fieldRef{{kind: fInvoiceNumber}, {kind: fCashier}, {kind: fCustomer}}
	for _, item := range v.Draft.Items {
		fields = append(fields,
			fieldRef{kind: fItemName, itemID: item.ID},
			fieldRef{kind: fItemQty, itemID: item.ID},
			fieldRef{kind: fItemPrice, itemID: item.ID},
		)
	}
	fields = append(fields, fieldRef{kind: fTax}, fieldRef{kind: fDiscount})
	m.fields = fields
}

func (m *Model) setFocus(i int) {
	if len(m.fields) == 0 {
		return
	}
	if i < 0 {
		i = len(m.fields) - 1
	}
	if i >= len(m.fields) {
		i = 0
	}
	m.focus = i
	m.input.SetValue(m.fieldValue(m.fields[i]))
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) fieldValue(ref fieldRef) string {
	v := m.ledger.View()
	switch ref.kind {
	case fInvoiceNumber:
		return v.Draft.InvoiceNumber
	case fCashier:
		return v.Draft.CashierName
	case fCustomer:
		return v.Draft.CustomerName
	case fTax:
		return v.TaxPercent
	case fDiscount:
		return v.DiscountPercent
	}
	for _, item := range v.Draft.Items {
		if item.ID != ref.itemID {
			continue
		}
		switch ref.kind {
		case fItemName:
			return item.Name
		case fItemQty:
			return item.Qty
		case fItemPrice:
			return item.Price
		}
	}
	return ""
}

// applyInput pushes the current input text into the ledger as a field-edit
// intent, mirroring the one-keystroke-one-edit flow of the form.
func (m *Model) applyInput() {
	ref := m.fields[m.focus]
	value := m.input.Value()
	switch ref.kind {
	case fInvoiceNumber:
		m.ledger.SetInvoiceNumber(value)
	case fCashier:
		m.ledger.SetCashierName(value)
	case fCustomer:
		m.ledger.SetCustomerName(value)
	case fTax:
		m.ledger.SetTaxPercent(value)
	case fDiscount:
		m.ledger.SetDiscountPercent(value)
	case fItemName:
		m.ledger.EditItem(ref.itemID, ledger.SetName(value))
	case fItemQty:
		m.ledger.EditItem(ref.itemID, ledger.SetQty(value))
	case fItemPrice:
		m.ledger.EditItem(ref.itemID, ledger.SetPrice(value))
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.pane == paneForm {
			m.pane = paneHistory
			m.historyCur = 0
		} else {
			m.pane = paneForm
			m.setFocus(m.focus)
		}
		m.status = ""
		return m, nil
	}

	if m.pane == paneHistory {
		return m.handleHistoryKey(msg)
	}
	return m.handleFormKey(msg)
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "shift+tab":
		m.setFocus(m.focus - 1)
		return m, nil
	case "down", "enter":
		m.setFocus(m.focus + 1)
		return m, nil
	case "ctrl+a":
		m.ledger.AddItem()
		m.rebuildFields()
		m.setStatus("item added", false)
		return m, nil
	case "ctrl+d":
		ref := m.fields[m.focus]
		if ref.itemID == "" {
			m.setStatus("move to an item row to remove it", true)
			return m, nil
		}
		m.ledger.RemoveItem(ref.itemID)
		m.rebuildFields()
		m.setFocus(m.focus)
		m.setStatus("item removed", false)
		return m, nil
	case "ctrl+o":
		if s := m.ledger.View().Suggestions; len(s) > 0 {
			m.ledger.SetCustomerName(s[0])
			if m.fields[m.focus].kind == fCustomer {
				m.input.SetValue(s[0])
				m.input.CursorEnd()
			}
		}
		return m, nil
	case "ctrl+f":
		return m.finalize()
	case "esc":
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyInput()
	return m, cmd
}

// finalize checks the required fields and hands the draft to the ledger.
func (m Model) finalize() (tea.Model, tea.Cmd) {
	v := m.ledger.View()
	if strings.TrimSpace(v.Draft.CashierName) == "" || strings.TrimSpace(v.Draft.CustomerName) == "" {
		m.setStatus("cashier and customer names are required", true)
		return m, nil
	}
	entry := m.ledger.Finalize(m.ctx)
	m.rebuildFields()
	m.setFocus(0)
	m.setStatus(fmt.Sprintf("finalized invoice #%s (total %s)", entry.InvoiceNumber, compute.FormatTotal(entry.Total)), false)
	return m, nil
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	history := m.ledger.History()

	switch msg.String() {
	case "up", "k":
		if m.historyCur > 0 {
			m.historyCur--
		}
		return m, nil
	case "down", "j":
		if m.historyCur < len(history)-1 {
			m.historyCur++
		}
		return m, nil
	case "enter":
		if m.historyCur < len(history) {
			m.ledger.LoadFromHistory(history[m.historyCur].ID)
			m.pane = paneForm
			m.rebuildFields()
			m.setFocus(0)
			m.setStatus(fmt.Sprintf("viewing invoice #%s", history[m.historyCur].InvoiceNumber), false)
		}
		return m, nil
	case "p":
		if m.historyCur < len(history) {
			m.ledger.TogglePaid(m.ctx, history[m.historyCur].ID)
		}
		return m, nil
	case "x":
		if m.historyCur < len(history) {
			m.ledger.RemoveHistoryEntry(m.ctx, history[m.historyCur].ID)
			m.rebuildFields()
			if m.historyCur > 0 {
				m.historyCur--
			}
		}
		return m, nil
	case "c":
		m.ledger.ClearHistory(m.ctx)
		m.historyCur = 0
		return m, nil
	case "esc":
		m.pane = paneForm
		m.setFocus(m.focus)
		return m, nil
	}
	return m, nil
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func (m Model) View() string {
	v := m.ledger.View()

	form := m.renderForm(v)
	history := m.renderHistory(v)
	body := lipgloss.JoinHorizontal(lipgloss.Top, form, historyStyle.Render(history))

	var b strings.Builder
	b.WriteString(titleStyle.Render("INVOICEPAD"))
	if v.ActiveInvoiceID != "" {
		badge := ""
		if v.ActivePaid {
			badge = "  " + paidStyle.Render("PAID")
		}
		b.WriteString("   " + viewingStyle.Render(fmt.Sprintf("viewing #%s", v.Draft.InvoiceNumber)) + badge)
	}
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	if m.status != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(dimStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) helpLine() string {
	if m.pane == paneHistory {
		return "enter view · p toggle paid · x delete · c clear · tab back · ctrl+c quit"
	}
	return "ctrl+a add item · ctrl+d remove item · ctrl+f finalize · ctrl+o take suggestion · tab history · ctrl+c quit"
}

func (m Model) renderForm(v ledger.View) string {
	var b strings.Builder

	b.WriteString(m.renderField("Invoice #: ", fieldRef{kind: fInvoiceNumber}))
	b.WriteString("\n")
	b.WriteString(m.renderField("Cashier:   ", fieldRef{kind: fCashier}))
	b.WriteString("\n")
	b.WriteString(m.renderField("Customer:  ", fieldRef{kind: fCustomer}))
	b.WriteString("\n")

	for _, s := range v.Suggestions {
		b.WriteString(dimStyle.Render("  ↳ "+s) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("  %-24s %-8s %-10s", "ITEM", "QTY", "PRICE")))
	b.WriteString("\n")
	for _, item := range v.Draft.Items {
		name := m.renderCell(fieldRef{kind: fItemName, itemID: item.ID}, item.Name, 24)
		qty := m.renderCell(fieldRef{kind: fItemQty, itemID: item.ID}, item.Qty, 8)
		price := m.renderCell(fieldRef{kind: fItemPrice, itemID: item.ID}, item.Price, 10)
		b.WriteString(fmt.Sprintf("  %s %s %s\n", name, qty, price))
	}
	if len(v.Draft.Items) == 0 {
		b.WriteString(dimStyle.Render("  (no items — ctrl+a to add)") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderField("Tax %:     ", fieldRef{kind: fTax}))
	b.WriteString("\n")
	b.WriteString(m.renderField("Discount %:", fieldRef{kind: fDiscount}))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Subtotal:"), compute.FormatAmount(v.Totals.Subtotal)))
	b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Discount:"), compute.FormatAmount(v.Totals.DiscountAmount)))
	b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Tax:     "), compute.FormatAmount(v.Totals.TaxAmount)))
	b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Total:   "), compute.FormatTotal(v.Totals.Total)))

	return b.String()
}

// renderField draws a labelled header field, substituting the live text
// input when the field has focus.
func (m Model) renderField(label string, ref fieldRef) string {
	value := m.fieldValue(ref)
	if m.pane == paneForm && m.fields[m.focus] == ref {
		return "  " + labelStyle.Render(label) + " " + m.input.View()
	}
	return "  " + labelStyle.Render(label) + " " + value
}

func (m Model) renderCell(ref fieldRef, value string, width int) string {
	if m.pane == paneForm && m.fields[m.focus] == ref {
		return focusedStyle.Render(pad(m.input.Value()+"▏", width))
	}
	return pad(value, width)
}

func (m Model) renderHistory(v ledger.View) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Invoice History"))
	b.WriteString("\n")

	if len(v.History) == 0 {
		b.WriteString(dimStyle.Render("no invoices yet"))
		return b.String()
	}

	for i, inv := range v.History {
		marker := "  "
		line := fmt.Sprintf("#%s  %s  %s", inv.InvoiceNumber, inv.Date, compute.FormatTotal(inv.Total))
		if inv.Paid {
			line += "  " + paidStyle.Render("PAID")
		}
		if m.pane == paneHistory && i == m.historyCur {
			marker = selectedStyle.Render("> ")
			line = selectedStyle.Render(line)
		}
		b.WriteString(marker + line + "\n")
	}
	return b.String()
}

func pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
