package ui

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MaksRe/solidity-erc20-playground/internal/i18n"
	"github.com/MaksRe/solidity-erc20-playground/internal/token"
)

// Submitter broadcasts a validated call. *token.Gateway satisfies it.
type Submitter interface {
	Submit(desc *token.CallDescriptor, contractAddr string) (string, error)
}

// ── messages ────────────────────────────────────────────────────────────────

// submitResultMsg is delivered when the gateway returns a handle or an
// immediate failure.
type submitResultMsg struct {
	hash string
	err  error
}

// receiptMsg is delivered when a pending transaction resolves.
type receiptMsg struct {
	rec     *token.TransactionRecord
	outcome token.Outcome
}

// readsUpdatedMsg signals that the read cache has fresh values.
type readsUpdatedMsg struct{}

// ── model ───────────────────────────────────────────────────────────────────

// consoleRow identifies one navigable row in the form.
type consoleRow int

const (
	rowAction consoleRow = iota
	rowField             // one per required field, resolved via fieldAt
	rowSubmit
)

// ConsoleModel is the Bubble Tea model for the interactive action
// console: pick an action, fill only the fields its descriptor requires,
// submit, and watch the transaction resolve while the read panel
// refreshes. All state mutation happens on the Bubble Tea event loop;
// the async commands only perform network I/O and report back as
// messages.
type ConsoleModel struct {
	Copy     *i18n.Copy
	Contract string
	Account  string // connected wallet address, "" when not connected

	Form    *token.FormState
	Cache   *token.Cache
	Tracker *token.Tracker
	Gateway Submitter
	Waiter  ReceiptFetcher

	cursor   int
	editing  bool
	input    string
	errMsg   string
	busy     bool // submission outstanding, no handle yet
	Quitting bool
}

// ReceiptFetcher polls one transaction to resolution.
type ReceiptFetcher interface {
	Outcome(hash string) token.Outcome
}

// NewConsole builds the console model and primes the read cache.
func NewConsole(copyTable *i18n.Copy, contract, account string, form *token.FormState,
	cache *token.Cache, tracker *token.Tracker, gateway Submitter, waiter ReceiptFetcher) ConsoleModel {

	m := ConsoleModel{
		Copy:     copyTable,
		Contract: contract,
		Account:  account,
		Form:     form,
		Cache:    cache,
		Tracker:  tracker,
		Gateway:  gateway,
		Waiter:   waiter,
	}
	return m
}

func (m ConsoleModel) Init() tea.Cmd {
	return m.derivedInputsCmd()
}

// derivedInputsCmd re-derives query enablement from the current form and
// fetches whatever became enabled or stale.
func (m ConsoleModel) derivedInputsCmd() tea.Cmd {
	contract, account, spender := m.Contract, m.Account, m.Form.Spender
	cache := m.Cache
	return func() tea.Msg {
		cache.SetInputs(contract, account, spender)
		return readsUpdatedMsg{}
	}
}

// invalidateCmd refetches the write-dependent reads after a confirmed
// transaction.
func (m ConsoleModel) invalidateCmd() tea.Cmd {
	cache := m.Cache
	return func() tea.Msg {
		cache.InvalidateAfterConfirm()
		return readsUpdatedMsg{}
	}
}

func (m ConsoleModel) submitCmd(desc *token.CallDescriptor) tea.Cmd {
	gateway, contract := m.Gateway, m.Contract
	return func() tea.Msg {
		hash, err := gateway.Submit(desc, contract)
		return submitResultMsg{hash: hash, err: err}
	}
}

func (m ConsoleModel) awaitReceiptCmd(rec *token.TransactionRecord) tea.Cmd {
	waiter := m.Waiter
	return func() tea.Msg {
		return receiptMsg{rec: rec, outcome: waiter.Outcome(rec.Hash)}
	}
}

func (m ConsoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateNav(msg)

	case submitResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = m.errText(msg.err)
			return m, nil
		}
		rec := m.Tracker.Begin(msg.hash)
		m.Form.ClearAmount()
		m.errMsg = ""
		return m, m.awaitReceiptCmd(rec)

	case receiptMsg:
		// The transition happens on the event loop; the refetch it
		// triggers is network I/O and runs as a command.
		if m.Tracker.Apply(msg.rec, msg.outcome) {
			return m, m.invalidateCmd()
		}
		return m, nil

	case readsUpdatedMsg:
		return m, nil
	}
	return m, nil
}

// ── key handling ────────────────────────────────────────────────────────────

func (m ConsoleModel) updateNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.Quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < m.rowCount()-1 {
			m.cursor++
		}

	case "left", "h":
		if m.rowKind() == rowAction {
			m.cycleAction(-1)
			m.cursor = 0
			return m, m.derivedInputsCmd()
		}

	case "right", "l":
		if m.rowKind() == rowAction {
			m.cycleAction(1)
			m.cursor = 0
			return m, m.derivedInputsCmd()
		}

	case "enter", " ":
		switch m.rowKind() {
		case rowAction:
			m.cycleAction(1)
			return m, m.derivedInputsCmd()
		case rowField:
			m.editing = true
			m.input = m.Form.Field(m.fieldAt(m.cursor))
			m.errMsg = ""
		case rowSubmit:
			return m.submit()
		}
	}
	return m, nil
}

func (m ConsoleModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input = ""
		return m, nil

	case "enter":
		field := m.fieldAt(m.cursor)
		m.Form.SetField(field, strings.TrimSpace(m.input))
		m.editing = false
		m.input = ""
		if field == token.FieldSpender {
			// Spender gates the allowance query; re-derive enablement now.
			return m, m.derivedInputsCmd()
		}
		return m, nil

	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil

	default:
		if msg.Type == tea.KeyRunes {
			m.input += string(msg.Runes)
		}
		return m, nil
	}
}

// submit validates the form and dispatches the call. A second submission
// while one is pending or outstanding is rejected without creating a
// record.
func (m ConsoleModel) submit() (tea.Model, tea.Cmd) {
	if m.busy || m.Tracker.Pending() {
		m.errMsg = m.Copy.Processing
		return m, nil
	}

	desc, err := token.Validate(m.Form, token.Env{
		ContractAddress: m.Contract,
		WalletConnected: m.Account != "",
		Decimals:        m.Cache.DecimalsOrDefault(),
	})
	if err != nil {
		m.errMsg = m.errText(err)
		return m, nil
	}

	m.busy = true
	m.errMsg = ""
	return m, m.submitCmd(desc)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func (m *ConsoleModel) cycleAction(dir int) {
	kinds := token.Actions()
	idx := 0
	for i, d := range kinds {
		if d.Kind == m.Form.SelectedAction {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(kinds)) % len(kinds)
	m.Form.SelectedAction = kinds[idx].Kind
}

// addressFields returns the editable fields for the selected action, in
// descriptor order, amount last.
func (m ConsoleModel) editableFields() []token.Field {
	desc := token.Describe(m.Form.SelectedAction)
	fields := append([]token.Field{}, desc.AddressFields...)
	return append(fields, token.FieldAmount)
}

func (m ConsoleModel) rowCount() int {
	return 1 + len(m.editableFields()) + 1 // action + fields + submit
}

func (m ConsoleModel) rowKind() consoleRow {
	switch {
	case m.cursor == 0:
		return rowAction
	case m.cursor == m.rowCount()-1:
		return rowSubmit
	default:
		return rowField
	}
}

func (m ConsoleModel) fieldAt(cursor int) token.Field {
	fields := m.editableFields()
	idx := cursor - 1
	if idx < 0 || idx >= len(fields) {
		return token.FieldAmount
	}
	return fields[idx]
}

func (m ConsoleModel) errText(err error) string {
	var addrErr *token.InvalidAddressError
	switch {
	case errors.Is(err, token.ErrNoContract):
		return m.Copy.ErrNoContract
	case errors.Is(err, token.ErrNoWallet):
		return m.Copy.ErrNoWallet
	case errors.Is(err, token.ErrInvalidAmount):
		return m.Copy.ErrAmount
	case errors.As(err, &addrErr):
		return m.Copy.ErrAddress + " (" + string(addrErr.Field) + ")"
	case errors.Is(err, token.ErrUserRejected):
		return m.Copy.ErrRejected
	default:
		return err.Error()
	}
}

func (m ConsoleModel) fieldLabel(f token.Field) string {
	switch f {
	case token.FieldFrom:
		return m.Copy.FromAddress
	case token.FieldTo:
		return m.Copy.ToAddress
	case token.FieldSpender:
		return m.Copy.SpenderAddress
	default:
		return m.Copy.AmountLabel
	}
}

// ── view ────────────────────────────────────────────────────────────────────

func (m ConsoleModel) View() string {
	if m.Quitting {
		return ""
	}

	var sb strings.Builder

	name, symbol := m.tokenLabel()
	title := fmt.Sprintf("  %s  ·  %s", m.Copy.ActionConsole, name)
	sb.WriteString(StyleTitle.Render(title) + "\n\n")

	sb.WriteString(m.viewReadPanel(symbol))
	sb.WriteString("\n")
	sb.WriteString(m.viewForm())
	sb.WriteString("\n")
	sb.WriteString(m.viewStatus())

	sb.WriteString("\n" + StyleMeta.Render("  ↑↓ move · ←→ action · enter edit/submit · q quit") + "\n")
	return sb.String()
}

func (m ConsoleModel) tokenLabel() (name, symbol string) {
	name, ok := m.Cache.TokenName()
	if !ok {
		name = "ERC-20"
	}
	symbol, ok = m.Cache.TokenSymbol()
	if !ok {
		symbol = "TOKEN"
	}
	return name, symbol
}

func (m ConsoleModel) viewReadPanel(symbol string) string {
	decimals := m.Cache.DecimalsOrDefault()

	row := func(label, value string) string {
		return "  " + StyleMeta.Render(padRight(label, 22)) + value + "\n"
	}

	var sb strings.Builder
	sb.WriteString(StyleHeader.Render("  "+m.Copy.ReadPanel) + "\n")

	supply, supplyOK := m.Cache.TotalSupply()
	balance, balanceOK := m.Cache.Balance()
	allowance, allowanceOK := m.Cache.Allowance()
	owner, ownerOK := m.Cache.Owner()

	sb.WriteString(row(m.Copy.TotalSupply, m.amountText(supply, supplyOK, decimals, symbol)))
	sb.WriteString(row(m.Copy.Decimals, fmt.Sprintf("%d", decimals)))
	if ownerOK {
		sb.WriteString(row(m.Copy.Owner, Addr(TruncateAddr(owner))))
	} else {
		sb.WriteString(row(m.Copy.Owner, m.Copy.NA))
	}
	sb.WriteString(row(m.Copy.YourBalance, m.amountText(balance, balanceOK, decimals, symbol)))
	sb.WriteString(row(m.Copy.AllowanceSpender, m.amountText(allowance, allowanceOK, decimals, symbol)))
	sb.WriteString("  " + StyleMeta.Render(m.Copy.AllowanceHint) + "\n")
	return sb.String()
}

// amountText renders a base-unit value in token units, or N/A when the
// query is disabled or failed. Unknown is never shown as zero.
func (m ConsoleModel) amountText(v *big.Int, ok bool, decimals int, symbol string) string {
	if !ok {
		return m.Copy.NA
	}
	return Val(token.FormatAmount(v, decimals)) + " " + symbol
}

func (m ConsoleModel) viewForm() string {
	meta := m.Copy.Action(string(m.Form.SelectedAction))

	var sb strings.Builder
	sb.WriteString(StyleHeader.Render("  "+m.Copy.ActionLabel) + "\n")
	sb.WriteString("  " + StyleMeta.Render(meta.Description) + "\n\n")

	renderRow := func(cursor int, label, value string) {
		prefix := "    "
		line := fmt.Sprintf("%s%s %s", prefix, StyleMeta.Render(padRight(label, 18)), value)
		if cursor == m.cursor {
			if m.editing {
				line = fmt.Sprintf("  ▸ %s %s█", StyleMeta.Render(padRight(label, 18)), m.input)
			}
			sb.WriteString(StyleSelected.Render(line) + "\n")
			return
		}
		sb.WriteString(line + "\n")
	}

	renderRow(0, m.Copy.ActionLabel, "◂ "+meta.Title+" ▸")

	fields := m.editableFields()
	for i, f := range fields {
		value := m.Form.Field(f)
		if value == "" {
			value = StyleMeta.Render(m.Copy.NotSet)
		}
		renderRow(1+i, m.fieldLabel(f), value)
	}

	label := meta.Button
	if m.busy || m.Tracker.Pending() {
		label = m.Copy.Processing
	}
	renderRow(m.rowCount()-1, "", StyleValue.Render("[ "+label+" ]"))
	return sb.String()
}

func (m ConsoleModel) viewStatus() string {
	var sb strings.Builder

	if m.Contract == "" {
		sb.WriteString("  " + Warn(m.Copy.ProvideContract) + "\n")
	}
	if m.errMsg != "" {
		sb.WriteString("  " + Err(m.errMsg) + "\n")
	}

	rec := m.Tracker.Active()
	if rec != nil {
		hash := TruncateAddr(rec.Hash)
		switch rec.Status {
		case token.StatusPending:
			sb.WriteString("  " + Warn(m.Copy.PendingTx+": "+hash) + "\n")
		case token.StatusConfirmed:
			sb.WriteString("  " + Success(m.Copy.ConfirmedTx+": "+hash) + "\n")
		case token.StatusFailed:
			reason := rec.ErrorMessage
			if reason != "" {
				reason = " — " + reason
			}
			sb.WriteString("  " + Err(m.Copy.FailedTx+": "+hash+reason) + "\n")
		}
	}
	return sb.String()
}
