package token

// ActionKind identifies one supported token operation. The set is closed:
// every kind maps to a descriptor in the table below and to an on-chain
// function of the same name.
type ActionKind string

const (
	ActionTransfer          ActionKind = "transfer"
	ActionApprove           ActionKind = "approve"
	ActionTransferFrom      ActionKind = "transferFrom"
	ActionMint              ActionKind = "mint"
	ActionBurn              ActionKind = "burn"
	ActionBurnFrom          ActionKind = "burnFrom"
	ActionIncreaseAllowance ActionKind = "increaseAllowance"
	ActionDecreaseAllowance ActionKind = "decreaseAllowance"
)

// Field names one form input.
type Field string

const (
	FieldFrom    Field = "from"
	FieldTo      Field = "to"
	FieldSpender Field = "spender"
	FieldAmount  Field = "amount"
)

// ActionDescriptor is the static description of one action kind.
//
// AddressFields lists the required address inputs in on-chain argument
// order; the amount argument always comes last and is required by every
// action, so it is not listed. The same descriptor drives both which form
// fields the UI shows and which fields the validator checks.
type ActionDescriptor struct {
	Kind          ActionKind
	AddressFields []Field
}

// Requires reports whether the action needs the given address field.
func (d ActionDescriptor) Requires(f Field) bool {
	if f == FieldAmount {
		return true
	}
	for _, af := range d.AddressFields {
		if af == f {
			return true
		}
	}
	return false
}

// actionTable is the single source of truth for field requirements and
// argument order. Adding an action is a data change, not a control-flow
// change.
//
//	action             from  to  spender  amount
//	transfer            –    ✓     –        ✓
//	approve             –    –     ✓        ✓
//	transferFrom        ✓    ✓     –        ✓
//	mint                –    ✓     –        ✓
//	burn                –    –     –        ✓
//	burnFrom            ✓    –     –        ✓
//	increaseAllowance   –    –     ✓        ✓
//	decreaseAllowance   –    –     ✓        ✓
var actionTable = []ActionDescriptor{
	{Kind: ActionTransfer, AddressFields: []Field{FieldTo}},
	{Kind: ActionApprove, AddressFields: []Field{FieldSpender}},
	{Kind: ActionTransferFrom, AddressFields: []Field{FieldFrom, FieldTo}},
	{Kind: ActionMint, AddressFields: []Field{FieldTo}},
	{Kind: ActionBurn, AddressFields: nil},
	{Kind: ActionBurnFrom, AddressFields: []Field{FieldFrom}},
	{Kind: ActionIncreaseAllowance, AddressFields: []Field{FieldSpender}},
	{Kind: ActionDecreaseAllowance, AddressFields: []Field{FieldSpender}},
}

var actionIndex = func() map[ActionKind]ActionDescriptor {
	m := make(map[ActionKind]ActionDescriptor, len(actionTable))
	for _, d := range actionTable {
		m[d.Kind] = d
	}
	return m
}()

// Actions returns all action descriptors in display order.
func Actions() []ActionDescriptor {
	out := make([]ActionDescriptor, len(actionTable))
	copy(out, actionTable)
	return out
}

// Describe returns the descriptor for kind. The kind set is closed, so an
// unknown kind yields a zero descriptor with Known() == false.
func Describe(kind ActionKind) ActionDescriptor {
	return actionIndex[kind]
}

// Known reports whether the descriptor belongs to a registered action.
func (d ActionDescriptor) Known() bool {
	return d.Kind != ""
}
