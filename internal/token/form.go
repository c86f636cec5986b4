package token

// FormState holds the current action selection and the raw text inputs for
// one interactive session. All fields are untrusted text until Validate
// runs; only the fields the selected action's descriptor requires are ever
// read.
type FormState struct {
	SelectedAction ActionKind
	From           string
	To             string
	Spender        string
	Amount         string
}

// NewFormState returns a form with the default action selected.
func NewFormState() *FormState {
	return &FormState{SelectedAction: ActionTransfer}
}

// Field returns the raw value of one address/amount field.
func (f *FormState) Field(name Field) string {
	switch name {
	case FieldFrom:
		return f.From
	case FieldTo:
		return f.To
	case FieldSpender:
		return f.Spender
	case FieldAmount:
		return f.Amount
	}
	return ""
}

// SetField stores a raw value into one field.
func (f *FormState) SetField(name Field, value string) {
	switch name {
	case FieldFrom:
		f.From = value
	case FieldTo:
		f.To = value
	case FieldSpender:
		f.Spender = value
	case FieldAmount:
		f.Amount = value
	}
}

// ClearAmount resets the amount field after a successful submission,
// keeping the address fields for follow-up actions.
func (f *FormState) ClearAmount() {
	f.Amount = ""
}
