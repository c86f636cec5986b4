package token

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// wellFormedAddress reports whether s is a 0x-prefixed 40-hex-digit
// address. common.IsHexAddress alone also accepts the bare form without
// the prefix, which the form never produces and we do not accept.
func wellFormedAddress(s string) bool {
	return strings.HasPrefix(s, "0x") && common.IsHexAddress(s)
}

// CallDescriptor is a validated, typed contract call ready for submission.
// Args hold common.Address values in the action's argument order followed
// by the *big.Int amount, which is always last. A descriptor exists only
// when every field the action requires passed validation.
type CallDescriptor struct {
	FunctionName string
	Args         []any
}

// Env carries the session context the validator needs beyond the form:
// the resolved contract address, whether a wallet is connected, and the
// token's decimals (DefaultDecimals when not yet read).
type Env struct {
	ContractAddress string
	WalletConnected bool
	Decimals        int
}

// Validate turns raw form input into a CallDescriptor, or rejects it with
// a specific reason. Checks run in a fixed order and short-circuit on the
// first failure:
//
//  1. contract address set and well-formed      → ErrNoContract
//  2. wallet connected                          → ErrNoWallet
//  3. amount parses at env.Decimals             → ErrInvalidAmount
//  4. every required address well-formed        → *InvalidAddressError
//
// Validation is all-or-nothing; no partial descriptor is ever returned.
func Validate(form *FormState, env Env) (*CallDescriptor, error) {
	if !wellFormedAddress(env.ContractAddress) {
		return nil, ErrNoContract
	}
	if !env.WalletConnected {
		return nil, ErrNoWallet
	}

	amount, err := ParseAmount(form.Amount, env.Decimals)
	if err != nil {
		return nil, err
	}

	desc := Describe(form.SelectedAction)
	if !desc.Known() {
		return nil, fmt.Errorf("unknown action %q", form.SelectedAction)
	}

	args := make([]any, 0, len(desc.AddressFields)+1)
	for _, field := range desc.AddressFields {
		raw := form.Field(field)
		if !wellFormedAddress(raw) {
			return nil, &InvalidAddressError{Field: field}
		}
		args = append(args, common.HexToAddress(raw))
	}
	args = append(args, amount)

	return &CallDescriptor{
		FunctionName: string(desc.Kind),
		Args:         args,
	}, nil
}

// Amount returns the descriptor's trailing amount argument.
func (c *CallDescriptor) Amount() *big.Int {
	if len(c.Args) == 0 {
		return nil
	}
	amt, _ := c.Args[len(c.Args)-1].(*big.Int)
	return amt
}
