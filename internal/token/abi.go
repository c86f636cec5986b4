package token

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// ABIParam is one input or output of a contract function or event.
type ABIParam struct {
	Name string
	Type string
}

// ABIEntry is a single function or event in the contract interface.
type ABIEntry struct {
	Name            string
	Type            string // "function" | "event"
	Inputs          []ABIParam
	Outputs         []ABIParam
	StateMutability string // "view" | "nonpayable"
}

// IsRead reports whether the entry is a view function.
func (e *ABIEntry) IsRead() bool {
	return e.Type == "function" && e.StateMutability == "view"
}

// IsWrite reports whether the entry is a state-changing function.
func (e *ABIEntry) IsWrite() bool {
	return e.Type == "function" && e.StateMutability == "nonpayable"
}

// playgroundABI is the fixed interface of the PlaygroundERC20 contract:
// OpenZeppelin-style mintable + burnable ERC-20 with allowance helpers.
//
// Function selectors:
//
//	name()                      → 0x06fdde03
//	symbol()                    → 0x95d89b41
//	decimals()                  → 0x313ce567
//	totalSupply()               → 0x18160ddd
//	owner()                     → 0x8da5cb5b
//	balanceOf(address)          → 0x70a08231
//	allowance(a,a)              → 0xdd62ed3e
//	transfer(a,u256)            → 0xa9059cbb
//	approve(a,u256)             → 0x095ea7b3
//	transferFrom(a,a,u256)      → 0x23b872dd
//	increaseAllowance(a,u256)   → 0x39509351
//	decreaseAllowance(a,u256)   → 0xa457c2d7
//	mint(a,u256)                → 0x40c10f19
//	burn(u256)                  → 0x42966c68
//	burnFrom(a,u256)            → 0x79cc6790
var playgroundABI = []ABIEntry{
	// ── Read ─────────────────────────────────────────────────────────────
	{
		Name: "name", Type: "function",
		Outputs:         []ABIParam{{Type: "string"}},
		StateMutability: "view",
	},
	{
		Name: "symbol", Type: "function",
		Outputs:         []ABIParam{{Type: "string"}},
		StateMutability: "view",
	},
	{
		Name: "decimals", Type: "function",
		Outputs:         []ABIParam{{Type: "uint8"}},
		StateMutability: "view",
	},
	{
		Name: "totalSupply", Type: "function",
		Outputs:         []ABIParam{{Type: "uint256"}},
		StateMutability: "view",
	},
	{
		Name: "owner", Type: "function",
		Outputs:         []ABIParam{{Type: "address"}},
		StateMutability: "view",
	},
	{
		Name: "balanceOf", Type: "function",
		Inputs:          []ABIParam{{Name: "account", Type: "address"}},
		Outputs:         []ABIParam{{Type: "uint256"}},
		StateMutability: "view",
	},
	{
		Name: "allowance", Type: "function",
		Inputs:          []ABIParam{{Name: "owner", Type: "address"}, {Name: "spender", Type: "address"}},
		Outputs:         []ABIParam{{Type: "uint256"}},
		StateMutability: "view",
	},
	// ── Write ────────────────────────────────────────────────────────────
	{
		Name: "transfer", Type: "function",
		Inputs:          []ABIParam{{Name: "to", Type: "address"}, {Name: "value", Type: "uint256"}},
		Outputs:         []ABIParam{{Type: "bool"}},
		StateMutability: "nonpayable",
	},
	{
		Name: "approve", Type: "function",
		Inputs:          []ABIParam{{Name: "spender", Type: "address"}, {Name: "value", Type: "uint256"}},
		Outputs:         []ABIParam{{Type: "bool"}},
		StateMutability: "nonpayable",
	},
	{
		Name: "transferFrom", Type: "function",
		Inputs:          []ABIParam{{Name: "from", Type: "address"}, {Name: "to", Type: "address"}, {Name: "value", Type: "uint256"}},
		Outputs:         []ABIParam{{Type: "bool"}},
		StateMutability: "nonpayable",
	},
	{
		Name: "increaseAllowance", Type: "function",
		Inputs:          []ABIParam{{Name: "spender", Type: "address"}, {Name: "addedValue", Type: "uint256"}},
		Outputs:         []ABIParam{{Type: "bool"}},
		StateMutability: "nonpayable",
	},
	{
		Name: "decreaseAllowance", Type: "function",
		Inputs:          []ABIParam{{Name: "spender", Type: "address"}, {Name: "subtractedValue", Type: "uint256"}},
		Outputs:         []ABIParam{{Type: "bool"}},
		StateMutability: "nonpayable",
	},
	{
		Name: "mint", Type: "function",
		Inputs:          []ABIParam{{Name: "to", Type: "address"}, {Name: "amount", Type: "uint256"}},
		StateMutability: "nonpayable",
	},
	{
		Name: "burn", Type: "function",
		Inputs:          []ABIParam{{Name: "value", Type: "uint256"}},
		StateMutability: "nonpayable",
	},
	{
		Name: "burnFrom", Type: "function",
		Inputs:          []ABIParam{{Name: "account", Type: "address"}, {Name: "value", Type: "uint256"}},
		StateMutability: "nonpayable",
	},
	// ── Events (declared, not consumed) ──────────────────────────────────
	{
		Name: "Transfer", Type: "event",
		Inputs: []ABIParam{{Name: "from", Type: "address"}, {Name: "to", Type: "address"}, {Name: "value", Type: "uint256"}},
	},
	{
		Name: "Approval", Type: "event",
		Inputs: []ABIParam{{Name: "owner", Type: "address"}, {Name: "spender", Type: "address"}, {Name: "value", Type: "uint256"}},
	},
}

// ABI returns the contract interface table.
func ABI() []ABIEntry {
	return playgroundABI
}

// findEntry looks up a function by name.
func findEntry(name string) *ABIEntry {
	for i := range playgroundABI {
		if playgroundABI[i].Type == "function" && playgroundABI[i].Name == name {
			return &playgroundABI[i]
		}
	}
	return nil
}

// Selector computes the 4-byte function selector, hex-encoded with 0x.
func Selector(e *ABIEntry) string {
	types := make([]string, len(e.Inputs))
	for i, p := range e.Inputs {
		types[i] = p.Type
	}
	sig := e.Name + "(" + strings.Join(types, ",") + ")"

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(sig))
	return "0x" + hex.EncodeToString(h.Sum(nil)[:4])
}

// EncodeCall builds calldata for a function: selector + one 32-byte word
// per argument. Only the types the playground contract uses are supported
// (address, uint256/uint8).
func EncodeCall(funcName string, args []any) (string, error) {
	fn := findEntry(funcName)
	if fn == nil {
		return "", fmt.Errorf("function %q not in contract interface", funcName)
	}
	if len(args) != len(fn.Inputs) {
		return "", fmt.Errorf("%s expects %d args, got %d", funcName, len(fn.Inputs), len(args))
	}

	var sb strings.Builder
	sb.WriteString(Selector(fn))

	for i, arg := range args {
		word, err := encodeWord(arg)
		if err != nil {
			return "", fmt.Errorf("encoding %s arg %d: %w", funcName, i, err)
		}
		sb.WriteString(word)
	}
	return sb.String(), nil
}

// encodeWord encodes one typed value as a left-padded 32-byte hex word.
func encodeWord(arg any) (string, error) {
	switch v := arg.(type) {
	case common.Address:
		return fmt.Sprintf("%064s", strings.ToLower(hex.EncodeToString(v[:]))), nil
	case *big.Int:
		if v == nil || v.Sign() < 0 {
			return "", fmt.Errorf("integer argument must be non-negative")
		}
		return fmt.Sprintf("%064x", v), nil
	default:
		return "", fmt.Errorf("unsupported argument type %T", arg)
	}
}

// --- result decoding (read path) ---

// decodeUint decodes a single uint word result.
func decodeUint(hexData string) (*big.Int, error) {
	data, err := hexBytes(hexData)
	if err != nil || len(data) < 32 {
		return nil, fmt.Errorf("short uint result %q", hexData)
	}
	return new(big.Int).SetBytes(data[:32]), nil
}

// decodeAddress decodes a single address word result.
func decodeAddress(hexData string) (common.Address, error) {
	data, err := hexBytes(hexData)
	if err != nil || len(data) < 32 {
		return common.Address{}, fmt.Errorf("short address result %q", hexData)
	}
	return common.BytesToAddress(data[12:32]), nil
}

// decodeString decodes an offset+length dynamic string result.
func decodeString(hexData string) (string, error) {
	data, err := hexBytes(hexData)
	if err != nil || len(data) < 64 {
		return "", fmt.Errorf("short string result %q", hexData)
	}
	// Offset and length are untrusted words from the wire; compare before
	// converting so oversized values cannot wrap the bounds checks.
	size := uint64(len(data))
	offsetWord := new(big.Int).SetBytes(data[:32])
	if !offsetWord.IsUint64() || offsetWord.Uint64() > size-32 {
		return "", fmt.Errorf("string offset out of range")
	}
	offset := offsetWord.Uint64()

	lengthWord := new(big.Int).SetBytes(data[offset : offset+32])
	if !lengthWord.IsUint64() || lengthWord.Uint64() > size-offset-32 {
		return "", fmt.Errorf("string length out of range")
	}
	length := lengthWord.Uint64()

	start := offset + 32
	return string(data[start : start+length]), nil
}

func hexBytes(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}
