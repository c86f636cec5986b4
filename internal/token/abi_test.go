package token

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// selectors
// ---------------------------------------------------------------------------

func TestSelectors(t *testing.T) {
	// Well-known ERC-20 selectors; a mismatch here means the on-chain call
	// would hit the fallback function instead.
	tests := []struct {
		name     string
		selector string
	}{
		{"name", "0x06fdde03"},
		{"symbol", "0x95d89b41"},
		{"decimals", "0x313ce567"},
		{"totalSupply", "0x18160ddd"},
		{"owner", "0x8da5cb5b"},
		{"balanceOf", "0x70a08231"},
		{"allowance", "0xdd62ed3e"},
		{"transfer", "0xa9059cbb"},
		{"approve", "0x095ea7b3"},
		{"transferFrom", "0x23b872dd"},
		{"increaseAllowance", "0x39509351"},
		{"decreaseAllowance", "0xa457c2d7"},
		{"mint", "0x40c10f19"},
		{"burn", "0x42966c68"},
		{"burnFrom", "0x79cc6790"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := findEntry(tt.name)
			require.NotNil(t, e)
			assert.Equal(t, tt.selector, Selector(e))
		})
	}
}

func TestEveryActionHasAWriteEntry(t *testing.T) {
	for _, d := range Actions() {
		e := findEntry(string(d.Kind))
		require.NotNil(t, e, "no contract function for %s", d.Kind)
		assert.True(t, e.IsWrite(), "%s must be state-changing", d.Kind)
		// Address fields + amount must match the function arity.
		assert.Len(t, e.Inputs, len(d.AddressFields)+1, d.Kind)
	}
}

// ---------------------------------------------------------------------------
// EncodeCall
// ---------------------------------------------------------------------------

func TestEncodeCallTransfer(t *testing.T) {
	to := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	calldata, err := EncodeCall("transfer", []any{to, big.NewInt(1000)})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(calldata, "0xa9059cbb"))
	// selector + two 32-byte words
	assert.Len(t, calldata, 2+8+64+64)
	assert.Equal(t,
		"00000000000000000000000070997970c51812dc3a010c7d01b50e0d17dc79c8",
		calldata[10:74])
	assert.Equal(t,
		"00000000000000000000000000000000000000000000000000000000000003e8",
		calldata[74:])
}

func TestEncodeCallBurnSingleWord(t *testing.T) {
	calldata, err := EncodeCall("burn", []any{big.NewInt(5)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(calldata, "0x42966c68"))
	assert.Len(t, calldata, 2+8+64)
}

func TestEncodeCallNoArgs(t *testing.T) {
	calldata, err := EncodeCall("totalSupply", nil)
	require.NoError(t, err)
	assert.Equal(t, "0x18160ddd", calldata)
}

func TestEncodeCallArityMismatch(t *testing.T) {
	_, err := EncodeCall("transfer", []any{big.NewInt(1)})
	assert.Error(t, err)
}

func TestEncodeCallUnknownFunction(t *testing.T) {
	_, err := EncodeCall("selfdestruct", nil)
	assert.Error(t, err)
}

func TestEncodeCallRejectsNegative(t *testing.T) {
	_, err := EncodeCall("burn", []any{big.NewInt(-1)})
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// result decoding
// ---------------------------------------------------------------------------

func TestDecodeUint(t *testing.T) {
	got, err := decodeUint("0x" + strings.Repeat("0", 63) + "a")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(10), got)
}

func TestDecodeAddress(t *testing.T) {
	raw := "0x000000000000000000000000f39fd6e51aad88f6f4ce6ab8827279cfffb92266"
	got, err := decodeAddress(raw)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), got)
}

func TestDecodeString(t *testing.T) {
	// offset=0x20, length=4, "Gold" padded to a word.
	raw := "0x" +
		"0000000000000000000000000000000000000000000000000000000000000020" +
		"0000000000000000000000000000000000000000000000000000000000000004" +
		"476f6c6400000000000000000000000000000000000000000000000000000000"
	got, err := decodeString(raw)
	require.NoError(t, err)
	assert.Equal(t, "Gold", got)
}

func TestDecodeStringShortResult(t *testing.T) {
	_, err := decodeString("0x00")
	assert.Error(t, err)
}

func TestDecodeStringHostilePayloads(t *testing.T) {
	// Offset and length words come straight off the wire; corrupt values
	// must come back as errors, never index out of range.
	word := func(hex string) string {
		return strings.Repeat("0", 64-len(hex)) + hex
	}
	zero := word("0")
	tests := []struct {
		name string
		raw  string
	}{
		{"offset wraps uint64", "0x" + word("fffffffffffffff0") + zero},
		{"length wraps uint64", "0x" + word("20") + word("fffffffffffffff0")},
		{"offset past end", "0x" + word("40") + zero},
		{"length past end", "0x" + word("20") + word("21")},
		{"offset exceeds uint64", "0x" + strings.Repeat("ff", 32) + zero},
		{"length exceeds uint64", "0x" + word("20") + strings.Repeat("ff", 32)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeString(tt.raw)
			assert.Error(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestDecodeUintShortResult(t *testing.T) {
	_, err := decodeUint("0x")
	assert.Error(t, err)
}
