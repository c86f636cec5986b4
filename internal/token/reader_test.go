package token

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReadClient serves a canned result per selector prefix.
type fakeReadClient struct {
	results map[string]string // selector → hex result
	err     error

	lastTo       string
	lastCalldata string
}

func (f *fakeReadClient) CallContract(to, calldata string) (string, error) {
	f.lastTo, f.lastCalldata = to, calldata
	if f.err != nil {
		return "", f.err
	}
	for sel, result := range f.results {
		if strings.HasPrefix(calldata, sel) {
			return result, nil
		}
	}
	return "0x", nil
}

const uintWord42 = "0x000000000000000000000000000000000000000000000000000000000000002a"

func TestReaderDecimals(t *testing.T) {
	client := &fakeReadClient{results: map[string]string{"0x313ce567": uintWord42}}
	r := NewReader(client)

	got, err := r.Decimals(testContract)
	require.NoError(t, err)
	assert.Equal(t, uint8(42), got)
	assert.Equal(t, testContract, client.lastTo)
}

func TestReaderName(t *testing.T) {
	raw := "0x" +
		"0000000000000000000000000000000000000000000000000000000000000020" +
		"0000000000000000000000000000000000000000000000000000000000000004" +
		"476f6c6400000000000000000000000000000000000000000000000000000000"
	client := &fakeReadClient{results: map[string]string{"0x06fdde03": raw}}
	r := NewReader(client)

	got, err := r.Name(testContract)
	require.NoError(t, err)
	assert.Equal(t, "Gold", got)
}

func TestReaderBalanceOfEncodesAccount(t *testing.T) {
	client := &fakeReadClient{results: map[string]string{"0x70a08231": uintWord42}}
	r := NewReader(client)

	got, err := r.BalanceOf(testContract, testFrom)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(42), got)
	assert.Contains(t, strings.ToLower(client.lastCalldata), strings.ToLower(testFrom[2:]))
}

func TestReaderAllowanceArgOrder(t *testing.T) {
	client := &fakeReadClient{results: map[string]string{"0xdd62ed3e": uintWord42}}
	r := NewReader(client)

	_, err := r.Allowance(testContract, testFrom, testSpender)
	require.NoError(t, err)

	calldata := strings.ToLower(client.lastCalldata)
	ownerPos := strings.Index(calldata, strings.ToLower(testFrom[2:]))
	spenderPos := strings.Index(calldata, strings.ToLower(testSpender[2:]))
	require.Positive(t, ownerPos)
	require.Positive(t, spenderPos)
	assert.Less(t, ownerPos, spenderPos, "owner must precede spender")
}

func TestReaderPropagatesRPCError(t *testing.T) {
	client := &fakeReadClient{err: errors.New("connection refused")}
	r := NewReader(client)

	_, err := r.TotalSupply(testContract)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "totalSupply")
}
