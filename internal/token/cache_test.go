package token

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReads counts every fetch per query and serves mutable canned values.
type fakeReads struct {
	calls map[string]int

	name        string
	symbol      string
	decimals    uint8
	totalSupply *big.Int
	owner       string
	balance     *big.Int
	allowance   *big.Int

	errFor map[string]error
}

func newFakeReads() *fakeReads {
	return &fakeReads{
		calls:       make(map[string]int),
		name:        "Playground Gold",
		symbol:      "PGLD",
		decimals:    18,
		totalSupply: wei("1000000000000000000000"),
		owner:       testFrom,
		balance:     wei("5000000000000000000"),
		allowance:   big.NewInt(0),
		errFor:      make(map[string]error),
	}
}

func (f *fakeReads) hit(q string) error {
	f.calls[q]++
	return f.errFor[q]
}

func (f *fakeReads) Name(contract string) (string, error) {
	return f.name, f.hit("name")
}

func (f *fakeReads) Symbol(contract string) (string, error) {
	return f.symbol, f.hit("symbol")
}

func (f *fakeReads) Decimals(contract string) (uint8, error) {
	return f.decimals, f.hit("decimals")
}

func (f *fakeReads) TotalSupply(contract string) (*big.Int, error) {
	return f.totalSupply, f.hit("totalSupply")
}

func (f *fakeReads) Owner(contract string) (string, error) {
	return f.owner, f.hit("owner")
}

func (f *fakeReads) BalanceOf(contract, account string) (*big.Int, error) {
	return f.balance, f.hit("balanceOf")
}

func (f *fakeReads) Allowance(contract, owner, spender string) (*big.Int, error) {
	return f.allowance, f.hit("allowance")
}

// ---------------------------------------------------------------------------
// enablement
// ---------------------------------------------------------------------------

func TestCacheNothingFetchedWithoutContract(t *testing.T) {
	reads := newFakeReads()
	c := NewCache(reads)

	c.SetInputs("", testFrom, testSpender)

	assert.Empty(t, reads.calls)
	_, ok := c.TokenName()
	assert.False(t, ok)
}

func TestCacheContractOnlyEnablesContractQueries(t *testing.T) {
	reads := newFakeReads()
	c := NewCache(reads)

	c.SetInputs(testContract, "", "")

	for _, q := range []string{"name", "symbol", "decimals", "totalSupply", "owner"} {
		assert.Equal(t, 1, reads.calls[q], q)
	}
	assert.Zero(t, reads.calls["balanceOf"])
	assert.Zero(t, reads.calls["allowance"])

	assert.False(t, c.Enabled(QueryBalance))
	assert.False(t, c.Enabled(QueryAllowance))
}

func TestCacheBalanceNeedsAccount(t *testing.T) {
	reads := newFakeReads()
	c := NewCache(reads)

	c.SetInputs(testContract, "", "")
	require.Zero(t, reads.calls["balanceOf"])

	c.SetInputs(testContract, testFrom, "")
	assert.Equal(t, 1, reads.calls["balanceOf"])

	bal, ok := c.Balance()
	require.True(t, ok)
	assert.Equal(t, reads.balance, bal)
}

func TestCacheAllowanceNeedsAccountAndSpender(t *testing.T) {
	reads := newFakeReads()
	c := NewCache(reads)

	c.SetInputs(testContract, testFrom, "")
	assert.Zero(t, reads.calls["allowance"])

	c.SetInputs(testContract, testFrom, testSpender)
	assert.Equal(t, 1, reads.calls["allowance"])
	assert.True(t, c.Enabled(QueryAllowance))
}

func TestCacheMalformedSpenderDisablesAllowance(t *testing.T) {
	reads := newFakeReads()
	c := NewCache(reads)

	c.SetInputs(testContract, testFrom, "not-an-address")
	assert.Zero(t, reads.calls["allowance"])
	assert.False(t, c.Enabled(QueryAllowance))
}

func TestCacheUnprefixedAccountDisablesBalance(t *testing.T) {
	reads := newFakeReads()
	c := NewCache(reads)

	c.SetInputs(testContract, testFrom[2:], "")
	assert.Zero(t, reads.calls["balanceOf"])
	assert.False(t, c.Enabled(QueryBalance))
}

func TestCacheDisablingForgetsValue(t *testing.T) {
	reads := newFakeReads()
	c := NewCache(reads)

	c.SetInputs(testContract, testFrom, testSpender)
	_, ok := c.Allowance()
	require.True(t, ok)

	// Clearing the spender must make the allowance unknown, not stale.
	c.SetInputs(testContract, testFrom, "")
	_, ok = c.Allowance()
	assert.False(t, ok)
}

func TestCacheMetadataNotRefetchedOnAccountChange(t *testing.T) {
	reads := newFakeReads()
	c := NewCache(reads)

	c.SetInputs(testContract, "", "")
	c.SetInputs(testContract, testFrom, "")
	c.SetInputs(testContract, testTo, "")

	assert.Equal(t, 1, reads.calls["name"])
	assert.Equal(t, 1, reads.calls["decimals"])
	// Balance depends on the account, so it was refetched.
	assert.Equal(t, 2, reads.calls["balanceOf"])
}

// ---------------------------------------------------------------------------
// invalidation
// ---------------------------------------------------------------------------

func TestCacheInvalidateAfterConfirm(t *testing.T) {
	reads := newFakeReads()
	c := NewCache(reads)
	c.SetInputs(testContract, testFrom, testSpender)

	reads.totalSupply = wei("2000000000000000000000")
	c.InvalidateAfterConfirm()

	assert.Equal(t, 2, reads.calls["totalSupply"])
	assert.Equal(t, 2, reads.calls["balanceOf"])
	assert.Equal(t, 2, reads.calls["allowance"])
	// Metadata is immutable per contract and must not be refetched.
	assert.Equal(t, 1, reads.calls["name"])
	assert.Equal(t, 1, reads.calls["symbol"])
	assert.Equal(t, 1, reads.calls["decimals"])
	assert.Equal(t, 1, reads.calls["owner"])

	supply, ok := c.TotalSupply()
	require.True(t, ok)
	assert.Equal(t, wei("2000000000000000000000"), supply)
}

func TestCacheInvalidateSkipsDisabled(t *testing.T) {
	reads := newFakeReads()
	c := NewCache(reads)
	c.SetInputs(testContract, "", "")

	c.InvalidateAfterConfirm()
	assert.Zero(t, reads.calls["balanceOf"])
	assert.Zero(t, reads.calls["allowance"])
	assert.Equal(t, 2, reads.calls["totalSupply"])
}

// ---------------------------------------------------------------------------
// errors and getters
// ---------------------------------------------------------------------------

func TestCacheFetchErrorDegradesOneQuery(t *testing.T) {
	reads := newFakeReads()
	reads.errFor["totalSupply"] = errors.New("rpc timeout")
	c := NewCache(reads)

	c.SetInputs(testContract, "", "")

	_, ok := c.TotalSupply()
	assert.False(t, ok)
	assert.Error(t, c.Err(QueryTotalSupply))

	// Neighbouring queries are unaffected.
	name, ok := c.TokenName()
	require.True(t, ok)
	assert.Equal(t, "Playground Gold", name)
}

func TestCacheDecimalsOrDefault(t *testing.T) {
	reads := newFakeReads()
	reads.decimals = 6
	c := NewCache(reads)

	assert.Equal(t, DefaultDecimals, c.DecimalsOrDefault())

	c.SetInputs(testContract, "", "")
	assert.Equal(t, 6, c.DecimalsOrDefault())
}

func TestCacheSubscribeNotified(t *testing.T) {
	reads := newFakeReads()
	c := NewCache(reads)

	var seen []QueryKey
	c.Subscribe(func(key QueryKey) { seen = append(seen, key) })

	c.SetInputs(testContract, "", "")
	assert.Contains(t, seen, QueryName)
	assert.Contains(t, seen, QueryTotalSupply)
	assert.NotContains(t, seen, QueryBalance)
}
