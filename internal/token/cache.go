package token

import (
	"math/big"
	"sync"
)

// QueryKey identifies one tracked read query.
type QueryKey string

const (
	QueryName        QueryKey = "name"
	QuerySymbol      QueryKey = "symbol"
	QueryDecimals    QueryKey = "decimals"
	QueryTotalSupply QueryKey = "totalSupply"
	QueryOwner       QueryKey = "owner"
	QueryBalance     QueryKey = "balanceOf"
	QueryAllowance   QueryKey = "allowance"
)

// metadataQueries never change for a contract instance, so they are
// fetched once and never invalidated by transactions.
var metadataQueries = map[QueryKey]bool{
	QueryName:     true,
	QuerySymbol:   true,
	QueryDecimals: true,
	QueryOwner:    true,
}

// queryDeps declares which address inputs each query needs beyond the
// contract address itself. A query with a missing or malformed dependency
// is disabled: it issues no network call and its value is unknown.
var queryDeps = map[QueryKey]struct{ account, spender bool }{
	QueryName:        {},
	QuerySymbol:      {},
	QueryDecimals:    {},
	QueryTotalSupply: {},
	QueryOwner:       {},
	QueryBalance:     {account: true},
	QueryAllowance:   {account: true, spender: true},
}

// ReadSource is the typed read surface the cache fetches from. *Reader
// satisfies it.
type ReadSource interface {
	Name(contract string) (string, error)
	Symbol(contract string) (string, error)
	Decimals(contract string) (uint8, error)
	TotalSupply(contract string) (*big.Int, error)
	Owner(contract string) (string, error)
	BalanceOf(contract, account string) (*big.Int, error)
	Allowance(contract, owner, spender string) (*big.Int, error)
}

type cacheEntry struct {
	enabled bool
	known   bool
	value   any
	err     error
}

// Cache holds the latest fetched read values. Each query is gated by an
// enablement rule derived from the current contract/account/spender
// inputs; a disabled query never hits the network and reports unknown,
// not zero. Values are refetched on explicit invalidation and the moment
// a query becomes enabled.
type Cache struct {
	mu      sync.Mutex
	reader  ReadSource
	entries map[QueryKey]*cacheEntry

	contract string
	account  string
	spender  string

	subs []func(QueryKey)
}

// NewCache creates an empty cache over a read source.
func NewCache(reader ReadSource) *Cache {
	c := &Cache{
		reader:  reader,
		entries: make(map[QueryKey]*cacheEntry, len(queryDeps)),
	}
	for key := range queryDeps {
		c.entries[key] = &cacheEntry{}
	}
	return c
}

// Subscribe registers a callback invoked after every entry update, with
// the key that changed. Used by the UI to re-render.
func (c *Cache) Subscribe(fn func(QueryKey)) {
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	c.mu.Unlock()
}

// SetInputs updates the dependent addresses and re-derives each query's
// enablement. Queries that become enabled (or whose dependencies changed
// while enabled) are fetched immediately; queries that become disabled
// forget their value.
func (c *Cache) SetInputs(contract, account, spender string) {
	c.mu.Lock()
	contractChanged := c.contract != contract
	accountChanged := c.account != account
	spenderChanged := c.spender != spender
	c.contract, c.account, c.spender = contract, account, spender

	var toFetch []QueryKey
	for key, entry := range c.entries {
		enabled := c.enabledLocked(key)
		wasEnabled := entry.enabled
		entry.enabled = enabled
		if !enabled {
			entry.known = false
			entry.value = nil
			entry.err = nil
			continue
		}
		deps := queryDeps[key]
		depsChanged := contractChanged ||
			(deps.account && accountChanged) ||
			(deps.spender && spenderChanged)
		if !wasEnabled || depsChanged {
			toFetch = append(toFetch, key)
		}
	}
	c.mu.Unlock()

	for _, key := range toFetch {
		c.refresh(key)
	}
}

// Invalidate refetches the given queries. Disabled queries stay unknown.
func (c *Cache) Invalidate(keys ...QueryKey) {
	for _, key := range keys {
		c.mu.Lock()
		enabled := c.entries[key] != nil && c.entries[key].enabled
		c.mu.Unlock()
		if enabled {
			c.refresh(key)
		}
	}
}

// InvalidateAfterConfirm refetches exactly the values a confirmed
// transaction can change: total supply, the caller's balance, and the
// displayed allowance. Metadata is immutable per contract instance and is
// never refetched.
func (c *Cache) InvalidateAfterConfirm() {
	c.Invalidate(QueryTotalSupply, QueryBalance, QueryAllowance)
}

// Enabled reports whether the query currently issues network calls.
func (c *Cache) Enabled(key QueryKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[key]
	return e != nil && e.enabled
}

// Value returns the cached value and whether it is known. A disabled or
// failed query reports unknown.
func (c *Cache) Value(key QueryKey) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[key]
	if e == nil || !e.known {
		return nil, false
	}
	return e.value, true
}

// Err returns the last fetch error for a query, if any.
func (c *Cache) Err(key QueryKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e := c.entries[key]; e != nil {
		return e.err
	}
	return nil
}

// --- typed getters ---

// TokenName returns the cached token name.
func (c *Cache) TokenName() (string, bool) {
	v, ok := c.Value(QueryName)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// TokenSymbol returns the cached token symbol.
func (c *Cache) TokenSymbol() (string, bool) {
	v, ok := c.Value(QuerySymbol)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Decimals returns the cached decimals value.
func (c *Cache) Decimals() (uint8, bool) {
	v, ok := c.Value(QueryDecimals)
	if !ok {
		return 0, false
	}
	d, ok := v.(uint8)
	return d, ok
}

// DecimalsOrDefault returns the cached decimals, or DefaultDecimals when
// unknown.
func (c *Cache) DecimalsOrDefault() int {
	if d, ok := c.Decimals(); ok {
		return int(d)
	}
	return DefaultDecimals
}

// TotalSupply returns the cached total supply.
func (c *Cache) TotalSupply() (*big.Int, bool) {
	v, ok := c.Value(QueryTotalSupply)
	if !ok {
		return nil, false
	}
	n, ok := v.(*big.Int)
	return n, ok
}

// Owner returns the cached contract owner address.
func (c *Cache) Owner() (string, bool) {
	v, ok := c.Value(QueryOwner)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Balance returns the cached balance of the connected account.
func (c *Cache) Balance() (*big.Int, bool) {
	v, ok := c.Value(QueryBalance)
	if !ok {
		return nil, false
	}
	n, ok := v.(*big.Int)
	return n, ok
}

// Allowance returns the cached allowance for the current spender.
func (c *Cache) Allowance() (*big.Int, bool) {
	v, ok := c.Value(QueryAllowance)
	if !ok {
		return nil, false
	}
	n, ok := v.(*big.Int)
	return n, ok
}

// --- internals ---

func (c *Cache) enabledLocked(key QueryKey) bool {
	if !wellFormedAddress(c.contract) {
		return false
	}
	deps := queryDeps[key]
	if deps.account && !wellFormedAddress(c.account) {
		return false
	}
	if deps.spender && !wellFormedAddress(c.spender) {
		return false
	}
	return true
}

// refresh performs the network fetch for one query and stores the result.
// A fetch error degrades only that query's value to unknown.
func (c *Cache) refresh(key QueryKey) {
	c.mu.Lock()
	if e := c.entries[key]; e == nil || !e.enabled {
		c.mu.Unlock()
		return
	}
	contract, account, spender := c.contract, c.account, c.spender
	c.mu.Unlock()

	value, err := c.fetch(key, contract, account, spender)

	c.mu.Lock()
	e := c.entries[key]
	if err != nil {
		e.known = false
		e.value = nil
		e.err = err
	} else {
		e.known = true
		e.value = value
		e.err = nil
	}
	subs := c.subs
	c.mu.Unlock()

	for _, fn := range subs {
		fn(key)
	}
}

func (c *Cache) fetch(key QueryKey, contract, account, spender string) (any, error) {
	switch key {
	case QueryName:
		return c.reader.Name(contract)
	case QuerySymbol:
		return c.reader.Symbol(contract)
	case QueryDecimals:
		return c.reader.Decimals(contract)
	case QueryTotalSupply:
		return c.reader.TotalSupply(contract)
	case QueryOwner:
		return c.reader.Owner(contract)
	case QueryBalance:
		return c.reader.BalanceOf(contract, account)
	case QueryAllowance:
		return c.reader.Allowance(contract, account, spender)
	}
	return nil, nil
}
