package chain

import "errors"

// ErrChainNotFound is returned when a chain is not in the registry.
var ErrChainNotFound = errors.New("chain not found")

// Chain holds the metadata for one supported network.
type Chain struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	ChainID     int64  `json:"chain_id"`
	RPCURL      string `json:"rpc_url"`
	Explorer    string `json:"explorer,omitempty"`
}

// Registry is the closed set of networks the playground supports. The
// contract is deployed to a local Anvil node during development and to
// Sepolia for shared testing.
type Registry struct {
	chains []Chain
	byName map[string]*Chain
	byID   map[int64]*Chain
}

// NewRegistry returns the registry of supported chains.
func NewRegistry() *Registry {
	chains := []Chain{
		{
			Name:        "anvil",
			DisplayName: "Anvil (local)",
			ChainID:     31337,
			RPCURL:      "http://127.0.0.1:8545",
		},
		{
			Name:        "sepolia",
			DisplayName: "Sepolia",
			ChainID:     11155111,
			RPCURL:      "https://rpc.sepolia.org",
			Explorer:    "https://sepolia.etherscan.io",
		},
	}

	r := &Registry{
		chains: chains,
		byName: make(map[string]*Chain, len(chains)),
		byID:   make(map[int64]*Chain, len(chains)),
	}
	for i := range r.chains {
		c := &r.chains[i]
		r.byName[c.Name] = c
		r.byID[c.ChainID] = c
	}
	return r
}

// All returns every supported chain.
func (r *Registry) All() []Chain {
	return r.chains
}

// GetByName finds a chain by its slug name (e.g. "anvil").
func (r *Registry) GetByName(name string) (*Chain, error) {
	if c, ok := r.byName[name]; ok {
		return c, nil
	}
	return nil, ErrChainNotFound
}

// GetByID finds a chain by its numeric chain id.
func (r *Registry) GetByID(id int64) (*Chain, error) {
	if c, ok := r.byID[id]; ok {
		return c, nil
	}
	return nil, ErrChainNotFound
}
