package token

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ReadClient is the RPC surface the reader needs. *chain.Client satisfies
// it.
type ReadClient interface {
	CallContract(to, calldata string) (string, error)
}

// Reader issues typed read calls against the playground contract.
type Reader struct {
	client ReadClient
}

// NewReader creates a reader on top of an RPC client.
func NewReader(client ReadClient) *Reader {
	return &Reader{client: client}
}

func (r *Reader) readRaw(contract, funcName string, args ...any) (string, error) {
	calldata, err := EncodeCall(funcName, args)
	if err != nil {
		return "", err
	}
	result, err := r.client.CallContract(contract, calldata)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", funcName, err)
	}
	return result, nil
}

// Name returns the token name.
func (r *Reader) Name(contract string) (string, error) {
	raw, err := r.readRaw(contract, "name")
	if err != nil {
		return "", err
	}
	return decodeString(raw)
}

// Symbol returns the token symbol.
func (r *Reader) Symbol(contract string) (string, error) {
	raw, err := r.readRaw(contract, "symbol")
	if err != nil {
		return "", err
	}
	return decodeString(raw)
}

// Decimals returns the token's decimal places.
func (r *Reader) Decimals(contract string) (uint8, error) {
	raw, err := r.readRaw(contract, "decimals")
	if err != nil {
		return 0, err
	}
	n, err := decodeUint(raw)
	if err != nil {
		return 0, err
	}
	return uint8(n.Uint64()), nil
}

// TotalSupply returns the current total supply in base units.
func (r *Reader) TotalSupply(contract string) (*big.Int, error) {
	raw, err := r.readRaw(contract, "totalSupply")
	if err != nil {
		return nil, err
	}
	return decodeUint(raw)
}

// Owner returns the contract owner's address.
func (r *Reader) Owner(contract string) (string, error) {
	raw, err := r.readRaw(contract, "owner")
	if err != nil {
		return "", err
	}
	addr, err := decodeAddress(raw)
	if err != nil {
		return "", err
	}
	return addr.Hex(), nil
}

// BalanceOf returns account's balance in base units.
func (r *Reader) BalanceOf(contract, account string) (*big.Int, error) {
	raw, err := r.readRaw(contract, "balanceOf", common.HexToAddress(account))
	if err != nil {
		return nil, err
	}
	return decodeUint(raw)
}

// Allowance returns the amount owner has approved spender to use.
func (r *Reader) Allowance(contract, owner, spender string) (*big.Int, error) {
	raw, err := r.readRaw(contract, "allowance",
		common.HexToAddress(owner), common.HexToAddress(spender))
	if err != nil {
		return nil, err
	}
	return decodeUint(raw)
}
