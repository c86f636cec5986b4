package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/MaksRe/solidity-erc20-playground/internal/chain"
	"github.com/MaksRe/solidity-erc20-playground/internal/token"
	"github.com/MaksRe/solidity-erc20-playground/internal/wallet"
)

// receiptPollInterval is how often pending transactions are re-checked.
const receiptPollInterval = 2 * time.Second

// resolveChain maps the configured chain id to a registry entry.
func resolveChain() (*chain.Chain, error) {
	reg := chain.NewRegistry()
	c, err := reg.GetByID(cfg.ChainID)
	if err != nil {
		return nil, fmt.Errorf("chain id %d: %w (run `playground config chains`)", cfg.ChainID, err)
	}
	return c, nil
}

// newRPCClient builds a JSON-RPC client for the configured chain.
func newRPCClient() (*chain.Client, *chain.Chain, error) {
	c, err := resolveChain()
	if err != nil {
		return nil, nil, err
	}
	return chain.NewClient(c.RPCURL), c, nil
}

// newWalletManager builds the wallet manager backed by the config dir and
// the OS keyring.
func newWalletManager() *wallet.Manager {
	return wallet.NewManager(wallet.WithStore(wallet.NewFileStore(cfg.WalletStorePath())))
}

// connectedAddress returns the connected wallet's address, or "" when no
// wallet is connected.
func connectedAddress(mgr *wallet.Manager) string {
	w, err := mgr.Connected()
	if err != nil {
		return ""
	}
	return w.Address
}

// receiptSource adapts the RPC client to the console's receipt interface.
type receiptSource struct {
	client *chain.Client
}

func (r receiptSource) Outcome(hash string) token.Outcome {
	rcpt, err := r.client.WaitForReceipt(context.Background(), hash, receiptPollInterval)
	if err != nil {
		return token.Outcome{Reason: err.Error()}
	}
	if !rcpt.Success() {
		return token.Outcome{Reason: "transaction reverted"}
	}
	return token.Outcome{Success: true}
}
