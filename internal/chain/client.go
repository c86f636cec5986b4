package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"
)

// Client is a minimal JSON-RPC client for the chains the playground
// supports. Every method is a single request/response round trip.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a client pointed at a JSON-RPC endpoint.
func NewClient(url string) *Client {
	return &Client{
		url: url,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// URL returns the endpoint this client talks to.
func (c *Client) URL() string { return c.url }

// CallContract executes a read-only contract call (eth_call) and returns
// the raw hex result.
func (c *Client) CallContract(to, calldata string) (string, error) {
	result, err := c.call("eth_call", map[string]string{
		"to":   to,
		"data": calldata,
	}, "latest")
	if err != nil {
		return "", err
	}
	return asHexString(result)
}

// ChainID returns the chain's numeric identifier.
func (c *Client) ChainID() (int64, error) {
	n, err := c.callBig("eth_chainId")
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}

// GasPrice returns the current gas price in wei.
func (c *Client) GasPrice() (*big.Int, error) {
	return c.callBig("eth_gasPrice")
}

// Nonce returns the transaction count for an address at the latest block.
func (c *Client) Nonce(address string) (uint64, error) {
	n, err := c.callBig("eth_getTransactionCount", address, "latest")
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// EstimateGas estimates the gas limit for a contract call.
func (c *Client) EstimateGas(from, to, calldata string) (uint64, error) {
	n, err := c.callBig("eth_estimateGas", map[string]string{
		"from": from,
		"to":   to,
		"data": calldata,
	}, "latest")
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// SendRawTransaction broadcasts a signed raw transaction and returns its
// hash.
func (c *Client) SendRawTransaction(rawTx string) (string, error) {
	result, err := c.call("eth_sendRawTransaction", rawTx)
	if err != nil {
		return "", err
	}
	return asHexString(result)
}

// Receipt is the on-chain record of a mined transaction.
type Receipt struct {
	Hash        string
	Status      uint64 // 1 = success, 0 = reverted
	BlockNumber uint64
	GasUsed     uint64
}

// Success reports whether the transaction executed without reverting.
func (r *Receipt) Success() bool { return r.Status == 1 }

// TransactionReceipt fetches the receipt for hash. A nil receipt with a
// nil error means the transaction is still pending.
func (c *Client) TransactionReceipt(hash string) (*Receipt, error) {
	result, err := c.call("eth_getTransactionReceipt", hash)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil // still pending
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	var r struct {
		Status      string `json:"status"`
		BlockNumber string `json:"blockNumber"`
		GasUsed     string `json:"gasUsed"`
	}
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, err
	}

	receipt := &Receipt{Hash: hash}
	if s, ok := parseBigHex(r.Status); ok {
		receipt.Status = s.Uint64()
	}
	if bn, ok := parseBigHex(r.BlockNumber); ok {
		receipt.BlockNumber = bn.Uint64()
	}
	if gu, ok := parseBigHex(r.GasUsed); ok {
		receipt.GasUsed = gu.Uint64()
	}
	return receipt, nil
}

// WaitForReceipt polls until the transaction is mined or the context
// expires. A reverted transaction is returned with a nil error; the caller
// inspects Receipt.Success.
func (c *Client) WaitForReceipt(ctx context.Context, hash string, interval time.Duration) (*Receipt, error) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		receipt, err := c.TransactionReceipt(hash)
		if err != nil {
			return nil, err
		}
		if receipt != nil {
			return receipt, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for transaction %s: %w", hash, ctx.Err())
		case <-ticker.C:
		}
	}
}

// --- JSON-RPC plumbing ---

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int    `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *Client) call(method string, params ...any) (any, error) {
	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Post(c.url, "application/json", strings.NewReader(string(reqBody)))
	if err != nil {
		return nil, fmt.Errorf("RPC request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, fmt.Errorf("RPC error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}

	var result any
	if err := json.Unmarshal(rpcResp.Result, &result); err != nil {
		return nil, fmt.Errorf("parsing result: %w", err)
	}
	return result, nil
}

func (c *Client) callBig(method string, params ...any) (*big.Int, error) {
	result, err := c.call(method, params...)
	if err != nil {
		return nil, err
	}
	hexStr, err := asHexString(result)
	if err != nil {
		return nil, err
	}
	n, ok := parseBigHex(hexStr)
	if !ok {
		return nil, fmt.Errorf("could not parse %s result %q", method, hexStr)
	}
	return n, nil
}

func asHexString(result any) (string, error) {
	s, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("unexpected result type %T", result)
	}
	return s, nil
}

func parseBigHex(s string) (*big.Int, bool) {
	return new(big.Int).SetString(strings.TrimPrefix(s, "0x"), 16)
}
