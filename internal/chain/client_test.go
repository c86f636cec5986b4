package chain

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

// rpcMock creates a test HTTP server that serves a fixed JSON-RPC response
// per method. Pass method→result pairs; any unknown method returns an RPC error.
func rpcMock(t *testing.T, responses map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
			ID     int    `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if result, ok := responses[req.Method]; ok {
			json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
				"jsonrpc": "2.0",
				"id":      req.ID,
				"result":  result,
			})
		} else {
			json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
				"jsonrpc": "2.0",
				"id":      req.ID,
				"error":   map[string]interface{}{"code": -32601, "message": "method not found"},
			})
		}
	}))
}

// rpcErrorServer creates a test HTTP server that always returns a JSON-RPC error.
func rpcErrorServer(t *testing.T, code int, msg string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID int `json:"id"`
		}
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"jsonrpc": "2.0",
			"id":      req.ID,
			"error":   map[string]interface{}{"code": code, "message": msg},
		})
	}))
}

// ---------------------------------------------------------------------------
// read calls
// ---------------------------------------------------------------------------

func TestCallContract(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_call": "0x000000000000000000000000000000000000000000000000000000000000002a",
	})
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.CallContract("0x5FbDB2315678afecb367f032d93F642f64180aa3", "0x18160ddd")
	require.NoError(t, err)
	assert.Equal(t, "0x000000000000000000000000000000000000000000000000000000000000002a", got)
}

func TestCallContractRPCError(t *testing.T) {
	srv := rpcErrorServer(t, 3, "execution reverted")
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.CallContract("0x5FbDB2315678afecb367f032d93F642f64180aa3", "0x18160ddd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "execution reverted")
}

func TestChainID(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_chainId": "0x7a69"})
	defer srv.Close()

	c := NewClient(srv.URL)
	id, err := c.ChainID()
	require.NoError(t, err)
	assert.Equal(t, int64(31337), id)
}

func TestGasPrice(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_gasPrice": "0x3b9aca00"})
	defer srv.Close()

	c := NewClient(srv.URL)
	price, err := c.GasPrice()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1_000_000_000), price)
}

func TestNonce(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_getTransactionCount": "0x7"})
	defer srv.Close()

	c := NewClient(srv.URL)
	nonce, err := c.Nonce("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), nonce)
}

func TestEstimateGas(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_estimateGas": "0xcf08"})
	defer srv.Close()

	c := NewClient(srv.URL)
	gas, err := c.EstimateGas("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		"0x5FbDB2315678afecb367f032d93F642f64180aa3", "0xa9059cbb")
	require.NoError(t, err)
	assert.Equal(t, uint64(53000), gas)
}

func TestSendRawTransaction(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_sendRawTransaction": "0xdeadbeef"})
	defer srv.Close()

	c := NewClient(srv.URL)
	hash, err := c.SendRawTransaction("0x0102")
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", hash)
}

// ---------------------------------------------------------------------------
// receipts
// ---------------------------------------------------------------------------

func TestTransactionReceiptSuccess(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getTransactionReceipt": map[string]interface{}{
			"transactionHash": "0xabc",
			"status":          "0x1",
			"blockNumber":     "0x10",
			"gasUsed":         "0x5208",
		},
	})
	defer srv.Close()

	c := NewClient(srv.URL)
	r, err := c.TransactionReceipt("0xabc")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.True(t, r.Success())
	assert.Equal(t, uint64(16), r.BlockNumber)
	assert.Equal(t, uint64(21000), r.GasUsed)
}

func TestTransactionReceiptReverted(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getTransactionReceipt": map[string]interface{}{
			"transactionHash": "0xabc",
			"status":          "0x0",
		},
	})
	defer srv.Close()

	c := NewClient(srv.URL)
	r, err := c.TransactionReceipt("0xabc")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.False(t, r.Success())
}

func TestTransactionReceiptPending(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_getTransactionReceipt": nil})
	defer srv.Close()

	c := NewClient(srv.URL)
	r, err := c.TransactionReceipt("0xabc")
	require.NoError(t, err)
	assert.Nil(t, r, "pending transaction has no receipt yet")
}

func TestWaitForReceiptPolls(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID int `json:"id"`
		}
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
		hits++
		var result interface{}
		if hits >= 3 {
			result = map[string]interface{}{"transactionHash": "0xabc", "status": "0x1"}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"jsonrpc": "2.0", "id": req.ID, "result": result,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	r, err := c.WaitForReceipt(context.Background(), "0xabc", 10*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, r.Success())
	assert.GreaterOrEqual(t, hits, 3)
}

func TestWaitForReceiptContextCancelled(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_getTransactionReceipt": nil})
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	c := NewClient(srv.URL)
	_, err := c.WaitForReceipt(ctx, "0xabc", 10*time.Millisecond)
	assert.Error(t, err)
}

func TestClientUnreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")
	_, err := c.GasPrice()
	assert.Error(t, err)
}
