package token

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// fallbackGasLimit is used when the node's estimate is unavailable.
const fallbackGasLimit = 100_000

// SubmitClient is the RPC surface the gateway needs to broadcast a call.
// *chain.Client satisfies it.
type SubmitClient interface {
	EstimateGas(from, to, calldata string) (uint64, error)
	GasPrice() (*big.Int, error)
	Nonce(address string) (uint64, error)
	SendRawTransaction(rawTx string) (string, error)
}

// TxSigner signs transactions for the connected wallet. *wallet.Signer
// satisfies it.
type TxSigner interface {
	SignTx(tx *types.Transaction, chainID *big.Int) ([]byte, error)
	Address() string
}

// Gateway submits validated call descriptors to the chain. It is the sole
// suspension point before a transaction handle exists; callers must not
// issue a second Submit while one is outstanding.
type Gateway struct {
	client  SubmitClient
	signer  TxSigner
	chainID *big.Int

	// Approve is consulted once per submission before anything is signed.
	// Returning false cancels with ErrUserRejected. Nil approves all.
	Approve func(desc *CallDescriptor) bool
}

// NewGateway creates a gateway bound to one chain and signer.
func NewGateway(client SubmitClient, signer TxSigner, chainID *big.Int) *Gateway {
	return &Gateway{client: client, signer: signer, chainID: chainID}
}

// Submit encodes, signs, and broadcasts the call against contractAddr.
// Returns the transaction hash on acceptance, ErrUserRejected if the user
// cancelled, or a *SubmissionError carrying the underlying RPC/signing
// message.
func (g *Gateway) Submit(desc *CallDescriptor, contractAddr string) (string, error) {
	calldata, err := EncodeCall(desc.FunctionName, desc.Args)
	if err != nil {
		return "", &SubmissionError{Message: err.Error()}
	}

	if g.Approve != nil && !g.Approve(desc) {
		return "", ErrUserRejected
	}

	from := g.signer.Address()

	gas, err := g.client.EstimateGas(from, contractAddr, calldata)
	if err != nil {
		gas = fallbackGasLimit
	}
	gasPrice, err := g.client.GasPrice()
	if err != nil {
		return "", &SubmissionError{Message: err.Error()}
	}
	nonce, err := g.client.Nonce(from)
	if err != nil {
		return "", &SubmissionError{Message: err.Error()}
	}

	data, err := hex.DecodeString(strings.TrimPrefix(calldata, "0x"))
	if err != nil {
		return "", &SubmissionError{Message: err.Error()}
	}
	to := common.HexToAddress(contractAddr)

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   g.chainID,
		Nonce:     nonce,
		GasTipCap: gasPrice,
		GasFeeCap: new(big.Int).Mul(gasPrice, big.NewInt(2)),
		Gas:       gas,
		To:        &to,
		Value:     big.NewInt(0),
		Data:      data,
	})

	raw, err := g.signer.SignTx(tx, g.chainID)
	if err != nil {
		return "", &SubmissionError{Message: err.Error()}
	}

	hash, err := g.client.SendRawTransaction("0x" + hex.EncodeToString(raw))
	if err != nil {
		return "", &SubmissionError{Message: err.Error()}
	}
	return hash, nil
}
