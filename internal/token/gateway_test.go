package token

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSubmitClient records what the gateway asks for and returns canned
// values.
type fakeSubmitClient struct {
	estimateErr error
	gasPriceErr error
	nonceErr    error
	sendErr     error

	sentRaw string
}

func (f *fakeSubmitClient) EstimateGas(from, to, calldata string) (uint64, error) {
	if f.estimateErr != nil {
		return 0, f.estimateErr
	}
	return 21_000, nil
}

func (f *fakeSubmitClient) GasPrice() (*big.Int, error) {
	if f.gasPriceErr != nil {
		return nil, f.gasPriceErr
	}
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeSubmitClient) Nonce(address string) (uint64, error) {
	if f.nonceErr != nil {
		return 0, f.nonceErr
	}
	return 7, nil
}

func (f *fakeSubmitClient) SendRawTransaction(rawTx string) (string, error) {
	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.sentRaw = rawTx
	return "0xdeadbeef", nil
}

// fakeSigner captures the transaction it was asked to sign.
type fakeSigner struct {
	signed *types.Transaction
	err    error
}

func (f *fakeSigner) SignTx(tx *types.Transaction, chainID *big.Int) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.signed = tx
	return []byte{0x01, 0x02}, nil
}

func (f *fakeSigner) Address() string {
	return testFrom
}

func transferDesc(t *testing.T) *CallDescriptor {
	t.Helper()
	form := &FormState{SelectedAction: ActionTransfer, To: testTo, Amount: "1"}
	desc, err := Validate(form, validEnv())
	require.NoError(t, err)
	return desc
}

func TestGatewaySubmitHappyPath(t *testing.T) {
	client := &fakeSubmitClient{}
	signer := &fakeSigner{}
	g := NewGateway(client, signer, big.NewInt(31337))

	hash, err := g.Submit(transferDesc(t), testContract)
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", hash)

	require.NotNil(t, signer.signed)
	assert.Equal(t, uint64(7), signer.signed.Nonce())
	assert.Equal(t, uint64(21_000), signer.signed.Gas())
	assert.Equal(t, common.HexToAddress(testContract), *signer.signed.To())
	assert.Equal(t, big.NewInt(2_000_000_000), signer.signed.GasFeeCap())
	assert.True(t, strings.HasPrefix(client.sentRaw, "0x0102"))
}

func TestGatewaySubmitEncodesCalldata(t *testing.T) {
	client := &fakeSubmitClient{}
	signer := &fakeSigner{}
	g := NewGateway(client, signer, big.NewInt(31337))

	_, err := g.Submit(transferDesc(t), testContract)
	require.NoError(t, err)

	data := signer.signed.Data()
	require.True(t, len(data) >= 4)
	assert.Equal(t, []byte{0xa9, 0x05, 0x9c, 0xbb}, data[:4])
}

func TestGatewayApproveHookRejects(t *testing.T) {
	client := &fakeSubmitClient{}
	signer := &fakeSigner{}
	g := NewGateway(client, signer, big.NewInt(31337))
	g.Approve = func(*CallDescriptor) bool { return false }

	_, err := g.Submit(transferDesc(t), testContract)
	assert.ErrorIs(t, err, ErrUserRejected)
	// Nothing was signed or sent.
	assert.Nil(t, signer.signed)
	assert.Empty(t, client.sentRaw)
}

func TestGatewayApproveHookSeesDescriptor(t *testing.T) {
	client := &fakeSubmitClient{}
	g := NewGateway(client, &fakeSigner{}, big.NewInt(31337))

	var seen *CallDescriptor
	g.Approve = func(d *CallDescriptor) bool { seen = d; return true }

	desc := transferDesc(t)
	_, err := g.Submit(desc, testContract)
	require.NoError(t, err)
	assert.Same(t, desc, seen)
}

func TestGatewayEstimateFailureFallsBack(t *testing.T) {
	client := &fakeSubmitClient{estimateErr: errors.New("execution reverted")}
	signer := &fakeSigner{}
	g := NewGateway(client, signer, big.NewInt(31337))

	_, err := g.Submit(transferDesc(t), testContract)
	require.NoError(t, err)
	assert.Equal(t, uint64(fallbackGasLimit), signer.signed.Gas())
}

func TestGatewaySubmissionErrors(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeSubmitClient
		signer *fakeSigner
	}{
		{"gas price", &fakeSubmitClient{gasPriceErr: errors.New("rpc down")}, &fakeSigner{}},
		{"nonce", &fakeSubmitClient{nonceErr: errors.New("rpc down")}, &fakeSigner{}},
		{"signing", &fakeSubmitClient{}, &fakeSigner{err: errors.New("bad key")}},
		{"broadcast", &fakeSubmitClient{sendErr: errors.New("insufficient funds")}, &fakeSigner{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGateway(tt.client, tt.signer, big.NewInt(31337))
			_, err := g.Submit(transferDesc(t), testContract)
			var subErr *SubmissionError
			require.ErrorAs(t, err, &subErr)
			assert.NotEmpty(t, subErr.Message)
		})
	}
}
