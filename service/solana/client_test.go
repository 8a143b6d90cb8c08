package solana

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/brojonat/minisol/service/metrics"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRPCClient implements RPCClient for testing.
// It's behavior-focused: we set what it should return and inspect what it was sent.
type mockRPCClient struct {
	balance   uint64
	airdrop   solana.Signature
	status    *rpc.SignatureStatusesResult
	blockhash solana.Hash
	sent      solana.Signature
	err       error

	submitted []*solana.Transaction
	calls     []string
}

func (m *mockRPCClient) GetBalance(
	ctx context.Context,
	account solana.PublicKey,
	commitment rpc.CommitmentType,
) (*rpc.GetBalanceResult, error) {
	m.calls = append(m.calls, "GetBalance")
	if m.err != nil {
		return nil, m.err
	}
	return &rpc.GetBalanceResult{Value: m.balance}, nil
}

func (m *mockRPCClient) RequestAirdrop(
	ctx context.Context,
	account solana.PublicKey,
	lamports uint64,
	commitment rpc.CommitmentType,
) (solana.Signature, error) {
	m.calls = append(m.calls, "RequestAirdrop")
	if m.err != nil {
		return solana.Signature{}, m.err
	}
	return m.airdrop, nil
}

func (m *mockRPCClient) GetSignatureStatuses(
	ctx context.Context,
	searchTransactionHistory bool,
	signatures ...solana.Signature,
) (*rpc.GetSignatureStatusesResult, error) {
	m.calls = append(m.calls, "GetSignatureStatuses")
	if m.err != nil {
		return nil, m.err
	}
	return &rpc.GetSignatureStatusesResult{
		Value: []*rpc.SignatureStatusesResult{m.status},
	}, nil
}

func (m *mockRPCClient) GetLatestBlockhash(
	ctx context.Context,
	commitment rpc.CommitmentType,
) (*rpc.GetLatestBlockhashResult, error) {
	m.calls = append(m.calls, "GetLatestBlockhash")
	if m.err != nil {
		return nil, m.err
	}
	return &rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{Blockhash: m.blockhash},
	}, nil
}

func (m *mockRPCClient) SendAndConfirmTransaction(
	ctx context.Context,
	tx *solana.Transaction,
) (solana.Signature, error) {
	m.calls = append(m.calls, "SendAndConfirmTransaction")
	if m.err != nil {
		return solana.Signature{}, m.err
	}
	m.submitted = append(m.submitted, tx)
	return m.sent, nil
}

func newTestClient(mock *mockRPCClient, m *metrics.Metrics) *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(mock, Devnet, m, logger)
}

var (
	testSignature = solana.MustSignatureFromBase58("5j7s6NiJS3JAkvgkoc18WVAsiSaci2pxB2A6ueCJP4tprA2TFg9wSyTLeYouxPBJEMzJinENTkpA52YStRW5Dia7")
	testBlockhash = solana.MustHashFromBase58("EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N")
)

func TestBalance(t *testing.T) {
	mock := &mockRPCClient{balance: 2_500_000_000}
	client := newTestClient(mock, nil)

	lamports, err := client.Balance(context.Background(), solana.SystemProgramID)

	require.NoError(t, err)
	assert.Equal(t, uint64(2_500_000_000), lamports)
}

func TestBalance_ErrorFromRPC(t *testing.T) {
	mock := &mockRPCClient{err: assert.AnError}
	client := newTestClient(mock, nil)

	_, err := client.Balance(context.Background(), solana.SystemProgramID)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRPC)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), assert.AnError.Error())
}

func TestRequestAirdrop(t *testing.T) {
	mock := &mockRPCClient{airdrop: testSignature}
	m := metrics.NewMetrics(nil)
	client := newTestClient(mock, m)

	sig, err := client.RequestAirdrop(context.Background(), solana.SystemProgramID, 1_000_000_000)

	require.NoError(t, err)
	assert.Equal(t, testSignature, sig)
	assert.Equal(t, []string{"RequestAirdrop"}, mock.calls)

	count, err := testutil.GatherAndCount(m.Gatherer(), "solana_rpc_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestConfirmTransaction(t *testing.T) {
	tests := []struct {
		name     string
		status   *rpc.SignatureStatusesResult
		expected bool
	}{
		{
			name:     "unknown signature",
			status:   nil,
			expected: false,
		},
		{
			name:     "processed only",
			status:   &rpc.SignatureStatusesResult{ConfirmationStatus: rpc.ConfirmationStatusProcessed},
			expected: false,
		},
		{
			name:     "confirmed",
			status:   &rpc.SignatureStatusesResult{ConfirmationStatus: rpc.ConfirmationStatusConfirmed},
			expected: true,
		},
		{
			name:     "finalized",
			status:   &rpc.SignatureStatusesResult{ConfirmationStatus: rpc.ConfirmationStatusFinalized},
			expected: true,
		},
		{
			name: "confirmed but failed",
			status: &rpc.SignatureStatusesResult{
				ConfirmationStatus: rpc.ConfirmationStatusConfirmed,
				Err:                map[string]interface{}{"InstructionError": []interface{}{0, "Custom error"}},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockRPCClient{status: tt.status}
			client := newTestClient(mock, nil)

			confirmed, err := client.ConfirmTransaction(context.Background(), testSignature)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, confirmed)
			// Exactly one status lookup, no local retry loop.
			assert.Equal(t, []string{"GetSignatureStatuses"}, mock.calls)
		})
	}
}

func TestConfirmTransaction_ErrorFromRPC(t *testing.T) {
	mock := &mockRPCClient{err: assert.AnError}
	client := newTestClient(mock, nil)

	_, err := client.ConfirmTransaction(context.Background(), testSignature)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRPC)
}

func TestTransfer(t *testing.T) {
	sender, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	recipient := solana.NewWallet().PublicKey()

	mock := &mockRPCClient{blockhash: testBlockhash, sent: testSignature}
	m := metrics.NewMetrics(nil)
	client := newTestClient(mock, m)

	result, err := client.Transfer(context.Background(), TransferParams{
		From:     sender,
		To:       recipient,
		Lamports: 500_000_000,
	})

	require.NoError(t, err)
	assert.Equal(t, testSignature, result.Signature)
	assert.Equal(t, testBlockhash, result.Blockhash)
	assert.Equal(t, sender.PublicKey(), result.From)
	assert.Equal(t, recipient, result.To)
	assert.Equal(t, uint64(500_000_000), result.Lamports)

	// Blockhash is fetched before the single submission.
	assert.Equal(t, []string{"GetLatestBlockhash", "SendAndConfirmTransaction"}, mock.calls)
	require.Len(t, mock.submitted, 1)

	// Inspect the transaction as it goes over the wire.
	raw, err := mock.submitted[0].MarshalBinary()
	require.NoError(t, err)
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	require.NoError(t, err)

	assert.Equal(t, testBlockhash, tx.Message.RecentBlockhash)
	require.Len(t, tx.Signatures, 1)
	require.NoError(t, tx.VerifySignatures())
	assert.Equal(t, sender.PublicKey(), tx.Message.AccountKeys[0])

	require.Len(t, tx.Message.Instructions, 1)
	compiled := tx.Message.Instructions[0]
	assert.Equal(t, solana.SystemProgramID, tx.Message.AccountKeys[compiled.ProgramIDIndex])

	accounts := make([]*solana.AccountMeta, 0, len(compiled.Accounts))
	for _, idx := range compiled.Accounts {
		accounts = append(accounts, solana.Meta(tx.Message.AccountKeys[idx]))
	}
	decoded, err := system.DecodeInstruction(accounts, compiled.Data)
	require.NoError(t, err)

	transfer, ok := decoded.Impl.(*system.Transfer)
	require.True(t, ok, "expected a system transfer instruction")
	assert.Equal(t, uint64(500_000_000), *transfer.Lamports)
	assert.Equal(t, sender.PublicKey(), transfer.GetFundingAccount().PublicKey)
	assert.Equal(t, recipient, transfer.GetRecipientAccount().PublicKey)

	expected := `
# HELP lamports_requested_total Total lamports moved by successful airdrops and transfers
# TYPE lamports_requested_total counter
lamports_requested_total{cluster="devnet",kind="transfer"} 5e+08
`
	require.NoError(t, testutil.GatherAndCompare(m.Gatherer(), strings.NewReader(expected), "lamports_requested_total"))
}

func TestTransfer_BlockhashFailure(t *testing.T) {
	sender, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	mock := &mockRPCClient{err: assert.AnError}
	client := newTestClient(mock, nil)

	_, err = client.Transfer(context.Background(), TransferParams{
		From:     sender,
		To:       solana.SystemProgramID,
		Lamports: 1,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRPC)
	assert.Contains(t, err.Error(), "get latest blockhash")
	// Nothing is submitted after a failed blockhash fetch.
	assert.Equal(t, []string{"GetLatestBlockhash"}, mock.calls)
	assert.Empty(t, mock.submitted)
}

func TestNewRPCClient_DefaultTimeout(t *testing.T) {
	c, ok := NewRPCClient(Localnet, 0).(*realRPCClient)
	require.True(t, ok)
	assert.Equal(t, DefaultRequestTimeout, c.timeout)
	assert.Equal(t, "ws://localhost:8900", c.wsURL)
}
