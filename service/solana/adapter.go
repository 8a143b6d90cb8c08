package solana

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	confirm "github.com/gagliardetto/solana-go/rpc/sendAndConfirmTransaction"
	"github.com/gagliardetto/solana-go/rpc/ws"
)

// DefaultRequestTimeout bounds every RPC request issued through the adapter.
const DefaultRequestTimeout = 60 * time.Second

// realRPCClient adapts the solana-go RPC client to our RPCClient interface.
// Every call runs under its own deadline so a stalled node cannot hang the CLI.
type realRPCClient struct {
	client  *rpc.Client
	wsURL   string
	timeout time.Duration
}

// NewRPCClient creates an RPCClient bound to the cluster's endpoint.
// A non-positive timeout falls back to DefaultRequestTimeout.
func NewRPCClient(cluster Cluster, timeout time.Duration) RPCClient {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &realRPCClient{
		client:  rpc.New(cluster.URL()),
		wsURL:   cluster.WebsocketURL(),
		timeout: timeout,
	}
}

func (r *realRPCClient) GetBalance(
	ctx context.Context,
	account solana.PublicKey,
	commitment rpc.CommitmentType,
) (*rpc.GetBalanceResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.client.GetBalance(ctx, account, commitment)
}

func (r *realRPCClient) RequestAirdrop(
	ctx context.Context,
	account solana.PublicKey,
	lamports uint64,
	commitment rpc.CommitmentType,
) (solana.Signature, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.client.RequestAirdrop(ctx, account, lamports, commitment)
}

func (r *realRPCClient) GetSignatureStatuses(
	ctx context.Context,
	searchTransactionHistory bool,
	signatures ...solana.Signature,
) (*rpc.GetSignatureStatusesResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.client.GetSignatureStatuses(ctx, searchTransactionHistory, signatures...)
}

func (r *realRPCClient) GetLatestBlockhash(
	ctx context.Context,
	commitment rpc.CommitmentType,
) (*rpc.GetLatestBlockhashResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.client.GetLatestBlockhash(ctx, commitment)
}

// SendAndConfirmTransaction submits the transaction and blocks until the
// cluster reports it confirmed. The websocket connection lives only for the
// duration of the call.
func (r *realRPCClient) SendAndConfirmTransaction(
	ctx context.Context,
	tx *solana.Transaction,
) (solana.Signature, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	wsClient, err := ws.Connect(ctx, r.wsURL)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("connect websocket %s: %w", r.wsURL, err)
	}
	defer wsClient.Close()

	return confirm.SendAndConfirmTransaction(ctx, r.client, wsClient, tx)
}
