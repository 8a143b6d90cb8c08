package solana

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brojonat/minisol/service/metrics"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
)

// commitment is the level used for reads, airdrops and blockhash fetches.
const commitment = rpc.CommitmentConfirmed

// RPCClient is an interface for the Solana RPC operations we need.
// This allows us to mock the RPC layer in tests without hitting real Solana nodes.
type RPCClient interface {
	GetBalance(
		ctx context.Context,
		account solana.PublicKey,
		commitment rpc.CommitmentType,
	) (*rpc.GetBalanceResult, error)

	RequestAirdrop(
		ctx context.Context,
		account solana.PublicKey,
		lamports uint64,
		commitment rpc.CommitmentType,
	) (solana.Signature, error)

	GetSignatureStatuses(
		ctx context.Context,
		searchTransactionHistory bool,
		signatures ...solana.Signature,
	) (*rpc.GetSignatureStatusesResult, error)

	GetLatestBlockhash(
		ctx context.Context,
		commitment rpc.CommitmentType,
	) (*rpc.GetLatestBlockhashResult, error)

	SendAndConfirmTransaction(
		ctx context.Context,
		tx *solana.Transaction,
	) (solana.Signature, error)
}

// Client provides the wallet operations the CLI exposes.
// It wraps the RPC client with logging and metrics.
type Client struct {
	rpc     RPCClient
	cluster Cluster
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewClient creates a new Solana client for the given cluster.
// If metrics is nil, no metrics will be recorded.
func NewClient(rpcClient RPCClient, cluster Cluster, m *metrics.Metrics, logger *slog.Logger) *Client {
	return &Client{
		rpc:     rpcClient,
		cluster: cluster,
		logger:  logger,
		metrics: m,
	}
}

// observe records the outcome of one RPC call.
func (c *Client) observe(ctx context.Context, method string, start time.Time, err error) {
	duration := time.Since(start).Seconds()
	status := "success"
	if err != nil {
		status = "error"
		c.logger.DebugContext(ctx, "rpc call failed",
			"method", method,
			"cluster", c.cluster.String(),
			"error", err,
		)
	} else {
		c.logger.DebugContext(ctx, "rpc call succeeded",
			"method", method,
			"cluster", c.cluster.String(),
			"duration_seconds", duration,
		)
	}
	if c.metrics != nil {
		c.metrics.RecordRPCCall(method, status, c.cluster.String(), duration)
	}
}

// Balance returns the account balance in lamports.
func (c *Client) Balance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	start := time.Now()
	out, err := c.rpc.GetBalance(ctx, account, commitment)
	c.observe(ctx, "GetBalance", start, err)
	if err != nil {
		return 0, fmt.Errorf("%w: get balance of %s: %w", ErrRPC, account, err)
	}
	if out == nil {
		return 0, fmt.Errorf("%w: get balance of %s: empty response", ErrRPC, account)
	}
	return out.Value, nil
}

// RequestAirdrop asks the cluster faucet to credit the account.
// The cluster decides whether a faucet exists; mainnet rejects the request.
func (c *Client) RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64) (solana.Signature, error) {
	if !c.cluster.SupportsAirdrop() {
		c.logger.DebugContext(ctx, "cluster has no faucet, request will likely be rejected",
			"cluster", c.cluster.String(),
		)
	}

	start := time.Now()
	sig, err := c.rpc.RequestAirdrop(ctx, account, lamports, commitment)
	c.observe(ctx, "RequestAirdrop", start, err)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("%w: request airdrop: %w", ErrRPC, err)
	}

	if c.metrics != nil {
		c.metrics.RecordLamportsRequested("airdrop", c.cluster.String(), lamports)
	}
	return sig, nil
}

// ConfirmTransaction checks the signature status once. It reports true when
// the cluster knows the transaction, it succeeded, and it reached at least
// confirmed commitment.
func (c *Client) ConfirmTransaction(ctx context.Context, sig solana.Signature) (bool, error) {
	start := time.Now()
	out, err := c.rpc.GetSignatureStatuses(ctx, false, sig)
	c.observe(ctx, "GetSignatureStatuses", start, err)
	if err != nil {
		return false, fmt.Errorf("%w: confirm transaction %s: %w", ErrRPC, sig, err)
	}
	if out == nil || len(out.Value) == 0 || out.Value[0] == nil {
		return false, nil
	}

	status := out.Value[0]
	if status.Err != nil {
		c.logger.DebugContext(ctx, "transaction failed on chain",
			"signature", sig.String(),
			"error", status.Err,
		)
		return false, nil
	}

	switch status.ConfirmationStatus {
	case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
		return true, nil
	default:
		return false, nil
	}
}

// Transfer moves lamports from the sender to the recipient in a single
// system transfer instruction and waits for confirmation. The blockhash is
// fetched inside this call so it is never older than the request.
// Every failure wraps ErrRPC; nothing is resubmitted.
func (c *Client) Transfer(ctx context.Context, params TransferParams) (*TransferResult, error) {
	from := params.From.PublicKey()
	c.transition(ctx, stateKeyLoaded, "from", from.String())
	c.transition(ctx, stateRecipientResolved, "to", params.To.String())

	instruction := system.NewTransferInstruction(
		params.Lamports,
		from,
		params.To,
	).Build()

	start := time.Now()
	recent, err := c.rpc.GetLatestBlockhash(ctx, commitment)
	c.observe(ctx, "GetLatestBlockhash", start, err)
	if err != nil {
		return nil, c.fail(ctx, fmt.Errorf("%w: get latest blockhash: %w", ErrRPC, err))
	}
	if recent == nil || recent.Value == nil {
		return nil, c.fail(ctx, fmt.Errorf("%w: get latest blockhash: empty response", ErrRPC))
	}
	blockhash := recent.Value.Blockhash

	tx, err := solana.NewTransaction(
		[]solana.Instruction{instruction},
		blockhash,
		solana.TransactionPayer(from),
	)
	if err != nil {
		return nil, c.fail(ctx, fmt.Errorf("%w: build transaction: %w", ErrRPC, err))
	}

	signer := params.From
	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(from) {
			return &signer
		}
		return nil
	})
	if err != nil {
		return nil, c.fail(ctx, fmt.Errorf("%w: sign transaction: %w", ErrRPC, err))
	}
	c.transition(ctx, stateBuilt,
		"lamports", params.Lamports,
		"blockhash", blockhash.String(),
	)

	c.transition(ctx, stateSubmitted)
	start = time.Now()
	sig, err := c.rpc.SendAndConfirmTransaction(ctx, tx)
	c.observe(ctx, "SendAndConfirmTransaction", start, err)
	if err != nil {
		return nil, c.fail(ctx, fmt.Errorf("%w: send transaction: %w", ErrRPC, err))
	}
	c.transition(ctx, stateConfirmed, "signature", sig.String())

	if c.metrics != nil {
		c.metrics.RecordLamportsRequested("transfer", c.cluster.String(), params.Lamports)
	}

	return &TransferResult{
		Signature: sig,
		Blockhash: blockhash,
		From:      from,
		To:        params.To,
		Lamports:  params.Lamports,
	}, nil
}

func (c *Client) transition(ctx context.Context, state transferState, args ...any) {
	c.logger.DebugContext(ctx, "transfer state", append([]any{"state", string(state)}, args...)...)
}

func (c *Client) fail(ctx context.Context, err error) error {
	c.transition(ctx, stateFailed, "error", err)
	return err
}
