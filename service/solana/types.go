package solana

import (
	"errors"

	"github.com/gagliardetto/solana-go"
)

var (
	// ErrRPC wraps every failure reported by the RPC collaborator: transport,
	// protocol, cluster-side rejection, signing and confirmation expiry.
	ErrRPC = errors.New("rpc error")

	// ErrAirdropNotConfirmed is returned when the faucet transaction was not
	// confirmed by the time it was checked.
	ErrAirdropNotConfirmed = errors.New("airdrop is not confirmed")
)

// TransferParams describes a native SOL transfer.
type TransferParams struct {
	From     solana.PrivateKey
	To       solana.PublicKey
	Lamports uint64
}

// TransferResult is returned once the transfer is confirmed.
type TransferResult struct {
	Signature solana.Signature
	Blockhash solana.Hash
	From      solana.PublicKey
	To        solana.PublicKey
	Lamports  uint64
}

// transferState tracks the transfer workflow for debug logging.
type transferState string

const (
	stateKeyLoaded         transferState = "key_loaded"
	stateRecipientResolved transferState = "recipient_resolved"
	stateBuilt             transferState = "built"
	stateSubmitted         transferState = "submitted"
	stateConfirmed         transferState = "confirmed"
	stateFailed            transferState = "failed"
)
