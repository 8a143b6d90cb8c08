package wallet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
)

// DefaultKeypairPath is used when no keypair file is given.
const DefaultKeypairPath = "my-keypair.json"

// keypairLength is the size of an ed25519 secret key including its public half.
const keypairLength = 64

// NewKeypair generates a fresh ed25519 keypair.
func NewKeypair() (solana.PrivateKey, error) {
	return solana.NewRandomPrivateKey()
}

// WriteKeypairFile stores the keypair in the solana-keygen format: a JSON
// array of the 64 secret key bytes. Existing files are overwritten and
// missing parent directories are created.
func WriteKeypairFile(path string, key solana.PrivateKey) error {
	values := make([]int, len(key))
	for i, b := range key {
		values[i] = int(b)
	}
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrWriteFailed, path, err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteFailed, err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

// ReadKeypairFile loads a keypair written by WriteKeypairFile or solana-keygen.
func ReadKeypairFile(path string) (solana.PrivateKey, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrIdentityReadFailed, path, err)
	}
	if len(key) != keypairLength {
		return nil, fmt.Errorf("%w: %s: expected %d bytes, got %d", ErrIdentityReadFailed, path, keypairLength, len(key))
	}
	return key, nil
}
