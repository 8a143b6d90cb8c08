package wallet

import (
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
)

// Resolve turns an identity argument into a public key.
//
// If s names an existing path it is read as a keypair file and its public
// half is returned; a file that cannot be decoded is an error, never a
// reason to try parsing s as an address. Otherwise s must be a base58
// public key.
func Resolve(s string) (solana.PublicKey, error) {
	if _, err := os.Stat(s); err == nil {
		key, err := ReadKeypairFile(s)
		if err != nil {
			return solana.PublicKey{}, err
		}
		return key.PublicKey(), nil
	}

	pubkey, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %q is not an existing keypair file or a base58 address: %w", ErrInvalidPublicKey, s, err)
	}
	return pubkey, nil
}
