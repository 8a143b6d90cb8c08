package wallet

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// LamportsPerSOL is the number of base units in one SOL.
const LamportsPerSOL = 1_000_000_000

// maxLamports is 2^64 as a float64; any scaled amount at or above it
// does not fit in a uint64.
const maxLamports = float64(1 << 64)

// ToLamports converts a SOL amount to lamports, truncating toward zero.
// Precision beyond nine fractional digits is not preserved.
func ToLamports(sol float64) (uint64, error) {
	if math.IsNaN(sol) || math.IsInf(sol, 0) {
		return 0, fmt.Errorf("%w: %v is not a finite number", ErrInvalidAmount, sol)
	}
	if sol < 0 {
		return 0, fmt.Errorf("%w: %v is negative", ErrInvalidAmount, sol)
	}

	scaled := sol * LamportsPerSOL
	if scaled >= maxLamports {
		return 0, fmt.Errorf("%w: %v SOL", ErrAmountOverflow, sol)
	}
	return uint64(scaled), nil
}

// ToSOL converts lamports to a decimal SOL amount without loss.
func ToSOL(lamports uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), -9)
}

// FormatSOL renders lamports as SOL with exactly four decimal places.
func FormatSOL(lamports uint64) string {
	return ToSOL(lamports).StringFixed(4)
}
