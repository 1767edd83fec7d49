package math

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/krazyTry/tokensale-go/shared"
)

var ten = uint256.NewInt(10)

// NormalizeDecimals rescales amount from one token precision to another.
// Scaling down truncates.
func NormalizeDecimals(amount *uint256.Int, fromDecimals, toDecimals uint8) (*uint256.Int, error) {
	if fromDecimals == toDecimals {
		return amount.Clone(), nil
	}
	if fromDecimals < toDecimals {
		factor, err := Pow(ten, uint64(toDecimals-fromDecimals), false)
		if err != nil {
			return nil, err
		}
		return SafeMul(amount, factor)
	}
	factor, err := Pow(ten, uint64(fromDecimals-toDecimals), false)
	if err != nil {
		// 10^78 and above exceed any 256-bit amount
		return new(uint256.Int), nil
	}
	return new(uint256.Int).Div(amount, factor), nil
}

// CalculateTokensToReceive converts a payment in a priced token into sale
// tokens. Prices are USD values scaled by shared.Precision.
func CalculateTokensToReceive(paymentAmount, paymentTokenPrice, tokenPrice *uint256.Int, paymentDecimals uint8) (*uint256.Int, error) {
	if tokenPrice.IsZero() {
		return nil, errors.Wrap(shared.ErrDivisionByZero, "token price is zero")
	}
	normalized, err := NormalizeDecimals(paymentAmount, paymentDecimals, shared.Decimals)
	if err != nil {
		return nil, err
	}
	usdValue, err := MulDiv(normalized, paymentTokenPrice, shared.Precision, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	return MulDiv(usdValue, shared.Precision, tokenPrice, shared.RoundingDown)
}

// CalculatePaymentAmount is the inverse of CalculateTokensToReceive: the
// payment, in payment token units, needed to buy tokenAmount.
func CalculatePaymentAmount(tokenAmount, tokenPrice, paymentTokenPrice *uint256.Int, paymentDecimals uint8) (*uint256.Int, error) {
	if paymentTokenPrice.IsZero() {
		return nil, errors.Wrap(shared.ErrDivisionByZero, "payment token price is zero")
	}
	usdValue, err := MulDiv(tokenAmount, tokenPrice, shared.Precision, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	payment, err := MulDiv(usdValue, shared.Precision, paymentTokenPrice, shared.RoundingUp)
	if err != nil {
		return nil, err
	}
	return NormalizeDecimals(payment, shared.Decimals, paymentDecimals)
}
