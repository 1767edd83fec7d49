package shared

import (
	"github.com/pkg/errors"
)

// Error kinds returned by the math core and the pricing engine. Call sites wrap
// them with context; match with errors.Is.
var (
	ErrOverflow              = errors.New("math overflow")
	ErrNegativeResult        = errors.New("negative result")
	ErrDivisionByZero        = errors.New("division by zero")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidParameters     = errors.New("invalid parameters")
	ErrInvalidPricingModel   = errors.New("invalid pricing model")
	ErrPriceExceedsLimit     = errors.New("price exceeds limit")
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
	ErrInvalidTierConfig     = errors.New("invalid tier config")
)
