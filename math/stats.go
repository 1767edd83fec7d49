package math

import (
	"slices"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/krazyTry/tokensale-go/shared"
)

func Min(values []*uint256.Int) (*uint256.Int, error) {
	if len(values) == 0 {
		return nil, errors.Wrap(shared.ErrInvalidInput, "min of empty slice")
	}
	out := values[0]
	for _, v := range values[1:] {
		if v.Lt(out) {
			out = v
		}
	}
	return out.Clone(), nil
}

func Max(values []*uint256.Int) (*uint256.Int, error) {
	if len(values) == 0 {
		return nil, errors.Wrap(shared.ErrInvalidInput, "max of empty slice")
	}
	out := values[0]
	for _, v := range values[1:] {
		if v.Gt(out) {
			out = v
		}
	}
	return out.Clone(), nil
}

func Sum(values []*uint256.Int) (*uint256.Int, error) {
	total := new(uint256.Int)
	for _, v := range values {
		var err error
		if total, err = SafeAdd(total, v); err != nil {
			return nil, err
		}
	}
	return total, nil
}

func Average(values []*uint256.Int) (*uint256.Int, error) {
	if len(values) == 0 {
		return nil, errors.Wrap(shared.ErrInvalidInput, "average of empty slice")
	}
	total, err := Sum(values)
	if err != nil {
		return nil, err
	}
	return total.Div(total, uint256.NewInt(uint64(len(values)))), nil
}

// Median sorts a copy of values; for an even count it averages the two middle
// elements.
func Median(values []*uint256.Int) (*uint256.Int, error) {
	if len(values) == 0 {
		return nil, errors.Wrap(shared.ErrInvalidInput, "median of empty slice")
	}
	sorted := slices.Clone(values)
	slices.SortFunc(sorted, func(a, b *uint256.Int) int {
		return a.Cmp(b)
	})

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid].Clone(), nil
	}
	return midpoint(sorted[mid-1], sorted[mid]), nil
}

// midpoint returns floor((a+b)/2) without overflowing.
func midpoint(a, b *uint256.Int) *uint256.Int {
	halfA := new(uint256.Int).Rsh(a, 1)
	halfB := new(uint256.Int).Rsh(b, 1)
	out := new(uint256.Int).Add(halfA, halfB)
	if a.Uint64()&1 == 1 && b.Uint64()&1 == 1 {
		out.AddUint64(out, 1)
	}
	return out
}

func WeightedAverage(values, weights []*uint256.Int) (*uint256.Int, error) {
	if len(values) == 0 || len(values) != len(weights) {
		return nil, errors.Wrapf(shared.ErrInvalidInput, "weighted average of %d values and %d weights", len(values), len(weights))
	}
	weightedSum := new(uint256.Int)
	totalWeight := new(uint256.Int)
	for i := range values {
		product, err := SafeMul(values[i], weights[i])
		if err != nil {
			return nil, err
		}
		if weightedSum, err = SafeAdd(weightedSum, product); err != nil {
			return nil, err
		}
		if totalWeight, err = SafeAdd(totalWeight, weights[i]); err != nil {
			return nil, err
		}
	}
	if totalWeight.IsZero() {
		return nil, errors.Wrap(shared.ErrDivisionByZero, "total weight is zero")
	}
	return weightedSum.Div(weightedSum, totalWeight), nil
}
