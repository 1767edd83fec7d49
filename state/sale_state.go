package state

import (
	"bytes"
	"crypto/sha256"

	binary "github.com/gagliardetto/binary"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/krazyTry/tokensale-go/math"
	"github.com/krazyTry/tokensale-go/pricing"
	"github.com/krazyTry/tokensale-go/shared"
	"github.com/krazyTry/tokensale-go/u128"
)

const accountName = "SaleState"

// SaleState is the snapshot a sale manager keeps between purchases. It is a
// value: Advance returns the next snapshot and leaves the receiver untouched.
type SaleState struct {
	TokensSold binary.Uint128
	LastPrice  binary.Uint128
	UpdatedAt  int64
}

func discriminator(name string) []byte {
	hash := sha256.Sum256([]byte("account:" + name))
	var out [8]byte
	copy(out[:], hash[:8])
	return out[:]
}

// NewSaleState quotes cfg at its CurrentSupply.
func NewSaleState(cfg *shared.PriceConfig, now uint64) (SaleState, error) {
	if cfg == nil {
		return SaleState{}, errors.Wrap(shared.ErrInvalidParameters, "nil price config")
	}
	sold := cfg.CurrentSupply
	if sold == nil {
		sold = new(uint256.Int)
	}
	return snapshot(cfg, sold, now)
}

// Advance records a purchase of purchased tokens at unix time now. On any
// error the caller keeps the current snapshot.
func (s SaleState) Advance(cfg *shared.PriceConfig, purchased *uint256.Int, now uint64) (SaleState, error) {
	if cfg == nil {
		return s, errors.Wrap(shared.ErrInvalidParameters, "nil price config")
	}
	if purchased == nil || purchased.IsZero() {
		return s, errors.Wrap(shared.ErrInvalidInput, "purchase amount must be positive")
	}
	if int64(now) < s.UpdatedAt {
		return s, errors.Wrapf(shared.ErrInvalidInput, "time %d before last update %d", now, s.UpdatedAt)
	}
	sold, err := math.SafeAdd(s.Sold(), purchased)
	if err != nil {
		return s, err
	}
	if cfg.TotalSupply != nil && sold.Gt(cfg.TotalSupply) {
		return s, errors.Wrapf(shared.ErrInvalidInput, "sold %s exceeds total supply %s", sold.Dec(), cfg.TotalSupply.Dec())
	}
	next, err := snapshot(cfg, sold, now)
	if err != nil {
		return s, err
	}
	return next, nil
}

func snapshot(cfg *shared.PriceConfig, sold *uint256.Int, now uint64) (SaleState, error) {
	price, err := pricing.CalculatePrice(cfg, sold, now)
	if err != nil {
		return SaleState{}, err
	}
	soldU128, err := u128.FromUint256(sold)
	if err != nil {
		return SaleState{}, err
	}
	priceU128, err := u128.FromUint256(price)
	if err != nil {
		return SaleState{}, err
	}
	return SaleState{TokensSold: soldU128, LastPrice: priceU128, UpdatedAt: int64(now)}, nil
}

func (s SaleState) Sold() *uint256.Int {
	return u128.ToUint256(s.TokensSold)
}

func (s SaleState) Price() *uint256.Int {
	return u128.ToUint256(s.LastPrice)
}

func (s SaleState) MarshalWithEncoder(encoder *binary.Encoder) error {
	if err := encoder.WriteBytes(discriminator(accountName), false); err != nil {
		return err
	}
	if err := encoder.WriteUint128(s.TokensSold, binary.LE); err != nil {
		return err
	}
	if err := encoder.WriteUint128(s.LastPrice, binary.LE); err != nil {
		return err
	}
	return encoder.WriteInt64(s.UpdatedAt, binary.LE)
}

func (s *SaleState) UnmarshalWithDecoder(decoder *binary.Decoder) error {
	disc, err := decoder.ReadNBytes(8)
	if err != nil {
		return errors.WithMessage(err, "read discriminator")
	}
	if !bytes.Equal(disc, discriminator(accountName)) {
		return errors.Wrapf(shared.ErrInvalidInput, "unexpected discriminator %x", disc)
	}
	if s.TokensSold, err = decoder.ReadUint128(binary.LE); err != nil {
		return errors.WithMessage(err, "read tokens sold")
	}
	if s.LastPrice, err = decoder.ReadUint128(binary.LE); err != nil {
		return errors.WithMessage(err, "read last price")
	}
	if s.UpdatedAt, err = decoder.ReadInt64(binary.LE); err != nil {
		return errors.WithMessage(err, "read updated at")
	}
	return nil
}

// MarshalBorsh encodes s behind an 8 byte account discriminator.
func (s SaleState) MarshalBorsh() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := s.MarshalWithEncoder(binary.NewBorshEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func UnmarshalBorsh(data []byte) (SaleState, error) {
	var out SaleState
	if err := out.UnmarshalWithDecoder(binary.NewBorshDecoder(data)); err != nil {
		return SaleState{}, err
	}
	return out, nil
}
