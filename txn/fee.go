package txn

import "github.com/wippyai/avm-codec/errors"

// FeeParams controls CalculateFee. Fees are in microAlgos.
type FeeParams struct {
	FeePerByte uint64
	MinFee     uint64
	ExtraFee   uint64
	// MaxFee of 0 means no ceiling.
	MaxFee uint64
}

// CalculateFee returns max(FeePerByte*EstimateSize, MinFee) + ExtraFee.
func CalculateFee(tx *Transaction, p FeeParams) (uint64, error) {
	if tx == nil {
		return 0, errors.Validation(nil, "transaction is nil")
	}
	var fee uint64
	if p.FeePerByte > 0 {
		size, err := EstimateSize(tx)
		if err != nil {
			return 0, err
		}
		fee = p.FeePerByte * uint64(size)
	}
	if fee < p.MinFee {
		fee = p.MinFee
	}
	fee += p.ExtraFee
	if p.MaxFee > 0 && fee > p.MaxFee {
		return 0, errors.Validation([]string{"fee"},
			"Transaction fee %d µALGO is greater than maxFee %d µALGO", fee, p.MaxFee)
	}
	return fee, nil
}

// AssignFee returns a copy of tx with Fee set by CalculateFee.
func AssignFee(tx *Transaction, p FeeParams) (*Transaction, error) {
	fee, err := CalculateFee(tx, p)
	if err != nil {
		return nil, err
	}
	cp := *tx
	cp.Fee = fee
	return &cp, nil
}
