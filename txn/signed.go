package txn

import (
	"strconv"

	"github.com/wippyai/avm-codec/errors"
	"go.uber.org/multierr"
)

// SignatureLength is the size of an ed25519 signature.
const SignatureLength = 64

// EncodeSigned validates st and returns its canonical encoding. Signed
// transactions carry no domain prefix.
func EncodeSigned(st *SignedTransaction) ([]byte, error) {
	if err := ValidateSigned(st); err != nil {
		return nil, err
	}
	data, err := signedTransactionModel.Encode(st)
	if err != nil {
		return nil, errors.WithPath(err, "signed transaction")
	}
	return data, nil
}

// DecodeSigned parses an encoded signed transaction.
func DecodeSigned(data []byte) (*SignedTransaction, error) {
	if len(data) == 0 {
		return nil, errors.EmptyInput("attempted to decode 0 bytes")
	}
	st := new(SignedTransaction)
	if err := signedTransactionModel.Decode(data, st); err != nil {
		return nil, err
	}
	ensureTypeFields(&st.Transaction)
	return st, nil
}

// EncodeSignedMany encodes each signed transaction.
func EncodeSignedMany(sts []*SignedTransaction) ([][]byte, error) {
	out := make([][]byte, len(sts))
	for i, st := range sts {
		data, err := EncodeSigned(st)
		if err != nil {
			return nil, err
		}
		out[i] = data
	}
	return out, nil
}

// DecodeSignedMany decodes each encoded signed transaction.
func DecodeSignedMany(data [][]byte) ([]*SignedTransaction, error) {
	out := make([]*SignedTransaction, len(data))
	for i, d := range data {
		st, err := DecodeSigned(d)
		if err != nil {
			return nil, err
		}
		out[i] = st
	}
	return out, nil
}

// EncodedType decodes an encoded transaction, prefixed or not, and
// reports its type.
func EncodedType(data []byte) (Type, error) {
	tx, err := Decode(data)
	if err != nil {
		return "", err
	}
	return tx.Type, nil
}

// ValidateSigned checks the inner transaction and the authorization
// shape. Like Validate, every violation is reported.
func ValidateSigned(st *SignedTransaction) error {
	if st == nil {
		return errors.Validation(nil, "signed transaction is nil")
	}

	var err error
	for _, e := range multierr.Errors(Validate(&st.Transaction)) {
		err = multierr.Append(err, errors.WithPath(e, "txn"))
	}

	count := 0
	if len(st.Signature) > 0 {
		count++
	}
	if st.Multisig != nil {
		count++
	}
	if st.LogicSig != nil {
		count++
	}
	if count > 1 {
		return multierr.Append(err, errors.Validation(nil,
			"Only one signature type can be set, found %d", count))
	}

	err = multierr.Append(err, validateSignature(st.Signature, "sig"))
	if st.Multisig != nil {
		err = multierr.Append(err, validateMultisig(st.Multisig, "msig"))
	}
	if st.LogicSig != nil {
		err = multierr.Append(err, validateLogicSig(st.LogicSig))
	}
	return err
}

func validateSignature(sig []byte, path ...string) error {
	if len(sig) > 0 && len(sig) != SignatureLength {
		return errors.Validation(path, "Signature must be %d bytes, got %d", SignatureLength, len(sig))
	}
	return nil
}

func validateMultisig(m *MultisigSignature, path ...string) error {
	var err error
	if m.Threshold == 0 || int(m.Threshold) > len(m.Subsignatures) {
		err = multierr.Append(err, errors.Validation(append(append([]string{}, path...), "thr"),
			"Threshold %d must be between 1 and %d", m.Threshold, len(m.Subsignatures)))
	}
	for i, s := range m.Subsignatures {
		sp := append(append([]string{}, path...), "subsig", strconv.Itoa(i), "s")
		err = multierr.Append(err, validateSignature(s.Signature, sp...))
	}
	return err
}

func validateLogicSig(l *LogicSignature) error {
	var err error
	if len(l.Logic) == 0 {
		err = multierr.Append(err, errors.Validation([]string{"lsig", "l"}, "Logic signature program is required"))
	}

	count := 0
	if len(l.Signature) > 0 {
		count++
	}
	if l.Multisig != nil {
		count++
	}
	if l.LogicMultisig != nil {
		count++
	}
	if count > 1 {
		return multierr.Append(err, errors.Validation([]string{"lsig"},
			"Only one delegation signature type can be set, found %d", count))
	}

	err = multierr.Append(err, validateSignature(l.Signature, "lsig", "sig"))
	if l.Multisig != nil {
		err = multierr.Append(err, validateMultisig(l.Multisig, "lsig", "msig"))
	}
	if l.LogicMultisig != nil {
		err = multierr.Append(err, validateMultisig(l.LogicMultisig, "lsig", "lmsig"))
	}
	return err
}
