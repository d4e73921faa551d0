package abi

import (
	"bytes"
	"crypto/sha512"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wippyai/avm-codec/errors"
	"github.com/wippyai/avm-codec/types"
	"go.uber.org/zap"
)

// Transaction argument types. A method argument of one of these types is
// satisfied by a preceding transaction in the group, not by app args.
const (
	TxnAny       = "txn"
	TxnPayment   = "pay"
	TxnKeyReg    = "keyreg"
	TxnAssetCfg  = "acfg"
	TxnAssetXfer = "axfer"
	TxnAssetFrz  = "afrz"
	TxnAppCall   = "appl"
)

// Reference argument types, passed as a uint8 index into the call's
// foreign accounts, applications or assets.
const (
	RefAccount = "account"
	RefApp     = "application"
	RefAsset   = "asset"
)

const (
	ReturnVoid    = "void"
	SelectorSize  = 4
	MaxMethodArgs = 15 // app arg slots after the selector
)

// ReturnPrefix marks the log entry that carries a method return value.
var ReturnPrefix = []byte{0x15, 0x1f, 0x7c, 0x75}

// ArgKind classifies a method argument.
type ArgKind uint8

const (
	ArgValue ArgKind = iota
	ArgTransaction
	ArgReference
)

var argKindNames = [...]string{
	ArgValue:       "value",
	ArgTransaction: "transaction",
	ArgReference:   "reference",
}

func (k ArgKind) String() string {
	if int(k) < len(argKindNames) {
		return argKindNames[k]
	}
	return "unknown"
}

// Arg is one method argument. Ref holds the transaction or reference type
// name when Kind is not ArgValue.
type Arg struct {
	Name string
	Ref  string
	Type Type
	Kind ArgKind
}

func (a Arg) signature() string {
	if a.Kind == ArgValue {
		return a.Type.String()
	}
	return a.Ref
}

// Method is a parsed ARC-4 method description.
type Method struct {
	Name    string
	Args    []Arg
	Returns Type
	Void    bool
}

// MethodFromSignature parses "name(arg,...)ret".
func MethodFromSignature(signature string) (Method, error) {
	open := strings.IndexByte(signature, '(')
	if open <= 0 {
		return Method{}, errors.MalformedTypeSignature(signature, "method signature requires name(args)returns")
	}

	closeIdx, depth := -1, 0
	for i := open; i < len(signature) && closeIdx < 0; i++ {
		switch signature[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				closeIdx = i
			}
		}
	}
	if closeIdx < 0 {
		return Method{}, errors.MalformedTypeSignature(signature, "unbalanced parentheses")
	}

	m := Method{Name: signature[:open]}
	parts, err := splitTuple(signature[open : closeIdx+1])
	if err != nil {
		return Method{}, err
	}
	for _, p := range parts {
		arg, err := parseArg(p)
		if err != nil {
			return Method{}, err
		}
		m.Args = append(m.Args, arg)
	}

	ret := signature[closeIdx+1:]
	if ret == ReturnVoid {
		m.Void = true
		return m, nil
	}
	if m.Returns, err = TypeOf(ret); err != nil {
		return Method{}, err
	}
	return m, nil
}

func parseArg(s string) (Arg, error) {
	switch s {
	case TxnAny, TxnPayment, TxnKeyReg, TxnAssetCfg, TxnAssetXfer, TxnAssetFrz, TxnAppCall:
		return Arg{Kind: ArgTransaction, Ref: s}, nil
	case RefAccount, RefApp, RefAsset:
		return Arg{Kind: ArgReference, Ref: s}, nil
	}
	t, err := TypeOf(s)
	if err != nil {
		return Arg{}, err
	}
	return Arg{Kind: ArgValue, Type: t}, nil
}

// Signature renders the canonical method signature.
func (m Method) Signature() string {
	var b strings.Builder
	b.WriteString(m.Name)
	b.WriteByte('(')
	for i, a := range m.Args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.signature())
	}
	b.WriteByte(')')
	if m.Void {
		b.WriteString(ReturnVoid)
	} else {
		b.WriteString(m.Returns.String())
	}
	return b.String()
}

// Selector returns the first four bytes of SHA-512/256 of the signature.
func (m Method) Selector() []byte {
	sum := sha512.Sum512_256([]byte(m.Signature()))
	return sum[:SelectorSize]
}

// TxnCount returns the number of transaction arguments.
func (m Method) TxnCount() int {
	n := 0
	for _, a := range m.Args {
		if a.Kind == ArgTransaction {
			n++
		}
	}
	return n
}

// EncodeArgs builds the application args for a call: the selector, then one
// entry per value or reference argument. vals holds only those arguments, in
// order; reference arguments take their index into the matching foreign
// array. Past 15 arguments, the 15th slot holds the remainder as a tuple.
func (m Method) EncodeArgs(vals []any) ([][]byte, error) {
	var argTypes []Type
	for _, a := range m.Args {
		switch a.Kind {
		case ArgValue:
			argTypes = append(argTypes, a.Type)
		case ArgReference:
			argTypes = append(argTypes, uint8Type)
		}
	}
	if len(vals) != len(argTypes) {
		return nil, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(m.Name).
			Detail("method takes %d app arguments, got %d", len(argTypes), len(vals)).
			Build()
	}

	values := make([]Value, len(vals))
	for i, x := range vals {
		v, err := fromGo(x, argTypes[i], []string{m.Name, strconv.Itoa(i)})
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	if len(values) > MaxMethodArgs {
		packed, err := MakeTupleType(argTypes[MaxMethodArgs-1:]...)
		if err != nil {
			return nil, err
		}
		argTypes = append(argTypes[:MaxMethodArgs-1:MaxMethodArgs-1], packed)
		values = append(values[:MaxMethodArgs-1:MaxMethodArgs-1], List(values[MaxMethodArgs-1:]...))
	}

	out := make([][]byte, 0, len(values)+1)
	out = append(out, m.Selector())
	for i, v := range values {
		enc, err := encodeValue(v, argTypes[i], []string{m.Name, strconv.Itoa(i)})
		if err != nil {
			return nil, err
		}
		out = append(out, enc)
	}
	return out, nil
}

// DecodeReturn extracts the return value from the last log of a call.
func (m Method) DecodeReturn(log []byte) (Value, error) {
	if m.Void {
		return Value{}, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Path(m.Name).
			Detail("method returns void").
			Build()
	}
	if !bytes.HasPrefix(log, ReturnPrefix) {
		return Value{}, errors.MalformedEncoding([]string{m.Name}, "log does not carry the return prefix")
	}
	v, err := decodeValue(log[len(ReturnPrefix):], m.Returns, []string{m.Name})
	if err != nil {
		return Value{}, err
	}
	Logger().Debug("decoded method return",
		zap.String("method", m.Name),
		zap.Int("bytes", len(log)-len(ReturnPrefix)))
	return v, nil
}

var (
	uint8Type  = Type{kind: KindUint, bitSize: 8, size: 1}
	uint64Type = Type{kind: KindUint, bitSize: 64, size: 8}
)

// AVM storage types used by application specs for raw state values.
const (
	AVMBytes  = "AVMBytes"
	AVMString = "AVMString"
	AVMUint64 = "AVMUint64"
)

// EncodeStorageValue encodes x for an AVM storage type or an ABI signature.
// AVMBytes and AVMString are stored raw; AVMUint64 is 8 bytes big-endian.
func EncodeStorageValue(storageType string, x any) ([]byte, error) {
	switch storageType {
	case AVMBytes:
		switch b := x.(type) {
		case []byte:
			return append([]byte(nil), b...), nil
		case types.Bytes:
			return append([]byte(nil), b...), nil
		case string:
			return []byte(b), nil
		}
		return nil, errors.TypeMismatch(errors.PhaseEncode, nil, typeName(x), AVMBytes)
	case AVMString:
		s, ok := x.(string)
		if !ok {
			return nil, errors.TypeMismatch(errors.PhaseEncode, nil, typeName(x), AVMString)
		}
		return []byte(s), nil
	case AVMUint64:
		return EncodeGo(x, uint64Type)
	}
	t, err := TypeOf(storageType)
	if err != nil {
		return nil, err
	}
	return EncodeGo(x, t)
}

// DecodeStorageValue decodes raw bytes for an AVM storage type, a reference
// type, or an ABI signature. Asset and application references decode as
// uint64, account references as address.
func DecodeStorageValue(storageType string, data []byte) (any, error) {
	switch storageType {
	case AVMBytes:
		return types.Bytes(append([]byte(nil), data...)), nil
	case AVMString:
		if !utf8.Valid(data) {
			return nil, errors.InvalidUTF8(errors.PhaseDecode, nil, data)
		}
		return string(data), nil
	case AVMUint64, RefAsset, RefApp:
		v, err := Decode(data, uint64Type)
		if err != nil {
			return nil, err
		}
		return v.Interface(), nil
	case RefAccount:
		v, err := Decode(data, AddressType())
		if err != nil {
			return nil, err
		}
		return v.Interface(), nil
	}
	t, err := TypeOf(storageType)
	if err != nil {
		return nil, err
	}
	v, err := Decode(data, t)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}
