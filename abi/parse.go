package abi

import (
	"strconv"
	"strings"

	"github.com/wippyai/avm-codec/errors"
)

// TypeOf parses an ARC-4 type signature such as "(uint64,bool[],string)".
//
// The grammar is uint<N>, ufixed<N>x<M>, byte, bool, address, string,
// T[], T[N] and (T1,...,Tn). Whitespace is not permitted and numbers must
// not carry leading zeros.
func TypeOf(signature string) (Type, error) {
	return parseType(signature)
}

// MustTypeOf is TypeOf that panics on error, for package-level fixtures.
func MustTypeOf(signature string) Type {
	t, err := TypeOf(signature)
	if err != nil {
		panic(err)
	}
	return t
}

func parseType(s string) (Type, error) {
	if strings.HasSuffix(s, "[]") {
		elem, err := parseType(s[:len(s)-2])
		if err != nil {
			return Type{}, err
		}
		return MakeDynamicArrayType(elem)
	}

	if strings.HasSuffix(s, "]") {
		open := strings.LastIndexByte(s, '[')
		if open <= 0 {
			return Type{}, errors.MalformedTypeSignature(s, "malformed static array")
		}
		n, ok := parseDecimal(s[open+1 : len(s)-1])
		if !ok {
			return Type{}, errors.MalformedTypeSignature(s, "static array length must be a non-negative integer")
		}
		if n > MaxLength {
			return Type{}, errors.MalformedTypeSignature(s, "array length exceeds 65535")
		}
		elem, err := parseType(s[:open])
		if err != nil {
			return Type{}, err
		}
		return MakeStaticArrayType(elem, n)
	}

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		parts, err := splitTuple(s)
		if err != nil {
			return Type{}, err
		}
		elems := make([]Type, len(parts))
		for i, p := range parts {
			if elems[i], err = parseType(p); err != nil {
				return Type{}, err
			}
		}
		return MakeTupleType(elems...)
	}

	switch s {
	case "byte":
		return ByteType(), nil
	case "bool":
		return BoolType(), nil
	case "address":
		return AddressType(), nil
	case "string":
		return StringType(), nil
	}

	if rest, ok := strings.CutPrefix(s, "ufixed"); ok {
		bitStr, precStr, found := strings.Cut(rest, "x")
		if !found {
			return Type{}, errors.MalformedTypeSignature(s, "ufixed requires <bits>x<precision>")
		}
		bits, ok1 := parseDecimal(bitStr)
		prec, ok2 := parseDecimal(precStr)
		if !ok1 || !ok2 || bits == 0 || prec == 0 {
			return Type{}, errors.MalformedTypeSignature(s, "malformed ufixed")
		}
		return MakeUfixedType(bits, prec)
	}

	if rest, ok := strings.CutPrefix(s, "uint"); ok {
		bits, ok := parseDecimal(rest)
		if !ok {
			return Type{}, errors.MalformedTypeSignature(s, "malformed uint")
		}
		return MakeUintType(bits)
	}

	return Type{}, errors.MalformedTypeSignature(s, "unknown type")
}

// parseDecimal accepts 0 or [1-9][0-9]* with at most 6 digits.
func parseDecimal(s string) (int, bool) {
	if s == "" || len(s) > 6 {
		return 0, false
	}
	if len(s) > 1 && s[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// splitTuple splits the content of a parenthesized signature on
// top-level commas.
func splitTuple(sig string) ([]string, error) {
	content := sig[1 : len(sig)-1]
	if content == "" {
		return nil, nil
	}
	if strings.HasPrefix(content, ",") || strings.HasSuffix(content, ",") {
		return nil, errors.MalformedTypeSignature(sig, "leading or trailing comma")
	}
	if strings.Contains(content, ",,") {
		return nil, errors.MalformedTypeSignature(sig, "consecutive commas")
	}

	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, errors.MalformedTypeSignature(sig, "mismatched parentheses")
			}
		case ',':
			if depth == 0 {
				parts = append(parts, content[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, errors.MalformedTypeSignature(sig, "mismatched parentheses")
	}
	return append(parts, content[start:]), nil
}
