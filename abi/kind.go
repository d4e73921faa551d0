package abi

// Kind identifies the variant of a Type.
type Kind uint8

const (
	KindUint Kind = iota
	KindUfixed
	KindByte
	KindBool
	KindAddress
	KindString
	KindStaticArray
	KindDynamicArray
	KindTuple
)

var kindNames = [...]string{
	KindUint:         "uint",
	KindUfixed:       "ufixed",
	KindByte:         "byte",
	KindBool:         "bool",
	KindAddress:      "address",
	KindString:       "string",
	KindStaticArray:  "static_array",
	KindDynamicArray: "dynamic_array",
	KindTuple:        "tuple",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsPrimitive reports whether k has no child types.
func (k Kind) IsPrimitive() bool {
	return k <= KindString
}

// IsArray reports whether k is a static or dynamic array.
func (k Kind) IsArray() bool {
	return k == KindStaticArray || k == KindDynamicArray
}
