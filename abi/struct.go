package abi

import (
	"strings"

	"github.com/wippyai/avm-codec/errors"
)

// StructField is a named member of a struct type.
type StructField struct {
	Name string
	Type Type
}

// MakeStructType returns a tuple of the field types carrying a name index.
// Encoding stays positional; names only serve lookups and conversions.
func MakeStructType(name string, fields []StructField) (Type, error) {
	elems := make([]Type, len(fields))
	names := make([]string, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		if _, dup := seen[f.Name]; dup {
			return Type{}, errors.New(errors.PhaseParse, errors.KindMalformedTypeSignature).
				Path(name).
				Detail("duplicate struct field %q", f.Name).
				Build()
		}
		seen[f.Name] = struct{}{}
		elems[i] = f.Type
		names[i] = f.Name
	}
	t, err := MakeTupleType(elems...)
	if err != nil {
		return Type{}, errors.WithPath(err, name)
	}
	t.name = name
	t.fields = names
	return t, nil
}

// IsStruct reports whether t carries struct field names.
func (t Type) IsStruct() bool {
	return t.kind == KindTuple && t.fields != nil
}

// StructName returns the struct name, or "" for plain tuples.
func (t Type) StructName() string { return t.name }

// FieldNames returns a copy of the struct field names in order.
func (t Type) FieldNames() []string {
	if t.fields == nil {
		return nil
	}
	out := make([]string, len(t.fields))
	copy(out, t.fields)
	return out
}

// FieldIndex returns the position of the named field.
func (t Type) FieldIndex(name string) (int, bool) {
	for i, f := range t.fields {
		if f == name {
			return i, true
		}
	}
	return -1, false
}

// StructFieldDef is one entry of an ARC-56 struct definition.
// Type holds an ABI signature or the name of another struct; Fields holds
// an inline anonymous struct and takes precedence when set.
type StructFieldDef struct {
	Name   string
	Type   string
	Fields []StructFieldDef
}

// StructFromDefinitions builds the named struct, resolving references to
// other entries of defs. Unknown names and reference cycles are errors.
func StructFromDefinitions(name string, defs map[string][]StructFieldDef) (Type, error) {
	r := structResolver{defs: defs, visiting: make(map[string]bool)}
	return r.resolve(name)
}

type structResolver struct {
	defs     map[string][]StructFieldDef
	visiting map[string]bool
}

func (r *structResolver) resolve(name string) (Type, error) {
	fields, ok := r.defs[name]
	if !ok {
		return Type{}, errors.MalformedTypeSignature(name, "unknown struct")
	}
	if r.visiting[name] {
		return Type{}, errors.MalformedTypeSignature(name, "recursive struct definition")
	}
	r.visiting[name] = true
	defer delete(r.visiting, name)

	return r.build(name, fields)
}

func (r *structResolver) build(name string, defs []StructFieldDef) (Type, error) {
	fields := make([]StructField, len(defs))
	for i, d := range defs {
		var (
			ft  Type
			err error
		)
		_, named := r.defs[d.Type]
		switch {
		case d.Fields != nil:
			ft, err = r.build(name+"."+d.Name, d.Fields)
		case named:
			ft, err = r.resolve(d.Type)
		default:
			ft, err = TypeOf(d.Type)
		}
		if err != nil {
			return Type{}, errors.WithPath(err, name, d.Name)
		}
		fields[i] = StructField{Name: d.Name, Type: ft}
	}
	return MakeStructType(name, fields)
}

// StructToMap converts a decoded tuple value into field name keyed maps,
// recursing into nested struct fields.
func StructToMap(t Type, v Value) (map[string]any, error) {
	if !t.IsStruct() {
		return nil, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			ABIType(t.String()).
			Detail("not a struct type").
			Build()
	}
	if v.kind != ValueList || len(v.elems) != len(t.fields) {
		return nil, errors.TypeMismatch(errors.PhaseDecode, []string{t.name}, v.kind.String(), t.String())
	}
	out := make(map[string]any, len(t.fields))
	for i, name := range t.fields {
		ct := t.children[i]
		if ct.IsStruct() {
			m, err := StructToMap(ct, v.elems[i])
			if err != nil {
				return nil, errors.WithPath(err, t.name)
			}
			out[name] = m
			continue
		}
		out[name] = v.elems[i].Interface()
	}
	return out, nil
}

// describe renders a struct as name{field:type,...} for logs.
func (t Type) describe() string {
	if !t.IsStruct() {
		return t.String()
	}
	var b strings.Builder
	b.WriteString(t.name)
	b.WriteByte('{')
	for i, f := range t.fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f)
		b.WriteByte(':')
		b.WriteString(t.children[i].describe())
	}
	b.WriteByte('}')
	return b.String()
}
