package model

import (
	"fmt"

	"github.com/wippyai/avm-codec/canonical"
	"github.com/wippyai/avm-codec/errors"
)

// Model is an ordered field list for T. One generic routine drives both
// directions; no per-type encode or decode code is written.
type Model[T any] struct {
	fields []Field[T]
	tags   []string
}

// New builds a Model. Duplicate wire tags, including those contributed by
// flattened fields, panic: field lists are package-level definitions.
func New[T any](fields ...Field[T]) *Model[T] {
	m := &Model[T]{fields: fields}
	seen := make(map[string]string)
	claim := func(tag, owner string) {
		if prev, dup := seen[tag]; dup {
			panic(fmt.Sprintf("model: wire tag %q used by %s and %s", tag, prev, owner))
		}
		seen[tag] = owner
		m.tags = append(m.tags, tag)
	}
	for _, f := range fields {
		if f.Flatten {
			if f.tags == nil {
				panic(fmt.Sprintf("model: field %s cannot be flattened", f.Name))
			}
			for _, t := range f.tags {
				claim(t, f.Name)
			}
			continue
		}
		claim(f.Tag, f.Name)
	}
	return m
}

// Fields returns a copy of the field list.
func (m *Model[T]) Fields() []Field[T] {
	out := make([]Field[T], len(m.fields))
	copy(out, m.fields)
	return out
}

// Tags returns the wire keys this model writes at its own level.
func (m *Model[T]) Tags() []string {
	out := make([]string, len(m.tags))
	copy(out, m.tags)
	return out
}

// ToMap renders v as a canonical map. Empty values are left out.
func (m *Model[T]) ToMap(v *T) (canonical.Map, error) {
	out := make(canonical.Map, len(m.fields))
	for _, f := range m.fields {
		w, err := f.encode(v)
		if err != nil {
			return nil, errors.WithPath(err, f.Name)
		}
		if f.Flatten {
			if sub, ok := w.(canonical.Map); ok {
				for k, x := range sub {
					out[k] = x
				}
			}
			continue
		}
		if !canonical.IsEmpty(w) {
			out[f.Tag] = w
		}
	}
	return out, nil
}

// FromMap fills v from src. Unknown keys are ignored and missing keys
// leave the zero value.
func (m *Model[T]) FromMap(src canonical.Map, v *T) error {
	return m.fromMap(src, v, nil)
}

func (m *Model[T]) fromMap(src canonical.Map, v *T, path []string) error {
	for _, f := range m.fields {
		if f.Flatten {
			if f.Optional && !hasAny(src, f.tags) {
				continue
			}
			if err := f.decode(v, src, path); err != nil {
				return err
			}
			continue
		}
		w, ok := src[f.Tag]
		if !ok || w == nil {
			continue
		}
		if err := f.decode(v, w, appendTag(path, f.Tag)); err != nil {
			return err
		}
	}
	return nil
}

// Encode renders v and serializes it canonically.
func (m *Model[T]) Encode(v *T) ([]byte, error) {
	mm, err := m.ToMap(v)
	if err != nil {
		return nil, err
	}
	return canonical.Encode(mm)
}

// Decode parses data and fills v.
func (m *Model[T]) Decode(data []byte, v *T) error {
	src, err := canonical.Decode(data)
	if err != nil {
		return err
	}
	return m.FromMap(src, v)
}

func hasAny(src canonical.Map, tags []string) bool {
	for _, t := range tags {
		if _, ok := src[t]; ok {
			return true
		}
	}
	return false
}

func appendTag(path []string, tag string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, tag)
}
