// Package model maps Go structs to canonical msgpack maps through
// declarative field lists.
//
// A Model is built once per struct type from typed Field constructors:
//
//	var assetParams = model.New(
//		model.Uint64("Total", "t", func(p *AssetParams) *uint64 { return &p.Total }),
//		model.String("UnitName", "un", func(p *AssetParams) *string { return &p.UnitName }),
//	)
//
// ToMap drops empty values so the result encodes canonically. FromMap
// ignores unknown keys and leaves missing ones at their zero value.
// Object fields nest another Model; calling Flat on one merges its keys
// into the parent map. ObjectPtr allocates its target only when the wire
// map carries one of the nested keys.
package model
