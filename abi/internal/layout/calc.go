package layout

import (
	"errors"
	"math"
)

// MaxSize bounds any computed head or static size.
const MaxSize = math.MaxInt32

// OffsetSize is the width of a head offset and of length prefixes.
const OffsetSize = 2

// BoolsPerByte is the maximum run of bools packed into one head byte.
const BoolsPerByte = 8

// ErrTooLarge is returned when a size computation exceeds MaxSize.
var ErrTooLarge = errors.New("encoded size exceeds limit")

// Field describes one child of a tuple for layout purposes.
type Field struct {
	Size    int // encoded width, static fields only
	Bool    bool
	Dynamic bool
}

type SlotKind uint8

const (
	SlotStatic SlotKind = iota
	SlotBools
	SlotOffset
)

var slotKindNames = [...]string{
	SlotStatic: "static",
	SlotBools:  "bools",
	SlotOffset: "offset",
}

func (k SlotKind) String() string {
	if int(k) < len(slotKindNames) {
		return slotKindNames[k]
	}
	return "unknown"
}

// Slot is one region of the head.
type Slot struct {
	Kind   SlotKind
	Index  int // first child covered
	Count  int // children covered; >1 only for bool runs
	Offset int // position within the head
	Size   int
}

// Info is the head layout of a tuple.
type Info struct {
	Slots      []Slot
	HeadSize   int
	NumDynamic int
}

// Static reports whether the tuple has no dynamic children, in which case
// HeadSize is the full encoded width.
func (i Info) Static() bool {
	return i.NumDynamic == 0
}

// Calc lays out fields left to right. Consecutive bools share a byte,
// up to eight per byte, most significant bit first.
func Calc(fields []Field) (Info, error) {
	info := Info{Slots: make([]Slot, 0, len(fields))}
	offset := 0

	for i := 0; i < len(fields); {
		f := fields[i]
		slot := Slot{Index: i, Count: 1, Offset: offset}

		switch {
		case f.Dynamic:
			slot.Kind = SlotOffset
			slot.Size = OffsetSize
			info.NumDynamic++
		case f.Bool:
			slot.Kind = SlotBools
			slot.Size = 1
			slot.Count = boolRun(fields, i)
		default:
			slot.Kind = SlotStatic
			slot.Size = f.Size
		}

		next, ok := SafeAdd(offset, slot.Size)
		if !ok {
			return Info{}, ErrTooLarge
		}
		offset = next
		info.Slots = append(info.Slots, slot)
		i += slot.Count
	}

	info.HeadSize = offset
	return info, nil
}

// Repeat returns n copies of f, the layout input for arrays.
func Repeat(f Field, n int) []Field {
	out := make([]Field, n)
	for i := range out {
		out[i] = f
	}
	return out
}

// RepeatedSize returns the encoded width of n copies of a static field
// without materializing them.
func RepeatedSize(f Field, n int) (int, error) {
	if f.Dynamic {
		return SafeMulOrErr(OffsetSize, n)
	}
	if f.Bool {
		return (n + BoolsPerByte - 1) / BoolsPerByte, nil
	}
	return SafeMulOrErr(f.Size, n)
}

func boolRun(fields []Field, start int) int {
	n := 0
	for i := start; i < len(fields) && n < BoolsPerByte; i++ {
		if !fields[i].Bool || fields[i].Dynamic {
			break
		}
		n++
	}
	return n
}

// SafeAdd adds two non-negative sizes, reporting overflow past MaxSize.
func SafeAdd(a, b int) (int, bool) {
	if a > MaxSize-b {
		return 0, false
	}
	return a + b, true
}

// SafeMul multiplies two non-negative sizes, reporting overflow past MaxSize.
func SafeMul(a, b int) (int, bool) {
	if b != 0 && a > MaxSize/b {
		return 0, false
	}
	return a * b, true
}

// SafeMulOrErr is SafeMul returning ErrTooLarge on overflow.
func SafeMulOrErr(a, b int) (int, error) {
	n, ok := SafeMul(a, b)
	if !ok {
		return 0, ErrTooLarge
	}
	return n, nil
}
