package canonical

// Map is a canonical map: string keys to codec values.
type Map = map[string]any

// Marshaler is implemented by types that render themselves as a canonical map.
type Marshaler interface {
	CanonicalMap() (Map, error)
}

// Codec encodes and decodes canonical maps under a fixed Config.
// A Codec is stateless and safe for concurrent use.
type Codec struct {
	cfg Config
}

// New returns a Codec for cfg.
func New(cfg Config) *Codec {
	return &Codec{cfg: cfg}
}

var std = New(DefaultConfig())

// Encode serializes m canonically. Empty values are dropped; a map that is
// empty after filtering encodes as an empty msgpack map.
func Encode(m Map) ([]byte, error) { return std.Encode(m) }

// EncodeValue serializes any supported value canonically. The top-level
// value is written even when empty.
func EncodeValue(v any) ([]byte, error) { return std.EncodeValue(v) }

// Decode parses a msgpack map.
func Decode(data []byte) (Map, error) { return std.Decode(data) }

// DecodeValue parses any msgpack value.
func DecodeValue(data []byte) (any, error) { return std.DecodeValue(data) }

// IsEmpty reports whether v would be omitted as a map entry.
// Unsupported values are reported as non-empty.
func IsEmpty(v any) bool {
	_, empty, err := normalize(v, 0, DefaultMaxDepth, nil)
	return err == nil && empty
}
