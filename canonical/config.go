package canonical

// DefaultMaxDepth bounds map and list nesting. Transactions nest at most
// three levels; the margin covers node-protocol objects.
const DefaultMaxDepth = 64

// BigUintExtType is the msgpack extension type carrying integers wider
// than 64 bits as a minimal big-endian magnitude.
const BigUintExtType int8 = 1

// maxBigUintBytes is the widest extension payload accepted (uint512).
const maxBigUintBytes = 64

// Config configures a Codec.
type Config struct {
	// MaxDepth limits nesting of maps and lists. Zero selects DefaultMaxDepth.
	MaxDepth int
}

// DefaultConfig returns the configuration used by the package-level functions.
func DefaultConfig() Config {
	return Config{MaxDepth: DefaultMaxDepth}
}

func (c Config) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}
