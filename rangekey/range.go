package rangekey

// Range is a half-open byte interval [Begin, End) containing exactly the
// packed tuples that extend a given prefix. OpenEnded is set when no finite
// End exists (the prefix is empty, or made entirely of 0xFF bytes under the
// next-prefix convention) — callers should treat the range as unbounded
// above in that case and ignore End.
type Range struct {
	Begin     []byte
	End       []byte
	OpenEnded bool
}

// Config holds Derive's options.
type Config struct {
	useNextPrefix bool
}

// RangeOption configures Derive. It is a plain function type rather than a
// generic options package: Derive is the only configurable entry point this
// module has, so a small dedicated type carries the one knob without pulling
// in a reusable-options abstraction nothing else uses.
type RangeOption func(*Config)

// WithNextPrefixEnd selects next_prefix(p) (increment the last non-0xFF
// byte, stripping trailing 0xFF) as the range's End, instead of the default
// p || 0xFF convention. Use this when the underlying store may also hold
// keys that are not themselves tuple-layer bytes, so a bare 0xFF sentinel
// byte could collide with a real key.
func WithNextPrefixEnd() RangeOption {
	return func(c *Config) { c.useNextPrefix = true }
}

// Derive computes the range for a packed prefix p. The default convention
// (no options) is begin = p||0x00, end = p||0xFF, which is correct whenever
// the store holds only tuple-layer-encoded keys, since no valid tag byte
// exceeds 0xFE. An empty prefix is a special case: it denotes "every packed
// tuple", which begin = 0x00 would wrongly exclude a top-level lone-null key
// (itself exactly the byte 0x00). So an empty prefix always derives as
// Begin: nil, OpenEnded: true, regardless of the chosen end convention.
func Derive(p []byte, opts ...RangeOption) (Range, error) {
	if len(p) == 0 {
		return Range{OpenEnded: true}, nil
	}

	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}

	begin := make([]byte, len(p)+1)
	copy(begin, p)
	begin[len(p)] = 0x00

	if !cfg.useNextPrefix {
		end := make([]byte, len(p)+1)
		copy(end, p)
		end[len(p)] = 0xFF

		return Range{Begin: begin, End: end}, nil
	}

	end, openEnded := nextPrefix(p)

	return Range{Begin: begin, End: end, OpenEnded: openEnded}, nil
}

// nextPrefix increments the last byte of p that is not 0xFF, dropping any
// trailing run of 0xFF bytes (e.g. {0x01, 0xFF} -> {0x02}). If p consists
// entirely of 0xFF bytes (or is empty), there is no finite successor: the
// range is open-ended above.
func nextPrefix(p []byte) ([]byte, bool) {
	i := len(p)
	for i > 0 && p[i-1] == 0xFF {
		i--
	}
	if i == 0 {
		return nil, true
	}

	out := make([]byte, i)
	copy(out, p[:i])
	out[i-1]++

	return out, false
}
