package tupleval

import (
	"fmt"
	"net/netip"
	"time"

	"github.com/google/uuid"

	"github.com/tupledb/tuple/errs"
)

// Packable is implemented by any type that knows how to turn itself into a
// Value. Registering a type's own conversion this way is the "a value knows
// how to pack itself" capability the dispatcher recognizes first.
type Packable interface {
	TupleValue() Value
}

// From converts a runtime Go value into a Value, for callers building a
// tuple from dynamically typed data (e.g. decoded from JSON/config) rather
// than calling the Value constructors directly.
//
// Recognized shapes, in dispatch order: nil (Null), Packable (explicit
// self-conversion), Value (passed through), Tuple (wrapped as Nested), then
// the primitive Go kinds matching the wire format's logical types
// (bool, every integer width, float32/float64, string, []byte, [16]byte/
// [8]byte, uuid.UUID, time.Time, time.Duration, netip.Addr). Anything else
// is ErrUnsupported.
func From(x any) (Value, error) {
	if x == nil {
		return Null(), nil
	}

	switch v := x.(type) {
	case Packable:
		return v.TupleValue(), nil
	case Value:
		return v, nil
	case Tuple:
		return Nested(v), nil
	case bool:
		return Bool(v), nil
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint:
		return Uint(uint64(v)), nil
	case uint8:
		return Uint(uint64(v)), nil
	case uint16:
		return Uint(uint64(v)), nil
	case uint32:
		return Uint(uint64(v)), nil
	case uint64:
		return Uint(v), nil
	case float32:
		return Float32(v), nil
	case float64:
		return Float64(v), nil
	case string:
		return Str(v), nil
	case []byte:
		return Bytes(v), nil
	case [16]byte:
		return UUID128(v), nil
	case [8]byte:
		return UUID64(v), nil
	case uuid.UUID:
		return UUID128(v), nil
	case time.Time:
		return Time(v), nil
	case time.Duration:
		return Duration(v), nil
	case netip.Addr:
		return IP(v), nil
	default:
		return Value{}, fmt.Errorf("tupleval: %w: %T", errs.ErrUnsupported, x)
	}
}

// FromMany converts a sequence of runtime Go values and builds a Tuple from
// the results. It is the dynamic counterpart to New, for call sites that
// assemble tuples from heterogeneous, not-statically-typed inputs.
func FromMany(xs ...any) (Tuple, error) {
	values := make([]Value, len(xs))
	for i, x := range xs {
		v, err := From(x)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	return New(values...), nil
}
