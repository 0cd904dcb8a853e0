package rangekey

import (
	"github.com/tupledb/tuple/codec"
	"github.com/tupledb/tuple/internal/pool"
	"github.com/tupledb/tuple/tupleval"
)

// PackMany packs prefix||item for each item, sharing one backing buffer
// instead of allocating N times. For each item it writes prefix verbatim,
// packs the item, and records the cursor; the returned slices alias one
// underlying array, each running from the previous item's end cursor (or 0)
// to its own.
//
// A null item (tupleval.Null()) is skipped entirely — no prefix or value is
// written for it — so its slice is empty (start == end == the prior
// cursor). This supports transform workflows that map some items to "no
// key" without disturbing the cursors of surrounding items.
func PackMany(prefix []byte, items []tupleval.Value) ([][]byte, error) {
	offsets, release := pool.GetIntSlice(len(items) + 1)
	defer release()

	w := codec.NewWriter()
	offsets[0] = 0

	for i, item := range items {
		if item.IsNull() {
			offsets[i+1] = offsets[i]
			continue
		}

		w.WriteRaw(prefix)
		if err := tupleval.Pack(w, item); err != nil {
			return nil, err
		}

		offsets[i+1] = len(w.Bytes())
	}

	final := w.Finish()
	out := make([][]byte, len(items))
	for i := range items {
		out[i] = final[offsets[i]:offsets[i+1]]
	}

	return out, nil
}

// PrefixRange is a convenience combining Tuple.ToBytesWithPrefix with
// Derive: it packs t with prefix prepended, then returns the range of that
// packed bytes, so every key extending t under prefix falls inside it.
func PrefixRange(prefix []byte, t tupleval.Tuple, opts ...RangeOption) (Range, error) {
	return Derive(t.ToBytesWithPrefix(prefix), opts...)
}
