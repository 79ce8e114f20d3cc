package delta

import (
	"fmt"
	"strings"
)

// Apply reconstructs the target from base. The cursor only moves through the
// base, so inserts never shift the coordinates of later operations; the output
// is built in a separate buffer instead of splicing a mutable copy of base.
func Apply(d Delta, base string) (string, error) {
	runes := []rune(base)
	pos := 0

	var out strings.Builder
	out.Grow(len(base))

	for i, op := range d {
		switch op.Kind {
		case KindInsert:
			if op.Value == nil {
				return "", fmt.Errorf("%w: op %d: insert without value", ErrMalformedDelta, i)
			}
			out.WriteString(*op.Value)
		case KindEqual, KindDelete:
			if op.Count < 0 {
				return "", fmt.Errorf("%w: op %d: negative count %d", ErrMalformedDelta, i, op.Count)
			}
			if pos+op.Count > len(runes) {
				return "", fmt.Errorf("%w: op %d: %s of %d at %d reads past base length %d",
					ErrMalformedDelta, i, op.Kind, op.Count, pos, len(runes))
			}
			if op.Kind == KindEqual {
				out.WriteString(string(runes[pos : pos+op.Count]))
			}
			pos += op.Count
		default:
			return "", fmt.Errorf("%w: op %d: unknown %s", ErrMalformedDelta, i, op.Kind)
		}
	}

	if pos != len(runes) {
		return "", fmt.Errorf("%w: consumed %d of %d base units", ErrMalformedDelta, pos, len(runes))
	}

	return out.String(), nil
}
