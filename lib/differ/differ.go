// Package differ wraps a general-purpose diff algorithm behind the small
// capability the producer needs: turn a base and a target into an edit script.
package differ

import (
	"github.com/ether/etherdelta/lib/delta"
	"github.com/pmezard/go-difflib/difflib"
)

type Differ interface {
	Diff(base, target string) delta.Delta
}

// Func lets a plain function act as a Differ.
type Func func(base, target string) delta.Delta

func (f Func) Diff(base, target string) delta.Delta {
	return f(base, target)
}

// CharDiffer diffs on code points with difflib's SequenceMatcher. The common
// prefix and suffix are peeled off first; for successive releases of the same
// bundle that is usually most of the file and keeps the matcher's quadratic
// worst case away from the unchanged parts.
type CharDiffer struct{}

func NewCharDiffer() CharDiffer {
	return CharDiffer{}
}

func (CharDiffer) Diff(base, target string) delta.Delta {
	a := []rune(base)
	b := []rune(target)

	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(a)-prefix && suffix < len(b)-prefix && a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}

	var ops delta.Delta
	if prefix > 0 {
		ops = append(ops, delta.EqualText(string(a[:prefix])))
	}
	ops = append(ops, diffMiddle(a[prefix:len(a)-suffix], b[prefix:len(b)-suffix])...)
	if suffix > 0 {
		ops = append(ops, delta.EqualText(string(a[len(a)-suffix:])))
	}

	return ops
}

func diffMiddle(a, b []rune) delta.Delta {
	switch {
	case len(a) == 0 && len(b) == 0:
		return nil
	case len(a) == 0:
		return delta.Delta{delta.Insert(string(b))}
	case len(b) == 0:
		return delta.Delta{delta.DeleteText(string(a))}
	}

	matcher := difflib.NewMatcherWithJunk(toUnits(a), toUnits(b), false, nil)

	var ops delta.Delta
	for _, code := range matcher.GetOpCodes() {
		switch code.Tag {
		case 'e':
			ops = append(ops, delta.EqualText(string(a[code.I1:code.I2])))
		case 'd':
			ops = append(ops, delta.DeleteText(string(a[code.I1:code.I2])))
		case 'i':
			ops = append(ops, delta.Insert(string(b[code.J1:code.J2])))
		case 'r':
			ops = append(ops,
				delta.DeleteText(string(a[code.I1:code.I2])),
				delta.Insert(string(b[code.J1:code.J2])),
			)
		}
	}
	return ops
}

func toUnits(runes []rune) []string {
	units := make([]string, len(runes))
	for i, r := range runes {
		units[i] = string(r)
	}
	return units
}
