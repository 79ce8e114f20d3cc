package delta

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

type Kind int

const (
	KindEqual Kind = iota
	KindInsert
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindEqual:
		return "equal"
	case KindInsert:
		return "insert"
	case KindDelete:
		return "delete"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Operation is one edit step. Count is measured in base units (runes) and is
// ignored for inserts; Value is only required for inserts.
type Operation struct {
	Kind  Kind
	Count int
	Value *string
}

func Equal(count int) Operation {
	return Operation{Kind: KindEqual, Count: count}
}

func Delete(count int) Operation {
	return Operation{Kind: KindDelete, Count: count}
}

func Insert(value string) Operation {
	return Operation{Kind: KindInsert, Value: &value}
}

// EqualText and DeleteText build operations that still carry the text they
// cover, the shape a diff function produces before minimization.
func EqualText(value string) Operation {
	return Operation{Kind: KindEqual, Count: utf8.RuneCountInString(value), Value: &value}
}

func DeleteText(value string) Operation {
	return Operation{Kind: KindDelete, Count: utf8.RuneCountInString(value), Value: &value}
}

func (op Operation) String() string {
	switch op.Kind {
	case KindInsert:
		if op.Value == nil {
			return "+<nil>"
		}
		return fmt.Sprintf("+%q", *op.Value)
	case KindDelete:
		return fmt.Sprintf("-%d", op.Count)
	default:
		return fmt.Sprintf("=%d", op.Count)
	}
}

// wireOp is the record shape on the wire. It mirrors the change objects of
// jsdiff, but count is in Unicode code points where jsdiff counts UTF-16 code
// units; the two only agree on text without characters outside the BMP.
type wireOp struct {
	Count   *int    `json:"count,omitempty"`
	Added   bool    `json:"added,omitempty"`
	Removed bool    `json:"removed,omitempty"`
	Value   *string `json:"value,omitempty"`
}

func (op Operation) MarshalJSON() ([]byte, error) {
	var w wireOp
	switch op.Kind {
	case KindInsert:
		w.Added = true
		w.Value = op.Value
	case KindDelete:
		count := op.Count
		w.Removed = true
		w.Count = &count
		w.Value = op.Value
	case KindEqual:
		count := op.Count
		w.Count = &count
		w.Value = op.Value
	default:
		return nil, fmt.Errorf("%w: cannot encode %s", ErrMalformedDelta, op.Kind)
	}
	return json.Marshal(w)
}

func (op *Operation) UnmarshalJSON(data []byte) error {
	var w wireOp
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedDelta, err)
	}

	switch {
	case w.Added && w.Removed:
		return fmt.Errorf("%w: operation is both added and removed", ErrMalformedDelta)
	case w.Added:
		if w.Value == nil {
			return fmt.Errorf("%w: insert without value", ErrMalformedDelta)
		}
		*op = Operation{Kind: KindInsert, Value: w.Value}
		return nil
	}

	if w.Count == nil {
		return fmt.Errorf("%w: operation without count", ErrMalformedDelta)
	}
	if *w.Count < 0 {
		return fmt.Errorf("%w: negative count %d", ErrMalformedDelta, *w.Count)
	}

	kind := KindEqual
	if w.Removed {
		kind = KindDelete
	}
	*op = Operation{Kind: kind, Count: *w.Count, Value: w.Value}
	return nil
}
