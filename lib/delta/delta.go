// Package delta holds the edit-script representation shared by the server that
// produces deltas and the clients that apply them. Keeping both sides on the
// same code means a delta that verifies on the server reconstructs the same way
// on every client.
package delta

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	ContentType = "application/delta+json"
	// BaseVersionHeader names the base a client holds on the request and the
	// base the delta was computed against on the response.
	BaseVersionHeader = "X-Differential-Base-Version"
)

var ErrMalformedDelta = errors.New("malformed delta")

// Delta is an ordered edit script. Positions are implied by the order of the
// operations and are always relative to the unmodified base.
type Delta []Operation

// Minimize drops the values of equal and delete operations. They can always be
// recovered from the base, so sending them only costs bandwidth.
func Minimize(d Delta) Delta {
	if d == nil {
		return nil
	}
	minimized := make(Delta, len(d))
	for i, op := range d {
		if op.Kind == KindInsert {
			minimized[i] = op
			continue
		}
		minimized[i] = Operation{Kind: op.Kind, Count: op.Count}
	}
	return minimized
}

func (d Delta) IsMinimized() bool {
	for _, op := range d {
		if op.Kind != KindInsert && op.Value != nil {
			return false
		}
	}
	return true
}

// BaseLength is the number of base units the delta consumes.
func (d Delta) BaseLength() int {
	n := 0
	for _, op := range d {
		if op.Kind == KindEqual || op.Kind == KindDelete {
			n += op.Count
		}
	}
	return n
}

// TargetLength is the number of units the delta produces.
func (d Delta) TargetLength() int {
	n := 0
	for _, op := range d {
		switch op.Kind {
		case KindEqual:
			n += op.Count
		case KindInsert:
			if op.Value != nil {
				n += utf8.RuneCountInString(*op.Value)
			}
		}
	}
	return n
}

// InsertedLength is the number of units carried literally in the delta.
func (d Delta) InsertedLength() int {
	n := 0
	for _, op := range d {
		if op.Kind == KindInsert && op.Value != nil {
			n += utf8.RuneCountInString(*op.Value)
		}
	}
	return n
}

func Encode(d Delta) ([]byte, error) {
	if d == nil {
		d = Delta{}
	}
	return json.Marshal(d)
}

func Decode(data []byte) (Delta, error) {
	var d Delta
	if err := json.Unmarshal(data, &d); err != nil {
		if errors.Is(err, ErrMalformedDelta) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedDelta, err)
	}
	return d, nil
}
