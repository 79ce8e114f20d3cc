// Package producer is the server side of differential delivery: it turns a base
// and a target version into a verified, minimized delta.
package producer

import (
	"errors"
	"fmt"

	"github.com/ether/etherdelta/lib/delta"
	"github.com/ether/etherdelta/lib/differ"
	"github.com/ether/etherdelta/lib/integrity"
)

var (
	ErrDeltaVerificationFailed = errors.New("delta failed self-verification")
	ErrBaseNotFound            = errors.New("specified base version not known")
	ErrResourceNotFound        = errors.New("resource not found")
	ErrContentTooLarge         = errors.New("content too large to diff")
	// ErrNotText is returned for content that is not valid UTF-8; the rune
	// based differ cannot rebuild it byte for byte.
	ErrNotText                 = errors.New("content is not valid UTF-8 text")
)

// ProduceDelta diffs base against target with the default character differ.
func ProduceDelta(base, target string) (delta.Delta, integrity.Digest, error) {
	return ProduceDeltaWith(differ.NewCharDiffer(), base, target)
}

// ProduceDeltaWith returns the minimized delta and the target checksum. The
// delta is applied to base before returning; if that does not rebuild target
// exactly nothing is returned.
func ProduceDeltaWith(d differ.Differ, base, target string) (delta.Delta, integrity.Digest, error) {
	minimized := delta.Minimize(d.Diff(base, target))

	rebuilt, err := delta.Apply(minimized, base)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDeltaVerificationFailed, err)
	}
	if rebuilt != target {
		return nil, "", ErrDeltaVerificationFailed
	}

	return minimized, integrity.Checksum(target), nil
}
