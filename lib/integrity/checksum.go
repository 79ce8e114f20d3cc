package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const ChecksumHeader = "X-Differential-Target-Checksum"

var ErrIntegrityMismatch = errors.New("integrity mismatch")

// Digest is the lowercase hex SHA-256 of the UTF-8 encoded content.
type Digest string

func Checksum(content string) Digest {
	sum := sha256.Sum256([]byte(content))
	return Digest(hex.EncodeToString(sum[:]))
}

func ChecksumBytes(content []byte) Digest {
	sum := sha256.Sum256(content)
	return Digest(hex.EncodeToString(sum[:]))
}

func Verify(content string, expected Digest) bool {
	return strings.EqualFold(string(Checksum(content)), strings.TrimSpace(string(expected)))
}

func Check(content string, expected Digest) error {
	actual := Checksum(content)
	if !strings.EqualFold(string(actual), strings.TrimSpace(string(expected))) {
		return fmt.Errorf("%w: expected %s, got %s", ErrIntegrityMismatch, expected, actual)
	}
	return nil
}
