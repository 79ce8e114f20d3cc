package resource

import (
	"strconv"
	"strings"

	"github.com/ether/etherdelta/lib/delta"
)

// wantsDelta reports whether the Accept header names the delta media type
// itself with a non-zero quality. Wildcards do not count: a client that has
// not asked for a delta cannot apply one.
func wantsDelta(accept string) bool {
	for _, mediaRange := range strings.Split(accept, ",") {
		parts := strings.Split(mediaRange, ";")
		if !strings.EqualFold(strings.TrimSpace(parts[0]), delta.ContentType) {
			continue
		}

		quality := 1.0
		for _, param := range parts[1:] {
			key, value, found := strings.Cut(strings.TrimSpace(param), "=")
			if !found || !strings.EqualFold(strings.TrimSpace(key), "q") {
				continue
			}
			q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				quality = 0
				break
			}
			quality = q
		}
		if quality > 0 {
			return true
		}
	}
	return false
}
