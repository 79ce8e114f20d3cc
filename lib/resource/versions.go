package resource

import (
	"sort"

	"github.com/Masterminds/semver/v3"
)

// SortVersions orders versions newest first. Semantic versions sort by
// precedence and come before anything that does not parse, which sorts
// lexically in descending order.
func SortVersions(versions []string) []string {
	sorted := append([]string(nil), versions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, errI := semver.NewVersion(sorted[i])
		vj, errJ := semver.NewVersion(sorted[j])

		switch {
		case errI == nil && errJ == nil:
			if vi.Equal(vj) {
				return sorted[i] > sorted[j]
			}
			return vi.GreaterThan(vj)
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return sorted[i] > sorted[j]
		}
	})
	return sorted
}
