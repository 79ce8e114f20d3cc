package resolver

import "fmt"

type State int

const (
	StateCheckExactCache State = iota
	StateCheckAlternateVersion
	StateAttemptDifferential
	StateApplyAndVerify
	StateFallbackFullFetch
	StateSuccess
)

func (s State) String() string {
	switch s {
	case StateCheckExactCache:
		return "CheckExactCache"
	case StateCheckAlternateVersion:
		return "CheckAlternateVersion"
	case StateAttemptDifferential:
		return "AttemptDifferential"
	case StateApplyAndVerify:
		return "ApplyAndVerify"
	case StateFallbackFullFetch:
		return "FallbackFullFetch"
	case StateSuccess:
		return "Success"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Source says where resolved content came from.
type Source int

const (
	SourceCache Source = iota
	SourceDifferential
	SourceNetwork
)

func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceDifferential:
		return "differential"
	case SourceNetwork:
		return "network"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}
