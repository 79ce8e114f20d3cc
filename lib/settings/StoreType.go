package settings

import (
	"fmt"
	"strings"
)

type IStoreType string

const (
	FS       IStoreType = "fs"
	MEMORY   IStoreType = "memory"
	SQLITE   IStoreType = "sqlite"
	POSTGRES IStoreType = "postgres"
)

func ParseStoreType(s string) (IStoreType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fs":
		return FS, nil
	case "memory":
		return MEMORY, nil
	case "sqlite":
		return SQLITE, nil
	case "postgres":
		return POSTGRES, nil
	default:
		return "", fmt.Errorf("unknown store type: %q", s)
	}
}

func (storeType IStoreType) String() string {
	return string(storeType)
}
