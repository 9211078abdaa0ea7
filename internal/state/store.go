package state

import (
	"errors"
	"fmt"
	"strings"

	"hdrbar/pkg/types"
)

// ErrLayoutNotFound is returned when no layout is stored under a name
var ErrLayoutNotFound = errors.New("layout not found")

// Store persists header layouts by name
type Store interface {
	Load(name string) (types.Layout, error)
	Save(layout types.Layout) error
	List() ([]string, error)
	Delete(name string) error
	Close() error
}

// Backend names accepted by Open
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Open opens the store for a backend at path
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(backend) {
	case "", BackendYAML:
		return NewYAMLStore(path), nil
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown layout backend %q", backend)
	}
}
