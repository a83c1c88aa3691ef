package services

import (
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-dat/internal/types"
)

// LibraryConfig controls how the members of a library are opened
type LibraryConfig struct {
	CacheSize   int
	VerifyMagic bool
}

// Location identifies where a resource was found
type Location struct {
	Source string               `json:"source" yaml:"source"`
	Entry  types.DirectoryEntry `json:"entry" yaml:"entry"`
}

// Library searches an ordered set of containers, first match wins
type Library struct {
	members []*ResourceService
}

// NewLibrary creates a library over already opened services
func NewLibrary(members ...*ResourceService) *Library {
	return &Library{members: members}
}

// OpenLibrary opens every path in order. On failure the containers opened so
// far are closed.
func OpenLibrary(paths []string, config LibraryConfig) (*Library, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("at least one container path is required")
	}

	var opts []ContainerOption
	if config.VerifyMagic {
		opts = append(opts, WithMagicVerification())
	}

	lib := &Library{}
	for _, path := range paths {
		c, err := OpenContainerFile(path, opts...)
		if err != nil {
			lib.Close()
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		lib.members = append(lib.members, NewResourceService(path, c, config.CacheSize))
	}

	return lib, nil
}

// Members returns the services in search order
func (l *Library) Members() []*ResourceService {
	return l.members
}

// Primary returns the first member
func (l *Library) Primary() *ResourceService {
	if len(l.members) == 0 {
		return nil
	}
	return l.members[0]
}

// Find returns the first member entry for id. Errors other than
// types.ErrNotFound stop the search.
func (l *Library) Find(id uint32) (Location, error) {
	for _, member := range l.members {
		entry, err := member.Find(id)
		if err == nil {
			return Location{Source: member.Name(), Entry: entry}, nil
		}
		if !IsNotFound(err) {
			return Location{}, fmt.Errorf("%s: %w", member.Name(), err)
		}
	}

	return Location{}, fmt.Errorf("%w: id 0x%08X in %d containers", types.ErrNotFound, id, len(l.members))
}

// ReadResource reads id from the first member holding it and reports where it
// was found. Each member resolves id once.
func (l *Library) ReadResource(id uint32) ([]byte, Location, error) {
	for _, member := range l.members {
		entry, err := member.Find(id)
		if IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, Location{}, fmt.Errorf("%s: %w", member.Name(), err)
		}

		data, err := member.ReadEntry(entry)
		if err != nil {
			return nil, Location{}, fmt.Errorf("%s: %w", member.Name(), err)
		}
		return data, Location{Source: member.Name(), Entry: entry}, nil
	}

	return nil, Location{}, fmt.Errorf("%w: id 0x%08X in %d containers", types.ErrNotFound, id, len(l.members))
}

// Close closes every member
func (l *Library) Close() error {
	var errs []error
	for _, member := range l.members {
		if err := member.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
