// File: internal/interfaces/dat.go
package interfaces

import (
	"github.com/deploymenttheory/go-dat/internal/types"
)

// HeaderReader provides methods for reading the container header
type HeaderReader interface {
	// Header returns the decoded header
	Header() types.DatHeader

	// HasValidMagic checks if the header magic matches the dat format
	HasValidMagic() bool
}

// SectorChainReader reconstructs logical blobs from linked sectors
type SectorChainReader interface {
	// PayloadSize returns the number of payload bytes per sector
	PayloadSize() int

	// ReadChain follows the sector chain starting at location and returns the
	// concatenated payloads. A zero location yields an empty buffer.
	ReadChain(location uint32) ([]byte, error)

	// ReadResourceByLocation reads the chain at location truncated to size bytes
	ReadResourceByLocation(location uint32, size uint32) ([]byte, error)
}

// DirectoryNodeReader provides methods for reading a decoded directory node
type DirectoryNodeReader interface {
	// HasChildren reports whether the node is an internal node
	HasChildren() bool

	// EntryCount returns the number of entries in the node
	EntryCount() int

	// Entry returns the entry at index
	Entry(index int) types.DirectoryEntry

	// Entries returns all entries in ascending id order
	Entries() []types.DirectoryEntry

	// BranchPointer returns the child node location associated with the entry at index
	BranchPointer(index int) uint32
}

// EntryVisitor is called for each entry during a directory walk.
// Returning false stops the walk.
type EntryVisitor func(entry types.DirectoryEntry) (bool, error)

// DirectoryIndex resolves ids against the directory tree of a container
type DirectoryIndex interface {
	// Find returns the entry with the given id or types.ErrNotFound
	Find(id uint32) (types.DirectoryEntry, error)

	// Walk visits every reachable entry in pre-order, branches before entries
	Walk(visitor EntryVisitor) error
}
