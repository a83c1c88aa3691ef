package services

import (
	"encoding/binary"
	"fmt"
	"iter"

	"github.com/deploymenttheory/go-dat/internal/interfaces"
	"github.com/deploymenttheory/go-dat/internal/parsers/directory"
	"github.com/deploymenttheory/go-dat/internal/types"
)

// DirectoryIndex searches and walks the directory tree of a container
type DirectoryIndex struct {
	reader interfaces.SectorChainReader
	root   uint32
	endian binary.ByteOrder
}

var _ interfaces.DirectoryIndex = (*DirectoryIndex)(nil)

// NewDirectoryIndex creates a DirectoryIndex rooted at root
func NewDirectoryIndex(reader interfaces.SectorChainReader, root uint32) *DirectoryIndex {
	return &DirectoryIndex{
		reader: reader,
		root:   root,
		endian: binary.LittleEndian,
	}
}

// readNode reconstructs and decodes the directory node at location
func (di *DirectoryIndex) readNode(location uint32) (interfaces.DirectoryNodeReader, error) {
	data, err := di.reader.ReadChain(location)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory node at 0x%X: %w", location, err)
	}

	node, err := directory.NewDirectoryNodeReader(data, di.endian)
	if err != nil {
		return nil, fmt.Errorf("failed to parse directory node at 0x%X: %w", location, err)
	}

	return node, nil
}

// Find returns the directory entry for id.
//
// Each node is scanned in ascending id order. The first entry whose id exceeds
// the target leads into its branch; a leaf ends the search. An id above every
// entry of a node has no branch to follow and is not found.
func (di *DirectoryIndex) Find(id uint32) (types.DirectoryEntry, error) {
	location := di.root

	for {
		node, err := di.readNode(location)
		if err != nil {
			return types.DirectoryEntry{}, err
		}

		descended := false
		for i := 0; i < node.EntryCount(); i++ {
			entry := node.Entry(i)

			if id > entry.ID {
				continue
			}
			if id == entry.ID {
				return entry, nil
			}
			if !node.HasChildren() {
				return types.DirectoryEntry{}, fmt.Errorf("%w: id 0x%08X", types.ErrNotFound, id)
			}

			location = node.BranchPointer(i)
			descended = true
			break
		}

		if !descended {
			return types.DirectoryEntry{}, fmt.Errorf("%w: id 0x%08X", types.ErrNotFound, id)
		}
	}
}

// Walk visits every reachable entry in pre-order: for each entry of a node the
// entry's branch is walked before the entry itself.
func (di *DirectoryIndex) Walk(visitor interfaces.EntryVisitor) error {
	_, err := di.walkNode(di.root, visitor)
	return err
}

// walkNode walks the node at location, reporting whether to continue
func (di *DirectoryIndex) walkNode(location uint32, visitor interfaces.EntryVisitor) (bool, error) {
	node, err := di.readNode(location)
	if err != nil {
		return false, err
	}

	for i := 0; i < node.EntryCount(); i++ {
		if node.HasChildren() {
			shouldContinue, err := di.walkNode(node.BranchPointer(i), visitor)
			if err != nil || !shouldContinue {
				return false, err
			}
		}

		shouldContinue, err := visitor(node.Entry(i))
		if err != nil || !shouldContinue {
			return false, err
		}
	}

	return true, nil
}

// All returns the walk as a lazy sequence. Each call starts a fresh walk; a
// failed walk yields a single zero entry with the error and stops.
func (di *DirectoryIndex) All() iter.Seq2[types.DirectoryEntry, error] {
	return func(yield func(types.DirectoryEntry, error) bool) {
		err := di.Walk(func(entry types.DirectoryEntry) (bool, error) {
			return yield(entry, nil), nil
		})
		if err != nil {
			yield(types.DirectoryEntry{}, err)
		}
	}
}
