package directory

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-dat/internal/interfaces"
	"github.com/deploymenttheory/go-dat/internal/types"
)

// directoryNodeReader implements the DirectoryNodeReader interface
type directoryNodeReader struct {
	hasChildren bool
	branches    []uint32
	entries     []types.DirectoryEntry
}

// NewDirectoryNodeReader decodes a reconstructed directory blob
func NewDirectoryNodeReader(data []byte, endian binary.ByteOrder) (interfaces.DirectoryNodeReader, error) {
	if len(data) < types.MinNodeSize {
		return nil, fmt.Errorf("%w: data too small for directory node: %d bytes, need %d", types.ErrFormat, len(data), types.MinNodeSize)
	}

	count := word(data, types.EntryTableOffset, endian)
	if count > types.MaxNodeEntries {
		return nil, fmt.Errorf("%w: directory node declares %d entries, capacity is %d", types.ErrFormat, count, types.MaxNodeEntries)
	}
	if need := types.NodeEntrySize(count); need > uint64(len(data)) {
		return nil, fmt.Errorf("%w: entry table of %d entries needs %d bytes, node has %d", types.ErrFormat, count, need, len(data))
	}

	node := &directoryNodeReader{
		hasChildren: word(data, 0, endian) != 0,
		branches:    make([]uint32, count),
		entries:     make([]types.DirectoryEntry, count),
	}

	for i := 0; i < int(count); i++ {
		node.branches[i] = word(data, i, endian)

		base := types.EntryTableOffset + 1 + i*types.EntryWords
		node.entries[i] = types.DirectoryEntry{
			ID:       word(data, base+types.EntryIDWord, endian),
			Location: word(data, base+types.EntryLocationWord, endian),
			Size:     word(data, base+types.EntrySizeWord, endian),
		}
	}

	return node, nil
}

// word returns the 32-bit word at index; callers bound index against len(data)
func word(data []byte, index int, endian binary.ByteOrder) uint32 {
	off := index * types.WordSize
	return endian.Uint32(data[off : off+types.WordSize])
}

// HasChildren reports whether the node is an internal node
func (nr *directoryNodeReader) HasChildren() bool {
	return nr.hasChildren
}

// EntryCount returns the number of entries in the node
func (nr *directoryNodeReader) EntryCount() int {
	return len(nr.entries)
}

// Entry returns the entry at index
func (nr *directoryNodeReader) Entry(index int) types.DirectoryEntry {
	return nr.entries[index]
}

// Entries returns all entries in ascending id order
func (nr *directoryNodeReader) Entries() []types.DirectoryEntry {
	entries := make([]types.DirectoryEntry, len(nr.entries))
	copy(entries, nr.entries)
	return entries
}

// BranchPointer returns the child node location for the entry at index
func (nr *directoryNodeReader) BranchPointer(index int) uint32 {
	return nr.branches[index]
}
