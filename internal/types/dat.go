// Package types holds the on-disk structures and format constants of dat containers.
package types

// Container Header
// The header of a dat container lives at a fixed offset near the start of the file.
// Only two of its fields are needed to read resources: the sector size and the
// location of the root directory node.

const (
	// HeaderOffset is the file offset of the container header.
	HeaderOffset = 0x140

	// HeaderSize is the size in bytes of the container header.
	HeaderSize = 36

	// SectorSizeOffset is the file offset of the sector size field.
	// The stored value includes the 4-byte next-sector pointer.
	SectorSizeOffset = 0x144

	// RootDirectoryOffset is the file offset of the root directory location field.
	RootDirectoryOffset = 0x160

	// HeaderMagic is the expected value of the header magic field ("BT").
	HeaderMagic uint32 = 0x5442

	// SectorPointerSize is the width of the next-sector pointer that starts every sector.
	SectorPointerSize = 4
)

// DatHeader is the container header found at HeaderOffset.
type DatHeader struct {
	// Magic identifies the file as a dat container. Expected to be HeaderMagic.
	Magic uint32

	// BlockSize is the sector size in bytes, next-sector pointer included.
	BlockSize uint32

	// FileSize is the size of the container file in bytes.
	FileSize uint32

	// FileVersion is the data version of the container.
	FileVersion uint32

	// FileVersion2 is a secondary version field.
	FileVersion2 uint32

	// FreeHead is the location of the first sector on the free list.
	FreeHead uint32

	// FreeTail is the location of the last sector on the free list.
	FreeTail uint32

	// FreeBlockCount is the number of sectors on the free list.
	FreeBlockCount uint32

	// RootPosition is the location of the root directory node.
	RootPosition uint32
}

// PayloadSize returns the number of payload bytes carried by each sector.
// The result is zero or negative for a corrupt header.
func (h DatHeader) PayloadSize() int64 {
	return int64(h.BlockSize) - SectorPointerSize
}

// HasValidMagic reports whether the header carries the expected magic number.
func (h DatHeader) HasValidMagic() bool {
	return h.Magic == HeaderMagic
}

// Directory Nodes
// A directory node is itself a sector chain. Decoded as little-endian 32-bit words:
//
//	word[0]                     non-zero when the node has children
//	word[0 .. count)            branch pointers, one per entry
//	word[EntryTableOffset]      entry count
//	word[EntryTableOffset+1 ..] entries, EntryWords words each
//
// Word 0 doubles as the first branch pointer, so a node has children exactly
// when its first branch is set.

const (
	// EntryTableOffset is the word index of the entry count within a directory node.
	EntryTableOffset = 0x3E

	// MaxNodeEntries is the entry capacity of a node. Branch pointers occupy
	// words [0, EntryTableOffset).
	MaxNodeEntries = EntryTableOffset

	// EntryWords is the number of 32-bit words in one directory entry record.
	EntryWords = 6

	// WordSize is the size in bytes of one directory word.
	WordSize = 4

	// MinNodeSize is the smallest buffer that can hold a directory node header.
	MinNodeSize = (EntryTableOffset + 1) * WordSize

	// MaxNodeSize is the size of a node filled to capacity.
	MaxNodeSize = (EntryTableOffset + 1 + MaxNodeEntries*EntryWords) * WordSize
)

// Entry record word offsets, relative to the start of the record.
const (
	EntryFlagsWord     = 0
	EntryIDWord        = 1
	EntryLocationWord  = 2
	EntrySizeWord      = 3
	EntryTimestampWord = 4
	EntryVersionWord   = 5
)

// DirectoryEntry identifies one retrievable resource.
type DirectoryEntry struct {
	// ID is the resource identifier. Entries are ascending by ID within a node.
	ID uint32 `json:"id" yaml:"id"`

	// Location is the file offset of the first sector of the resource data.
	Location uint32 `json:"location" yaml:"location"`

	// Size is the logical length of the resource in bytes.
	Size uint32 `json:"size" yaml:"size"`
}

// NodeEntrySize returns the buffer length required by a node declaring count entries.
func NodeEntrySize(count uint32) uint64 {
	return (uint64(EntryTableOffset) + 1 + uint64(count)*EntryWords) * WordSize
}
