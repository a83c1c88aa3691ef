// Package testutil builds dat containers in memory for tests.
package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/deploymenttheory/go-dat/internal/types"
)

// DataStart is the offset of the first sector written by a Builder.
const DataStart = 0x400

// Node describes a directory node to encode.
// The node has children exactly when Branches[0] is non-zero.
type Node struct {
	Branches []uint32
	Entries  []types.DirectoryEntry
}

// Builder lays out sectors and directory nodes of a dat container.
type Builder struct {
	payloadSize int
	magic       uint32
	root        uint32
	data        []byte
}

// NewBuilder returns a builder for sectors carrying payloadSize bytes each.
func NewBuilder(payloadSize int) *Builder {
	return &Builder{
		payloadSize: payloadSize,
		magic:       types.HeaderMagic,
		data:        make([]byte, DataStart),
	}
}

// PayloadSize returns the sector payload size of the builder.
func (b *Builder) PayloadSize() int {
	return b.payloadSize
}

// SetMagic overrides the header magic.
func (b *Builder) SetMagic(magic uint32) {
	b.magic = magic
}

// SetRoot sets the root directory location.
func (b *Builder) SetRoot(location uint32) {
	b.root = location
}

// AddBlob writes data as a chain of consecutive sectors and returns the
// location of the first one. Empty data yields location 0.
func (b *Builder) AddBlob(data []byte) uint32 {
	return b.addChain(b.split(data), false)
}

// AddBlobScattered writes data like AddBlob but lays the sectors out back to
// front so link order differs from physical order.
func (b *Builder) AddBlobScattered(data []byte) uint32 {
	return b.addChain(b.split(data), true)
}

// AddNode encodes and writes a directory node.
func (b *Builder) AddNode(n Node) uint32 {
	return b.AddBlob(EncodeNode(n))
}

// AddTree writes a directory tree holding entries, which must be sorted by id,
// with at most fanout entries per node. Every internal node entry closes the
// range of its branch, so pre-order traversal yields ascending ids.
func (b *Builder) AddTree(entries []types.DirectoryEntry, fanout int) uint32 {
	if len(entries) <= fanout {
		return b.AddNode(Node{Entries: entries})
	}

	groups := len(entries) / 2
	if groups > fanout {
		groups = fanout
	}

	var node Node
	start := 0
	for g := 0; g < groups; g++ {
		size := len(entries) / groups
		if g < len(entries)%groups {
			size++
		}
		end := start + size
		node.Branches = append(node.Branches, b.AddTree(entries[start:end-1], fanout))
		node.Entries = append(node.Entries, entries[end-1])
		start = end
	}

	return b.AddNode(node)
}

// Bytes returns the container image with its header filled in.
func (b *Builder) Bytes() []byte {
	out := append([]byte(nil), b.data...)
	le := binary.LittleEndian
	le.PutUint32(out[types.HeaderOffset:], b.magic)
	le.PutUint32(out[types.SectorSizeOffset:], uint32(b.payloadSize+types.SectorPointerSize))
	le.PutUint32(out[types.HeaderOffset+8:], uint32(len(out)))
	le.PutUint32(out[types.RootDirectoryOffset:], b.root)
	return out
}

// WriteFile writes the container image to a temporary file and returns its path.
func (b *Builder) WriteFile(tb testing.TB) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "test.dat")
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		tb.Fatalf("failed to write test container: %v", err)
	}
	return path
}

func (b *Builder) split(data []byte) [][]byte {
	var chunks [][]byte
	for off := 0; off < len(data); off += b.payloadSize {
		end := off + b.payloadSize
		if end > len(data) {
			end = len(data)
		}
		chunks = append(chunks, data[off:end])
	}
	return chunks
}

func (b *Builder) addChain(chunks [][]byte, reverse bool) uint32 {
	if len(chunks) == 0 {
		return 0
	}

	sectorSize := types.SectorPointerSize + b.payloadSize
	base := len(b.data)
	b.data = append(b.data, make([]byte, len(chunks)*sectorSize)...)

	locate := func(i int) int {
		if reverse {
			return base + (len(chunks)-1-i)*sectorSize
		}
		return base + i*sectorSize
	}

	for i, chunk := range chunks {
		off := locate(i)
		var next uint32
		if i+1 < len(chunks) {
			next = uint32(locate(i + 1))
		}
		binary.LittleEndian.PutUint32(b.data[off:], next)
		copy(b.data[off+types.SectorPointerSize:], chunk)
	}

	return uint32(locate(0))
}

// EncodeNode encodes a directory node at full capacity size.
func EncodeNode(n Node) []byte {
	data := make([]byte, types.MaxNodeSize)
	le := binary.LittleEndian

	for i, branch := range n.Branches {
		le.PutUint32(data[i*types.WordSize:], branch)
	}
	le.PutUint32(data[types.EntryTableOffset*types.WordSize:], uint32(len(n.Entries)))

	for i, e := range n.Entries {
		base := (types.EntryTableOffset + 1 + i*types.EntryWords) * types.WordSize
		le.PutUint32(data[base+types.EntryFlagsWord*types.WordSize:], 0x00030000)
		le.PutUint32(data[base+types.EntryIDWord*types.WordSize:], e.ID)
		le.PutUint32(data[base+types.EntryLocationWord*types.WordSize:], e.Location)
		le.PutUint32(data[base+types.EntrySizeWord*types.WordSize:], e.Size)
		le.PutUint32(data[base+types.EntryVersionWord*types.WordSize:], 1)
	}

	return data
}

// RandomPayload returns n bytes of unique content.
func RandomPayload(n int) []byte {
	out := make([]byte, 0, n+16)
	for len(out) < n {
		id := uuid.New()
		out = append(out, id[:]...)
	}
	return out[:n]
}

// Resource is a payload stored in a fixture container.
type Resource struct {
	ID   uint32
	Data []byte
}

// BuildContainer writes resources, sorted by id, and a directory tree over them.
func BuildContainer(payloadSize, fanout int, resources []Resource) (*Builder, []types.DirectoryEntry) {
	b := NewBuilder(payloadSize)

	entries := make([]types.DirectoryEntry, len(resources))
	for i, r := range resources {
		entries[i] = types.DirectoryEntry{
			ID:       r.ID,
			Location: b.AddBlob(r.Data),
			Size:     uint32(len(r.Data)),
		}
	}

	b.SetRoot(b.AddTree(entries, fanout))
	return b, entries
}
