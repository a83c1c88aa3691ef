package services

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/deploymenttheory/go-dat/internal/interfaces"
	"github.com/deploymenttheory/go-dat/internal/parsers/container"
	"github.com/deploymenttheory/go-dat/internal/types"
)

// Container provides low-level access to the sectors of a dat file.
// A Container is not safe for concurrent use; open one per reader.
type Container struct {
	source       io.ReadSeeker
	closer       io.Closer
	payloadSize  int
	rootLocation uint32
	endianness   binary.ByteOrder
}

var _ interfaces.SectorChainReader = (*Container)(nil)

type containerOptions struct {
	verifyMagic bool
}

// ContainerOption configures how a container is opened
type ContainerOption func(*containerOptions)

// WithMagicVerification rejects containers whose header magic is not types.HeaderMagic
func WithMagicVerification() ContainerOption {
	return func(o *containerOptions) {
		o.verifyMagic = true
	}
}

// OpenContainer reads the format parameters from source. The container takes
// ownership of source and closes it on Close when it implements io.Closer.
func OpenContainer(source io.ReadSeeker, opts ...ContainerOption) (*Container, error) {
	var options containerOptions
	for _, opt := range opts {
		opt(&options)
	}

	c := &Container{
		source:     source,
		endianness: binary.LittleEndian,
	}
	if closer, ok := source.(io.Closer); ok {
		c.closer = closer
	}

	sectorSize, err := c.readWordAt(types.SectorSizeOffset)
	if err != nil {
		return nil, fmt.Errorf("failed to read sector size: %w", err)
	}

	payloadSize := int64(sectorSize) - types.SectorPointerSize
	if payloadSize <= 0 {
		return nil, fmt.Errorf("%w: invalid sector size %d", types.ErrFormat, sectorSize)
	}
	c.payloadSize = int(payloadSize)

	c.rootLocation, err = c.readWordAt(types.RootDirectoryOffset)
	if err != nil {
		return nil, fmt.Errorf("failed to read root directory location: %w", err)
	}

	// Sector size is bounded by the source size
	size, err := c.source.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to determine container size: %w", types.ErrIO, err)
	}
	if int64(sectorSize) > size {
		return nil, fmt.Errorf("%w: sector size %d exceeds container size %d", types.ErrFormat, sectorSize, size)
	}

	if options.verifyMagic {
		hr, err := c.readHeader()
		if err != nil {
			return nil, err
		}
		if !hr.HasValidMagic() {
			return nil, fmt.Errorf("%w: invalid header magic: got 0x%08X, want 0x%08X", types.ErrFormat, hr.Header().Magic, types.HeaderMagic)
		}
	}

	return c, nil
}

// OpenContainerFile opens the dat file at filePath
func OpenContainerFile(filePath string, opts ...ContainerOption) (*Container, error) {
	if filePath == "" {
		return nil, fmt.Errorf("container file path cannot be empty")
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open container file: %w", types.ErrIO, err)
	}

	c, err := OpenContainer(file, opts...)
	if err != nil {
		file.Close()
		return nil, err
	}

	return c, nil
}

// readWordAt reads a little-endian 32-bit word at offset
func (c *Container) readWordAt(offset int64) (uint32, error) {
	if _, err := c.source.Seek(offset, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w: seek to 0x%X failed: %w", types.ErrIO, offset, err)
	}

	var buf [4]byte
	if _, err := io.ReadFull(c.source, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: read at 0x%X failed: %w", types.ErrIO, offset, err)
	}

	return c.endianness.Uint32(buf[:]), nil
}

// ReadHeader reads and decodes the full container header
func (c *Container) ReadHeader() (types.DatHeader, error) {
	hr, err := c.readHeader()
	if err != nil {
		return types.DatHeader{}, err
	}
	return hr.Header(), nil
}

func (c *Container) readHeader() (interfaces.HeaderReader, error) {
	if _, err := c.source.Seek(types.HeaderOffset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seek to header failed: %w", types.ErrIO, err)
	}

	data := make([]byte, types.HeaderSize)
	if _, err := io.ReadFull(c.source, data); err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %w", types.ErrIO, err)
	}

	hr, err := container.NewHeaderReader(data, c.endianness)
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}
	return hr, nil
}

// ReadChain follows the sector chain starting at location. The result length
// is always a multiple of the payload size; padding in the last sector is kept.
func (c *Container) ReadChain(location uint32) ([]byte, error) {
	var result []byte

	for next := location; next != 0; {
		if _, err := c.source.Seek(int64(next), io.SeekStart); err != nil {
			return nil, fmt.Errorf("%w: seek to sector 0x%X failed: %w", types.ErrIO, next, err)
		}

		var pointer [types.SectorPointerSize]byte
		if _, err := io.ReadFull(c.source, pointer[:]); err != nil {
			return nil, fmt.Errorf("%w: failed to read sector 0x%X link: %w", types.ErrIO, next, err)
		}

		start := len(result)
		result = append(result, make([]byte, c.payloadSize)...)
		if _, err := io.ReadFull(c.source, result[start:]); err != nil {
			return nil, fmt.Errorf("%w: failed to read sector 0x%X payload: %w", types.ErrIO, next, err)
		}

		next = c.endianness.Uint32(pointer[:])
	}

	if result == nil {
		result = []byte{}
	}
	return result, nil
}

// ReadResourceByLocation reads the chain at location truncated to size bytes
func (c *Container) ReadResourceByLocation(location uint32, size uint32) ([]byte, error) {
	data, err := c.ReadChain(location)
	if err != nil {
		return nil, err
	}

	if uint64(size) > uint64(len(data)) {
		return nil, fmt.Errorf("%w: resource at 0x%X declares %d bytes, chain holds %d", types.ErrFormat, location, size, len(data))
	}

	return data[:size], nil
}

// PayloadSize returns the number of payload bytes per sector
func (c *Container) PayloadSize() int {
	return c.payloadSize
}

// RootLocation returns the location of the root directory node
func (c *Container) RootLocation() uint32 {
	return c.rootLocation
}

// GetEndianness returns the byte order used by the container
func (c *Container) GetEndianness() binary.ByteOrder {
	return c.endianness
}

// Close releases the underlying source
func (c *Container) Close() error {
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}
