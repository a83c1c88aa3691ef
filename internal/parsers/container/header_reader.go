package container

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-dat/internal/interfaces"
	"github.com/deploymenttheory/go-dat/internal/types"
)

// headerReader implements the HeaderReader interface
type headerReader struct {
	header types.DatHeader
}

// NewHeaderReader decodes the container header read from types.HeaderOffset
func NewHeaderReader(data []byte, endian binary.ByteOrder) (interfaces.HeaderReader, error) {
	if len(data) < types.HeaderSize {
		return nil, fmt.Errorf("%w: data too small for container header: %d bytes", types.ErrFormat, len(data))
	}

	return &headerReader{header: parseHeader(data, endian)}, nil
}

// parseHeader parses raw bytes into a DatHeader structure
func parseHeader(data []byte, endian binary.ByteOrder) types.DatHeader {
	return types.DatHeader{
		Magic:          endian.Uint32(data[0:4]),
		BlockSize:      endian.Uint32(data[4:8]),
		FileSize:       endian.Uint32(data[8:12]),
		FileVersion:    endian.Uint32(data[12:16]),
		FileVersion2:   endian.Uint32(data[16:20]),
		FreeHead:       endian.Uint32(data[20:24]),
		FreeTail:       endian.Uint32(data[24:28]),
		FreeBlockCount: endian.Uint32(data[28:32]),
		RootPosition:   endian.Uint32(data[32:36]),
	}
}

// Header returns the decoded header
func (hr *headerReader) Header() types.DatHeader {
	return hr.header
}

// HasValidMagic checks if the header magic matches the dat format
func (hr *headerReader) HasValidMagic() bool {
	return hr.header.HasValidMagic()
}
