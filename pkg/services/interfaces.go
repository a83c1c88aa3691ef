package services

import (
	"context"
	"time"
)

// ContainerInfo represents basic container metadata
type ContainerInfo struct {
	Path         string
	BlockSize    uint32
	PayloadSize  int64
	FileSize     uint32
	FileVersion  uint32
	FileVersion2 uint32
	FreeBlocks   uint32
	RootPosition uint32
	ValidMagic   bool
	OpenedAt     time.Time
}

// ResourceInfo represents one resource of a container
type ResourceInfo struct {
	ID       uint32
	Type     string
	Source   string
	Location uint32
	Size     uint32
}

// ContainerService defines container operations for library consumers
type ContainerService interface {
	// OpenContainer opens a dat file, or returns the already open one
	OpenContainer(ctx context.Context, path string) (ContainerInfo, error)

	// ListResources walks the directory of an open container
	ListResources(ctx context.Context, path string) ([]ResourceInfo, error)

	// FindResource looks id up in the given containers, in order
	FindResource(ctx context.Context, id uint32, paths ...string) (ResourceInfo, error)

	// ReadResource reads id from the given containers, first match wins
	ReadResource(ctx context.Context, id uint32, paths ...string) ([]byte, ResourceInfo, error)

	// Close closes every open container
	Close() error
}
