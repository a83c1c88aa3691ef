package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	internal "github.com/deploymenttheory/go-dat/internal/services"
	"github.com/deploymenttheory/go-dat/internal/types"
)

// containerService implements the ContainerService interface
type containerService struct {
	mu             sync.Mutex
	config         internal.LibraryConfig
	openContainers map[string]*containerHandle
}

// containerHandle represents an open container
type containerHandle struct {
	path     string
	service  *internal.ResourceService
	header   types.DatHeader
	openedAt time.Time
}

// NewContainerService creates a new container service instance
func NewContainerService(config internal.LibraryConfig) ContainerService {
	return &containerService{
		config:         config,
		openContainers: make(map[string]*containerHandle),
	}
}

// OpenContainer opens a container at the specified path
func (cs *containerService) OpenContainer(ctx context.Context, path string) (ContainerInfo, error) {
	handle, err := cs.handle(ctx, path)
	if err != nil {
		return ContainerInfo{}, err
	}
	return buildContainerInfo(handle), nil
}

// ListResources returns every resource of the container in walk order
func (cs *containerService) ListResources(ctx context.Context, path string) ([]ResourceInfo, error) {
	handle, err := cs.handle(ctx, path)
	if err != nil {
		return nil, err
	}

	entries, err := handle.service.Entries()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}

	resources := make([]ResourceInfo, len(entries))
	for i, entry := range entries {
		resources[i] = buildResourceInfo(path, entry)
	}
	return resources, nil
}

// FindResource returns the first entry for id across paths
func (cs *containerService) FindResource(ctx context.Context, id uint32, paths ...string) (ResourceInfo, error) {
	library, err := cs.library(ctx, paths)
	if err != nil {
		return ResourceInfo{}, err
	}

	loc, err := library.Find(id)
	if err != nil {
		return ResourceInfo{}, err
	}
	return buildResourceInfo(loc.Source, loc.Entry), nil
}

// ReadResource reads id from the first of paths holding it
func (cs *containerService) ReadResource(ctx context.Context, id uint32, paths ...string) ([]byte, ResourceInfo, error) {
	library, err := cs.library(ctx, paths)
	if err != nil {
		return nil, ResourceInfo{}, err
	}

	data, loc, err := library.ReadResource(id)
	if err != nil {
		return nil, ResourceInfo{}, err
	}
	return data, buildResourceInfo(loc.Source, loc.Entry), nil
}

// Close closes all open containers
func (cs *containerService) Close() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	members := make([]*internal.ResourceService, 0, len(cs.openContainers))
	for _, handle := range cs.openContainers {
		members = append(members, handle.service)
	}
	cs.openContainers = make(map[string]*containerHandle)

	return internal.NewLibrary(members...).Close()
}

// handle returns the open container for path, opening it on first use
func (cs *containerService) handle(ctx context.Context, path string) (*containerHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	if handle, exists := cs.openContainers[path]; exists {
		return handle, nil
	}

	var opts []internal.ContainerOption
	if cs.config.VerifyMagic {
		opts = append(opts, internal.WithMagicVerification())
	}
	c, err := internal.OpenContainerFile(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	header, err := c.ReadHeader()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	handle := &containerHandle{
		path:     path,
		service:  internal.NewResourceService(path, c, cs.config.CacheSize),
		header:   header,
		openedAt: time.Now(),
	}
	cs.openContainers[path] = handle
	return handle, nil
}

// library assembles the open containers for paths in search order
func (cs *containerService) library(ctx context.Context, paths []string) (*internal.Library, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("at least one container path is required")
	}

	members := make([]*internal.ResourceService, len(paths))
	for i, path := range paths {
		handle, err := cs.handle(ctx, path)
		if err != nil {
			return nil, err
		}
		members[i] = handle.service
	}
	return internal.NewLibrary(members...), nil
}

func buildContainerInfo(handle *containerHandle) ContainerInfo {
	h := handle.header
	return ContainerInfo{
		Path:         handle.path,
		BlockSize:    h.BlockSize,
		PayloadSize:  int64(handle.service.PayloadSize()),
		FileSize:     h.FileSize,
		FileVersion:  h.FileVersion,
		FileVersion2: h.FileVersion2,
		FreeBlocks:   h.FreeBlockCount,
		RootPosition: h.RootPosition,
		ValidMagic:   h.HasValidMagic(),
		OpenedAt:     handle.openedAt,
	}
}

func buildResourceInfo(source string, entry types.DirectoryEntry) ResourceInfo {
	return ResourceInfo{
		ID:       entry.ID,
		Type:     types.ResourceTypeOf(entry.ID).String(),
		Source:   source,
		Location: entry.Location,
		Size:     entry.Size,
	}
}

// IsNotFound reports whether err means a resource id is absent
func IsNotFound(err error) bool {
	return internal.IsNotFound(err)
}
