// Package mount exposes the resources of a library as a read-only file tree.
package mount

import (
	"fmt"
	"sort"

	"github.com/deploymenttheory/go-dat/internal/services"
	"github.com/deploymenttheory/go-dat/internal/types"
)

// File is one resource in the tree
type File struct {
	Name   string
	Entry  types.DirectoryEntry
	Member *services.ResourceService
}

// Directory groups the resources of one type
type Directory struct {
	Name  string
	Files []File
}

// Options configures a mount
type Options struct {
	Debug      bool
	AllowOther bool
}

// Server is a running mount
type Server interface {
	Wait()
	Unmount() error
}

// FileName returns the name a resource is listed under
func FileName(id uint32) string {
	return fmt.Sprintf("%08X", id)
}

// BuildLayout walks every member of library in search order. An id present in
// several members is listed once, backed by the first member holding it, the
// same member Library.ReadResource would read from.
func BuildLayout(library *services.Library) ([]Directory, error) {
	seen := make(map[uint32]bool)
	byType := make(map[types.ResourceType][]File)

	for _, member := range library.Members() {
		entries, err := member.Entries()
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", member.Name(), err)
		}

		for _, entry := range entries {
			if seen[entry.ID] {
				continue
			}
			seen[entry.ID] = true

			typ := types.ResourceTypeOf(entry.ID)
			byType[typ] = append(byType[typ], File{
				Name:   FileName(entry.ID),
				Entry:  entry,
				Member: member,
			})
		}
	}

	dirs := make([]Directory, 0, len(byType))
	for typ, files := range byType {
		sort.Slice(files, func(i, j int) bool { return files[i].Entry.ID < files[j].Entry.ID })
		dirs = append(dirs, Directory{Name: typ.String(), Files: files})
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })

	return dirs, nil
}
