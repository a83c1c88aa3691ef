//go:build linux || darwin

package mount

import (
	"context"
	"log/slog"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/deploymenttheory/go-dat/internal/services"
)

// Root is the top directory of a mounted library
type Root struct {
	fs.Inode

	dirs   []Directory
	logger *slog.Logger
}

var _ = (fs.NodeOnAdder)((*Root)(nil))

// NewRoot lays out the resources of library for mounting
func NewRoot(library *services.Library, logger *slog.Logger) (*Root, error) {
	dirs, err := BuildLayout(library)
	if err != nil {
		return nil, err
	}
	return &Root{dirs: dirs, logger: logger}, nil
}

func (r *Root) OnAdd(ctx context.Context) {
	p := &r.Inode

	for _, d := range r.dirs {
		dir := p.NewPersistentInode(ctx, &fs.Inode{}, fs.StableAttr{Mode: fuse.S_IFDIR})
		p.AddChild(d.Name, dir, true)

		for _, f := range d.Files {
			child := dir.NewPersistentInode(ctx, &resourceFile{file: f, logger: r.logger}, fs.StableAttr{
				Ino: 1<<32 | uint64(f.Entry.ID),
			})
			dir.AddChild(f.Name, child, true)
		}
	}
}

type resourceFile struct {
	fs.Inode

	file   File
	logger *slog.Logger
}

var _ = (fs.NodeReader)((*resourceFile)(nil))
var _ = (fs.NodeOpener)((*resourceFile)(nil))
var _ = (fs.NodeGetattrer)((*resourceFile)(nil))

func (f *resourceFile) Read(ctx context.Context, fh fs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	content, err := f.file.Member.ReadResource(f.file.Entry.ID)
	if err != nil {
		f.logger.Error("read failed", "resource", f.file.Name, "source", f.file.Member.Name(), "error", err)
		return fuse.ReadResultData([]byte{}), syscall.EIO
	}

	if off >= int64(len(content)) {
		return fuse.ReadResultData([]byte{}), 0
	}
	end := off + int64(len(dest))
	if end > int64(len(content)) {
		end = int64(len(content))
	}

	return fuse.ReadResultData(content[off:end]), 0
}

func (f *resourceFile) Open(ctx context.Context, openFlags uint32) (fh fs.FileHandle, fuseFlags uint32, errno syscall.Errno) {
	if openFlags&(syscall.O_WRONLY|syscall.O_RDWR) != 0 {
		return nil, 0, syscall.EROFS
	}
	return f, fuse.FOPEN_KEEP_CACHE, 0
}

func (f *resourceFile) Getattr(ctx context.Context, fh fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = fuse.S_IFREG | 0o444
	out.Size = uint64(f.file.Entry.Size)
	return 0
}

// Mount serves root at mountPoint until the returned server is unmounted
func Mount(mountPoint string, root *Root, opts Options) (Server, error) {
	fsOpts := &fs.Options{}
	fsOpts.Debug = opts.Debug
	fsOpts.AllowOther = opts.AllowOther
	fsOpts.FsName = "go-dat"
	fsOpts.Name = "dat"

	server, err := fs.Mount(mountPoint, root, fsOpts)
	if err != nil {
		return nil, err
	}
	return server, nil
}
