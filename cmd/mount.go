package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-dat/internal/mount"
	"github.com/deploymenttheory/go-dat/internal/services"
	"github.com/deploymenttheory/go-dat/pkg/app"
)

var (
	mountDebug      bool
	mountAllowOther bool
)

var mountCmd = &cobra.Command{
	Use:   "mount [dat-path] [mount-point]",
	Short: "Expose resources as a read-only file system",
	Long: `Mount a dat container with FUSE. Each resource type is a directory
holding one file per resource, named by its hexadecimal id. Fallback
containers contribute the ids the primary one lacks. Linux and macOS only.

Examples:
  # Mount, then browse /mnt/portal/texture
  go-dat mount client_portal.dat /mnt/portal

  # Mount a cell file backed by the portal file
  go-dat mount client_cell_1.dat /mnt/cell --fallback client_portal.dat`,

	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMount(cmd, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(mountCmd)

	mountCmd.Flags().BoolVar(&mountDebug, "debug", false, "print FUSE debug information")
	mountCmd.Flags().BoolVar(&mountAllowOther, "allow-other", false, "allow other users to access the mount")
}

func runMount(cmd *cobra.Command, path, mountPoint string) error {
	ctx := newContext(cmd)

	target := containerTarget(path)
	library, err := services.OpenLibrary(target.Paths(), services.LibraryConfig{
		CacheSize:   cfg.CacheSize,
		VerifyMagic: cfg.VerifyMagic,
	})
	if err != nil {
		return app.ClassifyError("failed to open container", err)
	}
	defer library.Close()

	root, err := mount.NewRoot(library, ctx.Logger)
	if err != nil {
		return app.ClassifyError("failed to read directory", err)
	}

	server, err := mount.Mount(mountPoint, root, mount.Options{Debug: mountDebug, AllowOther: mountAllowOther})
	if err != nil {
		return err
	}
	ctx.Log("mounted", "container", target.String(), "mount_point", mountPoint)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signals
		if err := server.Unmount(); err != nil {
			ctx.Error("unmount failed", "error", err)
		}
	}()

	server.Wait()
	return nil
}
