package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-dat/pkg/app/inspect"
)

var countEntries bool

var infoCmd = &cobra.Command{
	Use:   "info [dat-path]",
	Short: "Show the container header",
	Long: `Show the header of a dat container: magic, sector size, file size,
versions, free list and root directory location.

Examples:
  # Show the header
  go-dat info client_portal.dat

  # Include the number of directory entries
  go-dat info client_portal.dat --count -o json`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInfo(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVar(&countEntries, "count", false, "walk the directory and count entries")
}

func runInfo(cmd *cobra.Command, path string) error {
	ctx := newContext(cmd)

	response, err := inspect.HandleInfo(ctx, &inspect.InfoRequest{
		Path:         path,
		VerifyMagic:  cfg.VerifyMagic,
		CountEntries: countEntries,
	})
	if err != nil {
		return err
	}

	return inspect.FormatInfo(ctx.Out, response, ctx.OutputFormat)
}
