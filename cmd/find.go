package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-dat/pkg/app/inspect"
)

var findCmd = &cobra.Command{
	Use:   "find [dat-path] [resource-id]",
	Short: "Locate one resource by id",
	Long: `Look up a resource id in the directory and print where its data is
stored. Ids are hexadecimal, with or without a 0x prefix. Fallback containers
are searched in order when the primary one lacks the id.

Examples:
  # Locate a texture
  go-dat find client_portal.dat 0x06001234

  # Search the cell file, then the portal file
  go-dat find client_cell_1.dat 0D000001 --fallback client_portal.dat`,

	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFind(cmd, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, path, id string) error {
	ctx := newContext(cmd)

	response, err := inspect.HandleFind(ctx, &inspect.FindRequest{
		Target:      containerTarget(path),
		ID:          id,
		VerifyMagic: cfg.VerifyMagic,
	})
	if err != nil {
		return err
	}

	return inspect.FormatFind(ctx.Out, response, ctx.OutputFormat)
}
