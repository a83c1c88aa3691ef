package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-dat/pkg/app/list"
)

var (
	// Filters (list command only)
	listType   string
	listMinID  string
	listMaxID  string
	maxResults int
)

var listCmd = &cobra.Command{
	Use:   "list [dat-path]",
	Short: "Walk the directory and list resources",
	Long: `List the entries of a dat directory in walk order.

Examples:
  # List everything
  go-dat list client_portal.dat

  # List textures only
  go-dat list client_portal.dat --type texture

  # List an id range as JSON
  go-dat list client_portal.dat --min-id 0x04000000 --max-id 0x04FFFFFF -o json`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listType, "type", "t", "", "resource type (model, texture, palette, ... or 0xNN)")
	listCmd.Flags().StringVar(&listMinID, "min-id", "", "lowest id to list (hex)")
	listCmd.Flags().StringVar(&listMaxID, "max-id", "", "highest id to list (hex)")
	listCmd.Flags().IntVar(&maxResults, "limit", 0, "maximum results (0 for all)")
}

func runList(cmd *cobra.Command, path string) error {
	ctx := newContext(cmd)

	request := &list.Request{
		Target:      containerTarget(path),
		VerifyMagic: cfg.VerifyMagic,
		Type:        listType,
		MinID:       listMinID,
		MaxID:       listMaxID,
		MaxResults:  maxResults,
	}

	response, err := list.Handle(ctx, request)
	if err != nil {
		return err
	}

	ctx.Log(list.FormatSummary(response))
	return list.FormatOutput(ctx.Out, response, ctx.OutputFormat)
}
