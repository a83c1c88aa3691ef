package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration after merging defaults, the config file,
DAT_* environment variables and command-line flags.

Examples:
  # Show settings
  go-dat config

  # Show settings as seen with an environment override
  DAT_WORKERS=8 go-dat config`,

	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfig(cmd)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command) error {
	w := cmd.OutOrStdout()

	if used := v.ConfigFileUsed(); used != "" {
		fmt.Fprintf(w, "# %s\n", used)
	}

	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(map[string]interface{}{
		"output":        cfg.Output,
		"workers":       cfg.Workers,
		"cache_size":    cfg.CacheSize,
		"compression":   cfg.Compression,
		"fallback_dats": cfg.FallbackDats,
		"verify_magic":  cfg.VerifyMagic,
		"digest":        cfg.Digest,
	})
}
