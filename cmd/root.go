package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-dat/internal/config"
	"github.com/deploymenttheory/go-dat/pkg/app"
)

var (
	// Global output flags
	verbose      bool
	quiet        bool
	outputFormat string

	// Global container flags
	configFile  string
	fallbacks   []string
	verifyMagic bool

	v   = viper.New()
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "go-dat",
	Short: "Read-only explorer and extractor for dat resource containers",
	Long: `go-dat is a cross-platform, read-only command-line tool for inspecting
dat resource containers: sector-chained files bundling many binary resources
keyed by 32-bit ids behind a tree-structured directory.

Commands:
  info        Show the container header
  find        Locate one resource by id
  list        Walk the directory and list resources
  extract     Extract resources to files or stdout
  mount       Expose resources as a read-only file system
  config      Show the effective configuration`,
	Version:       "0.1.0-dev",
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Root().PersistentFlags()
		for key, flag := range map[string]string{
			"output":        "output",
			"fallback_dats": "fallback",
			"verify_magic":  "verify-magic",
		} {
			if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
				return err
			}
		}

		loaded, err := config.Load(v, configFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: dat-config.yaml in ., ./config, $HOME/.go-dat, /etc/go-dat)")
	rootCmd.PersistentFlags().StringSliceVar(&fallbacks, "fallback", nil, "dat files searched after the primary one")
	rootCmd.PersistentFlags().BoolVar(&verifyMagic, "verify-magic", false, "reject containers without the BT header magic")

	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// newContext creates the application context for a command run
func newContext(cmd *cobra.Command) *app.Context {
	ctx := app.NewContext()
	ctx.Context = cmd.Context()
	ctx.OutputFormat = cfg.Output
	ctx.Verbose = verbose
	ctx.Quiet = quiet
	ctx.Out = cmd.OutOrStdout()
	ctx.ConfigureLogging(cmd.ErrOrStderr())
	return ctx
}

// containerTarget returns the primary path with the configured fallbacks
func containerTarget(path string) app.ContainerTarget {
	return app.ContainerTarget{Path: path, Fallbacks: cfg.FallbackDats}
}
