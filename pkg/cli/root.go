package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	Version = "0.1.0"
	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "packcheck",
		Short: "Validate documentation/resource packs",
		Long:  "packcheck validates a self-contained documentation/resource pack against a fixed structural specification and produces a graded quality report.",
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("output", "o", "./reports", "Output directory for reports")
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))

	// Environment variable support (PACKCHECK_OUTPUT, etc.)
	viper.SetEnvPrefix("PACKCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Rule-table bounds, overridable via PACKCHECK_LIMITS_* variables.
	viper.SetDefault("limits.max_name_length", 64)
	viper.SetDefault("limits.max_body_lines", 500)
	viper.SetDefault("limits.max_reference_lines", 100)
	viper.SetDefault("limits.min_description_length", 30)
	viper.SetDefault("limits.probe_timeout", "2s")
	viper.SetDefault("limits.help_timeout", "5s")

	// Subcommands
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
