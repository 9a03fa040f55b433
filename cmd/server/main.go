package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/erazemk/dostava/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var envFile string

	cmd := &cobra.Command{
		Use:   "dostava",
		Short: "Dostava serves items, shipments and orders over HTTP",
		Long: `Dostava is a small REST backend for items, shipments and orders.
Settings come from flags, environment variables and an optional .env file,
in that order of precedence.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ReadEnvFile(v, envFile, cmd.Flags().Changed("env-file")); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file to read settings from")
	flags.String("database-url", "", "database connection URL (sqlite:///path or postgres://...)")
	flags.String("addr", "", "listen address")
	flags.String("api-prefix", "", "path prefix for the API routes")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	bindFlag(v, cmd, config.KeyDatabaseURL, "database-url")
	bindFlag(v, cmd, config.KeyAddr, "addr")
	bindFlag(v, cmd, config.KeyAPIPrefix, "api-prefix")
	bindFlag(v, cmd, config.KeyLogLevel, "log-level")

	cmd.AddCommand(versionCmd)
	return cmd
}

// bindFlag lets a set flag override the environment and the env file.
func bindFlag(v *viper.Viper, cmd *cobra.Command, key, name string) {
	if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
		panic(err)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dostava %s\n", version)
	},
}
