// Package cmd implements the graphiql command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/jensneuse/abstractlogger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "graphiql",
		Short: "graphiql hosts the GraphiQL explorer in front of a GraphQL endpoint",
		Long: `graphiql delivers the GraphiQL explorer as three assets assembled from
vendored npm packages and local files: an HTML page, one JavaScript bundle
and one stylesheet.

Every option can be set as flag, as environment variable with the prefix
GRAPHIQL_ (e.g. GRAPHIQL_GRAPHQL_FETCH_URL for --graphqlFetchURL) or in the
file given with --config. Paths may start with ~ for the home directory.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().String("config", "", "configuration file (json, yaml or toml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newRenderCommand())

	return rootCmd
}

// Execute runs the root command with the process arguments.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger returns a zap backed logger writing to stderr.
func newLogger(debug bool) (*zap.Logger, abstractlogger.Logger, error) {
	// the zap level filters, production logs from info upwards
	config := zap.NewProductionConfig()
	if debug {
		config = zap.NewDevelopmentConfig()
	}
	config.OutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return nil, nil, err
	}
	return logger, abstractlogger.NewZapLogger(logger, abstractlogger.DebugLevel), nil
}
