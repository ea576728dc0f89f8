package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wundergraph/graphiql-go/pkg/graphiql"
)

var renderAliases = map[string]string{
	"html": "graphiql.html",
	"js":   "graphiql.js",
	"css":  "graphiql.css",
}

func newRenderCommand() *cobra.Command {
	renderCmd := &cobra.Command{
		Use:       "render <html|js|css>",
		Short:     "render writes one assembled GraphiQL asset to stdout",
		Example:   "graphiql render js --graphqlFetchURL /api/graphql > graphiql.js",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"html", "js", "css", "graphiql.html", "graphiql.js", "graphiql.css"},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if alias, ok := renderAliases[name]; ok {
				name = alias
			}

			opts, err := loadOptions(cmd)
			if err != nil {
				return err
			}
			zapLogger, logger, err := newLogger(opts.Debug)
			if err != nil {
				return err
			}
			defer zapLogger.Sync() // nolint

			config, err := opts.graphiqlConfig(logger)
			if err != nil {
				return err
			}
			return graphiql.New(config).WriteAsset(cmd.Context(), name, cmd.OutOrStdout())
		},
	}

	addGraphiQLFlags(renderCmd.Flags())

	return renderCmd
}
