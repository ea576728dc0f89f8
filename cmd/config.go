package cmd

import (
	"os"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/jensneuse/abstractlogger"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wundergraph/graphiql-go/pkg/assembler"
	"github.com/wundergraph/graphiql-go/pkg/graphiql"
)

const envPrefix = "GRAPHIQL"

// options is everything a command can be configured with.
// Each key can be set in the config file, as environment variable (see envName) or as flag,
// flags taking precedence over the environment and the environment over the file.
type options struct {
	graphiql.Config `mapstructure:",squash"`

	Debug           bool   `mapstructure:"debug"`
	Listen          string `mapstructure:"listen"`
	AssetsDir       string `mapstructure:"assetsDir"`
	VendorDir       string `mapstructure:"vendorDir"`
	NodeModulesRoot string `mapstructure:"nodeModulesRoot"`
}

func addGraphiQLFlags(flags *pflag.FlagSet) {
	flags.String("graphiqlSource", string(graphiql.SourceDownstream), "GraphiQL build to deliver, downstream or upstream")
	flags.String("graphiqlGlobals", "", "script code run before the bootstrap logic")
	flags.String("graphiqlURL", graphiql.DefaultGraphiqlURL, "path GraphiQL is hosted on")
	flags.String("graphqlFetchURL", graphiql.DefaultGraphqlFetchURL, "path of the GraphQL endpoint")
	flags.String("graphqlFetchOpts", "", "fetch options object literal for GraphQL requests (default POST as JSON)")
	flags.String("loginFetchURL", graphiql.DefaultLoginFetchURL, "path of the login endpoint")
	flags.String("loginFetchOpts", "", "fetch options object literal for login requests (default POST as JSON)")
	flags.String("loginFetchSuccess", "", "script code run after a successful login")
	flags.String("loginFetchError", "", "script code run after a failed login")
	flags.String("graphqlExample", "", "query shown when the URL carries none")
	flags.String("documentationURL", "", "path the documentation file is delivered on")
	flags.String("documentationFile", "", "documentation file delivered on documentationURL")

	flags.String("assetsDir", "", "directory replacing the embedded local assets")
	flags.String("vendorDir", "", "directory holding the vendored packages, replaces the node_modules lookup")
	flags.String("nodeModulesRoot", "", "directory the node_modules lookup starts from (default working directory)")
}

// loadOptions merges the config file named by --config, the environment and the flags of cmd.
func loadOptions(cmd *cobra.Command) (options, error) {
	conf := viper.New()
	if err := conf.BindPFlags(cmd.Flags()); err != nil {
		return options{}, errors.Wrap(err, "bind flags")
	}
	var bindErr error
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if err := conf.BindEnv(flag.Name, envName(flag.Name)); err != nil && bindErr == nil {
			bindErr = errors.Wrapf(err, "bind environment %s", envName(flag.Name))
		}
	})
	if bindErr != nil {
		return options{}, bindErr
	}

	if configFile := conf.GetString("config"); configFile != "" {
		file, err := homedir.Expand(configFile)
		if err != nil {
			return options{}, errors.Wrapf(err, "expand %s", configFile)
		}
		conf.SetConfigFile(file)
		if err := conf.ReadInConfig(); err != nil {
			return options{}, errors.Wrapf(err, "reading config %s", file)
		}
	}

	var opts options
	if err := conf.Unmarshal(&opts); err != nil {
		return options{}, errors.Wrap(err, "decoding config")
	}
	return opts, nil
}

// envName maps a key to its environment variable, graphqlFetchURL becomes GRAPHIQL_GRAPHQL_FETCH_URL.
func envName(key string) string {
	return envPrefix + "_" + strcase.ToScreamingSnake(key)
}

// graphiqlConfig completes the plugin configuration with the asset sources and logger.
func (o options) graphiqlConfig(logger abstractlogger.Logger) (graphiql.Config, error) {
	for _, p := range []*string{&o.AssetsDir, &o.VendorDir, &o.NodeModulesRoot, &o.DocumentationFile} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return graphiql.Config{}, errors.Wrapf(err, "expand %s", *p)
		}
		*p = expanded
	}

	config := o.Config
	config.GraphiqlSource = graphiql.Source(strings.ToLower(string(config.GraphiqlSource)))
	config.Logger = logger

	if o.AssetsDir != "" {
		if _, err := os.Stat(o.AssetsDir); err != nil {
			return graphiql.Config{}, errors.Wrap(err, "assetsDir")
		}
		config.Assets = os.DirFS(o.AssetsDir)
	}

	switch {
	case o.VendorDir != "":
		config.Packages = assembler.NewDirResolver(o.VendorDir)
	case o.NodeModulesRoot != "":
		resolver, err := assembler.NewNodeModulesResolver(o.NodeModulesRoot)
		if err != nil {
			return graphiql.Config{}, errors.Wrap(err, "nodeModulesRoot")
		}
		config.Packages = resolver
	}
	return config, nil
}
