package graphiql

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"

	"github.com/jensneuse/abstractlogger"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/wundergraph/graphiql-go/pkg/assembler"
)

// Source selects which GraphiQL build is delivered.
type Source string

const (
	// SourceDownstream delivers the GraphiQL build shipped in the local asset directory
	SourceDownstream Source = "downstream"
	// SourceUpstream delivers the build of the graphiql package. Every value other than SourceDownstream behaves like it.
	SourceUpstream Source = "upstream"
)

const (
	DefaultGraphiqlURL     = "/graphiql"
	DefaultGraphqlFetchURL = "/graphql"
	DefaultLoginFetchURL   = "/login"

	DefaultGraphqlFetchOpts = `{
    method: "POST",
    headers: {
        "Content-Type": "application/json",
        "Accept":       "application/json"
    },
    body: JSON.stringify(params),
    credentials: "same-origin"
}
`

	DefaultLoginFetchOpts = `{
    method: "POST",
    headers: {
        "Content-Type": "application/json"
    },
    body: JSON.stringify({
        username: username,
        password: password
    }),
    credentials: "same-origin"
}
`

	DefaultGraphqlExample = `query Example {
    Session {
        __typename # schema introspection
    }
}
`
)

// Config is the configuration Object of the GraphiQL plugin.
// Empty values fall back to their defaults.
type Config struct {
	// GraphiqlSource selects the GraphiQL build, see SourceDownstream
	GraphiqlSource Source `mapstructure:"graphiqlSource"`
	// GraphiqlGlobals is script code run before the bootstrap logic
	GraphiqlGlobals string `mapstructure:"graphiqlGlobals"`
	// GraphiqlURL is the path GraphiQL is hosted on
	GraphiqlURL string `mapstructure:"graphiqlURL"`
	// GraphqlFetchURL is the path of the GraphQL endpoint, relative to the page origin
	GraphqlFetchURL string `mapstructure:"graphqlFetchURL"`
	// GraphqlFetchOpts is a JavaScript object literal passed to fetch, it can reference params
	GraphqlFetchOpts string `mapstructure:"graphqlFetchOpts"`
	// LoginFetchURL is the path of the login endpoint, relative to the page origin
	LoginFetchURL string `mapstructure:"loginFetchURL"`
	// LoginFetchOpts is a JavaScript object literal passed to fetch, it can reference username and password
	LoginFetchOpts string `mapstructure:"loginFetchOpts"`
	// LoginFetchSuccess is script code run after a successful login.
	// It can reference response, username, password and parameters (the URL parameters).
	LoginFetchSuccess string `mapstructure:"loginFetchSuccess"`
	// LoginFetchError is script code run after a failed login, with the same bindings as
	// LoginFetchSuccess. response is null when the request did not complete.
	LoginFetchError string `mapstructure:"loginFetchError"`
	// GraphqlExample is the query shown when the URL carries none
	GraphqlExample string `mapstructure:"graphqlExample"`
	// DocumentationURL is the path DocumentationFile is delivered on
	DocumentationURL string `mapstructure:"documentationURL"`
	// DocumentationFile is delivered on DocumentationURL when both are set
	DocumentationFile string `mapstructure:"documentationFile"`

	// Assets holds the local fragments, defaults to the embedded files
	Assets fs.FS `mapstructure:"-"`
	// Packages resolves vendored fragments, defaults to a node_modules lookup from the working directory
	Packages assembler.PackageResolver `mapstructure:"-"`
	Logger   abstractlogger.Logger     `mapstructure:"-"`
}

func (c Config) withDefaults() Config {
	setDefault := func(value *string, fallback string) {
		if *value == "" {
			*value = fallback
		}
	}

	if c.GraphiqlSource == "" {
		c.GraphiqlSource = SourceDownstream
	}
	setDefault(&c.GraphiqlURL, DefaultGraphiqlURL)
	setDefault(&c.GraphqlFetchURL, DefaultGraphqlFetchURL)
	setDefault(&c.GraphqlFetchOpts, DefaultGraphqlFetchOpts)
	setDefault(&c.LoginFetchURL, DefaultLoginFetchURL)
	setDefault(&c.LoginFetchOpts, DefaultLoginFetchOpts)
	setDefault(&c.GraphqlExample, DefaultGraphqlExample)

	if c.Logger == nil {
		c.Logger = abstractlogger.NoopLogger
	}
	if c.Assets == nil {
		c.Assets = DefaultAssets()
	}
	if c.Packages == nil {
		root, err := os.Getwd()
		if err != nil {
			root = "."
		}
		c.Packages = &assembler.NodeModulesResolver{Root: root}
	}
	return c
}

func (c Config) substitutions() assembler.Substitutions {
	return assembler.Substitutions{
		"graphiqlGlobals":   c.GraphiqlGlobals,
		"graphqlFetchURL":   c.GraphqlFetchURL,
		"graphqlFetchOpts":  c.GraphqlFetchOpts,
		"loginFetchURL":     c.LoginFetchURL,
		"loginFetchOpts":    c.LoginFetchOpts,
		"loginFetchSuccess": c.LoginFetchSuccess,
		"loginFetchError":   c.LoginFetchError,
		"graphqlExample":    javascriptString(c.GraphqlExample),
	}
}

// localBuildDir holds the downstream GraphiQL build inside Config.Assets
const localBuildDir = "local"

func (c Config) assets() map[assembler.Kind][]assembler.Fragment {
	graphiqlJS, graphiqlCSS := "@graphiql/graphiql.min.js", "@graphiql/graphiql.css"
	if c.GraphiqlSource == SourceDownstream {
		graphiqlJS, graphiqlCSS = localBuildDir+"/graphiql.min.js", localBuildDir+"/graphiql.css"
	}

	return map[assembler.Kind][]assembler.Fragment{
		assembler.KindHTML: assembler.MustParseFragments(
			"graphiql.html",
		),
		assembler.KindJS: assembler.MustParseFragments(
			"@jquery/dist/jquery.min.js",
			"@whatwg-fetch/fetch.js",
			"@react/umd/react.production.min.js",
			"@react-dom/umd/react-dom.production.min.js",
			graphiqlJS,
			"%graphiql.js",
		),
		assembler.KindCSS: assembler.MustParseFragments(
			graphiqlCSS,
			"graphiql.css",
		),
	}
}

// validate reports settings that still work but are likely mistakes.
func (c Config) validate() {
	if _, err := parser.ParseQuery(&ast.Source{Name: "graphqlExample", Input: c.GraphqlExample}); err != nil {
		c.Logger.Warn("GraphiQL.validate: graphqlExample is not a valid GraphQL document",
			abstractlogger.Error(err),
		)
	}
	if c.DocumentationFile != "" {
		if _, err := os.Stat(c.DocumentationFile); err != nil {
			c.Logger.Warn("GraphiQL.validate: documentationFile is not accessible",
				abstractlogger.String("documentationFile", c.DocumentationFile),
				abstractlogger.Error(err),
			)
		}
	}
}

// javascriptString encodes s as a string literal usable in JavaScript source.
func javascriptString(s string) string {
	buf := &bytes.Buffer{}
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(s)
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}
