package cmd

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jensneuse/abstractlogger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wundergraph/graphiql-go/pkg/graphiql"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve starts an http server hosting GraphiQL",
		Long: `serve starts an http server hosting GraphiQL on graphiqlURL.

The GraphQL and login endpoints are not served, GraphiQL talks to them on the
same origin. Put serve behind the proxy in front of your GraphQL server or use
it to develop the bootstrap script.`,
		Example: "graphiql serve --listen localhost:8080 --graphqlFetchURL /api/graphql --nodeModulesRoot ./web",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			mux := http.NewServeMux()
			if err = graphiql.New(config).Register(mux); err != nil {
				return err
			}

			listener, err := net.Listen("tcp", opts.Listen)
			if err != nil {
				return errors.Wrapf(err, "listen on %s", opts.Listen)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, listener, mux, logger)
		},
	}

	addGraphiQLFlags(serveCmd.Flags())
	serveCmd.Flags().String("listen", "localhost:8080", "address to listen on")

	return serveCmd
}

// serve handles requests on listener until ctx is done and shuts down gracefully afterwards.
func serve(ctx context.Context, listener net.Listener, handler http.Handler, logger abstractlogger.Logger) error {
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("serve: listening",
			abstractlogger.String("addr", listener.Addr().String()),
		)
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("serve: shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
