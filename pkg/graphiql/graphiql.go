// Package graphiql hosts the GraphiQL explorer as a set of http Handlers.
//
// The explorer consists of three assets, each assembled on request from vendored
// packages and local files:
//
//	<GraphiqlURL>/               the HTML page (also <GraphiqlURL>/graphiql.html)
//	<GraphiqlURL>/graphiql.js    jQuery, fetch, React, GraphiQL and the bootstrap script
//	<GraphiqlURL>/graphiql.css   the GraphiQL stylesheet and local overrides
//
// The bootstrap script is a template; the configured endpoints, fetch options and
// hooks are substituted into it verbatim.
package graphiql

import (
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/jensneuse/abstractlogger"
	"github.com/pkg/errors"

	"github.com/wundergraph/graphiql-go/pkg/assembler"
	"github.com/wundergraph/graphiql-go/pkg/pool"
)

const (
	contentTypeHeader            = "Content-Type"
	contentTypeApplicationJSON   = "application/json; charset=utf-8"
	internalServerErrorMessage   = "An internal server error occurred"
	methodNotAllowedErrorMessage = "method not allowed"
)

// HandlerConfig is the configuration Object for all GraphiQL http Handlers
type HandlerConfig struct {
	// Path is where the handler should be hosted
	Path string
	// Handler is the http.HandlerFunc that should be hosted on the corresponding Path
	Handler http.HandlerFunc
}

// Handlers is an array of HandlerConfig
// GraphiQL expects that you make all assigned Handlers available on the corresponding Path
type Handlers []HandlerConfig

func (h *Handlers) add(path string, handler http.HandlerFunc) {
	*h = append(*h, HandlerConfig{
		Path:    path,
		Handler: handler,
	})
}

// Mux is satisfied by *http.ServeMux
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

type GraphiQL struct {
	config    Config
	assembler *assembler.Assembler
	log       abstractlogger.Logger
	// basePath is the cleaned GraphiqlURL without trailing slash, empty when hosted on /
	basePath string
}

func New(config Config) *GraphiQL {
	config = config.withDefaults()
	config.validate()

	basePath := path.Join("/", config.GraphiqlURL)
	if basePath == "/" {
		basePath = ""
	}

	return &GraphiQL{
		config: config,
		assembler: assembler.New(assembler.Config{
			Local:         config.Assets,
			Packages:      config.Packages,
			Assets:        config.assets(),
			Substitutions: config.substitutions(),
			Logger:        config.Logger,
		}),
		log:      config.Logger,
		basePath: basePath,
	}
}

// Handlers returns the handlers in registration order: the redirect to the asset
// directory, the asset directory itself and the documentation file if configured.
func (g *GraphiQL) Handlers() (Handlers, error) {
	if err := g.checkLocalFragments(); err != nil {
		return nil, err
	}

	handlers := make(Handlers, 0, 3)

	if g.basePath != "" {
		handlers.add(g.basePath, g.redirectHandler(g.basePath+"/"))
	}
	assetPath := g.basePath + "/"
	handlers.add(assetPath, g.assetHandler(assetPath))

	if g.config.DocumentationURL != "" && g.config.DocumentationFile != "" {
		documentationPath := path.Join("/", g.config.DocumentationURL)
		for i := range handlers {
			if handlers[i].Path == documentationPath {
				return nil, errors.Errorf("documentationURL %s collides with the GraphiQL route %s", documentationPath, handlers[i].Path)
			}
		}
		handlers.add(documentationPath, g.documentationHandler(g.config.DocumentationFile))
	}

	for i := range handlers {
		g.log.Debug("GraphiQL.Handlers",
			abstractlogger.String("path", handlers[i].Path),
		)
	}
	return handlers, nil
}

// checkLocalFragments fails when a fragment without package is missing from Config.Assets,
// most likely the downstream GraphiQL build in local/.
func (g *GraphiQL) checkLocalFragments() error {
	for _, kind := range []assembler.Kind{assembler.KindHTML, assembler.KindJS, assembler.KindCSS} {
		for _, fragment := range g.assembler.Fragments(kind) {
			if fragment.Package != "" {
				continue
			}
			_, err := fs.Stat(g.config.Assets, fragment.Path)
			if err == nil {
				continue
			}
			if strings.HasPrefix(fragment.Path, localBuildDir+"/") {
				return errors.Wrapf(err, "downstream GraphiQL build %s missing from the assets, run go generate ./pkg/graphiql or use graphiqlSource %s", fragment.Path, SourceUpstream)
			}
			return errors.Wrapf(err, "local fragment %s of the %s asset missing", fragment.Path, kind)
		}
	}
	return nil
}

// Register adds all Handlers to mux.
func (g *GraphiQL) Register(mux Mux) error {
	handlers, err := g.Handlers()
	if err != nil {
		return err
	}
	for i := range handlers {
		mux.Handle(handlers[i].Path, handlers[i].Handler)
	}
	return nil
}

// WriteAsset assembles the asset hosted as name below GraphiqlURL and writes it to w.
// Unknown names yield assembler.ErrInvalidAsset.
func (g *GraphiQL) WriteAsset(ctx context.Context, name string, w io.Writer) error {
	kind, err := assembler.ParseKind(name)
	if err != nil {
		return err
	}

	buf := pool.BytesBuffer.Get()
	defer pool.BytesBuffer.Put(buf)

	if err = g.assembler.Assemble(ctx, kind, buf); err != nil {
		return errors.Wrapf(err, "assemble %s", kind)
	}
	_, err = buf.WriteTo(w)
	return err
}

func (g *GraphiQL) redirectHandler(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowRead(w, r) {
			return
		}
		http.Redirect(w, r, target, http.StatusFound)
	}
}

func (g *GraphiQL) assetHandler(prefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowRead(w, r) {
			return
		}

		name := strings.TrimPrefix(r.URL.Path, prefix)
		kind, err := assembler.ParseKind(name)
		if err != nil {
			g.log.Debug("GraphiQL.assetHandler",
				abstractlogger.String("name", name),
				abstractlogger.Error(err),
			)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		buf := pool.BytesBuffer.Get()
		defer pool.BytesBuffer.Put(buf)

		if err = g.assembler.Assemble(r.Context(), kind, buf); err != nil {
			g.log.Error("GraphiQL.assetHandler",
				abstractlogger.String("asset", kind.String()),
				abstractlogger.Error(err),
			)
			writeError(w, http.StatusInternalServerError, internalServerErrorMessage)
			return
		}

		tag := etag(buf.Bytes())
		w.Header().Set(etagHeader, tag)
		w.Header().Set(varyHeader, acceptEncodingHeader)
		if notModified(r, tag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		body := buf
		if acceptsBrotli(r) {
			compressed := pool.BytesBuffer.Get()
			defer pool.BytesBuffer.Put(compressed)

			if err = compressBrotli(compressed, buf.Bytes()); err != nil {
				g.log.Error("GraphiQL.assetHandler: compress",
					abstractlogger.String("asset", kind.String()),
					abstractlogger.Error(err),
				)
				writeError(w, http.StatusInternalServerError, internalServerErrorMessage)
				return
			}
			w.Header().Set(contentEncodingHeader, encodingBrotli)
			body = compressed
		}

		w.Header().Set(contentTypeHeader, kind.ContentType())
		w.Header().Set(contentLengthHeader, strconv.Itoa(body.Len()))
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		if _, err = body.WriteTo(w); err != nil {
			g.log.Debug("GraphiQL.assetHandler: write response",
				abstractlogger.Error(err),
			)
		}
	}
}

func (g *GraphiQL) documentationHandler(file string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowRead(w, r) {
			return
		}
		http.ServeFile(w, r, file)
	}
}

func allowRead(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	writeError(w, http.StatusMethodNotAllowed, methodNotAllowedErrorMessage)
	return false
}

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set(contentTypeHeader, contentTypeApplicationJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    message,
	})
}
