// Package assembler builds static assets by concatenating an ordered list of fragments.
//
// Fragments are either local files, files inside vendored packages or templates.
// All fragments of an asset are read concurrently and joined in list order.
package assembler

import (
	"bytes"
	"context"
	"io/fs"

	"github.com/jensneuse/abstractlogger"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidAsset = errors.New("invalid path")

// Kind is one of the assets the assembler can produce.
type Kind int

const (
	KindHTML Kind = iota + 1
	KindJS
	KindCSS
)

const (
	contentTypeTextHTML       = "text/html"
	contentTypeTextCSS        = "text/css"
	contentTypeTextJavascript = "text/javascript"
)

// ParseKind maps the requested file name onto an asset kind.
// An empty name is the HTML page.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "", "graphiql.html":
		return KindHTML, nil
	case "graphiql.js":
		return KindJS, nil
	case "graphiql.css":
		return KindCSS, nil
	default:
		return 0, ErrInvalidAsset
	}
}

func (k Kind) ContentType() string {
	switch k {
	case KindHTML:
		return contentTypeTextHTML
	case KindJS:
		return contentTypeTextJavascript
	case KindCSS:
		return contentTypeTextCSS
	default:
		return ""
	}
}

func (k Kind) String() string {
	switch k {
	case KindHTML:
		return "html"
	case KindJS:
		return "js"
	case KindCSS:
		return "css"
	default:
		return "unknown"
	}
}

// Config is the configuration Object for an Assembler
type Config struct {
	// Local holds all fragments without a package
	Local fs.FS
	// Packages resolves fragments with a package
	Packages PackageResolver
	// Assets lists the fragments of every asset kind in output order
	Assets map[Kind][]Fragment
	// Substitutions are applied to template fragments
	Substitutions Substitutions
	Logger        abstractlogger.Logger
}

type Assembler struct {
	local    fs.FS
	packages PackageResolver
	assets   map[Kind][]Fragment
	renderer *Renderer
	log      abstractlogger.Logger
}

func New(config Config) *Assembler {
	logger := config.Logger
	if logger == nil {
		logger = abstractlogger.NoopLogger
	}
	assets := make(map[Kind][]Fragment, len(config.Assets))
	for kind, fragments := range config.Assets {
		assets[kind] = append([]Fragment(nil), fragments...)
	}
	return &Assembler{
		local:    config.Local,
		packages: config.Packages,
		assets:   assets,
		renderer: NewRenderer(config.Substitutions),
		log:      logger,
	}
}

// Fragments returns a copy of the fragment list of an asset kind.
func (a *Assembler) Fragments(kind Kind) []Fragment {
	return append([]Fragment(nil), a.assets[kind]...)
}

// Assemble writes the asset into out. Nothing is written when an error is returned.
func (a *Assembler) Assemble(ctx context.Context, kind Kind, out *bytes.Buffer) error {
	fragments, ok := a.assets[kind]
	if !ok {
		return ErrInvalidAsset
	}

	contents := make([][]byte, len(fragments))
	g, ctx := errgroup.WithContext(ctx)
	for i := range fragments {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := a.load(fragments[i])
			if err != nil {
				return errors.Wrapf(err, "fragment %s", fragments[i])
			}
			contents[i] = content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range contents {
		_, _ = out.Write(contents[i])
	}
	return nil
}

func (a *Assembler) load(fragment Fragment) ([]byte, error) {
	location, err := a.resolve(fragment)
	if err != nil {
		return nil, err
	}
	content, err := location.ReadFile()
	if err != nil {
		return nil, err
	}
	if !fragment.Template {
		return content, nil
	}
	rendered := bytes.NewBuffer(make([]byte, 0, len(content)))
	if err = a.renderer.Render(rendered, content); err != nil {
		return nil, errors.Wrap(err, "render template")
	}
	return rendered.Bytes(), nil
}

func (a *Assembler) resolve(fragment Fragment) (Location, error) {
	if fragment.Package == "" {
		if a.local == nil {
			return Location{}, errors.New("no local asset filesystem configured")
		}
		return Location{FS: a.local, Path: fragment.Path}, nil
	}
	if a.packages == nil {
		return Location{}, errors.Errorf("no package resolver configured for package %q", fragment.Package)
	}
	location, err := a.packages.ResolvePackageAsset(fragment.Package, fragment.Path)
	if err != nil {
		return Location{}, err
	}
	a.log.Debug("Assembler.resolve",
		abstractlogger.String("fragment", fragment.String()),
		abstractlogger.String("path", location.Path),
	)
	return location, nil
}
