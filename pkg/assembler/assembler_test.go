package assembler

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParseKind(t *testing.T) {
	for name, expected := range map[string]Kind{
		"":              KindHTML,
		"graphiql.html": KindHTML,
		"graphiql.js":   KindJS,
		"graphiql.css":  KindCSS,
	} {
		kind, err := ParseKind(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, kind, name)
	}

	for _, name := range []string{"html", "js", "css", "index.html", "graphiql.min.js", "local/graphiql.css", "GRAPHIQL.HTML"} {
		_, err := ParseKind(name)
		assert.ErrorIs(t, err, ErrInvalidAsset, name)
	}
}

func TestKind_ContentType(t *testing.T) {
	assert.Equal(t, "text/html", KindHTML.ContentType())
	assert.Equal(t, "text/javascript", KindJS.ContentType())
	assert.Equal(t, "text/css", KindCSS.ContentType())
	assert.Equal(t, "", Kind(0).ContentType())
}

// gatedFS blocks every Open until all expected files are being opened concurrently,
// then releases them in reverse order.
type gatedFS struct {
	fs       fstest.MapFS
	expected int32
	opened   atomic.Int32
	all      chan struct{}
	delays   map[string]time.Duration
}

func newGatedFS(files fstest.MapFS, delays map[string]time.Duration) *gatedFS {
	return &gatedFS{
		fs:       files,
		expected: int32(len(delays)),
		all:      make(chan struct{}),
		delays:   delays,
	}
}

func (g *gatedFS) Open(name string) (fs.File, error) {
	if g.opened.Inc() == g.expected {
		close(g.all)
	}
	select {
	case <-g.all:
	case <-time.After(5 * time.Second):
		return nil, errors.New("fragments are not read concurrently")
	}
	time.Sleep(g.delays[name])
	return g.fs.Open(name)
}

func TestAssembler_Assemble(t *testing.T) {
	t.Run("should concatenate fragments in list order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		vendor := fstest.MapFS{
			"jquery/dist/jquery.min.js": {Data: []byte("/* jquery */")},
			"react/umd/react.min.js":    {Data: []byte("/* react */")},
		}
		packages := NewMockPackageResolver(ctrl)
		packages.EXPECT().ResolvePackageAsset("jquery", "dist/jquery.min.js").
			Return(Location{FS: vendor, Path: "jquery/dist/jquery.min.js"}, nil).Times(1)
		packages.EXPECT().ResolvePackageAsset("react", "umd/react.min.js").
			Return(Location{FS: vendor, Path: "react/umd/react.min.js"}, nil).Times(1)

		a := New(Config{
			Local: fstest.MapFS{
				"graphiql.js": {Data: []byte(`fetch("{{ .graphqlFetchURL }}")`)},
			},
			Packages: packages,
			Assets: map[Kind][]Fragment{
				KindJS: MustParseFragments("@jquery/dist/jquery.min.js", "@react/umd/react.min.js", "%graphiql.js"),
			},
			Substitutions: Substitutions{"graphqlFetchURL": "/graphql"},
		})

		out := &bytes.Buffer{}
		require.NoError(t, a.Assemble(context.Background(), KindJS, out))
		assert.Equal(t, `/* jquery *//* react */fetch("/graphql")`, out.String())
	})

	t.Run("should keep list order when reads complete in reverse order", func(t *testing.T) {
		local := newGatedFS(fstest.MapFS{
			"a.css": {Data: []byte("a")},
			"b.css": {Data: []byte("b")},
			"c.css": {Data: []byte("c")},
			"d.css": {Data: []byte("d")},
		}, map[string]time.Duration{
			"a.css": 40 * time.Millisecond,
			"b.css": 30 * time.Millisecond,
			"c.css": 20 * time.Millisecond,
			"d.css": 0,
		})

		a := New(Config{
			Local: local,
			Assets: map[Kind][]Fragment{
				KindCSS: MustParseFragments("a.css", "b.css", "c.css", "d.css"),
			},
		})

		out := &bytes.Buffer{}
		require.NoError(t, a.Assemble(context.Background(), KindCSS, out))
		assert.Equal(t, "abcd", out.String())
		assert.Equal(t, int32(4), local.opened.Load())
	})

	t.Run("should only render template fragments", func(t *testing.T) {
		a := New(Config{
			Local: fstest.MapFS{
				"graphiql.html": {Data: []byte("<title>{{ .graphqlFetchURL }}</title>")},
				"graphiql.js":   {Data: []byte("var url = \"{{ .graphqlFetchURL }}\"")},
			},
			Assets: map[Kind][]Fragment{
				KindHTML: MustParseFragments("graphiql.html"),
				KindJS:   MustParseFragments("%graphiql.js"),
			},
			Substitutions: Substitutions{"graphqlFetchURL": "/graphql"},
		})

		out := &bytes.Buffer{}
		require.NoError(t, a.Assemble(context.Background(), KindHTML, out))
		assert.Equal(t, "<title>{{ .graphqlFetchURL }}</title>", out.String())

		out.Reset()
		require.NoError(t, a.Assemble(context.Background(), KindJS, out))
		assert.Equal(t, `var url = "/graphql"`, out.String())
	})

	t.Run("should re-read fragments on every call", func(t *testing.T) {
		local := fstest.MapFS{"graphiql.css": {Data: []byte("v1")}}
		a := New(Config{
			Local:  local,
			Assets: map[Kind][]Fragment{KindCSS: MustParseFragments("graphiql.css")},
		})

		out := &bytes.Buffer{}
		require.NoError(t, a.Assemble(context.Background(), KindCSS, out))
		assert.Equal(t, "v1", out.String())

		local["graphiql.css"] = &fstest.MapFile{Data: []byte("v2")}
		out.Reset()
		require.NoError(t, a.Assemble(context.Background(), KindCSS, out))
		assert.Equal(t, "v2", out.String())
	})

	t.Run("should fail without output on missing fragments", func(t *testing.T) {
		a := New(Config{
			Local:  fstest.MapFS{"graphiql.css": {Data: []byte("css")}},
			Assets: map[Kind][]Fragment{KindCSS: MustParseFragments("local/graphiql.css", "graphiql.css")},
		})

		out := &bytes.Buffer{}
		err := a.Assemble(context.Background(), KindCSS, out)
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Contains(t, err.Error(), "fragment local/graphiql.css")
		assert.Equal(t, 0, out.Len())
	})

	t.Run("should fail on resolver errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		packages := NewMockPackageResolver(ctrl)
		packages.EXPECT().ResolvePackageAsset("graphiql", "graphiql.css").
			Return(Location{}, errors.New("cannot find package")).Times(1)

		a := New(Config{
			Local:    fstest.MapFS{"graphiql.css": {Data: []byte("css")}},
			Packages: packages,
			Assets:   map[Kind][]Fragment{KindCSS: MustParseFragments("@graphiql/graphiql.css", "graphiql.css")},
		})

		err := a.Assemble(context.Background(), KindCSS, &bytes.Buffer{})
		assert.ErrorContains(t, err, "fragment @graphiql/graphiql.css: cannot find package")
	})

	t.Run("should fail on package fragments without resolver", func(t *testing.T) {
		a := New(Config{
			Local:  fstest.MapFS{},
			Assets: map[Kind][]Fragment{KindJS: MustParseFragments("@react/index.js")},
		})

		err := a.Assemble(context.Background(), KindJS, &bytes.Buffer{})
		assert.ErrorContains(t, err, `no package resolver configured for package "react"`)
	})

	t.Run("should reject unknown kinds", func(t *testing.T) {
		a := New(Config{Local: fstest.MapFS{}})

		err := a.Assemble(context.Background(), KindJS, &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrInvalidAsset)
	})

	t.Run("should stop on cancelled context", func(t *testing.T) {
		a := New(Config{
			Local:  fstest.MapFS{"graphiql.css": {Data: []byte("css")}},
			Assets: map[Kind][]Fragment{KindCSS: MustParseFragments("graphiql.css")},
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := a.Assemble(ctx, KindCSS, &bytes.Buffer{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestAssembler_Fragments(t *testing.T) {
	fragments := MustParseFragments("a.css", "b.css")
	a := New(Config{Assets: map[Kind][]Fragment{KindCSS: fragments}})

	got := a.Fragments(KindCSS)
	assert.Equal(t, fragments, got)

	got[0].Path = "changed.css"
	assert.Equal(t, "a.css", a.Fragments(KindCSS)[0].Path)
	assert.Empty(t, a.Fragments(KindHTML))
}
