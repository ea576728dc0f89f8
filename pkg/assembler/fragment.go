package assembler

import (
	"path"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var packageFragment = regexp.MustCompile(`^@([^/]+)/(.+)$`)

// Fragment describes one piece of an assembled asset.
//
// The textual notation understood by ParseFragment is:
//
//	%graphiql.js                  local file, rendered as template
//	@react/umd/react.min.js       file inside the package "react"
//	graphiql.css                  local file
type Fragment struct {
	// Template marks the fragment for placeholder substitution
	Template bool
	// Package is the name of the package the fragment is shipped with, empty for local files
	Package string
	// Path is slash separated and relative to the package or the local asset root
	Path string
}

// ParseFragment parses the fragment notation.
func ParseFragment(notation string) (Fragment, error) {
	var fragment Fragment
	rest := notation
	if strings.HasPrefix(rest, "%") {
		fragment.Template = true
		rest = rest[1:]
	}
	if m := packageFragment.FindStringSubmatch(rest); m != nil {
		fragment.Package = m[1]
		rest = m[2]
	}
	cleaned := path.Clean(strings.TrimPrefix(rest, "/"))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return Fragment{}, errors.Errorf("invalid fragment %q", notation)
	}
	fragment.Path = cleaned
	return fragment, nil
}

// MustParseFragments parses a fixed fragment list and panics on invalid notation.
func MustParseFragments(notations ...string) []Fragment {
	fragments := make([]Fragment, 0, len(notations))
	for _, notation := range notations {
		fragment, err := ParseFragment(notation)
		if err != nil {
			panic(err)
		}
		fragments = append(fragments, fragment)
	}
	return fragments
}

func (f Fragment) String() string {
	var b strings.Builder
	if f.Template {
		b.WriteByte('%')
	}
	if f.Package != "" {
		b.WriteByte('@')
		b.WriteString(f.Package)
		b.WriteByte('/')
	}
	b.WriteString(f.Path)
	return b.String()
}
