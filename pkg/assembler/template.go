package assembler

import (
	"bytes"
	"io"

	byte_template "github.com/jensneuse/byte-template"
)

// Substitutions maps placeholder keys to the text inserted for them.
// Values are inserted verbatim, callers are responsible for producing valid source text.
type Substitutions map[string]string

// Renderer replaces {{ .key }} placeholders. Keys without a substitution render as empty string.
type Renderer struct {
	tmpl          *byte_template.Template
	substitutions map[string][]byte
}

func NewRenderer(substitutions Substitutions) *Renderer {
	values := make(map[string][]byte, len(substitutions))
	for key, value := range substitutions {
		values[key] = []byte(value)
	}
	return &Renderer{
		tmpl:          byte_template.New(),
		substitutions: values,
	}
}

func (r *Renderer) Render(w io.Writer, content []byte) error {
	_, err := r.tmpl.Execute(w, content, func(w io.Writer, path []byte) (n int, err error) {
		value, ok := r.substitutions[string(bytes.TrimPrefix(path, []byte(".")))]
		if !ok {
			return 0, nil
		}
		return w.Write(value)
	})
	return err
}
