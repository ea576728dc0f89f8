//go:generate ../../hack/fetch-assets.sh

package graphiql

import (
	"embed"
	"io/fs"
)

//go:embed files
var files embed.FS

// DefaultAssets returns the local fragments compiled into the binary.
func DefaultAssets() fs.FS {
	assets, err := fs.Sub(files, "files")
	if err != nil {
		panic(err)
	}
	return assets
}
