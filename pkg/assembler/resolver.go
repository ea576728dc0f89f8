//go:generate mockgen -destination=resolver_mock_test.go -package=assembler . PackageResolver

package assembler

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/errors"
)

const packageManifest = "package.json"

// Location points at a file inside a filesystem.
type Location struct {
	FS   fs.FS
	Path string
}

func (l Location) ReadFile() ([]byte, error) {
	return fs.ReadFile(l.FS, l.Path)
}

// PackageResolver locates files shipped inside third-party packages,
// e.g. the react UMD build inside the "react" package.
type PackageResolver interface {
	ResolvePackageAsset(pkg, relPath string) (Location, error)
}

// NodeModulesResolver resolves packages the way node does for require("pkg/package.json"):
// starting at Root it looks for node_modules/<pkg>/package.json in every parent directory
// and takes the first match. This covers hoisted installs as well as symlinked ones.
type NodeModulesResolver struct {
	Root string
}

func NewNodeModulesResolver(root string) (*NodeModulesResolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve node_modules root %s", root)
	}
	return &NodeModulesResolver{Root: abs}, nil
}

func (n *NodeModulesResolver) ResolvePackageAsset(pkg, relPath string) (Location, error) {
	if !validPackageName(pkg) {
		return Location{}, errors.Errorf("invalid package name %q", pkg)
	}

	dir := n.Root
	for {
		packageDir := filepath.Join(dir, "node_modules", pkg)
		// os.Stat follows symlinks, so linked package directories resolve as well
		if info, err := os.Stat(filepath.Join(packageDir, packageManifest)); err == nil && !info.IsDir() {
			return Location{
				FS:   os.DirFS(packageDir),
				Path: path.Clean(relPath),
			}, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Location{}, errors.Errorf("cannot find package %q from %s", pkg, n.Root)
		}
		dir = parent
	}
}

// FSResolver resolves packages inside a vendor directory laid out as <pkg>/<relPath>.
type FSResolver struct {
	FS fs.FS
}

func NewDirResolver(dir string) *FSResolver {
	return &FSResolver{FS: os.DirFS(dir)}
}

func (f *FSResolver) ResolvePackageAsset(pkg, relPath string) (Location, error) {
	if !validPackageName(pkg) {
		return Location{}, errors.Errorf("invalid package name %q", pkg)
	}
	return Location{
		FS:   f.FS,
		Path: path.Join(pkg, relPath),
	}, nil
}

func validPackageName(pkg string) bool {
	return pkg != "" && pkg != "." && pkg != ".." && fs.ValidPath(pkg) && path.Base(pkg) == pkg
}
