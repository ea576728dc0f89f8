// Package goldie wraps sebdah/goldie with the fixture layout used across this repository:
// golden files live next to the test in ./fixtures/<name>.golden.
package goldie

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jensneuse/diffview"
	"github.com/sebdah/goldie/v2"
)

const fixtureDir = "fixtures"

func New(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir(fixtureDir),
		goldie.WithNameSuffix(".golden"),
		goldie.WithDiffEngine(goldie.ClassicDiff),
	)
}

// AssertWithDiff compares against the golden file and prints a side by side diff when they differ.
func AssertWithDiff(t *testing.T, name string, actual []byte) {
	t.Helper()

	Assert(t, name, actual)
	if !t.Failed() {
		return
	}

	fixture, err := os.ReadFile(filepath.Join(fixtureDir, name+".golden"))
	if err != nil {
		t.Fatal(err)
	}
	diffview.NewGoland().DiffViewBytes(name, fixture, actual)
}
