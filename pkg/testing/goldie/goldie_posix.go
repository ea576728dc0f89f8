//go:build !windows

package goldie

import (
	"testing"
)

func Assert(t *testing.T, name string, actual []byte) {
	t.Helper()

	New(t).Assert(t, name, actual)
}

func Update(t *testing.T, name string, actual []byte) {
	t.Helper()

	if err := New(t).Update(t, name, actual); err != nil {
		t.Fatal(err)
	}
}
