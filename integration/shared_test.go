//go:build basic || database

// Package integration exercises the repopulse binary end to end. The tests
// are excluded from normal runs by build tags:
//
//	go test -tags basic ./integration
//	go test -tags database ./integration
package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// binaryPath points at a repopulse binary compiled once in TestMain and
// shared by every test in the package.
var binaryPath string

// TestMain builds the binary into a scratch directory, runs the suite, and
// removes the directory afterwards.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "repopulse-integration-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}

	binaryPath = filepath.Join(dir, "repopulse")
	build := exec.Command("go", "build", "-o", binaryPath, ".")
	build.Dir = ".."
	if out, err := build.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build repopulse: %v\n%s", err, out)
		_ = os.RemoveAll(dir)
		os.Exit(1)
	}

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// getRepopulseBinary returns the shared binary path built in TestMain.
func getRepopulseBinary() string {
	return binaryPath
}
