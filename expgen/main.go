// expgen generates expecto mocks for Go interfaces.
// Install it with `go install github.com/toejough/expecto/expgen@latest` and add a
// `//go:generate expgen <Interface>` comment next to the code that uses the mock. The mock is
// named <Interface>Mock unless `--name` says otherwise, and is written to
// generated_<name>.go, or generated_<name>_test.go for test packages.
//
// A `.expgen.yaml` file in the package directory changes the default mock suffix and turns
// declaration reordering off:
//
//	suffix: Fake
//	reorder: false
package main

import (
	"fmt"
	"os"

	"github.com/toejough/expecto/expgen/run"
	load "github.com/toejough/expecto/expgen/run/2_load"
)

// main is the entry point of the expgen tool.
func main() {
	err := run.Run(os.Args, os.Getenv, &realFileSystem{}, &realPackageLoader{}, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements run.FileSystem using the os package.
type realFileSystem struct{}

// ReadFile reads the file named by name and returns the contents.
func (fs *realFileSystem) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}

	return data, nil
}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}

// realPackageLoader implements run.PackageLoader relative to the working directory.
type realPackageLoader struct{}

// Load loads a package by pattern and returns its parsed files.
func (pl *realPackageLoader) Load(pattern string) (*load.Package, error) {
	pkg, err := load.PackageDST("", pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to load package %q: %w", pattern, err)
	}

	return pkg, nil
}
