// Package load finds and parses the package that declares a mocked interface.
package load

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"golang.org/x/tools/go/packages"
)

// Package is a parsed package.
type Package struct {
	Name    string
	PkgPath string
	Dir     string
	Files   []SourceFile
}

// SourceFile is a parsed file and the path it was read from.
type SourceFile struct {
	Path string
	File *dst.File
}

// PackageDST loads a package by pattern, which is "." for the package in dir or an
// import path resolved from dir. The local package includes its test files, so that
// interfaces declared in tests can be mocked.
//
//nolint:cyclop // Package resolution and file parsing require multiple steps
func PackageDST(dir, pattern string) (*Package, error) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedFiles, Dir: dir}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to find package %q: %w", pattern, err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("%w: %q", errNoPackagesFound, pattern)
	}

	pkg := pkgs[0]
	local := pattern == "."

	pkgDir, err := packageDir(pkg, dir, local)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(pkgDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", pkgDir, err)
	}

	goFiles := make([]string, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}

		if !local && strings.HasSuffix(name, "_test.go") {
			continue
		}

		goFiles = append(goFiles, filepath.Join(pkgDir, name))
	}

	dec := decorator.NewDecorator(token.NewFileSet())
	files := make([]SourceFile, 0, len(goFiles))

	for _, goFile := range goFiles {
		file, err := dec.ParseFile(goFile, nil, 0)
		if err != nil {
			// files that do not parse cannot declare the interface
			continue
		}

		files = append(files, SourceFile{Path: goFile, File: file})
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: failed to parse any .go files in %s", errNoPackagesFound, pkgDir)
	}

	name := pkg.Name
	if name == "" {
		name = strings.TrimSuffix(files[0].File.Name.Name, "_test")
	}

	return &Package{Name: name, PkgPath: pkg.PkgPath, Dir: pkgDir, Files: files}, nil
}

// packageDir returns the directory of pkg. A local package made only of test files has
// no Go files of its own, so it falls back to dir.
func packageDir(pkg *packages.Package, dir string, local bool) (string, error) {
	for _, files := range [][]string{pkg.GoFiles, pkg.IgnoredFiles} {
		if len(files) > 0 {
			return filepath.Dir(files[0]), nil
		}
	}

	if !local {
		return "", fmt.Errorf("%w: %q has no Go files", errNoPackagesFound, pkg.PkgPath)
	}

	if dir != "" {
		return dir, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	return wd, nil
}

// unexported variables.
var (
	errNoPackagesFound = errors.New("no packages found")
)
