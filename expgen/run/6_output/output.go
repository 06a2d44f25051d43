// Package output writes generated mocks, or reports how they differ from the files on disk.
package output

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/akedrou/textdiff"
	charmlog "github.com/charmbracelet/log"
	"github.com/toejough/go-reorder"
)

// ErrStale reports a generated file that does not match what expgen would write.
var ErrStale = errors.New("generated file is out of date")

// FileSystem reads and writes generated files.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Request describes one generated file.
type Request struct {
	Code     string
	MockName string
	PkgName  string
	GoFile   string // file that carries the go:generate directive
	Output   string // overrides FileName when set
	Reorder  bool
	Check    bool
}

// FileName returns generated_<mockName>.go, or generated_<mockName>_test.go when the mock
// is generated for a test package or from a test file.
func FileName(mockName, pkgName, goFile string) string {
	base := "generated_" + strings.TrimSuffix(strings.TrimSuffix(mockName, ".go"), "_test")

	if strings.HasSuffix(pkgName, "_test") || strings.HasSuffix(goFile, "_test.go") ||
		strings.HasSuffix(mockName, "_test") {
		return base + "_test.go"
	}

	return base + ".go"
}

// WriteGeneratedCode writes the code of req, or in check mode prints a unified diff
// against the existing file to out and fails with ErrStale when they differ.
func WriteGeneratedCode(req Request, fileSys FileSystem, out io.Writer, logger *charmlog.Logger) error {
	const generatedFilePermissions = 0o600

	filename := req.Output
	if filename == "" {
		filename = FileName(req.MockName, req.PkgName, req.GoFile)
	}

	code := req.Code
	if req.Reorder {
		reordered, err := reorder.Source(code)
		if err != nil {
			logger.Warn("failed to reorder generated code", "file", filename, "err", err)
		} else {
			code = reordered
		}
	}

	if req.Check {
		return checkGeneratedCode(filename, code, fileSys, out)
	}

	err := fileSys.WriteFile(filename, []byte(code), generatedFilePermissions)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	logger.Info("written", "file", filename)

	return nil
}

func checkGeneratedCode(filename, code string, fileSys FileSystem, out io.Writer) error {
	current, err := fileSys.ReadFile(filename)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error reading %s: %w", filename, err)
	}

	if string(current) == code {
		return nil
	}

	diff := textdiff.Unified(filename+" (current)", filename+" (generated)", string(current), code)
	_, _ = fmt.Fprint(out, diff)

	return fmt.Errorf("%w: %s", ErrStale, filename)
}
