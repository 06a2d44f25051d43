//go:build targ

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/toejough/go-reorder"
	"github.com/toejough/targ"
	"github.com/toejough/targ/file"
	"github.com/toejough/targ/sh"
)

// Build builds the local expgen binary.
func Build() error {
	fmt.Println("Building expgen...")

	if err := os.MkdirAll("bin", 0o755); err != nil {
		return fmt.Errorf("failed to create bin directory: %w", err)
	}

	return sh.Run("go", "build", "-o", "bin/expgen", "./expgen")
}

// Check runs all checks & fixes on the code, in order of correctness.
func Check() error {
	fmt.Println("Checking...")

	return targ.Deps(
		Tidy,          // clean up the module dependencies
		FixImports,    // fix imports before anything reads the code
		Modernize,     // no use doing anything else to old code patterns
		CheckCoverage, // does our code work?
		ReorderDecls,  // linter will yell about declaration order if not correct
		Lint,
	)
}

// CheckCoverage checks that function coverage meets the minimum threshold.
func CheckCoverage() error {
	fmt.Println("Checking coverage...")

	if err := targ.Deps(Test); err != nil {
		return err
	}

	out, err := output("go", "tool", "cover", "-func=coverage.out")
	if err != nil {
		return err
	}

	percentPattern := regexp.MustCompile(`\d+\.\d`)

	var functions []lineAndCoverage

	for line := range strings.SplitSeq(out, "\n") {
		if line == "" || strings.Contains(line, "total:") || strings.Contains(line, "generated_") ||
			strings.Contains(line, "main.go") {
			continue
		}

		percent, err := strconv.ParseFloat(percentPattern.FindString(line), 64)
		if err != nil {
			return fmt.Errorf("failed to parse coverage line %q: %w", line, err)
		}

		functions = append(functions, lineAndCoverage{line, percent})
	}

	if len(functions) == 0 {
		return errors.New("no coverage data found")
	}

	slices.SortStableFunc(functions, func(a, b lineAndCoverage) int {
		switch {
		case a.coverage < b.coverage:
			return -1
		case a.coverage > b.coverage:
			return 1
		default:
			return 0
		}
	})

	for _, fn := range functions {
		fmt.Println(fn.line)
	}

	const minimum = 80.0

	if lowest := functions[0]; lowest.coverage < minimum {
		return fmt.Errorf("function coverage was less than the limit of %.1f:\n  %s", minimum, lowest.line)
	}

	return nil
}

// CheckForFail runs all checks on the code for determining whether any fail.
func CheckForFail() error {
	fmt.Println("Checking...")

	// Checks from fastest to slowest
	return targ.Deps(
		ReorderDeclsCheck,
		LintForFail,
		GenerateCheck,
		TestForFail,
		CheckCoverage,
	)
}

// Clean cleans up the dev env.
func Clean() {
	fmt.Println("Cleaning...")
	os.Remove("coverage.out")
	os.RemoveAll("bin")
}

// FixImports fixes all imports in the codebase.
func FixImports() error {
	fmt.Println("Fixing imports...")
	return sh.Run("goimports", "-w", ".")
}

// Generate runs go generate on all packages using the locally-built expgen binary.
func Generate() error {
	fmt.Println("Generating...")

	if err := targ.Deps(Build); err != nil {
		return err
	}

	return generate()
}

// GenerateCheck verifies that every generated mock matches what expgen would write now.
func GenerateCheck() error {
	fmt.Println("Checking generated mocks...")

	if err := targ.Deps(Build); err != nil {
		return err
	}

	return generate("--check")
}

// Lint lints the codebase.
func Lint() error {
	fmt.Println("Linting...")
	return sh.Run("golangci-lint", "run", "-c", "dev/golangci.toml")
}

// LintForFail lints the codebase purely to find out whether anything fails.
func LintForFail() error {
	fmt.Println("Linting to check for overall pass/fail...")

	return sh.Run(
		"golangci-lint", "run",
		"-c", "dev/golangci.toml",
		"--fix=false",
		"--max-issues-per-linter=1",
		"--max-same-issues=1",
		"--allow-parallel-runners",
	)
}

// Modernize updates the codebase to use modern Go patterns.
func Modernize() error {
	fmt.Println("Modernizing codebase...")

	return sh.Run("go", "run", "golang.org/x/tools/go/analysis/passes/modernize/cmd/modernize@latest",
		"-fix", "./...")
}

// Mutate runs the mutation tests.
func Mutate() error {
	fmt.Println("Running mutation tests...")

	if err := targ.Deps(TestForFail); err != nil {
		return err
	}

	return sh.Run(
		"go",
		"test",
		"-timeout=6000s",
		"-tags=mutation",
		"-ooze.v",
		"./dev/...",
		"-run=TestMutation",
	)
}

// ReorderDecls reorders declarations in Go files per conventions.
func ReorderDecls() error {
	fmt.Println("Reordering declarations...")

	files, err := sourceFiles(".")
	if err != nil {
		return err
	}

	reordered := 0

	for _, name := range files {
		content, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}

		result, err := reorder.Source(string(content))
		if err != nil {
			fmt.Printf("Warning: failed to reorder %s: %v\n", name, err)

			continue
		}

		if result == string(content) {
			continue
		}

		if err := os.WriteFile(name, []byte(result), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}

		fmt.Printf("  Reordered: %s\n", name)
		reordered++
	}

	fmt.Printf("Reordered %d file(s).\n", reordered)

	return nil
}

// ReorderDeclsCheck checks which files need reordering without modifying them.
func ReorderDeclsCheck() error {
	fmt.Println("Checking declaration order...")

	files, err := sourceFiles(".")
	if err != nil {
		return err
	}

	outOfOrder := 0

	for _, name := range files {
		content, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}

		order, err := reorder.AnalyzeSectionOrder(string(content))
		if err != nil {
			fmt.Printf("Warning: failed to analyze %s: %v\n", name, err)

			continue
		}

		result, err := reorder.Source(string(content))
		if err != nil {
			fmt.Printf("Warning: failed to reorder %s: %v\n", name, err)

			continue
		}

		if result == string(content) {
			continue
		}

		outOfOrder++

		fmt.Printf("\n%s:\n", name)

		for i, section := range order.Sections {
			if section.Expected != i+1 {
				fmt.Printf("  %s is at #%d, should be #%d\n", section.Name, i+1, section.Expected)
			}
		}

		fmt.Printf("\n%s\n", textdiff.Unified(name+" (current)", name+" (reordered)", string(content), result))
	}

	if outOfOrder > 0 {
		fmt.Printf("\n%d of %d file(s) need reordering. Run 'targ reorder-decls' to fix.\n", outOfOrder, len(files))

		return fmt.Errorf("%d file(s) need reordering", outOfOrder)
	}

	fmt.Printf("All files are correctly ordered (%d files processed).\n", len(files))

	return nil
}

// Test runs the unit tests.
func Test() error {
	fmt.Println("Running unit tests...")

	if err := targ.Deps(Generate); err != nil {
		return err
	}

	// Use -count=1 to disable caching so coverage is regenerated
	return sh.Run(
		"go",
		"test",
		"-timeout=2m",
		"-race",
		"-count=1",
		"-coverprofile=coverage.out",
		"-coverpkg=./,./internal/...,./match/...,./expgen/...",
		"-cover",
		"./...",
	)
}

// TestForFail runs the unit tests purely to find out whether any fail.
func TestForFail() error {
	fmt.Println("Running unit tests for overall pass/fail...")

	if err := targ.Deps(Generate); err != nil {
		return err
	}

	return sh.Run(
		"go",
		"test",
		"-timeout=30s",
		"./...",
		"-failfast",
	)
}

// Tidy tidies up go.mod.
func Tidy() error {
	fmt.Println("Tidying go.mod...")
	return sh.Run("go", "mod", "tidy")
}

// Watch re-runs Check whenever files change.
func Watch(ctx context.Context) error {
	fmt.Println("Watching...")

	return file.Watch(ctx, []string{"**/*.go", "**/*.yaml", "**/*.toml"}, file.WatchOptions{},
		func(changes file.ChangeSet) error {
			// Generated files and coverage output would retrigger the watch forever
			if !hasRelevantChanges(changes) {
				return nil
			}

			fmt.Println("Change detected...")

			targ.ResetDeps() // Clear execution cache so targets run again

			if err := Check(); err != nil {
				fmt.Println("continuing to watch after check failure (see errors above)")
			} else {
				fmt.Println("continuing to watch after all checks passed!")
			}

			return nil // Don't stop watching on error
		})
}

type lineAndCoverage struct {
	line     string
	coverage float64
}

// generate runs go generate with bin/ first on the PATH, passing flags to every expgen
// call through EXPGEN_FLAGS.
func generate(flags ...string) error {
	binDir, err := filepath.Abs("bin")
	if err != nil {
		return fmt.Errorf("failed to get absolute path for bin: %w", err)
	}

	cmd := exec.Command("go", "generate", "./...")
	cmd.Env = append(os.Environ(),
		"PATH="+binDir+string(filepath.ListSeparator)+os.Getenv("PATH"),
		"EXPGEN_FLAGS="+strings.Join(flags, " "),
	)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// hasRelevantChanges returns true if the changeset contains files we care about.
func hasRelevantChanges(changes file.ChangeSet) bool {
	all := slices.Concat(changes.Added, changes.Removed, changes.Modified)

	return slices.ContainsFunc(all, func(name string) bool {
		return !strings.Contains(name, "generated_") && !strings.HasSuffix(name, "coverage.out")
	})
}

func isGeneratedFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, 200)

	n, err := f.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return bytes.Contains(buf[:n], []byte("Code generated")), nil
}

// output runs a command and captures stdout only (stderr goes to os.Stderr).
func output(command string, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd := exec.Command(command, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = buf
	cmd.Stderr = os.Stderr
	err := cmd.Run()

	return strings.TrimSuffix(buf.String(), "\n"), err
}

// sourceFiles lists the hand-written Go files under dir, skipping generated code and the
// directories the go tool ignores.
func sourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("unable to walk %s: %w", path, err)
		}

		if entry.IsDir() {
			name := entry.Name()
			if path != dir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor") {
				return filepath.SkipDir
			}

			return nil
		}

		if filepath.Ext(path) != ".go" || strings.Contains(path, "generated_") {
			return nil
		}

		generated, err := isGeneratedFile(path)
		if err != nil {
			return err
		}

		if !generated {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}
