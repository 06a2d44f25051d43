// Package run implements the main logic for the expgen tool in a testable way.
package run

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/alexflint/go-arg"
	charmlog "github.com/charmbracelet/log"

	load "github.com/toejough/expecto/expgen/run/2_load"
	detect "github.com/toejough/expecto/expgen/run/3_detect"
	generate "github.com/toejough/expecto/expgen/run/5_generate"
	output "github.com/toejough/expecto/expgen/run/6_output"
)

// Interfaces - Public

// FileSystem reads the config file and reads or writes generated files.
type FileSystem interface {
	output.FileSystem
}

// PackageLoader loads the package matching pattern, "." or an import path.
type PackageLoader interface {
	Load(pattern string) (*load.Package, error)
}

// Structs - Private

// cliArgs defines the command-line arguments for the generator.
type cliArgs struct {
	Interface string `arg:"positional,required" help:"interface to mock (e.g. MyInterface or pkg.MyInterface)"`
	Name      string `arg:"--name"              help:"name of the generated mock (defaults to <Interface><suffix>)"`
	Output    string `arg:"--output"            help:"file to write (defaults to generated_<name>[_test].go)"`
	Check     bool   `arg:"--check"             help:"print a diff against the generated file instead of writing it"`
	Config    string `arg:"--config"            help:"generator config file"                                       default:".expgen.yaml"`
	Verbose   bool   `arg:"-v,--verbose"        help:"log debug output"`
}

// generatorInfo holds information gathered for generation.
type generatorInfo struct {
	pkgName       string
	goFile        string
	qualifier     string
	interfaceName string
	mockName      string
}

// Functions - Public

// Run executes expgen. It reads GOPACKAGE and GOFILE through getEnv, as set by go generate,
// loads the interface through pkgLoader and writes the mock through fileSys. Diffs go to
// stdout and logs to stderr.
//
// Flags in EXPGEN_FLAGS are appended to args, so a whole tree can be checked with
// EXPGEN_FLAGS=--check go generate ./...
func Run(
	args []string, getEnv func(string) string, fileSys FileSystem, pkgLoader PackageLoader, stdout, stderr io.Writer,
) error {
	args = append(slices.Clone(args), strings.Fields(getEnv("EXPGEN_FLAGS"))...)

	parsed, err := parseArgs(args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, parsed.Verbose)

	cfg, err := LoadConfig(fileSys, parsed.Config)
	if err != nil {
		return err
	}

	info := getGeneratorCallInfo(parsed, cfg, getEnv)
	logger.Debug("generating", "interface", parsed.Interface, "mock", info.mockName, "package", info.pkgName)

	iface, opts, err := findInterface(info, pkgLoader)
	if err != nil {
		return err
	}

	code, err := generate.Mock(iface, opts)
	if err != nil {
		return err
	}

	return output.WriteGeneratedCode(output.Request{
		Code:     string(code),
		MockName: info.mockName,
		PkgName:  opts.PkgName,
		GoFile:   info.goFile,
		Output:   parsed.Output,
		Reorder:  cfg.Reorder,
		Check:    parsed.Check,
	}, fileSys, stdout, logger)
}

// Functions - Private

// findInterface loads the package declaring the interface and decides how the generated
// file refers to it.
func findInterface(info generatorInfo, pkgLoader PackageLoader) (detect.Interface, generate.Options, error) {
	local, err := pkgLoader.Load(".")
	if err != nil {
		return detect.Interface{}, generate.Options{}, err
	}

	opts := generate.Options{PkgName: info.pkgName, MockName: info.mockName}
	if opts.PkgName == "" {
		opts.PkgName = local.Name
	}

	pkg := local

	if info.qualifier != "" {
		importPath, ok := detect.ImportPathFor(local.Files, info.qualifier)
		if !ok {
			return detect.Interface{}, generate.Options{}, fmt.Errorf("%w: %q", errPackageNotFound, info.qualifier)
		}

		pkg, err = pkgLoader.Load(importPath)
		if err != nil {
			return detect.Interface{}, generate.Options{}, err
		}

		opts.Qualifier, opts.ImportPath = info.qualifier, importPath
	}

	iface, err := detect.FindInterface(pkg.Files, info.interfaceName)
	if err != nil {
		return detect.Interface{}, generate.Options{}, err
	}

	// A local interface seen from the external test package is qualified by its package.
	if info.qualifier == "" && iface.Package != opts.PkgName {
		opts.Qualifier, opts.ImportPath = iface.Package, local.PkgPath
	}

	return iface, opts, nil
}

// getGeneratorCallInfo returns basic information about the current call to the generator.
func getGeneratorCallInfo(parsed cliArgs, cfg Config, getEnv func(string) string) generatorInfo {
	qualifier, interfaceName, found := strings.Cut(parsed.Interface, ".")
	if !found {
		qualifier, interfaceName = "", parsed.Interface
	}

	mockName := parsed.Name
	if mockName == "" {
		mockName = interfaceName + cfg.Suffix
	}

	return generatorInfo{
		pkgName:       getEnv("GOPACKAGE"),
		goFile:        getEnv("GOFILE"),
		qualifier:     qualifier,
		interfaceName: interfaceName,
		mockName:      mockName,
	}
}

func newLogger(w io.Writer, verbose bool) *charmlog.Logger {
	level := charmlog.InfoLevel
	if verbose {
		level = charmlog.DebugLevel
	}

	return charmlog.NewWithOptions(w, charmlog.Options{Prefix: "expgen", Level: level})
}

// parseArgs parses command-line arguments into cliArgs.
func parseArgs(args []string) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{Program: "expgen"}, &parsed)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, nil
}

// unexported variables.
var (
	errPackageNotFound = errors.New("package not found in imports")
)
