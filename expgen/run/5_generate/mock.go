// Package generate renders mocks of interfaces that forward every call to an expecto Handle.
package generate

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dave/dst"
	"golang.org/x/tools/imports"

	astutil "github.com/toejough/expecto/expgen/run/0_util"
	detect "github.com/toejough/expecto/expgen/run/3_detect"
)

// Options describe where a mock is generated.
type Options struct {
	PkgName  string // package clause of the generated file
	MockName string
	// Qualifier names the package of the interface when the mock lives elsewhere; it is
	// empty when both share a package.
	Qualifier  string
	ImportPath string
}

// Mock renders the source of a mock of iface, formatted and with unused imports removed.
func Mock(iface detect.Interface, opts Options) ([]byte, error) {
	gen := newMockGenerator(iface, opts)
	data := gen.templateData()

	var buf bytes.Buffer

	templates := newTemplateRegistry()
	templates.write(&buf, templates.header, data)
	templates.write(&buf, templates.mockStruct, data)

	for _, method := range data.Methods {
		section := methodSection{mockData: data, Method: method}
		templates.write(&buf, templates.descriptor, section)
		templates.write(&buf, templates.stub, section)
		templates.write(&buf, templates.expectation, section)
	}

	formatted, err := imports.Process("generated_"+opts.MockName+".go", buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("error formatting generated code: %w\n%s", err, buf.String())
	}

	return formatted, nil
}

// mockData is the template data of a whole mock file.
type mockData struct {
	PkgName       string
	MockName      string
	InterfaceName string
	Interface     string // the mocked type as the generated file refers to it
	TypeParams    string
	TypeArgs      string
	Generic       bool
	Imports       []detect.Import
	Methods       []methodData
}

// methodData is the template data of one mocked method.
type methodData struct {
	Name           string
	DescriptorName string
	Descriptor     string // expression that yields the expecto.Method
	Arity          int
	Signature      string
	Params         string
	Args           string
	DefaultArgs    string
	Results        []string
	ResultList     string
	ResultVars     string
	Returns        string
}

type methodSection struct {
	mockData

	Method methodData
}

type mockGenerator struct {
	iface      detect.Interface
	opts       Options
	qualify    astutil.Qualifier
	typeParams []string
	reserved   map[string]bool
}

func newMockGenerator(iface detect.Interface, opts Options) *mockGenerator {
	gen := &mockGenerator{iface: iface, opts: opts}

	if iface.TypeParams != nil {
		for _, field := range iface.TypeParams.List {
			for _, name := range field.Names {
				gen.typeParams = append(gen.typeParams, name.Name)
			}
		}
	}

	gen.qualify = astutil.PackageQualifier(opts.Qualifier, gen.typeParams...)
	gen.reserved = map[string]bool{"m": true, "args": true, "results": true, "expecto": true, "match": true}

	for _, imp := range gen.imports() {
		gen.reserved[importName(imp)] = true
	}

	for _, name := range gen.typeParams {
		gen.reserved[name] = true
	}

	return gen
}

func (gen *mockGenerator) imports() []detect.Import {
	result := make([]detect.Import, 0, len(gen.iface.Imports)+1)

	for _, imp := range gen.iface.Imports {
		if imp.Path != gen.opts.ImportPath {
			result = append(result, imp)
		}
	}

	if gen.opts.Qualifier != "" {
		result = append(result, detect.Import{Name: gen.opts.Qualifier, Path: gen.opts.ImportPath})
	}

	return result
}

func (gen *mockGenerator) methodData(method detect.Method) methodData {
	data := methodData{
		Name:           method.Name,
		DescriptorName: lowerFirst(gen.opts.MockName) + method.Name,
		Signature:      "func" + astutil.Signature(method.Type, gen.qualify),
	}

	data.Descriptor = data.DescriptorName
	if len(gen.typeParams) > 0 {
		data.DescriptorName = "method" + method.Name
		data.Descriptor = "m." + data.DescriptorName + "()"
	}

	gen.fillParams(&data, method.Type.Params)
	gen.fillResults(&data, method.Type.Results)

	return data
}

func (gen *mockGenerator) fillParams(data *methodData, params *dst.FieldList) {
	if params == nil {
		return
	}

	var decls, args, defaults []string

	index := 0

	for _, field := range params.List {
		typeStr := gen.stringify(field.Type)
		elem, variadic := field.Type.(*dst.Ellipsis)

		names := field.Names
		if len(names) == 0 {
			names = []*dst.Ident{nil}
		}

		for _, ident := range names {
			name := fmt.Sprintf("arg%d", index)
			if ident != nil && ident.Name != "_" && !gen.reserved[ident.Name] {
				name = ident.Name
			}

			decls = append(decls, name+" "+typeStr)
			args = append(args, name)

			if variadic {
				sliceType := "[]" + gen.stringify(elem.Elt)
				defaults = append(defaults, fmt.Sprintf("expecto.Result[%s](args, %d)...", sliceType, index))
			} else {
				defaults = append(defaults, fmt.Sprintf("expecto.Result[%s](args, %d)", typeStr, index))
			}

			index++
		}
	}

	data.Arity = index
	data.Params = strings.Join(decls, ", ")
	data.Args = strings.Join(args, ", ")
	data.DefaultArgs = strings.Join(defaults, ", ")
}

func (gen *mockGenerator) fillResults(data *methodData, results *dst.FieldList) {
	if results == nil {
		return
	}

	data.Results = astutil.ExpandFieldListTypes(results.List, gen.stringify)

	vars := make([]string, len(data.Results))
	returns := make([]string, len(data.Results))

	for i, typeStr := range data.Results {
		vars[i] = fmt.Sprintf("r%d", i)
		returns[i] = fmt.Sprintf("expecto.Result[%s](results, %d)", typeStr, i)
	}

	data.ResultVars = strings.Join(vars, ", ")
	data.Returns = strings.Join(returns, ", ")

	switch len(data.Results) {
	case 0:
	case 1:
		data.ResultList = " " + data.Results[0]
	default:
		data.ResultList = " (" + strings.Join(data.Results, ", ") + ")"
	}
}

func (gen *mockGenerator) stringify(expr dst.Expr) string {
	return astutil.StringifyExpr(expr, gen.qualify)
}

func (gen *mockGenerator) templateData() mockData {
	data := mockData{
		PkgName:       gen.opts.PkgName,
		MockName:      gen.opts.MockName,
		InterfaceName: gen.iface.Name,
		Generic:       len(gen.typeParams) > 0,
		Imports:       gen.imports(),
	}

	if data.Generic {
		decls := make([]string, 0, len(gen.iface.TypeParams.List))
		for _, field := range gen.iface.TypeParams.List {
			names := make([]string, len(field.Names))
			for i, name := range field.Names {
				names[i] = name.Name
			}

			decls = append(decls, strings.Join(names, ", ")+" "+gen.stringify(field.Type))
		}

		data.TypeParams = "[" + strings.Join(decls, ", ") + "]"
		data.TypeArgs = "[" + strings.Join(gen.typeParams, ", ") + "]"
	}

	data.Interface = gen.iface.Name + data.TypeArgs
	if gen.opts.Qualifier != "" {
		data.Interface = gen.opts.Qualifier + "." + data.Interface
	}

	for _, method := range gen.iface.Methods {
		data.Methods = append(data.Methods, gen.methodData(method))
	}

	return data
}

func importName(imp detect.Import) string {
	if imp.Name != "" {
		return imp.Name
	}

	return path.Base(imp.Path)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)

	return string(unicode.ToLower(r)) + s[size:]
}
