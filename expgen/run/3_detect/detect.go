// Package detect finds a named interface in parsed files and flattens its method set.
package detect

import (
	"errors"
	"fmt"
	"path"
	"strconv"

	"github.com/dave/dst"

	load "github.com/toejough/expecto/expgen/run/2_load"
)

// Exported variables.
var (
	ErrExternalEmbedded  = errors.New("embedded interface from another package is not supported")
	ErrInterfaceNotFound = errors.New("interface not found")
	ErrNotAnInterface    = errors.New("not an interface")
	ErrUnsupported       = errors.New("unsupported interface element")
)

// Import is an import of a file that declares part of the interface.
type Import struct {
	Name string // explicit alias, empty when the package is imported by its own name
	Path string
}

// Interface is an interface with its embedded interfaces expanded.
type Interface struct {
	Name       string
	Package    string // package clause of the declaring file
	TypeParams *dst.FieldList
	Methods    []Method
	Imports    []Import
}

// Method is one method of the flattened method set.
type Method struct {
	Name string
	Type *dst.FuncType
}

// FindInterface returns the interface called name declared in files. Interfaces it
// embeds must be declared in the same files, apart from the builtin error.
func FindInterface(files []load.SourceFile, name string) (Interface, error) {
	finder := &interfaceFinder{files: files, seen: map[string]bool{}, visiting: map[string]bool{}}

	decl, ok := finder.lookup(name)
	if !ok {
		return Interface{}, fmt.Errorf("%w: %s", ErrInterfaceNotFound, name)
	}

	if _, isIface := decl.spec.Type.(*dst.InterfaceType); !isIface {
		return Interface{}, fmt.Errorf("%w: %s", ErrNotAnInterface, name)
	}

	result := Interface{
		Name:       name,
		Package:    decl.file.Name.Name,
		TypeParams: decl.spec.TypeParams,
	}

	err := finder.collect(decl, &result)
	if err != nil {
		return Interface{}, err
	}

	return result, nil
}

// ImportPathFor returns the import path bound to alias in any of files.
func ImportPathFor(files []load.SourceFile, alias string) (string, bool) {
	for _, source := range files {
		for _, spec := range source.File.Imports {
			imp := toImport(spec)
			if imp.Name == alias || (imp.Name == "" && path.Base(imp.Path) == alias) {
				return imp.Path, true
			}
		}
	}

	return "", false
}

type declaration struct {
	file *dst.File
	spec *dst.TypeSpec
}

type interfaceFinder struct {
	files    []load.SourceFile
	seen     map[string]bool // method names already collected
	visiting map[string]bool // interfaces on the current embedding path
	imports  map[string]bool
}

//nolint:cyclop // one case per kind of interface element
func (f *interfaceFinder) collect(decl declaration, result *Interface) error {
	name := decl.spec.Name.Name
	if f.visiting[name] {
		return fmt.Errorf("%w: %s embeds itself", ErrUnsupported, name)
	}

	f.visiting[name] = true
	defer delete(f.visiting, name)

	f.addImports(decl.file, result)

	iface, _ := decl.spec.Type.(*dst.InterfaceType)
	if iface.Methods == nil {
		return nil
	}

	for _, field := range iface.Methods.List {
		if funcType, ok := field.Type.(*dst.FuncType); ok && len(field.Names) > 0 {
			f.addMethod(result, Method{Name: field.Names[0].Name, Type: funcType})

			continue
		}

		switch embedded := field.Type.(type) {
		case *dst.Ident:
			err := f.embed(embedded.Name, result)
			if err != nil {
				return err
			}
		case *dst.SelectorExpr:
			return fmt.Errorf("%w: %s embeds %s", ErrExternalEmbedded, name, describe(embedded))
		default:
			return fmt.Errorf("%w: %s has a type constraint element", ErrUnsupported, name)
		}
	}

	return nil
}

func (f *interfaceFinder) embed(name string, result *Interface) error {
	if name == "error" {
		f.addMethod(result, errorMethod())

		return nil
	}

	decl, ok := f.lookup(name)
	if !ok {
		return fmt.Errorf("%w: embedded %s", ErrInterfaceNotFound, name)
	}

	if _, isIface := decl.spec.Type.(*dst.InterfaceType); !isIface {
		return fmt.Errorf("%w: embedded %s", ErrNotAnInterface, name)
	}

	if decl.spec.TypeParams != nil {
		return fmt.Errorf("%w: embedded generic interface %s", ErrUnsupported, name)
	}

	return f.collect(decl, result)
}

func (f *interfaceFinder) addImports(file *dst.File, result *Interface) {
	if f.imports == nil {
		f.imports = map[string]bool{}
	}

	for _, spec := range file.Imports {
		imp := toImport(spec)
		if imp.Name == "_" || f.imports[imp.Name+" "+imp.Path] {
			continue
		}

		f.imports[imp.Name+" "+imp.Path] = true
		result.Imports = append(result.Imports, imp)
	}
}

func (f *interfaceFinder) addMethod(result *Interface, method Method) {
	if f.seen[method.Name] {
		return
	}

	f.seen[method.Name] = true
	result.Methods = append(result.Methods, method)
}

func (f *interfaceFinder) lookup(name string) (declaration, bool) {
	for _, source := range f.files {
		for _, decl := range source.File.Decls {
			genDecl, ok := decl.(*dst.GenDecl)
			if !ok {
				continue
			}

			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*dst.TypeSpec)
				if ok && typeSpec.Name.Name == name {
					return declaration{file: source.File, spec: typeSpec}, true
				}
			}
		}
	}

	return declaration{}, false
}

func describe(sel *dst.SelectorExpr) string {
	if pkg, ok := sel.X.(*dst.Ident); ok {
		return pkg.Name + "." + sel.Sel.Name
	}

	return sel.Sel.Name
}

func errorMethod() Method {
	return Method{
		Name: "Error",
		Type: &dst.FuncType{
			Params:  &dst.FieldList{},
			Results: &dst.FieldList{List: []*dst.Field{{Type: dst.NewIdent("string")}}},
		},
	}
}

func toImport(spec *dst.ImportSpec) Import {
	importPath, err := strconv.Unquote(spec.Path.Value)
	if err != nil {
		importPath = spec.Path.Value
	}

	imp := Import{Path: importPath}
	if spec.Name != nil {
		imp.Name = spec.Name.Name
	}

	return imp
}
