// Package astutil renders dst type expressions back to Go source.
package astutil

import (
	"fmt"
	"go/token"
	"slices"
	"strings"

	"github.com/dave/dst"
)

// Qualifier rewrites a bare identifier, e.g. to prefix it with the name of the package
// that declares it.
type Qualifier func(name string) string

// ExpandFieldListTypes expands a field list into individual type strings.
// For fields with multiple names (e.g., "a, b int"), outputs the type once per name.
// For unnamed fields, outputs the type once.
func ExpandFieldListTypes(fields []*dst.Field, typeFormatter func(dst.Expr) string) []string {
	var parts []string

	for _, f := range fields {
		typeStr := typeFormatter(f.Type)

		count := len(f.Names)
		if count == 0 {
			count = 1
		}

		for range count {
			parts = append(parts, typeStr)
		}
	}

	return parts
}

// PackageQualifier qualifies exported identifiers with pkg, leaving builtins and the
// names in skip (type parameters) alone. An empty pkg qualifies nothing.
func PackageQualifier(pkg string, skip ...string) Qualifier {
	if pkg == "" {
		return Unqualified
	}

	return func(name string) string {
		if !token.IsExported(name) || slices.Contains(skip, name) {
			return name
		}

		return pkg + "." + name
	}
}

// StringifyExpr converts a DST expression to its string representation, passing every
// bare identifier through qualify.
//
//nolint:cyclop,funlen // Type-switch dispatcher handling all DST expression types; complexity is inherent
func StringifyExpr(expr dst.Expr, qualify Qualifier) string {
	if expr == nil {
		return ""
	}

	recurse := func(e dst.Expr) string { return StringifyExpr(e, qualify) }

	switch typedExpr := expr.(type) {
	case *dst.Ident:
		return qualify(typedExpr.Name)
	case *dst.BasicLit:
		return typedExpr.Value
	case *dst.SelectorExpr:
		// X is a package name and already qualifies Sel.
		return StringifyExpr(typedExpr.X, Unqualified) + "." + typedExpr.Sel.Name
	case *dst.StarExpr:
		return "*" + recurse(typedExpr.X)
	case *dst.ArrayType:
		if typedExpr.Len != nil {
			return "[" + recurse(typedExpr.Len) + "]" + recurse(typedExpr.Elt)
		}

		return "[]" + recurse(typedExpr.Elt)
	case *dst.MapType:
		return "map[" + recurse(typedExpr.Key) + "]" + recurse(typedExpr.Value)
	case *dst.ChanType:
		switch typedExpr.Dir {
		case dst.SEND:
			return "chan<- " + recurse(typedExpr.Value)
		case dst.RECV:
			return "<-chan " + recurse(typedExpr.Value)
		default:
			return "chan " + recurse(typedExpr.Value)
		}
	case *dst.InterfaceType:
		return stringifyInterfaceType(typedExpr, qualify)
	case *dst.StructType:
		return stringifyStructType(typedExpr, qualify)
	case *dst.FuncType:
		return "func" + Signature(typedExpr, qualify)
	case *dst.Ellipsis:
		return "..." + recurse(typedExpr.Elt)
	case *dst.IndexExpr:
		return recurse(typedExpr.X) + "[" + recurse(typedExpr.Index) + "]"
	case *dst.IndexListExpr:
		indices := make([]string, len(typedExpr.Indices))
		for i, idx := range typedExpr.Indices {
			indices[i] = recurse(idx)
		}

		return recurse(typedExpr.X) + "[" + strings.Join(indices, ", ") + "]"
	case *dst.ParenExpr:
		return "(" + recurse(typedExpr.X) + ")"
	case *dst.BinaryExpr:
		return recurse(typedExpr.X) + " " + typedExpr.Op.String() + " " + recurse(typedExpr.Y)
	case *dst.UnaryExpr:
		return typedExpr.Op.String() + recurse(typedExpr.X)
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// Signature renders the parameter and result lists of a function type, without the
// leading "func": "(int, ...string) (int, error)".
func Signature(funcType *dst.FuncType, qualify Qualifier) string {
	recurse := func(e dst.Expr) string { return StringifyExpr(e, qualify) }

	var buf strings.Builder

	buf.WriteString("(")

	if funcType.Params != nil {
		buf.WriteString(strings.Join(ExpandFieldListTypes(funcType.Params.List, recurse), ", "))
	}

	buf.WriteString(")")

	if funcType.Results == nil || len(funcType.Results.List) == 0 {
		return buf.String()
	}

	resultParts := ExpandFieldListTypes(funcType.Results.List, recurse)
	if len(resultParts) > 1 {
		buf.WriteString(" (" + strings.Join(resultParts, ", ") + ")")
	} else {
		buf.WriteString(" " + resultParts[0])
	}

	return buf.String()
}

// Unqualified leaves identifiers untouched.
func Unqualified(name string) string {
	return name
}

// stringifyInterfaceType converts an interface type to its string representation,
// preserving method signatures for interface literals.
func stringifyInterfaceType(interfaceType *dst.InterfaceType, qualify Qualifier) string {
	if interfaceType.Methods == nil || len(interfaceType.Methods.List) == 0 {
		return "interface{}"
	}

	parts := make([]string, 0, len(interfaceType.Methods.List))

	for _, method := range interfaceType.Methods.List {
		funcType, ok := method.Type.(*dst.FuncType)
		if !ok || len(method.Names) == 0 {
			// embedded interface or constraint
			parts = append(parts, StringifyExpr(method.Type, qualify))

			continue
		}

		parts = append(parts, method.Names[0].Name+Signature(funcType, qualify))
	}

	return "interface{ " + strings.Join(parts, "; ") + " }"
}

// stringifyStructType converts a DST StructType to its string representation,
// preserving all field information including names, types, and tags.
func stringifyStructType(structType *dst.StructType, qualify Qualifier) string {
	if structType.Fields == nil || len(structType.Fields.List) == 0 {
		return "struct{}"
	}

	fields := make([]string, 0, len(structType.Fields.List))

	for _, field := range structType.Fields.List {
		var fieldStr strings.Builder

		if len(field.Names) > 0 {
			nameStrs := make([]string, len(field.Names))
			for i, name := range field.Names {
				nameStrs[i] = name.Name
			}

			fieldStr.WriteString(strings.Join(nameStrs, ", "))
			fieldStr.WriteString(" ")
		}

		fieldStr.WriteString(StringifyExpr(field.Type, qualify))

		if field.Tag != nil {
			fieldStr.WriteString(" ")
			fieldStr.WriteString(field.Tag.Value)
		}

		fields = append(fields, fieldStr.String())
	}

	return fmt.Sprintf("struct{ %s }", strings.Join(fields, "; "))
}
