package generate

import (
	"bytes"
	"fmt"
	"text/template"
)

// templateRegistry holds the parsed templates of a mock file, one per section.
type templateRegistry struct {
	header      *template.Template
	mockStruct  *template.Template
	descriptor  *template.Template
	stub        *template.Template
	expectation *template.Template
}

// newTemplateRegistry parses every template. Templates are constants, so parsing
// cannot fail at runtime.
func newTemplateRegistry() *templateRegistry {
	return &templateRegistry{
		header:      template.Must(template.New("header").Parse(headerTemplate)),
		mockStruct:  template.Must(template.New("mockStruct").Parse(mockStructTemplate)),
		descriptor:  template.Must(template.New("descriptor").Parse(descriptorTemplate)),
		stub:        template.Must(template.New("stub").Parse(stubTemplate)),
		expectation: template.Must(template.New("expectation").Parse(expectationTemplate)),
	}
}

func (r *templateRegistry) write(buf *bytes.Buffer, tmpl *template.Template, data any) {
	err := tmpl.Execute(buf, data)
	if err != nil {
		panic(fmt.Sprintf("failed to execute %s template: %v", tmpl.Name(), err))
	}
}

const headerTemplate = `// Code generated by expgen. DO NOT EDIT.

package {{.PkgName}}

import (
	"github.com/toejough/expecto"
	"github.com/toejough/expecto/match"
{{range .Imports}}	{{.Name}} "{{.Path}}"
{{end}})
`

const mockStructTemplate = `
// {{.MockName}} is a mock of {{.Interface}}. Calls are answered by the expectations of
// its Handle; expectations without an action fall back to Default.
type {{.MockName}}{{.TypeParams}} struct {
	handle  *expecto.Handle
	Default {{.Interface}}
}

// New{{.MockName}} creates a {{.MockName}} and the Handle that controls it.
func New{{.MockName}}{{.TypeParams}}(
	t expecto.TestReporter, options ...expecto.HandleOption,
) (*expecto.Handle, *{{.MockName}}{{.TypeArgs}}) {
	options = append([]expecto.HandleOption{expecto.WithName("{{.MockName}}")}, options...)
	handle := expecto.NewHandle(t, options...)

	return handle, &{{.MockName}}{{.TypeArgs}}{handle: handle}
}
{{if not .Generic}}
var _ {{.Interface}} = (*{{.MockName}})(nil)
{{end}}`

const descriptorTemplate = `{{if .Generic}}
func (*{{.MockName}}{{.TypeArgs}}) {{.Method.DescriptorName}}() expecto.Method {
	return expecto.Method{
		Receiver:  "{{.InterfaceName}}",
		Name:      "{{.Method.Name}}",
		Arity:     {{.Method.Arity}},
		Signature: expecto.TagOf[{{.Method.Signature}}](),
	}
}
{{else}}
var {{.Method.DescriptorName}} = expecto.Method{
	Receiver:  "{{.InterfaceName}}",
	Name:      "{{.Method.Name}}",
	Arity:     {{.Method.Arity}},
	Signature: expecto.TagOf[{{.Method.Signature}}](),
}
{{end}}`

const stubTemplate = `
func (m *{{.MockName}}{{.TypeArgs}}) {{.Method.Name}}({{.Method.Params}}){{.Method.ResultList}} {
	{{if .Method.Results}}results := {{end}}m.handle.Dispatch({{.Method.Descriptor}}, []any{ {{- .Method.Args -}} }, m.default{{.Method.Name}}())
{{- if .Method.Results}}

	return {{.Method.Returns}}
{{- end}}
}

func (m *{{.MockName}}{{.TypeArgs}}) default{{.Method.Name}}() expecto.Fallback {
	if m.Default == nil {
		return {{if .Method.Results}}nil{{else}}func([]any) []any { return nil }{{end}}
	}

	return func({{if .Method.Arity}}args{{else}}_{{end}} []any) []any {
		{{if .Method.Results}}{{.Method.ResultVars}} := {{end}}m.Default.{{.Method.Name}}({{.Method.DefaultArgs}})

		return {{if .Method.Results}}[]any{ {{- .Method.ResultVars -}} }{{else}}nil{{end}}
	}
}
`

const expectationTemplate = `{{if .Method.Arity}}
// Expect{{.Method.Name}} registers an expectation for {{.Method.Name}}. The arguments are
// matched with match.Args; without arguments every call matches.
func (m *{{.MockName}}{{.TypeArgs}}) Expect{{.Method.Name}}(args ...any) *expecto.Builder {
	builder := m.handle.Expect({{.Method.Descriptor}})
	if len(args) == 0 {
		return builder
	}

	return builder.With(match.Args(args...))
}
{{else}}
// Expect{{.Method.Name}} registers an expectation for {{.Method.Name}}.
func (m *{{.MockName}}{{.TypeArgs}}) Expect{{.Method.Name}}() *expecto.Builder {
	return m.handle.Expect({{.Method.Descriptor}})
}
{{end}}`
