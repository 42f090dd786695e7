package templates

import (
	"strings"
	"text/template"

	"github.com/fotap/heysync/internal/errors"
)

// Template names.
const (
	FileHeader  = "file-header"
	Fields      = "fields"
	Constructor = "constructor"
	Method      = "method"
	Register    = "register"
)

// TemplateRegistry is the set of templates used to emit publishers.
type TemplateRegistry struct {
	templates map[string]*template.Template
}

// NewTemplateRegistry parses every template.
func NewTemplateRegistry() *TemplateRegistry {
	tr := &TemplateRegistry{templates: make(map[string]*template.Template)}
	for name, text := range sources {
		tr.templates[name] = template.Must(template.New(name).Funcs(Funcs()).Parse(text))
	}
	return tr
}

// Execute renders the named template with data.
func (tr *TemplateRegistry) Execute(name string, data any) (string, error) {
	t, ok := tr.templates[name]
	if !ok {
		return "", errors.WrapTemplateError(name, errors.New(errors.TemplateErrorCode, "template not found"))
	}
	var out strings.Builder
	if err := t.Execute(&out, data); err != nil {
		return "", errors.WrapTemplateError(name, err)
	}
	return out.String(), nil
}

var sources = map[string]string{
	FileHeader: `// Code generated by heysync. DO NOT EDIT.

package {{.Package}}

{{.Imports}}
`,

	Fields: `{{range .Methods}}	{{.Field}} heysync.Channel
{{end}}`,

	Constructor: `// New{{.Class}} returns a publisher for {{.Interface}}. Every call is
// published on the channel given for its method, in declaration order.
func New{{.Class}}({{range $i, $m := .Methods}}{{if $i}}, {{end}}{{$m.Channel}}{{end}}{{if .Methods}} heysync.Channel{{end}}) *{{.Class}} {
	return &{{.Class}}{
{{range .Methods}}		{{.Field}}: {{.Channel}},
{{end}}	}
}

`,

	Method: `func ({{.Receiver}} *{{.Class}}) {{.Name}}({{join .Params ", "}}) {
	{{.Receiver}}.{{.Field}}.Publish({{.Payload}})
}

`,

	Register: `func init() {
	heysync.MustDefine(heysync.ClassSpec{
		Interface: heysync.InterfaceOf[{{.Interface}}](),
		Name:      {{quote .Qualified}},
		Methods: []heysync.MethodInfo{
{{range .Methods}}			{Name: {{quote .Name}}{{if .Types}}, Params: []string{ {{- join (quoteAll .Types) ", " -}} }{{end}}},
{{end}}		},
		Construct: func(ch []heysync.Channel) any {
			return New{{.Class}}({{range $i, $m := .Methods}}{{if $i}}, {{end}}ch[{{$i}}]{{end}})
		},
	})
}

`,
}
