package emitter

import (
	"bytes"
	"fmt"
	"text/template"
)

// ParseTemplate parses text and panics on a malformed template. It is meant
// for package-level variables.
func ParseTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Parse(text))
}

// Render executes tmpl with data, mapping failures to TemplateError.
func Render(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, &GeneratorError{Code: TemplateError, Message: fmt.Sprintf("render %s: %v", tmpl.Name(), err), Cause: err}
	}
	return buf.Bytes(), nil
}
