// Package jestemitter renders one Jest file per API path, each test issuing
// its request through axios.
package jestemitter

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhaage/swagger-test-generator/internal/emitter"
	"github.com/jhaage/swagger-test-generator/internal/naming"
	"github.com/jhaage/swagger-test-generator/internal/spec"
)

const Name = "browser-client"

const (
	PackageFile = "package.json"
	ReadmeFile  = "README.md"
	testSuffix  = ".test.js"
)

type Generator struct{}

func New() *Generator { return &Generator{} }

func (*Generator) Name() string { return Name }

func (g *Generator) GenerateTests(ctx context.Context, s *spec.SwaggerSpec, opts emitter.Options) (*emitter.Result, error) {
	if s == nil {
		return nil, fmt.Errorf("%s: nil spec", Name)
	}
	baseURL := emitter.ResolveBaseURL(opts.BaseURL, s.BaseURL)
	if err := emitter.CheckMethods(Name, emitter.Plan(s), emitter.StandardMethod); err != nil {
		return nil, err
	}

	var files []emitter.File
	var fileNames naming.Registry
	for i := range s.Paths {
		p := &s.Paths[i]
		suite := suiteData{Path: jsString(p.Path), BaseURL: jsString(baseURL)}
		var titles naming.Registry
		for j := range p.Operations {
			suite.Tests = append(suite.Tests, buildTest(emitter.PlanOperation(p.Path, &p.Operations[j]), &titles))
		}
		src, err := emitter.Render(suiteTmpl, suite)
		if err != nil {
			return nil, err
		}
		files = append(files, emitter.File{RelPath: FileName(p.Path, &fileNames), Content: src})
	}
	files = append(files,
		emitter.File{RelPath: PackageFile, Content: []byte(packageJSON)},
		emitter.File{RelPath: ReadmeFile, Content: []byte(readmeMD)},
	)
	return emitter.Emit(ctx, Name, files, baseURL, opts)
}

// FileName maps a path to its test file. The root path becomes root.test.js;
// paths that flatten to a stem already claimed in used get a numeric suffix
// in document order.
func FileName(path string, used *naming.Registry) string {
	stem := naming.SanitizePathForFilename(path)
	if stem == "" {
		stem = "root"
	}
	return used.Claim(stem) + testSuffix
}

type suiteData struct {
	Path    string
	BaseURL string
	Tests   []testData
}

type testData struct {
	Title      string
	Summary    string
	PathParams []pathParam
	Query      []string
	SendsBody  bool // payload is the positional data argument
	Body       *emitter.Payload
	Method     string
	URL        string
	Expected   int
}

type pathParam struct {
	Name string
	Var  string
}

func buildTest(p emitter.OperationPlan, titles *naming.Registry) testData {
	op := p.Op
	t := testData{
		Title:    jsString(titles.Claim(naming.ToCamelCase(op.OperationID))),
		Summary:  strings.Join(strings.Fields(op.SummaryOr("")), " "),
		Method:   p.Method(),
		Expected: p.Expected,
	}
	seen := map[string]bool{}
	for _, param := range op.PathParams {
		v := jsIdent(naming.ToCamelCase(param.Name))
		if seen[v] {
			continue
		}
		seen[v] = true
		t.PathParams = append(t.PathParams, pathParam{Name: strings.Join(strings.Fields(param.Name), " "), Var: v})
	}
	for _, q := range op.QueryParams {
		t.Query = append(t.Query, jsString(q.Name))
	}
	switch op.Method {
	case spec.POST, spec.PUT, spec.PATCH:
		t.SendsBody = true
	}
	if p.HasBody() {
		body := emitter.SamplePayload(op.Method)
		body.Name, body.Email = jsString(body.Name), jsString(body.Email)
		t.Body = &body
	}

	escaped := strings.NewReplacer(`\`, `\\`, "`", "\\`", "${", `\${`).Replace(p.Path)
	for _, param := range op.PathParams {
		escaped = strings.ReplaceAll(escaped, "{"+param.Name+"}", "${"+jsIdent(naming.ToCamelCase(param.Name))+"}")
	}
	t.URL = escaped
	return t
}

var jsReserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true, "continue": true,
	"debugger": true, "default": true, "delete": true, "do": true, "else": true, "enum": true,
	"export": true, "extends": true, "false": true, "finally": true, "for": true, "function": true,
	"if": true, "import": true, "in": true, "instanceof": true, "let": true, "new": true,
	"null": true, "return": true, "static": true, "super": true, "switch": true, "this": true,
	"throw": true, "true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "yield": true, "await": true,
	"axios": true, "params": true, "jsonData": true, "url": true, "response": true, "baseUrl": true,
}

func jsIdent(s string) string {
	if s == "" {
		return "param"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "p" + s
	}
	if jsReserved[s] {
		s += "_"
	}
	return s
}

// jsString escapes s for a single-quoted JavaScript literal.
func jsString(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`).Replace(s)
}
