// Package pytestemitter renders a single pytest module that drives the API
// through requests, one test function per operation.
package pytestemitter

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhaage/swagger-test-generator/internal/emitter"
	"github.com/jhaage/swagger-test-generator/internal/naming"
	"github.com/jhaage/swagger-test-generator/internal/spec"
)

const Name = "scripting-client"

const (
	TestsFile        = "test_api.py"
	RequirementsFile = "requirements.txt"
	ReadmeFile       = "README.md"
)

type Generator struct{}

func New() *Generator { return &Generator{} }

func (*Generator) Name() string { return Name }

func (g *Generator) GenerateTests(ctx context.Context, s *spec.SwaggerSpec, opts emitter.Options) (*emitter.Result, error) {
	if s == nil {
		return nil, fmt.Errorf("%s: nil spec", Name)
	}
	baseURL := emitter.ResolveBaseURL(opts.BaseURL, s.BaseURL)
	plans := emitter.Plan(s)
	if err := emitter.CheckMethods(Name, plans, emitter.StandardMethod); err != nil {
		return nil, err
	}

	var tests []testData
	var fnNames naming.Registry
	for _, p := range plans {
		tests = append(tests, buildTest(baseURL, p, &fnNames))
	}
	src, err := emitter.Render(testsTmpl, tests)
	if err != nil {
		return nil, err
	}
	files := []emitter.File{
		{RelPath: TestsFile, Content: src},
		{RelPath: RequirementsFile, Content: []byte(requirementsTxt)},
		{RelPath: ReadmeFile, Content: []byte(readmeMD)},
	}
	return emitter.Emit(ctx, Name, files, baseURL, opts)
}

type testData struct {
	FnName     string
	Summary    string
	PathParams []pathParam
	Query      []string
	Body       *emitter.Payload
	URL        string
	Call       string
	Expected   int
}

type pathParam struct {
	Name string // as declared
	Var  string
}

func buildTest(baseURL string, p emitter.OperationPlan, fnNames *naming.Registry) testData {
	op := p.Op
	t := testData{
		FnName:   fnNames.Claim("test_" + pyIdent(naming.ToSnakeCase(op.OperationID))),
		Summary:  pyString(strings.Join(strings.Fields(op.SummaryOr(op.OperationID)), " ")),
		Expected: p.Expected,
	}
	seen := map[string]bool{}
	for _, param := range op.PathParams {
		v := pyIdent(naming.ToSnakeCase(param.Name))
		if seen[v] {
			continue
		}
		seen[v] = true
		t.PathParams = append(t.PathParams, pathParam{Name: oneLineComment(param.Name), Var: v})
	}
	for _, q := range op.QueryParams {
		t.Query = append(t.Query, pyString(q.Name))
	}
	if p.HasBody() {
		body := emitter.SamplePayload(op.Method)
		t.Body = &body
	}

	escaped := strings.NewReplacer("{", "{{", "}", "}}").Replace(baseURL + p.Path)
	for _, param := range op.PathParams {
		escaped = strings.ReplaceAll(escaped, "{{"+param.Name+"}}", "{"+pyIdent(naming.ToSnakeCase(param.Name))+"}")
	}
	t.URL = pyString(escaped)

	method := strings.ToLower(string(op.Method))
	switch op.Method {
	case spec.POST, spec.PUT, spec.PATCH:
		t.Call = "requests." + method + "(url, json=json_data, params=params)"
	default:
		if t.Body != nil {
			t.Call = "requests." + method + "(url, json=json_data, params=params)"
		} else {
			t.Call = "requests." + method + "(url, params=params)"
		}
	}
	return t
}

var pyKeywords = map[string]bool{
	"and": true, "as": true, "assert": true, "async": true, "await": true, "break": true,
	"class": true, "continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true, "if": true,
	"import": true, "in": true, "is": true, "lambda": true, "nonlocal": true, "not": true,
	"or": true, "pass": true, "raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true, "None": true, "True": true, "False": true,
	// names the generated body already binds
	"params": true, "json_data": true, "url": true, "response": true,
}

func pyIdent(s string) string {
	if s == "" {
		return "param"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "p_" + s
	}
	if pyKeywords[s] {
		s += "_"
	}
	return s
}

func pyString(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(s)
}

func oneLineComment(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
