// Package reqwestemitter renders an async Rust test crate built on reqwest
// and tokio. Operations on an existing resource create it first through a
// shared helper and use the returned id.
package reqwestemitter

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhaage/swagger-test-generator/internal/emitter"
	"github.com/jhaage/swagger-test-generator/internal/naming"
	"github.com/jhaage/swagger-test-generator/internal/spec"
)

// Name is the framework kind served by this emitter.
const Name = "native-async-client"

// File names written by the emitter.
const (
	TestsFile    = "api_tests.rs"
	MainFile     = "main.rs"
	ManifestFile = "Cargo.toml"
)

type Generator struct{}

func New() *Generator { return &Generator{} }

func (*Generator) Name() string { return Name }

// GenerateTests renders api_tests.rs, main.rs and Cargo.toml.
func (g *Generator) GenerateTests(ctx context.Context, s *spec.SwaggerSpec, opts emitter.Options) (*emitter.Result, error) {
	if s == nil {
		return nil, fmt.Errorf("%s: nil spec", Name)
	}
	baseURL := emitter.ResolveBaseURL(opts.BaseURL, s.BaseURL)
	plans := emitter.Plan(s)
	if err := emitter.CheckMethods(Name, plans, emitter.StandardMethod); err != nil {
		return nil, err
	}

	data := suiteData{BaseURL: rustString(baseURL)}
	var fnNames naming.Registry
	for _, p := range plans {
		data.Tests = append(data.Tests, buildTest(baseURL, p, &fnNames))
	}

	tests, err := emitter.Render(testsTmpl, data)
	if err != nil {
		return nil, err
	}
	files := []emitter.File{
		{RelPath: TestsFile, Content: tests},
		{RelPath: MainFile, Content: []byte(mainRS)},
		{RelPath: ManifestFile, Content: []byte(cargoToml)},
	}
	return emitter.Emit(ctx, Name, files, baseURL, opts)
}

type suiteData struct {
	BaseURL string
	Tests   []testData
}

type testData struct {
	FnName        string
	Summary       string
	LiteralParams []string
	Fixture       *fixtureData
	Query         []string
	Body          *emitter.Payload
	URL           string
	Call          string
	Expected      int
	Verify        string
	Verified      emitter.Payload
}

type fixtureData struct {
	URL     string
	Payload emitter.Payload
}

// Response checks appended after the status assertion.
const (
	verifyDeleted = "deleted"
	verifyID      = "id"
	verifyUpdated = "updated"
	verifyCreated = "created"
	verifyList    = "list"
)

func buildTest(baseURL string, p emitter.OperationPlan, fnNames *naming.Registry) testData {
	op := p.Op
	t := testData{
		FnName:   fnNames.Claim("test_" + rustIdent(naming.ToSnakeCase(op.OperationID))),
		Summary:  oneLine(op.SummaryOr("")),
		Expected: p.Expected,
	}

	token := func(name string) string {
		if p.Fixture && name == emitter.FixtureParam {
			return "{id}"
		}
		return "{" + rustIdent(naming.ToSnakeCase(name)) + "}"
	}
	for _, param := range op.PathParams {
		if p.Fixture && param.Name == emitter.FixtureParam {
			continue
		}
		t.LiteralParams = append(t.LiteralParams, rustIdent(naming.ToSnakeCase(param.Name)))
	}
	t.LiteralParams = dedupe(t.LiteralParams)

	t.URL = formatURL(baseURL, p.Path, op.PathParams, token)
	if p.Fixture {
		t.Fixture = &fixtureData{
			URL:     formatURL(baseURL, p.Collection, op.PathParams, token),
			Payload: emitter.FixturePayload(op.Method),
		}
	}
	for _, q := range op.QueryParams {
		t.Query = append(t.Query, rustString(q.Name))
	}
	if p.HasBody() {
		body := emitter.SamplePayload(op.Method)
		t.Body = &body
	}
	t.Call = clientCall(op.Method, t.Body != nil, len(t.Query) > 0)

	switch {
	case op.Method == spec.DELETE:
		t.Verify = verifyDeleted
	case op.Method == spec.GET && p.Fixture:
		t.Verify = verifyID
	case op.Method == spec.PUT && p.HasBody():
		t.Verify = verifyUpdated
		t.Verified = *t.Body
	case op.Method == spec.POST && p.HasBody() && !p.Templated:
		t.Verify = verifyCreated
		t.Verified = *t.Body
	case op.Method == spec.GET && !p.Templated:
		t.Verify = verifyList
	}
	return t
}

func clientCall(m spec.HTTPMethod, body, query bool) string {
	var call string
	switch m {
	case spec.OPTIONS:
		call = "client.request(reqwest::Method::OPTIONS, &url)"
	default:
		call = "client." + strings.ToLower(string(m)) + "(&url)"
	}
	if body {
		call += ".json(&body)"
	}
	if query {
		call += ".query(&query_params)"
	}
	return call
}

// formatURL builds the literal passed to format!: braces are doubled and the
// declared path parameters become inline captures.
func formatURL(baseURL, path string, params []spec.APIParameter, token func(string) string) string {
	escaped := strings.NewReplacer("{", "{{", "}", "}}").Replace(path)
	for _, p := range params {
		escaped = strings.ReplaceAll(escaped, "{{"+p.Name+"}}", token(p.Name))
	}
	base := strings.NewReplacer("{", "{{", "}", "}}").Replace(baseURL)
	return rustString(base) + rustString(escaped)
}

var rustKeywords = map[string]bool{
	"as": true, "async": true, "await": true, "break": true, "const": true, "continue": true,
	"crate": true, "dyn": true, "else": true, "enum": true, "extern": true, "false": true,
	"fn": true, "for": true, "if": true, "impl": true, "in": true, "let": true, "loop": true,
	"match": true, "mod": true, "move": true, "mut": true, "pub": true, "ref": true,
	"return": true, "self": true, "static": true, "struct": true, "super": true,
	"trait": true, "true": true, "type": true, "unsafe": true, "use": true, "where": true,
	"while": true,
}

func rustIdent(s string) string {
	if s == "" {
		return "param"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "p_" + s
	}
	if rustKeywords[s] {
		s += "_"
	}
	return s
}

func rustString(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`).Replace(s)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
