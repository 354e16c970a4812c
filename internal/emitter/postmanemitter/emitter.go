// Package postmanemitter renders a Postman v2.1 collection with one folder
// per API path and a status-code test on every request.
package postmanemitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jhaage/swagger-test-generator/internal/emitter"
	"github.com/jhaage/swagger-test-generator/internal/spec"
)

const Name = "collection-format"

const (
	CollectionFile = "postman_collection.json"
	ReadmeFile     = "README.md"

	collectionName = "API Tests"
	description    = "Generated API tests for the Swagger/OpenAPI specification"
	pathValue      = "1"
	queryValue     = "test_value"
)

type Generator struct {
	// NewID returns the collection's _postman_id. Defaults to a random UUID.
	NewID func() string
}

func New() *Generator { return &Generator{NewID: uuid.NewString} }

func (*Generator) Name() string { return Name }

func (g *Generator) GenerateTests(ctx context.Context, s *spec.SwaggerSpec, opts emitter.Options) (*emitter.Result, error) {
	if s == nil {
		return nil, fmt.Errorf("%s: nil spec", Name)
	}
	baseURL := emitter.ResolveBaseURL(opts.BaseURL, s.BaseURL)
	if err := emitter.CheckMethods(Name, emitter.Plan(s), emitter.StandardMethod); err != nil {
		return nil, err
	}

	newID := g.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	c := Build(s, baseURL, newID())
	data, err := encode(c)
	if err != nil {
		return nil, err
	}
	files := []emitter.File{
		{RelPath: CollectionFile, Content: data},
		{RelPath: ReadmeFile, Content: []byte(readmeMD)},
	}
	return emitter.Emit(ctx, Name, files, baseURL, opts)
}

// Build assembles the collection for s against baseURL.
func Build(s *spec.SwaggerSpec, baseURL, id string) *Collection {
	c := &Collection{
		Info: Info{
			PostmanID:   id,
			Name:        collectionName,
			Description: description,
			Schema:      SchemaURL,
		},
		Item:  []Folder{},
		Event: []Event{},
	}
	for i := range s.Paths {
		p := &s.Paths[i]
		f := Folder{Name: FolderName(p.Path), Item: []Item{}}
		for j := range p.Operations {
			f.Item = append(f.Item, buildItem(baseURL, emitter.PlanOperation(p.Path, &p.Operations[j])))
		}
		c.Item = append(c.Item, f)
	}
	return c
}

// FolderName is the path without its leading slash, segments separated by
// spaces and braces dropped: /users/{id} -> "users id".
func FolderName(path string) string {
	return strings.NewReplacer("/", " ", "{", "", "}", "").Replace(strings.TrimPrefix(path, "/"))
}

func buildItem(baseURL string, p emitter.OperationPlan) Item {
	op := p.Op
	method := string(op.Method)
	path := emitter.SubstitutePath(p.Path, op.PathParams, func(name string) string { return ":" + name })

	u := URL{
		Raw:  strings.TrimRight(baseURL, "/") + path,
		Host: []string{emitter.HostOf(baseURL)},
		Path: segments(emitter.BasePath(baseURL) + path),
	}
	if scheme, _, ok := strings.Cut(baseURL, "://"); ok {
		u.Protocol = scheme
	}
	for _, q := range op.QueryParams {
		u.Query = append(u.Query, Query{Key: q.Name, Value: queryValue, Description: q.Name})
	}
	seen := map[string]bool{}
	for _, param := range op.PathParams {
		if seen[param.Name] || !strings.Contains(p.Path, "{"+param.Name+"}") {
			continue
		}
		seen[param.Name] = true
		u.Variable = append(u.Variable, Variable{Key: param.Name, Value: pathValue})
	}

	req := Request{Method: method, Header: []Header{}, URL: u}
	if op.Description != nil {
		req.Description = *op.Description
	}
	if p.HasBody() {
		req.Header = append(req.Header, Header{Key: "Content-Type", Value: "application/json"})
		b := &Body{Mode: "raw", Raw: rawBody(emitter.SamplePayload(op.Method))}
		b.Options.Raw.Language = "json"
		req.Body = b
	}

	status := strconv.Itoa(p.Expected)
	return Item{
		Name:    method + " " + op.SummaryOr(op.OperationID),
		Request: req,
		Event: []Event{{
			Listen: "test",
			Script: Script{
				Exec: []string{
					`pm.test("Status code is ` + status + `", function () {`,
					"    pm.response.to.have.status(" + status + ");",
					"});",
				},
				Type: "text/javascript",
			},
		}},
		Response: []json.RawMessage{},
	}
}

func segments(path string) []string {
	out := []string{}
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func rawBody(p emitter.Payload) string {
	b, _ := json.MarshalIndent(struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}{p.Name, p.Email}, "", "  ")
	return string(b)
}

func encode(c *Collection) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return nil, &emitter.GeneratorError{Code: emitter.TemplateError, Message: "encode collection: " + err.Error(), Cause: err}
	}
	return buf.Bytes(), nil
}

const readmeMD = "# Postman API Tests\n\n" +
	"Generated Postman collection for testing the Swagger/OpenAPI specification.\n\n" +
	"## Setup\n\n" +
	"1. Import the `" + CollectionFile + "` file into Postman\n" +
	"2. Create an environment and set the base URL if needed\n\n" +
	"## Running the tests\n\n" +
	"Run the collection in Postman and review the test results.\n"
