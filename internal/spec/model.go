package spec

// Intermediate representation shared by every emitter. A SwaggerSpec is built
// once per parse and treated as read-only afterwards.

// HTTPMethod is the upper-case verb of an operation.
type HTTPMethod string

const (
	GET     HTTPMethod = "GET"
	POST    HTTPMethod = "POST"
	PUT     HTTPMethod = "PUT"
	DELETE  HTTPMethod = "DELETE"
	PATCH   HTTPMethod = "PATCH"
	OPTIONS HTTPMethod = "OPTIONS"
	HEAD    HTTPMethod = "HEAD"
)

// operationKeys lists the path item keys recognized as operations, in the
// order they are probed when a path item has no ordering information.
var operationKeys = []string{"get", "post", "put", "delete", "patch", "options", "head"}

// Parameter locations kept in the IR.
const (
	InPath  = "path"
	InQuery = "query"
	InBody  = "body"
)

// SwaggerSpec is the normalized view of an OpenAPI 2.0 or 3.x document.
type SwaggerSpec struct {
	Raw     map[string]any // original decoded document
	Version string         // "2.0" or the openapi version string
	Title   *string
	BaseURL string
	Paths   []APIPath // declaration order; never contains a path without operations
}

type APIPath struct {
	Path       string
	Operations []APIOperation
}

type APIOperation struct {
	Method      HTTPMethod
	OperationID string
	Summary     *string
	Description *string
	PathParams  []APIParameter
	QueryParams []APIParameter
	BodyParam   *APIParameter
	Responses   []APIResponse // declaration order
}

type APIParameter struct {
	Name      string
	Location  string // path|query|body
	Required  bool
	ParamType string
	Schema    map[string]any // nil when the document declares none
}

type APIResponse struct {
	StatusCode  string // "200", "4XX", "default"
	Description *string
	Schema      map[string]any
}

// IsV2 reports whether the document was a Swagger 2.0 description.
func (s *SwaggerSpec) IsV2() bool { return s != nil && s.Version == "2.0" }

// OperationCount returns the number of operations across all paths.
func (s *SwaggerSpec) OperationCount() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, p := range s.Paths {
		n += len(p.Operations)
	}
	return n
}

// HasPathParam reports whether op declares a path parameter called name.
func (op *APIOperation) HasPathParam(name string) bool {
	for _, p := range op.PathParams {
		if p.Name == name {
			return true
		}
	}
	return false
}

// SummaryOr returns the summary when present, else fallback.
func (op *APIOperation) SummaryOr(fallback string) string {
	if op.Summary != nil && *op.Summary != "" {
		return *op.Summary
	}
	return fallback
}
