package emitter

import (
	"strconv"
	"strings"

	"github.com/jhaage/swagger-test-generator/internal/spec"
)

// FixtureParam is the path parameter that marks an operation as acting on a
// previously created resource.
const FixtureParam = "id"

// Payload is the fixed request body sent by every generated test.
type Payload struct {
	Name  string
	Email string
}

var (
	createPayload = Payload{Name: "Test User", Email: "test@example.com"}
	updatePayload = Payload{Name: "Updated Name", Email: "updated@example.com"}
)

// SamplePayload returns the body for method: PUT sends the update variant,
// everything else the create variant.
func SamplePayload(method spec.HTTPMethod) Payload {
	if method == spec.PUT {
		return updatePayload
	}
	return createPayload
}

// FixturePayload returns the body used to create the prerequisite resource
// of a fixture-dependent operation.
func FixturePayload(method spec.HTTPMethod) Payload {
	switch method {
	case spec.GET:
		return Payload{Name: "Get Test", Email: "get_test@example.com"}
	case spec.PUT:
		return Payload{Name: "Update Test", Email: "update_test@example.com"}
	case spec.DELETE:
		return Payload{Name: "Delete Test", Email: "delete_test@example.com"}
	}
	return createPayload
}

// ExpectedStatus is the success status a test asserts: 201 for POST, 204
// for DELETE, 200 otherwise, unless a response whose code starts with '2'
// is declared, in which case the first such response wins. Range codes such
// as "2XX" resolve to 200.
func ExpectedStatus(op *spec.APIOperation) int {
	status := 200
	switch op.Method {
	case spec.POST:
		status = 201
	case spec.DELETE:
		status = 204
	}
	for _, r := range op.Responses {
		if !strings.HasPrefix(r.StatusCode, "2") {
			continue
		}
		if n, err := strconv.Atoi(r.StatusCode); err == nil {
			return n
		}
		return 200
	}
	return status
}

// NeedsFixture reports whether op is a GET, PUT or DELETE with a path
// parameter named id.
func NeedsFixture(op *spec.APIOperation) bool {
	switch op.Method {
	case spec.GET, spec.PUT, spec.DELETE:
		return op.HasPathParam(FixtureParam)
	}
	return false
}

// SubstitutePath replaces each {name} placeholder of a declared path
// parameter with token(name). Undeclared placeholders are left as is.
func SubstitutePath(path string, params []spec.APIParameter, token func(name string) string) string {
	for _, p := range params {
		path = strings.ReplaceAll(path, "{"+p.Name+"}", token(p.Name))
	}
	return path
}

// CollectionPath returns the path a fixture resource is created at: the
// template up to the /{id} segment, e.g. /users/{id}/avatar -> /users.
func CollectionPath(path string) string {
	if i := strings.Index(path, "/{"+FixtureParam+"}"); i >= 0 {
		if i == 0 {
			return "/"
		}
		return path[:i]
	}
	return path
}

// ResolveBaseURL combines a host override with the base path of the
// document, e.g. http://localhost:3000 and http://api.sample.com/v1 give
// http://localhost:3000/v1. An empty override keeps the document URL.
func ResolveBaseURL(override, specBaseURL string) string {
	override = strings.TrimSpace(override)
	if override == "" {
		return strings.TrimRight(specBaseURL, "/")
	}
	basePath := strings.TrimRight(BasePath(specBaseURL), "/")
	return strings.TrimRight(override, "/") + basePath
}

// BasePath extracts the path component of a base URL. Relative URLs, as
// allowed for OpenAPI 3 servers, are returned whole.
func BasePath(baseURL string) string {
	if strings.HasPrefix(baseURL, "/") {
		return baseURL
	}
	_, rest, ok := strings.Cut(baseURL, "://")
	if !ok {
		return ""
	}
	if i := strings.Index(rest, "/"); i >= 0 {
		return rest[i:]
	}
	return ""
}

// HostOf returns the host part of a URL without scheme or path.
func HostOf(baseURL string) string {
	rest := baseURL
	if _, after, ok := strings.Cut(baseURL, "://"); ok {
		rest = after
	}
	host, _, _ := strings.Cut(rest, "/")
	if host == "" {
		return "localhost"
	}
	return host
}
