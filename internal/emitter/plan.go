package emitter

import (
	"strings"

	"github.com/jhaage/swagger-test-generator/internal/spec"
)

// OperationPlan is the per-operation view every backend renders from.
type OperationPlan struct {
	Path     string
	Op       *spec.APIOperation
	Expected int
	Fixture  bool
	// Collection is where the fixture resource is created.
	Collection string
	// Templated reports whether the path contains any {placeholder}.
	Templated bool
}

// Method returns the lower-case verb.
func (p OperationPlan) Method() string { return strings.ToLower(string(p.Op.Method)) }

// HasBody reports whether the operation declares a body parameter.
func (p OperationPlan) HasBody() bool { return p.Op.BodyParam != nil }

// Plan derives one OperationPlan per operation of s in document order.
func Plan(s *spec.SwaggerSpec) []OperationPlan {
	var out []OperationPlan
	for i := range s.Paths {
		path := &s.Paths[i]
		for j := range path.Operations {
			op := &path.Operations[j]
			out = append(out, PlanOperation(path.Path, op))
		}
	}
	return out
}

func PlanOperation(path string, op *spec.APIOperation) OperationPlan {
	return OperationPlan{
		Path:       path,
		Op:         op,
		Expected:   ExpectedStatus(op),
		Fixture:    NeedsFixture(op),
		Collection: CollectionPath(path),
		Templated:  strings.Contains(path, "{"),
	}
}

// CheckMethods rejects operations whose verb falls outside supported.
func CheckMethods(name string, plans []OperationPlan, supported func(spec.HTTPMethod) bool) error {
	for _, p := range plans {
		if !supported(p.Op.Method) {
			return &GeneratorError{
				Code:    UnsupportedOperation,
				Message: name + ": unsupported HTTP method " + string(p.Op.Method) + " for " + p.Path,
			}
		}
	}
	return nil
}

// StandardMethod reports whether m is one of the seven verbs the parser
// recognizes.
func StandardMethod(m spec.HTTPMethod) bool {
	switch m {
	case spec.GET, spec.POST, spec.PUT, spec.DELETE, spec.PATCH, spec.OPTIONS, spec.HEAD:
		return true
	}
	return false
}
