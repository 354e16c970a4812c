// Package generator maps a framework kind to its emitter and runs the
// parse, create, generate pipeline.
package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhaage/swagger-test-generator/internal/emitter"
	"github.com/jhaage/swagger-test-generator/internal/emitter/jestemitter"
	"github.com/jhaage/swagger-test-generator/internal/emitter/postmanemitter"
	"github.com/jhaage/swagger-test-generator/internal/emitter/pytestemitter"
	"github.com/jhaage/swagger-test-generator/internal/emitter/reqwestemitter"
	"github.com/jhaage/swagger-test-generator/internal/spec"
)

// Framework is the closed set of supported test targets.
type Framework int

const (
	NativeAsyncClient Framework = iota
	ScriptingClient
	BrowserClient
	CollectionFormat
)

// Frameworks lists every kind in declaration order.
var Frameworks = []Framework{NativeAsyncClient, ScriptingClient, BrowserClient, CollectionFormat}

func (f Framework) String() string {
	switch f {
	case NativeAsyncClient:
		return reqwestemitter.Name
	case ScriptingClient:
		return pytestemitter.Name
	case BrowserClient:
		return jestemitter.Name
	case CollectionFormat:
		return postmanemitter.Name
	}
	return fmt.Sprintf("Framework(%d)", int(f))
}

// Alias is the ecosystem name accepted in place of the kind name.
func (f Framework) Alias() string {
	switch f {
	case NativeAsyncClient:
		return "reqwest"
	case ScriptingClient:
		return "pytest"
	case BrowserClient:
		return "jest"
	case CollectionFormat:
		return "postman"
	}
	return ""
}

// Names returns "kind (alias)" for every framework, for help text.
func Names() []string {
	out := make([]string, 0, len(Frameworks))
	for _, f := range Frameworks {
		out = append(out, f.String()+" ("+f.Alias()+")")
	}
	return out
}

// ParseFramework accepts a kind name or its alias, case-insensitively.
func ParseFramework(s string) (Framework, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, f := range Frameworks {
		if key == f.String() || key == f.Alias() {
			return f, nil
		}
	}
	return 0, &emitter.GeneratorError{
		Code:    emitter.UnsupportedFramework,
		Message: fmt.Sprintf("unsupported framework %q (allowed: %s)", s, strings.Join(Names(), ", ")),
	}
}

// New returns the emitter for f.
func New(f Framework) (emitter.Generator, error) {
	switch f {
	case NativeAsyncClient:
		return reqwestemitter.New(), nil
	case ScriptingClient:
		return pytestemitter.New(), nil
	case BrowserClient:
		return jestemitter.New(), nil
	case CollectionFormat:
		return postmanemitter.New(), nil
	default:
		return nil, &emitter.GeneratorError{
			Code:    emitter.UnsupportedFramework,
			Message: fmt.Sprintf("unsupported framework %v", f),
		}
	}
}

// GenerateFromFile loads input (path or http(s) URL) and renders the suite
// for f into opts.OutDir.
func GenerateFromFile(ctx context.Context, input string, f Framework, opts emitter.Options) (*emitter.Result, error) {
	gen, err := New(f)
	if err != nil {
		return nil, err
	}
	s, err := spec.Load(ctx, input, spec.WithLogger(opts.Logger))
	if err != nil {
		return nil, err
	}
	opts.Log().Debug("spec loaded", "input", input, "version", s.Version, "paths", len(s.Paths), "operations", s.OperationCount())
	return gen.GenerateTests(ctx, s, opts)
}
