package spec

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// dialect captures the per-version differences in how operations are read.
type dialect interface {
	paramType(param *yaml.Node) string
	acceptsBodyParam() bool
	requestBody(op *yaml.Node) *APIParameter
	responseSchema(resp *yaml.Node) map[string]any
}

// normalizePaths walks the paths object in declaration order. A value that is
// not an object yields no paths, and paths without operations are dropped.
func normalizePaths(paths *yaml.Node, d dialect) []APIPath {
	out := []APIPath{}
	if paths.Kind != yaml.MappingNode {
		return out
	}
	for i := 0; i+1 < len(paths.Content); i += 2 {
		path := paths.Content[i].Value
		item := paths.Content[i+1]
		if item.Kind != yaml.MappingNode {
			continue
		}
		ap := APIPath{Path: path}
		for j := 0; j+1 < len(item.Content); j += 2 {
			verb := item.Content[j].Value
			if !isOperationKey(verb) {
				continue
			}
			opNode := item.Content[j+1]
			if opNode.Kind != yaml.MappingNode {
				continue
			}
			ap.Operations = append(ap.Operations, normalizeOperation(path, verb, opNode, d))
		}
		if len(ap.Operations) > 0 {
			out = append(out, ap)
		}
	}
	return out
}

func normalizeOperation(path, verb string, n *yaml.Node, d dialect) APIOperation {
	op := APIOperation{
		Method:      HTTPMethod(strings.ToUpper(verb)),
		OperationID: stringAt(n, "operationId"),
		Summary:     stringPtrAt(n, "summary"),
		Description: stringPtrAt(n, "description"),
	}
	if op.OperationID == "" {
		op.OperationID = SynthesizeOperationID(verb, path)
	}

	if params := lookup(n, "parameters"); params != nil && params.Kind == yaml.SequenceNode {
		for _, pn := range params.Content {
			if pn.Kind != yaml.MappingNode {
				continue
			}
			p := APIParameter{
				Name:      stringAt(pn, "name"),
				Location:  stringAt(pn, "in"),
				Required:  boolAt(pn, "required"),
				ParamType: d.paramType(pn),
				Schema:    mapAt(pn, "schema"),
			}
			switch p.Location {
			case InPath:
				op.PathParams = append(op.PathParams, p)
			case InQuery:
				op.QueryParams = append(op.QueryParams, p)
			case InBody:
				if d.acceptsBodyParam() {
					body := p
					op.BodyParam = &body
				}
			}
		}
	}
	if body := d.requestBody(n); body != nil {
		op.BodyParam = body
	}

	if responses := lookup(n, "responses"); responses != nil && responses.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(responses.Content); i += 2 {
			rn := responses.Content[i+1]
			if rn.Kind != yaml.MappingNode {
				continue
			}
			op.Responses = append(op.Responses, APIResponse{
				StatusCode:  responses.Content[i].Value,
				Description: stringPtrAt(rn, "description"),
				Schema:      d.responseSchema(rn),
			})
		}
	}
	return op
}

// SynthesizeOperationID builds the identifier used when a document omits
// operationId: the lower-case verb joined to the path with slashes turned
// into underscores and braces removed, e.g. get + /users/{id} = get_users_id.
func SynthesizeOperationID(method, path string) string {
	return strings.ToLower(method) + "_" + sanitizePath(path)
}

func sanitizePath(path string) string {
	s := strings.ReplaceAll(path, "/", "_")
	s = strings.ReplaceAll(s, "{", "")
	s = strings.ReplaceAll(s, "}", "")
	return strings.TrimLeft(s, "_")
}

func isOperationKey(key string) bool {
	for _, k := range operationKeys {
		if k == key {
			return true
		}
	}
	return false
}

// lookup returns the value stored under key in a mapping node. Later
// duplicates win, matching encoding/json.
func lookup(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	var found *yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			found = n.Content[i+1]
		}
	}
	return found
}

func isString(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.Tag == "!!str"
}

func stringAt(n *yaml.Node, key string) string {
	if v := lookup(n, key); isString(v) {
		return v.Value
	}
	return ""
}

func stringPtrAt(n *yaml.Node, key string) *string {
	if v := lookup(n, key); isString(v) {
		s := v.Value
		return &s
	}
	return nil
}

func boolAt(n *yaml.Node, key string) bool {
	v := lookup(n, key)
	return v != nil && v.Kind == yaml.ScalarNode && v.Tag == "!!bool" && v.Value == "true"
}

func mapAt(n *yaml.Node, key string) map[string]any {
	return decodeMap(lookup(n, key))
}

func decodeMap(n *yaml.Node) map[string]any {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	var m map[string]any
	if err := n.Decode(&m); err != nil {
		return nil
	}
	return m
}
