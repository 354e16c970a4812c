package spec

import (
	"encoding/json"
	"log/slog"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

const jsonMediaType = "application/json"

// v3Dialect reads OpenAPI 3.x operations. Only path and query parameters are
// kept; the JSON request body becomes a synthesized parameter named "body".
type v3Dialect struct{}

func (v3Dialect) paramType(p *yaml.Node) string {
	schema := lookup(p, "schema")
	if schema == nil {
		return "string"
	}
	if t := stringAt(schema, "type"); t != "" {
		return t
	}
	return "object"
}

func (v3Dialect) acceptsBodyParam() bool { return false }

func (v3Dialect) requestBody(op *yaml.Node) *APIParameter {
	body := lookup(op, "requestBody")
	media := lookup(lookup(body, "content"), jsonMediaType)
	if media == nil {
		return nil
	}
	return &APIParameter{
		Name:      "body",
		Location:  InBody,
		Required:  boolAt(body, "required"),
		ParamType: "object",
		Schema:    mapAt(media, "schema"),
	}
}

func (v3Dialect) responseSchema(resp *yaml.Node) map[string]any {
	return mapAt(lookup(lookup(resp, "content"), jsonMediaType), "schema")
}

func decodeV3Header(data []byte, raw map[string]any, log *slog.Logger) *openapi3.T {
	var doc openapi3.T
	err := json.Unmarshal(data, &doc)
	if err == nil {
		return &doc
	}
	log.Debug("typed openapi 3 decode failed, using raw header", "error", err)
	doc = openapi3.T{OpenAPI: rawString(raw, "openapi")}
	if info, ok := raw["info"].(map[string]any); ok {
		doc.Info = &openapi3.Info{Title: rawString(info, "title")}
	}
	if servers, ok := raw["servers"].([]any); ok && len(servers) > 0 {
		if first, ok := servers[0].(map[string]any); ok {
			doc.Servers = openapi3.Servers{{URL: rawString(first, "url")}}
		}
	}
	return &doc
}

// v3BaseURL is the first server URL, http://localhost when none is declared.
func v3BaseURL(doc *openapi3.T) string {
	if len(doc.Servers) > 0 && doc.Servers[0] != nil && doc.Servers[0].URL != "" {
		return doc.Servers[0].URL
	}
	return "http://localhost"
}
