package spec

import (
	"encoding/json"
	"log/slog"

	openapi2 "github.com/getkin/kin-openapi/openapi2"
	"gopkg.in/yaml.v3"
)

// v2Dialect reads Swagger 2.0 operations: parameter types come from `type`
// or the parameter schema, body parameters are declared with in: body and
// response schemas sit directly on the response object.
type v2Dialect struct{}

func (v2Dialect) paramType(p *yaml.Node) string {
	if t := stringAt(p, "type"); t != "" {
		return t
	}
	if t := stringAt(lookup(p, "schema"), "type"); t != "" {
		return t
	}
	return "object"
}

func (v2Dialect) acceptsBodyParam() bool { return true }

func (v2Dialect) requestBody(*yaml.Node) *APIParameter { return nil }

func (v2Dialect) responseSchema(resp *yaml.Node) map[string]any {
	return mapAt(resp, "schema")
}

// decodeV2Header decodes the document header through kin-openapi. Documents
// the typed model rejects fall back to the raw values.
func decodeV2Header(data []byte, raw map[string]any, log *slog.Logger) *openapi2.T {
	var doc openapi2.T
	err := json.Unmarshal(data, &doc)
	if err == nil {
		return &doc
	}
	log.Debug("typed swagger 2.0 decode failed, using raw header", "error", err)
	doc = openapi2.T{
		Swagger:  "2.0",
		Host:     rawString(raw, "host"),
		BasePath: rawString(raw, "basePath"),
	}
	if schemes, ok := raw["schemes"].([]any); ok {
		for _, s := range schemes {
			if str, ok := s.(string); ok {
				doc.Schemes = append(doc.Schemes, str)
			}
		}
	}
	if info, ok := raw["info"].(map[string]any); ok {
		doc.Info.Title = rawString(info, "title")
	}
	return &doc
}

// v2BaseURL is {schemes[0]}://{host}{basePath} with http and localhost as
// defaults.
func v2BaseURL(doc *openapi2.T) string {
	scheme := "http"
	if len(doc.Schemes) > 0 && doc.Schemes[0] != "" {
		scheme = doc.Schemes[0]
	}
	host := doc.Host
	if host == "" {
		host = "localhost"
	}
	return scheme + "://" + host + doc.BasePath
}

func rawString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
