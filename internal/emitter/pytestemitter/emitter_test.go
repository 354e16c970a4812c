package pytestemitter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhaage/swagger-test-generator/internal/emitter"
	"github.com/jhaage/swagger-test-generator/internal/sample"
	"github.com/jhaage/swagger-test-generator/internal/spec"
)

func sampleSpec(t *testing.T) *spec.SwaggerSpec {
	t.Helper()
	s, err := spec.Parse(sample.Bytes())
	require.NoError(t, err)
	return s
}

func generate(t *testing.T, s *spec.SwaggerSpec, dir, baseURL string) string {
	t.Helper()
	_, err := New().GenerateTests(context.Background(), s, emitter.Options{OutDir: dir, BaseURL: baseURL})
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, TestsFile))
	require.NoError(t, err)
	return string(data)
}

func function(t *testing.T, src, name string) string {
	t.Helper()
	start := strings.Index(src, "def "+name+"():")
	require.GreaterOrEqual(t, start, 0, "function %s not found", name)
	rest := src[start:]
	if end := strings.Index(rest, "\n\n\ndef "); end >= 0 {
		return rest[:end]
	}
	return rest
}

func TestGenerateTests_Files(t *testing.T) {
	dir := t.TempDir()
	src := generate(t, sampleSpec(t), dir, "http://localhost:3000")

	assert.True(t, strings.HasPrefix(src, "import requests\nimport pytest\n"))
	assert.Equal(t, 5, strings.Count(src, "\ndef test_"))

	req, err := os.ReadFile(filepath.Join(dir, RequirementsFile))
	require.NoError(t, err)
	assert.Equal(t, "requests==2.28.1\npytest==7.3.1\n", string(req))

	readme, err := os.ReadFile(filepath.Join(dir, ReadmeFile))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "pytest -v")
}

func TestGenerateTests_Functions(t *testing.T) {
	src := generate(t, sampleSpec(t), t.TempDir(), "http://localhost:3000")

	list := function(t, src, "test_get_users")
	assert.Contains(t, list, "    Get all users\n")
	assert.Contains(t, list, "    params = {}\n")
	assert.Contains(t, list, "    json_data = None\n")
	assert.Contains(t, list, `url = f"http://localhost:3000/v1/users"`)
	assert.Contains(t, list, "response = requests.get(url, params=params)")
	assert.Contains(t, list, "assert response.status_code == 200")

	create := function(t, src, "test_create_user")
	assert.Contains(t, create, `"name": "Test User",`)
	assert.Contains(t, create, `"email": "test@example.com",`)
	assert.Contains(t, create, "requests.post(url, json=json_data, params=params)")
	assert.Contains(t, create, "assert response.status_code == 201")

	get := function(t, src, "test_get_user_by_id")
	assert.Contains(t, get, "    # Path parameter: id\n    id = 1\n")
	assert.Contains(t, get, `url = f"http://localhost:3000/v1/users/{id}"`)

	update := function(t, src, "test_update_user")
	assert.Contains(t, update, `"name": "Updated Name",`)
	assert.Contains(t, update, "requests.put(url, json=json_data, params=params)")

	del := function(t, src, "test_delete_user")
	assert.Contains(t, del, "requests.delete(url, params=params)")
	assert.Contains(t, del, "assert response.status_code == 204")
}

func TestGenerateTests_QueryAndEscaping(t *testing.T) {
	s, err := spec.Parse([]byte(`{
		"openapi": "3.0.1",
		"servers": [{"url": "https://api.example.com/{stage}"}],
		"paths": {
			"/items/{itemId}": {
				"head": {"operationId": "headItem", "parameters": [
					{"name": "itemId", "in": "path", "required": true},
					{"name": "class", "in": "path"},
					{"name": "q", "in": "query"}
				], "responses": {"2XX": {"description": "ok"}}}
			}
		}
	}`))
	require.NoError(t, err)

	fn := function(t, generate(t, s, t.TempDir(), ""), "test_head_item")
	assert.Contains(t, fn, "    item_id = 1\n")
	assert.Contains(t, fn, "    class_ = 1\n")
	assert.Contains(t, fn, "        \"q\": \"test_value\",\n")
	assert.Contains(t, fn, `url = f"https://api.example.com/{{stage}}/items/{item_id}"`)
	assert.Contains(t, fn, "requests.head(url, params=params)")
	assert.Contains(t, fn, "assert response.status_code == 200")
	assert.Contains(t, fn, "    headItem\n")
}

func TestGenerateTests_UniqueFunctionNames(t *testing.T) {
	s, err := spec.Parse([]byte(`{
		"openapi": "3.0.0",
		"paths": {
			"/users": {
				"get": {"operationId": "listUsers"},
				"delete": {"operationId": "list_users", "requestBody": {"content": {"application/json": {"schema": {"type": "object"}}}}}
			}
		}
	}`))
	require.NoError(t, err)

	src := generate(t, s, t.TempDir(), "http://h")
	assert.Equal(t, 1, strings.Count(src, "def test_list_users():"))
	assert.Contains(t, function(t, src, "test_list_users"), "requests.get(url, params=params)")

	del := function(t, src, "test_list_users_2")
	assert.Contains(t, del, `"name": "Test User"`)
	assert.Contains(t, del, "requests.delete(url, json=json_data, params=params)")
}

func TestGenerateTests_Idempotent(t *testing.T) {
	s := sampleSpec(t)
	dir := t.TempDir()
	assert.Equal(t, generate(t, s, dir, ""), generate(t, s, dir, ""))
}

func TestGenerateTests_UnsupportedMethod(t *testing.T) {
	s := &spec.SwaggerSpec{Paths: []spec.APIPath{{Path: "/x", Operations: []spec.APIOperation{{Method: "CONNECT", OperationID: "c"}}}}}
	_, err := New().GenerateTests(context.Background(), s, emitter.Options{OutDir: t.TempDir()})
	assert.ErrorIs(t, err, emitter.ErrUnsupportedOperation)
}

func TestPyIdent(t *testing.T) {
	tests := map[string]string{
		"":         "param",
		"9lives":   "p_9lives",
		"lambda":   "lambda_",
		"response": "response_",
		"user_id":  "user_id",
	}
	for in, want := range tests {
		assert.Equal(t, want, pyIdent(in), in)
	}
}
