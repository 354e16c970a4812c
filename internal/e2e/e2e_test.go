package e2e

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"
	"time"

	cli "github.com/jhaage/swagger-test-generator/internal/cli"
	"github.com/jhaage/swagger-test-generator/internal/sample"
)

// OpenAPI 3 document with a templated server, a root path and a query parameter.
const v3Spec = `{
  "openapi": "3.0.0",
  "info": {"title": "E2E Sample", "version": "1.0.0"},
  "servers": [{"url": "https://api.example.com/v2"}],
  "paths": {
    "/": {"get": {"operationId": "health", "responses": {"204": {"description": "ok"}}}},
    "/pets": {
      "get": {"summary": "List pets", "parameters": [{"name": "limit", "in": "query", "schema": {"type": "integer"}}]},
      "post": {"operationId": "createPet", "requestBody": {"required": true, "content": {"application/json": {"schema": {"type": "object"}}}}}
    },
    "/pets/{id}": {
      "get": {"operationId": "getPet", "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer"}}]},
      "delete": {"operationId": "deletePet", "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer"}}]}
    }
  }
}`

func writeSpecs(t *testing.T) map[string]string {
	t.Helper()
	dir := t.TempDir()
	v2 := filepath.Join(dir, sample.FileName)
	if err := sample.Write(v2, false); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	v3 := filepath.Join(dir, "v3.json")
	if err := os.WriteFile(v3, []byte(v3Spec), 0o600); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	return map[string]string{"v2": v2, "v3": v3}
}

func runCLI(t *testing.T, args ...string) {
	t.Helper()
	root := cli.NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("cli execute %v: %v", args, err)
	}
}

// postmanID matches the per-run collection id, the only nondeterministic output.
var postmanID = regexp.MustCompile(`"_postman_id": "[0-9a-f-]+"`)

func digestDir(t *testing.T, dir string) (files []string, sum string) {
	t.Helper()
	var list []string
	h := sha256.New()
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, rerr := filepath.Rel(dir, path)
		if rerr != nil {
			return rerr
		}
		rel = filepath.ToSlash(rel)
		list = append(list, rel)
		// hash path + contents to be robust
		_, _ = h.Write([]byte(rel))
		b, rerr := os.ReadFile(path)
		if rerr != nil {
			return rerr
		}
		_, _ = h.Write(postmanID.ReplaceAll(b, []byte(`"_postman_id": ""`)))
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", dir, err)
	}
	sort.Strings(list)
	return list, hex.EncodeToString(h.Sum(nil))
}

func TestE2E_Generate_Deterministic(t *testing.T) {
	t.Parallel()
	specs := writeSpecs(t)

	want := map[string][]string{
		"reqwest": {"Cargo.toml", "api_tests.rs", "main.rs"},
		"pytest":  {"README.md", "requirements.txt", "test_api.py"},
		"postman": {"README.md", "postman_collection.json"},
	}
	for framework, files := range want {
		for version, input := range specs {
			dir1 := t.TempDir()
			dir2 := t.TempDir()
			runCLI(t, "generate", "--input", input, "--output-dir", dir1, "--framework", framework)
			runCLI(t, "generate", "--input", input, "--output-dir", dir2, "--framework", framework)

			files1, sum1 := digestDir(t, dir1)
			files2, sum2 := digestDir(t, dir2)
			if !slicesEqual(files1, files2) || sum1 != sum2 {
				t.Fatalf("%s/%s: generated outputs differ between runs\nfiles1=%v\nfiles2=%v", framework, version, files1, files2)
			}
			if !slicesEqual(files1, files) {
				t.Fatalf("%s/%s: files = %v, want %v", framework, version, files1, files)
			}
		}
	}
}

func TestE2E_Generate_Jest_FilePerPath(t *testing.T) {
	t.Parallel()
	specs := writeSpecs(t)
	dir := t.TempDir()
	runCLI(t, "generate", "-i", specs["v3"], "-o", dir, "-f", "browser-client", "--base-url", "http://127.0.0.1:4010")

	files, _ := digestDir(t, dir)
	want := []string{"README.md", "package.json", "pets.test.js", "pets_id.test.js", "root.test.js"}
	if !slicesEqual(files, want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	root, err := os.ReadFile(filepath.Join(dir, "root.test.js"))
	if err != nil {
		t.Fatalf("read root.test.js: %v", err)
	}
	for _, s := range []string{"const baseUrl = 'http://127.0.0.1:4010/v2';", "test('health'", "toBe(204)"} {
		if !strings.Contains(string(root), s) {
			t.Fatalf("root.test.js missing %q:\n%s", s, root)
		}
	}
}

func TestE2E_Generate_Reqwest_Sample(t *testing.T) {
	t.Parallel()
	specs := writeSpecs(t)
	dir := t.TempDir()
	runCLI(t, "generate", "-i", specs["v2"], "-o", dir, "-f", "native-async-client")

	src, err := os.ReadFile(filepath.Join(dir, "api_tests.rs"))
	if err != nil {
		t.Fatalf("read api_tests.rs: %v", err)
	}
	s := string(src)
	if got := strings.Count(s, "#[tokio::test]"); got != 5 {
		t.Fatalf("expected 5 tests, got %d", got)
	}
	if !strings.Contains(s, "assert_eq!(get_response.status().as_u16(), 404);") {
		t.Fatalf("DELETE test does not check the resource is gone")
	}
}

func TestE2E_Generate_Postman_Valid(t *testing.T) {
	t.Parallel()
	specs := writeSpecs(t)
	dir := t.TempDir()
	runCLI(t, "generate", "-i", specs["v3"], "-o", dir, "-f", "postman", "--base-url", "http://localhost:8080")

	data, err := os.ReadFile(filepath.Join(dir, "postman_collection.json"))
	if err != nil {
		t.Fatalf("read collection: %v", err)
	}
	var doc struct {
		Info struct {
			PostmanID string `json:"_postman_id"`
		} `json:"info"`
		Item []struct {
			Name string `json:"name"`
			Item []struct {
				Name string `json:"name"`
			} `json:"item"`
		} `json:"item"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("collection is not valid JSON: %v", err)
	}
	if doc.Info.PostmanID == "" {
		t.Fatalf("missing collection id")
	}
	if len(doc.Item) != 3 || doc.Item[1].Name != "pets" || doc.Item[2].Name != "pets id" {
		t.Fatalf("unexpected folders: %+v", doc.Item)
	}
	if got := doc.Item[1].Item[0].Name; got != "GET List pets" {
		t.Fatalf("unexpected request name %q", got)
	}
}

// Compiles the generated suites when the toolchains are installed and
// SWAGGER_TEST_GENERATOR_E2E_ONLINE=1 is set.
func TestE2E_GeneratedSuitesCompile(t *testing.T) {
	if os.Getenv("SWAGGER_TEST_GENERATOR_E2E_ONLINE") != "1" {
		t.Skip("set SWAGGER_TEST_GENERATOR_E2E_ONLINE=1 to compile generated suites")
	}
	specs := writeSpecs(t)

	if haveCmd("python3") {
		dir := t.TempDir()
		runCLI(t, "generate", "-i", specs["v3"], "-o", dir, "-f", "pytest")
		if err := runCmdWithTimeout(dir, time.Minute, "python3", "-m", "py_compile", "test_api.py"); err != nil {
			t.Fatalf("generated python does not compile: %v", err)
		}
	}
	if haveCmd("node") {
		dir := t.TempDir()
		runCLI(t, "generate", "-i", specs["v3"], "-o", dir, "-f", "jest")
		for _, f := range []string{"root.test.js", "pets.test.js", "pets_id.test.js"} {
			if err := runCmdWithTimeout(dir, time.Minute, "node", "--check", f); err != nil {
				t.Fatalf("generated %s does not parse: %v", f, err)
			}
		}
	}
	if haveCmd("cargo") {
		dir := t.TempDir()
		runCLI(t, "generate", "-i", specs["v2"], "-o", dir, "-f", "reqwest")
		// cargo needs the registry; skip instead of failing when offline
		if err := runCmdWithTimeout(dir, 5*time.Minute, "cargo", "check", "--quiet"); err != nil {
			t.Skipf("cargo check skipped (likely offline or missing deps): %v", err)
		}
	}
}

func haveCmd(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func runCmdWithTimeout(dir string, timeout time.Duration, name string, args ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return &execError{err: err, output: out.String()}
	}
	return nil
}

type execError struct {
	err    error
	output string
}

func (e *execError) Error() string { return e.err.Error() + ": " + e.output }

func slicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
