package jestemitter

import "github.com/jhaage/swagger-test-generator/internal/emitter"

var suiteTmpl = emitter.ParseTemplate("suite", `const axios = require('axios');

describe('{{.Path}}', () => {
  const baseUrl = '{{.BaseURL}}';
{{- range .Tests}}

  test('{{.Title}}', async () => {
{{- if .Summary}}
    // {{.Summary}}
{{- end}}
{{- range .PathParams}}
    // Path parameter: {{.Name}}
    const {{.Var}} = 1;
{{- end}}
{{- if .Query}}
    const params = {
{{- range .Query}}
      '{{.}}': 'test_value',
{{- end}}
    };
{{- else}}
    const params = {};
{{- end}}
{{- if .Body}}
{{- with .Body}}
    const jsonData = {
      name: '{{.Name}}',
      email: '{{.Email}}',
    };
{{- end}}
{{- else if .SendsBody}}
    const jsonData = null;
{{- end}}

    const url = ` + "`${baseUrl}{{.URL}}`" + `;
{{- if .SendsBody}}
    const response = await axios.{{.Method}}(url, jsonData, { params, validateStatus: () => true });
{{- else if .Body}}
    const response = await axios.{{.Method}}(url, { params, data: jsonData, validateStatus: () => true });
{{- else}}
    const response = await axios.{{.Method}}(url, { params, validateStatus: () => true });
{{- end}}

    expect(response.status).toBe({{.Expected}});
  });
{{- end}}
});
`)

const packageJSON = `{
  "name": "api-tests",
  "version": "1.0.0",
  "description": "Generated API tests",
  "private": true,
  "scripts": {
    "test": "jest"
  },
  "devDependencies": {
    "axios": "^1.3.4",
    "jest": "^29.5.0"
  }
}
`

const readmeMD = "# API Tests\n\n" +
	"Generated Jest tests for the Swagger/OpenAPI specification.\n\n" +
	"## Setup\n\n" +
	"```\nnpm install\n```\n\n" +
	"## Running the tests\n\n" +
	"```\nnpm test\n```\n"
