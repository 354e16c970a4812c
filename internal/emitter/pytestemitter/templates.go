package pytestemitter

import "github.com/jhaage/swagger-test-generator/internal/emitter"

var testsTmpl = emitter.ParseTemplate(TestsFile, `import requests
import pytest
{{- range .}}


def {{.FnName}}():
    """
    {{.Summary}}
    """
{{- range .PathParams}}
    # Path parameter: {{.Name}}
    {{.Var}} = 1
{{- end}}
{{- if .Query}}
    params = {
{{- range .Query}}
        "{{.}}": "test_value",
{{- end}}
    }
{{- else}}
    params = {}
{{- end}}
{{- with .Body}}
    json_data = {
        "name": "{{.Name}}",
        "email": "{{.Email}}",
    }
{{- else}}
    json_data = None
{{- end}}

    url = f"{{.URL}}"
    response = {{.Call}}

    # Verify status code
    assert response.status_code == {{.Expected}}
{{- end}}
`)

const requirementsTxt = `requests==2.28.1
pytest==7.3.1
`

const readmeMD = "# API Tests\n\n" +
	"Generated API tests for the Swagger/OpenAPI specification.\n\n" +
	"## Setup\n\n" +
	"Install the requirements:\n\n" +
	"```\npip install -r requirements.txt\n```\n\n" +
	"## Running the tests\n\n" +
	"```\npytest -v\n```\n"
