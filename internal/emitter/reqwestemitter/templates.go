package reqwestemitter

import "github.com/jhaage/swagger-test-generator/internal/emitter"

var testsTmpl = emitter.ParseTemplate(TestsFile, `#![allow(dead_code, unused_imports, unused_variables)]

use serde::{Deserialize, Serialize};
use serde_json::json;

#[derive(Debug, Serialize, Deserialize)]
struct Resource {
    id: i64,
    #[serde(default)]
    name: String,
    #[serde(default)]
    email: String,
    #[serde(default)]
    created_at: Option<String>,
    #[serde(default)]
    updated_at: Option<String>,
}

#[derive(Debug, Serialize, Deserialize)]
struct ResourceInput {
    name: String,
    email: String,
}

// Creates a resource at url and returns its id.
async fn create_test_resource(url: &str, name: &str, email: &str) -> i64 {
    let body = ResourceInput {
        name: name.to_string(),
        email: email.to_string(),
    };

    let client = reqwest::Client::new();
    let response = client.post(url).json(&body)
        .send()
        .await
        .expect("Failed to create test resource");

    assert_eq!(response.status().as_u16(), 201);

    let resource: Resource = response.json().await.expect("Failed to parse resource response");
    resource.id
}
{{- range .Tests}}

#[tokio::test]
async fn {{.FnName}}() {
{{- if .Summary}}
    // {{.Summary}}
{{- end}}
{{- range .LiteralParams}}
    let {{.}} = 1;
{{- end}}
{{- with .Fixture}}
    let id = create_test_resource(&format!("{{.URL}}"), "{{.Payload.Name}}", "{{.Payload.Email}}").await;
{{- end}}
{{- if .Query}}
    let query_params = [
{{- range .Query}}
        ("{{.}}", "test_value"),
{{- end}}
    ];
{{- end}}
{{- with .Body}}
    let body = json!({
        "name": "{{.Name}}",
        "email": "{{.Email}}"
    });
{{- end}}

    let client = reqwest::Client::new();
    let url = format!("{{.URL}}");

    let response = {{.Call}}
        .send()
        .await
        .expect("Failed to send request");

    assert_eq!(response.status().as_u16(), {{.Expected}});
{{- if eq .Verify "deleted"}}

    let get_response = client.get(&url)
        .send()
        .await
        .expect("Failed to send GET request");

    assert_eq!(get_response.status().as_u16(), 404);
{{- else if eq .Verify "id"}}

    let resource: Resource = response.json().await.expect("Failed to parse response");
    assert_eq!(resource.id, id);
{{- else if or (eq .Verify "updated") (eq .Verify "created")}}

    let resource: Resource = response.json().await.expect("Failed to parse response");
    assert_eq!(resource.name, "{{.Verified.Name}}");
    assert_eq!(resource.email, "{{.Verified.Email}}");
{{- else if eq .Verify "list"}}

    let items: Vec<serde_json::Value> = response.json().await.expect("Failed to parse response");
    assert!(!items.is_empty(), "Expected a non-empty list");
{{- end}}
}
{{- end}}
`)

const mainRS = `#[cfg(test)]
mod api_tests;

fn main() {
    println!("Run with 'cargo test' to execute the API tests");
}
`

const cargoToml = `[package]
name = "api_tests"
version = "0.1.0"
edition = "2021"

[[bin]]
name = "api_tests"
path = "main.rs"

[dependencies]
reqwest = { version = "0.11", features = ["json", "blocking"] }
tokio = { version = "1", features = ["full"] }
serde = { version = "1.0", features = ["derive"] }
serde_json = "1.0"
`
