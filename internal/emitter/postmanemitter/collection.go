package postmanemitter

import "encoding/json"

// SchemaURL identifies the Postman collection format version written.
const SchemaURL = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

type Collection struct {
	Info  Info     `json:"info"`
	Item  []Folder `json:"item"`
	Event []Event  `json:"event"`
}

type Info struct {
	PostmanID   string `json:"_postman_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Schema      string `json:"schema"`
}

// Folder groups the requests of one API path.
type Folder struct {
	Name string `json:"name"`
	Item []Item `json:"item"`
}

type Item struct {
	Name     string            `json:"name"`
	Request  Request           `json:"request"`
	Event    []Event           `json:"event"`
	Response []json.RawMessage `json:"response"`
}

type Request struct {
	Method      string   `json:"method"`
	Header      []Header `json:"header"`
	Body        *Body    `json:"body,omitempty"`
	URL         URL      `json:"url"`
	Description string   `json:"description,omitempty"`
}

type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Body struct {
	Mode    string      `json:"mode"`
	Raw     string      `json:"raw"`
	Options BodyOptions `json:"options"`
}

type BodyOptions struct {
	Raw struct {
		Language string `json:"language"`
	} `json:"raw"`
}

type URL struct {
	Raw      string     `json:"raw"`
	Protocol string     `json:"protocol,omitempty"`
	Host     []string   `json:"host"`
	Path     []string   `json:"path"`
	Query    []Query    `json:"query,omitempty"`
	Variable []Variable `json:"variable,omitempty"`
}

type Query struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

type Variable struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Event struct {
	Listen string `json:"listen"`
	Script Script `json:"script"`
}

type Script struct {
	Exec []string `json:"exec"`
	Type string   `json:"type"`
}
