package proxy

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var emptyString = json.RawMessage(`""`)

// Descriptor is a tool, prompt or resource descriptor with every field kept as received.
type Descriptor map[string]json.RawMessage

// Text returns the string value of field, or false if it is absent or not a string.
func (d Descriptor) Text(field string) (string, bool) {
	raw, ok := d[field]
	if !ok {
		return "", false
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", false
	}
	return text, true
}

// ensureText makes field a JSON string: absent or null becomes "", other values their JSON text.
func (d Descriptor) ensureText(field string) {
	raw := bytes.TrimSpace(d[field])
	if isNull(raw) {
		d[field] = emptyString
		return
	}
	if raw[0] == '"' {
		return
	}
	text, _ := json.Marshal(string(raw))
	d[field] = text
}

func (d Descriptor) require(field string) error {
	if d == nil {
		return fmt.Errorf("descriptor is null")
	}
	if text, ok := d.Text(field); !ok || text == "" {
		return fmt.Errorf("%v is required", field)
	}
	return nil
}

func validateDescriptors(kind string, items []Descriptor, field string) error {
	for i, item := range items {
		if err := item.require(field); err != nil {
			return fmt.Errorf("%v[%d]: %w", kind, i, err)
		}
	}
	return nil
}

func normalizeDescriptors(items []Descriptor, field string) []Descriptor {
	if items == nil {
		return []Descriptor{}
	}
	for _, item := range items {
		item.ensureText(field)
	}
	return items
}

// ListToolsResult represents tools/list result
type ListToolsResult struct {
	Meta       json.RawMessage `json:"_meta,omitempty"`
	NextCursor *string         `json:"nextCursor,omitempty"`
	Tools      []Descriptor    `json:"tools"`
}

func (r *ListToolsResult) Validate() error {
	return validateDescriptors("tools", r.Tools, "name")
}

func (r *ListToolsResult) normalize() {
	r.Tools = normalizeDescriptors(r.Tools, "description")
}

// ListPromptsResult represents prompts/list result
type ListPromptsResult struct {
	Meta       json.RawMessage `json:"_meta,omitempty"`
	NextCursor *string         `json:"nextCursor,omitempty"`
	Prompts    []Descriptor    `json:"prompts"`
}

func (r *ListPromptsResult) Validate() error {
	return validateDescriptors("prompts", r.Prompts, "name")
}

func (r *ListPromptsResult) normalize() {
	r.Prompts = normalizeDescriptors(r.Prompts, "description")
}

// ListResourcesResult represents resources/list result
type ListResourcesResult struct {
	Meta       json.RawMessage `json:"_meta,omitempty"`
	NextCursor *string         `json:"nextCursor,omitempty"`
	Resources  []Descriptor    `json:"resources"`
}

func (r *ListResourcesResult) Validate() error {
	return validateDescriptors("resources", r.Resources, "uri")
}

func (r *ListResourcesResult) normalize() {
	r.Resources = normalizeDescriptors(r.Resources, "name")
	r.NextCursor = nil
}

// CallToolResult represents tools/call result; any object is accepted.
type CallToolResult map[string]json.RawMessage

func (r *CallToolResult) Validate() error {
	if *r == nil {
		return fmt.Errorf("result is not an object")
	}
	return nil
}

// GetPromptResult represents prompts/get result
type GetPromptResult map[string]json.RawMessage

func (r *GetPromptResult) Validate() error {
	return requireArray(*r, "messages")
}

// ReadResourceResult represents resources/read result
type ReadResourceResult map[string]json.RawMessage

func (r *ReadResourceResult) Validate() error {
	return requireArray(*r, "contents")
}

func requireArray(result map[string]json.RawMessage, field string) error {
	if result == nil {
		return fmt.Errorf("result is not an object")
	}
	raw := bytes.TrimSpace(result[field])
	if len(raw) == 0 || raw[0] != '[' {
		return fmt.Errorf("%v array is required", field)
	}
	return nil
}
