package proxy

import (
	"bytes"
	"encoding/json"
	"errors"
)

var emptyObject = json.RawMessage(`{}`)

// ListParams represents tools/list, prompts/list and resources/list parameters
type ListParams struct {
	Cursor *string         `json:"cursor,omitempty"`
	Meta   json.RawMessage `json:"_meta,omitempty"`
}

// CallToolParams represents tools/call parameters
type CallToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
	Meta      json.RawMessage `json:"_meta,omitempty"`
}

func (p *CallToolParams) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	return validateArguments(p.Arguments)
}

func (p *CallToolParams) forward() *CallToolParams {
	ret := *p
	ret.Arguments = argumentsOrEmpty(p.Arguments)
	return &ret
}

// GetPromptParams represents prompts/get parameters
type GetPromptParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
	Meta      json.RawMessage `json:"_meta,omitempty"`
}

func (p *GetPromptParams) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	return validateArguments(p.Arguments)
}

func (p *GetPromptParams) forward() *GetPromptParams {
	ret := *p
	ret.Arguments = argumentsOrEmpty(p.Arguments)
	return &ret
}

// ReadResourceParams represents resources/read parameters
type ReadResourceParams struct {
	Uri  string          `json:"uri"`
	Meta json.RawMessage `json:"_meta,omitempty"`
}

func (p *ReadResourceParams) Validate() error {
	if p.Uri == "" {
		return errors.New("uri is required")
	}
	return nil
}

func validateArguments(arguments json.RawMessage) error {
	if isNull(arguments) {
		return nil
	}
	if bytes.TrimSpace(arguments)[0] != '{' {
		return errors.New("arguments must be an object")
	}
	return nil
}

func argumentsOrEmpty(arguments json.RawMessage) json.RawMessage {
	if isNull(arguments) {
		return emptyObject
	}
	return arguments
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
