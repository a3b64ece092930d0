package endpoint

import "github.com/viant/mcp-protocol/schema"

const (
	// ServerName is advertised to the local caller.
	ServerName = "resource-hub-server"
	// ServerVersion is advertised together with ServerName.
	ServerVersion = "0.1.0"
)

// Capabilities returns the advertised capability set: tools, prompts and resources without subscription.
func Capabilities() schema.ServerCapabilities {
	subscribe := false
	return schema.ServerCapabilities{
		Tools:     &schema.ServerCapabilitiesTools{},
		Prompts:   &schema.ServerCapabilitiesPrompts{},
		Resources: &schema.ServerCapabilitiesResources{Subscribe: &subscribe},
	}
}
