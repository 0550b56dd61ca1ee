package types

import "context"

// ToolCall is the invocation payload handed to a registered tool callback.
type ToolCall struct {
	// Name of the tool being invoked.
	Name string `json:"name"`
	// Arguments as the raw JSON string produced by the model.
	Arguments string `json:"arguments"`
}

// ToolCallback handles a tool invocation and returns the tool output that is
// fed back to the model. Implementations must honor ctx cancellation.
type ToolCallback func(ctx context.Context, call ToolCall) (string, error)

// ToolFunction describes a callable function advertised to the model.
type ToolFunction struct {
	// Function name, unique within a request.
	// example: get_weather
	Name string `json:"name" example:"get_weather"`
	// Human-readable description shown to the model.
	Description string `json:"description,omitempty"`
	// JSON Schema of the accepted arguments.
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Tool is a structured tool definition in the OpenAI-compatible shape.
type Tool struct {
	// Tool type; currently always "function".
	// example: function
	Type string `json:"type" example:"function"`
	// The function definition.
	Function ToolFunction `json:"function"`
}

// SearchResult is one entry returned by a web-search callback.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// SearchCallback overrides the built-in web-search function.
type SearchCallback func(ctx context.Context, query string) ([]SearchResult, error)

// MCPServerConfig describes one external MCP tool server to connect to.
type MCPServerConfig struct {
	// Stable identifier used to namespace imported tools.
	// example: fs
	ID string `json:"id" example:"fs"`
	// Display name.
	Name string `json:"name,omitempty"`
	// Server URL (http/sse transports) or command path (process transport).
	URL string `json:"url"`
	// Optional bearer token sent with every request.
	BearerToken string `json:"bearer_token,omitempty"`
}

// MCPClientConfig configures connections to external MCP servers whose tools
// are imported and auto-registered for tool calling.
type MCPClientConfig struct {
	Servers []MCPServerConfig `json:"servers"`
	// When true, imported tool definitions are advertised automatically.
	AutoRegisterTools bool `json:"auto_register_tools"`
	// Per-call timeout in seconds; 0 means no timeout.
	ToolTimeoutSecs int `json:"tool_timeout_secs,omitempty"`
	// Maximum concurrent outbound tool calls; 0 means 1.
	MaxConcurrentCalls int `json:"max_concurrent_calls,omitempty"`
}
