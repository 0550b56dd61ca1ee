package types

// Artifact is one local model artifact discovered on disk.
type Artifact struct {
	// ID is the artifact filename including extension.
	// example: llama-3.1-8b-q4_k_m.gguf
	ID string `json:"id" example:"llama-3.1-8b-q4_k_m.gguf"`
	// Display name.
	Name string `json:"name"`
	// Absolute file path.
	Path string `json:"path"`
	// Artifact format: gguf or uqff.
	// example: gguf
	Format string `json:"format" example:"gguf"`
	// File size in MB.
	// example: 4368
	SizeMB int64 `json:"size_mb" example:"4368"`
}

// ModelsResponse wraps the list of artifacts returned by GET /models.
type ModelsResponse struct {
	Models []Artifact `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Overall engine state: building, ready, or error.
	// example: ready
	State string `json:"state" example:"ready"`
	// Model identifier the engine was built for.
	// example: mistralai/Mistral-7B-Instruct-v0.3
	ModelID string `json:"model_id,omitempty" example:"mistralai/Mistral-7B-Instruct-v0.3"`
	// Scheduler policy in effect: default or paged_attention.
	// example: paged_attention
	Scheduler string `json:"scheduler,omitempty" example:"paged_attention"`
	// Maximum number of concurrently running sequences.
	// example: 32
	MaxNumSeqs uint32 `json:"max_num_seqs,omitempty" example:"32"`
	// Error message when State is error.
	Error string `json:"error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
