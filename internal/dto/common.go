package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status     string `json:"status"`
	AIEnabled  bool   `json:"ai_enabled"`
	StoreReady bool   `json:"store_ready"`
}

type GreetingResponse struct {
	Greeting string `json:"greeting"`
}

// KnowledgeStatusResponse is the diagnostic view of the knowledge base
type KnowledgeStatusResponse struct {
	Loading   bool     `json:"loading"`
	Documents []string `json:"documents"`
	Loaded    []string `json:"loaded"`
	Errors    []string `json:"errors"`
}
