package types

// Message represents a single {role, content} turn in the format expected by
// the LLM chat-completions API.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse is the successful body of POST /chat.
type ChatResponse struct {
	Response       string  `json:"response"`
	ProcessingTime float64 `json:"processing_time"`
}

// ErrorResponse carries the failure detail for non-2xx responses.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
