package dto

type ChatRequest struct {
	Message  string `json:"message"`
	Language string `json:"language,omitempty"`
}

type ChatResponse struct {
	Response string `json:"response"`
}
