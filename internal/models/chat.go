package models

// StatusSuccess is the status value of a successful chat payload.
const StatusSuccess = "success"

// ChatRequest is the JSON body posted to the chat endpoint.
type ChatRequest struct {
	Content  string  `json:"content"`
	ThreadID *string `json:"thread_id"`
}

// ChatResponse is the JSON body returned by the chat endpoint. Error
// payloads fill Error (status "error") or Detail (HTTP error status).
type ChatResponse struct {
	Status   string `json:"status"`
	Response string `json:"response"`
	ThreadID string `json:"thread_id,omitempty"`
	IsHTML   bool   `json:"isHtml,omitempty"`
	Error    string `json:"error,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// GatewayResponse is what the widget gateway returns to the browser.
type GatewayResponse struct {
	Status   string           `json:"status"`
	Response string           `json:"response,omitempty"`
	ThreadID string           `json:"thread_id,omitempty"`
	IsHTML   bool             `json:"isHtml"`
	Listings []PropertyRecord `json:"listings,omitempty"`
	Error    string           `json:"error,omitempty"`
}
