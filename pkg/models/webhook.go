package models

// SurgeEvent represents the incoming JSON payload from a Surge webhook
// delivery. Events are processed once and discarded, never persisted.
type SurgeEvent struct {
	Type string `json:"type"`
	Data struct {
		ID           string `json:"id,omitempty"`
		Body         string `json:"body,omitempty"`
		Status       string `json:"status,omitempty"`
		Conversation struct {
			ID      string `json:"id,omitempty"`
			Contact struct {
				ID          string `json:"id,omitempty"`
				PhoneNumber string `json:"phone_number,omitempty"`
			} `json:"contact"`
		} `json:"conversation"`
	} `json:"data"`
}
