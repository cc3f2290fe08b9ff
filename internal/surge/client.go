package surge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"sakima-api/internal/config"
)

// ErrDuplicate signals that the platform already has a contact for the given
// identifier. Callers treat it as success-equivalent, not a failure.
var ErrDuplicate = errors.New("contact already exists")

type Client struct {
	Config *config.Config
	http   *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		Config: cfg,
		http:   &http.Client{Timeout: 10 * time.Second},
	}
}

// --- Contact Structures ---

type ContactParams struct {
	FirstName   string            `json:"first_name,omitempty"`
	LastName    string            `json:"last_name,omitempty"`
	PhoneNumber string            `json:"phone_number,omitempty"`
	Email       string            `json:"email,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type Contact struct {
	ID          string            `json:"id"`
	FirstName   string            `json:"first_name"`
	LastName    string            `json:"last_name"`
	PhoneNumber string            `json:"phone_number"`
	Email       string            `json:"email"`
	Metadata    map[string]string `json:"metadata"`
}

type messagePayload struct {
	Body         string       `json:"body"`
	Conversation conversation `json:"conversation"`
}

type conversation struct {
	PhoneNumber string         `json:"phone_number,omitempty"`
	Contact     contactPointer `json:"contact"`
}

type contactPointer struct {
	PhoneNumber string `json:"phone_number"`
}

// --- Helper Functions ---

func (c *Client) sendRequest(method, url string, body interface{}) (int, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		bodyReader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return 0, nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.Config.SurgeAPIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}

	return resp.StatusCode, respBody, nil
}

// --- Contact Methods ---

// CreateContact issues a single create call and returns the new contact id.
// A 409/422 from the platform maps to ErrDuplicate. No retries.
func (c *Client) CreateContact(params ContactParams) (string, error) {
	url := fmt.Sprintf("%s/accounts/%s/contacts", c.Config.SurgeBaseURL, c.Config.SurgeAccountID)
	status, respBody, err := c.sendRequest("POST", url, params)
	if err != nil {
		return "", err
	}
	if status == http.StatusConflict || status == http.StatusUnprocessableEntity {
		return "", ErrDuplicate
	}
	if status >= 400 {
		return "", fmt.Errorf("surge API error: %d - %s", status, string(respBody))
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// UpdateContact issues a partial update and reports whether it succeeded.
func (c *Client) UpdateContact(id string, params ContactParams) bool {
	url := fmt.Sprintf("%s/contacts/%s", c.Config.SurgeBaseURL, id)
	status, respBody, err := c.sendRequest("PATCH", url, params)
	if err != nil {
		log.Printf("Error updating contact %s: %v", id, err)
		return false
	}
	if status >= 400 {
		log.Printf("Error updating contact %s: %d - %s", id, status, string(respBody))
		return false
	}
	return true
}

// ListContacts returns the account's contacts, or an empty slice on any
// failure.
func (c *Client) ListContacts() []Contact {
	url := fmt.Sprintf("%s/accounts/%s/contacts", c.Config.SurgeBaseURL, c.Config.SurgeAccountID)
	status, respBody, err := c.sendRequest("GET", url, nil)
	if err != nil || status >= 400 {
		log.Printf("Error listing contacts: status=%d err=%v", status, err)
		return []Contact{}
	}

	var result struct {
		Data []Contact `json:"data"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		log.Printf("Error decoding contact list: %v", err)
		return []Contact{}
	}
	if result.Data == nil {
		return []Contact{}
	}
	return result.Data
}

// --- Messaging Methods ---

// SendMessage sends one outbound text from the configured account number.
func (c *Client) SendMessage(to, body string) (string, error) {
	url := fmt.Sprintf("%s/accounts/%s/messages", c.Config.SurgeBaseURL, c.Config.SurgeAccountID)
	payload := messagePayload{
		Body: body,
		Conversation: conversation{
			PhoneNumber: c.Config.SurgePhone,
			Contact:     contactPointer{PhoneNumber: to},
		},
	}

	status, respBody, err := c.sendRequest("POST", url, payload)
	if err != nil {
		return "", err
	}
	if status >= 400 {
		return "", fmt.Errorf("surge API error: %d - %s", status, string(respBody))
	}

	var sent struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &sent); err != nil {
		return "", err
	}
	return sent.ID, nil
}
