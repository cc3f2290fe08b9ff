package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"sakima-api/internal/models"
)

// TursoStore writes submissions to a Turso (libsql) database over its HTTP
// v2 pipeline API. One outbound request per save, no retries.
type TursoStore struct {
	url   string
	token string
	http  *http.Client
}

const createSubmissionsSQL = `CREATE TABLE IF NOT EXISTS form_submissions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	form_type TEXT NOT NULL,
	email TEXT,
	name TEXT,
	phone TEXT,
	data TEXT,
	ip TEXT,
	created_at TEXT DEFAULT (datetime('now'))
)`

// libsql:// URLs are reachable over https.
func normalizeTursoURL(url string) string {
	return strings.Replace(url, "libsql://", "https://", 1)
}

func NewTursoStore(url, token string) (*TursoStore, error) {
	s := &TursoStore{
		url:   normalizeTursoURL(url),
		token: token,
		http:  &http.Client{Timeout: 10 * time.Second},
	}

	if err := s.execute([]stmt{{SQL: createSubmissionsSQL}}); err != nil {
		return nil, fmt.Errorf("creating form_submissions table: %w", err)
	}

	log.Println("Submission store ready (turso)")
	return s, nil
}

func (s *TursoStore) SaveSubmission(sub *models.FormSubmission) error {
	return s.execute([]stmt{{
		SQL: `INSERT INTO form_submissions (form_type, email, name, phone, data, ip) VALUES (?, ?, ?, ?, ?, ?)`,
		Args: []arg{
			textArg(sub.FormType),
			textArg(sub.Email),
			textArg(sub.Name),
			textArg(sub.Phone),
			textArg(sub.Data),
			textArg(sub.IP),
		},
	}})
}

// Replay inserts a submission keeping its original timestamp. Used by the
// sync_submissions backfill tool; live intake goes through SaveSubmission.
func (s *TursoStore) Replay(sub *models.FormSubmission) error {
	return s.execute([]stmt{{
		SQL: `INSERT INTO form_submissions (form_type, email, name, phone, data, ip, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		Args: []arg{
			textArg(sub.FormType),
			textArg(sub.Email),
			textArg(sub.Name),
			textArg(sub.Phone),
			textArg(sub.Data),
			textArg(sub.IP),
			textArg(sub.CreatedAt.UTC().Format("2006-01-02 15:04:05")),
		},
	}})
}

// --- pipeline plumbing ---

type stmt struct {
	SQL  string `json:"sql"`
	Args []arg  `json:"args,omitempty"`
}

type arg struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func textArg(v string) arg {
	return arg{Type: "text", Value: v}
}

type pipelineRequest struct {
	Type string `json:"type"`
	Stmt *stmt  `json:"stmt,omitempty"`
}

func (s *TursoStore) execute(statements []stmt) error {
	requests := make([]pipelineRequest, 0, len(statements)+1)
	for i := range statements {
		requests = append(requests, pipelineRequest{Type: "execute", Stmt: &statements[i]})
	}
	requests = append(requests, pipelineRequest{Type: "close"})

	body, err := json.Marshal(map[string]interface{}{"requests": requests})
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", s.url+"/v2/pipeline", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("turso API error: %s - %s", resp.Status, string(respBody))
	}

	// The pipeline endpoint returns 200 even when a statement fails; surface
	// per-statement errors from the result list.
	var result struct {
		Results []struct {
			Type  string `json:"type"`
			Error *struct {
				Message string `json:"message"`
			} `json:"error"`
		} `json:"results"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return err
	}
	for _, r := range result.Results {
		if r.Type == "error" && r.Error != nil {
			return fmt.Errorf("turso statement error: %s", r.Error.Message)
		}
	}
	return nil
}
