package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"sakima-api/internal/models"
	"sakima-api/internal/normalize"
	"sakima-api/internal/store"
	"sakima-api/internal/surge"

	"github.com/gin-gonic/gin"
)

const (
	defaultSignupSource = "sakima.co/sms"
	vipSource           = "sakima.co/vip"
	offerSource         = "sakima.co/offer"

	// description limits: storage keeps more than contact metadata
	offerStorageLimit  = 2000
	offerMetadataLimit = 500
)

type IntakeHandler struct {
	Client *surge.Client
	Store  store.SubmissionStore
}

func NewIntakeHandler(client *surge.Client, st store.SubmissionStore) *IntakeHandler {
	return &IntakeHandler{Client: client, Store: st}
}

// --- /signup ---

type SignupRequest struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	EmailOptIn bool     `json:"emailOptIn"`
	SMSOptIn   bool     `json:"smsOptIn"`
	Channels   []string `json:"channels"`
	Source     string   `json:"source"`
}

func (h *IntakeHandler) HandleSignup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	hasPhone := len(normalize.Digits(req.Phone)) >= 10
	hasEmail := normalize.HasValidEmail(req.Email)
	if !hasPhone && !hasEmail {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone or email required"})
		return
	}

	source := req.Source
	if source == "" {
		source = defaultSignupSource
	}

	h.saveSubmission(c, models.FormTypeSignup, req.Email, req.Name, req.Phone, map[string]interface{}{
		"channels":   req.Channels,
		"emailOptIn": req.EmailOptIn,
		"smsOptIn":   req.SMSOptIn,
		"source":     source,
	})

	first, last := normalize.SplitName(req.Name)
	params := surge.ContactParams{
		FirstName: first,
		LastName:  last,
		Metadata: map[string]string{
			"channels":     strings.Join(req.Channels, ","),
			"email_opt_in": boolString(req.EmailOptIn),
			"sms_opt_in":   boolString(req.SMSOptIn),
			"source":       source,
			"signup_date":  time.Now().UTC().Format(time.RFC3339),
		},
	}
	if hasPhone {
		params.PhoneNumber = normalize.Phone(req.Phone)
	}
	if hasEmail {
		params.Email = req.Email
	}

	contactID, err := h.Client.CreateContact(params)
	if err != nil && !errors.Is(err, surge.ErrDuplicate) {
		log.Printf("Error creating contact: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed. Please try again."})
		return
	}
	if errors.Is(err, surge.ErrDuplicate) {
		// Existing contact keeps its old metadata; newly selected channels
		// are not merged in. Known gap.
		log.Printf("Contact already exists for signup (phone=%s email=%s)", params.PhoneNumber, params.Email)
	}

	message := "You're on the list!"
	if req.SMSOptIn && hasPhone {
		body := welcomeMessage(req.Channels)
		if _, err := h.Client.SendMessage(params.PhoneNumber, body); err != nil {
			// Welcome delivery never rolls back a successful signup.
			log.Printf("Error sending welcome message to %s: %v", params.PhoneNumber, err)
		} else {
			message = "Check your phone for a welcome text!"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"contact_id": contactID,
		"message":    message,
	})
}

// welcomeMessage lists the subscribed channels, skipping the synthetic
// "transactional" and "everything" tags, and appends the opt-out footer.
func welcomeMessage(channels []string) string {
	var names []string
	for _, ch := range channels {
		if ch == "transactional" || ch == "everything" {
			continue
		}
		names = append(names, capitalize(ch))
	}

	msg := "Welcome to Sakima Coin & Hobby!"
	if len(names) > 0 {
		msg += " You're signed up for: " + strings.Join(names, ", ") + "."
	}
	return msg + " Reply STOP to unsubscribe, HELP for help."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// --- /vip ---

type VIPRequest struct {
	Email string `json:"email"`
}

func (h *IntakeHandler) HandleVIP(c *gin.Context) {
	var req VIPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	if !normalize.HasValidEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid email required"})
		return
	}

	h.saveSubmission(c, models.FormTypeVIP, req.Email, "", "", nil)

	_, err := h.Client.CreateContact(surge.ContactParams{
		Email: req.Email,
		Metadata: map[string]string{
			"channels":     "vip",
			"email_opt_in": "true",
			"source":       vipSource,
			"signup_date":  time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil && !errors.Is(err, surge.ErrDuplicate) {
		log.Printf("Error creating VIP contact: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- /offer ---

type OfferRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

func (h *IntakeHandler) HandleOffer(c *gin.Context) {
	var req OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	if !normalize.HasValidEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid email required"})
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description required"})
		return
	}

	inquiryType := req.Type
	if inquiryType == "" {
		inquiryType = "inquiry"
	}

	h.saveSubmission(c, models.FormTypeOffer, req.Email, req.Name, req.Phone, map[string]interface{}{
		"type":        inquiryType,
		"description": truncate(req.Description, offerStorageLimit),
	})

	// Best-effort upsert: the inquiry is actionable from the submission
	// record alone, so contact failures are logged, never surfaced.
	first, last := normalize.SplitName(req.Name)
	params := surge.ContactParams{
		FirstName: first,
		LastName:  last,
		Email:     req.Email,
		Metadata: map[string]string{
			"latest_offer": truncate(req.Description, offerMetadataLimit),
			"source":       offerSource,
			"signup_date":  time.Now().UTC().Format(time.RFC3339),
		},
	}
	if len(normalize.Digits(req.Phone)) >= 10 {
		params.PhoneNumber = normalize.Phone(req.Phone)
	}
	if _, err := h.Client.CreateContact(params); err != nil && !errors.Is(err, surge.ErrDuplicate) {
		log.Printf("Error upserting offer contact: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Thanks! We'll review your offer and get back to you.",
	})
}

// --- helpers ---

// saveSubmission records the audit row. Persistence is never a hard
// dependency for intake; failures are logged and the request continues.
func (h *IntakeHandler) saveSubmission(c *gin.Context, formType, email, name, phone string, extra map[string]interface{}) {
	var data string
	if extra != nil {
		if blob, err := json.Marshal(extra); err == nil {
			data = string(blob)
		}
	}

	sub := &models.FormSubmission{
		FormType: formType,
		Email:    email,
		Name:     name,
		Phone:    phone,
		Data:     data,
		IP:       c.ClientIP(),
	}

	if err := h.Store.SaveSubmission(sub); err != nil {
		log.Printf("Error saving %s submission: %v", formType, err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
