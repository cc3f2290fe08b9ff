package webhook

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"sakima-api/internal/config"
	"sakima-api/internal/surge"
	"sakima-api/pkg/models"

	"github.com/gin-gonic/gin"
)

// AllChannels is every opt-in topic a contact can subscribe to by keyword.
var AllChannels = []string{"coins", "cards", "whatnot", "ebay", "vip"}

// keywordChannels maps an uppercased inbound SMS body to the channels it
// subscribes the sender to.
var keywordChannels = map[string][]string{
	"EVERYTHING": AllChannels,
	"YES":        AllChannels,
	"COINS":      {"coins"},
	"CARDS":      {"cards"},
	"WHATNOT":    {"whatnot"},
	"EBAY":       {"ebay"},
	"VIP":        {"vip"},
}

type Handler struct {
	Config *config.Config
	Client *surge.Client
}

func NewHandler(cfg *config.Config, client *surge.Client) *Handler {
	return &Handler{Config: cfg, Client: client}
}

// HandleEvent processes one Surge webhook delivery. Signature or parse
// failures are the only conditions that signal a retry to the sender;
// business-logic no-ops still answer 200 "OK".
func (h *Handler) HandleEvent(c *gin.Context) {
	rawBody, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid JSON")
		return
	}

	if h.Config.WebhookSecret != config.PlaceholderWebhookSecret {
		if !Verify(rawBody, c.GetHeader("Surge-Signature"), h.Config.WebhookSecret) {
			c.String(http.StatusUnauthorized, "Unauthorized")
			return
		}
	}

	var event models.SurgeEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		c.String(http.StatusBadRequest, "Invalid JSON")
		return
	}

	switch event.Type {
	case "message.received":
		h.handleInboundMessage(&event)
	case "contact.opted_in", "contact.opted_out", "message.delivered", "message.failed":
		// Observational only; no state change.
		log.Printf("Webhook event %s (contact=%s)", event.Type, event.Data.Conversation.Contact.ID)
	default:
		log.Printf("Unhandled webhook event type: %s", event.Type)
	}

	c.String(http.StatusOK, "OK")
}

func (h *Handler) handleInboundMessage(event *models.SurgeEvent) {
	keyword := strings.ToUpper(strings.TrimSpace(event.Data.Body))
	channels, ok := keywordChannels[keyword]
	if !ok {
		log.Printf("Inbound message is not an opt-in keyword: %q", keyword)
		return
	}

	contactID := event.Data.Conversation.Contact.ID
	if contactID == "" {
		log.Printf("Keyword %q received without a contact id; skipping", keyword)
		return
	}

	ok = h.Client.UpdateContact(contactID, surge.ContactParams{
		Metadata: map[string]string{
			"channels":    strings.Join(channels, ","),
			"sms_opt_in":  "true",
			"source":      "sms_keyword",
			"signup_date": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if ok {
		log.Printf("Keyword %q subscribed contact %s to %s", keyword, contactID, strings.Join(channels, ","))
	}
}
