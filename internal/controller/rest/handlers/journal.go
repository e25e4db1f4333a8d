package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"SquareBridge/internal/webhook"

	"github.com/gin-gonic/gin"
)

type JournalHandler struct {
	reader webhook.JournalReader
}

func NewJournalHandler(r webhook.JournalReader) JournalHandler {
	return JournalHandler{reader: r}
}

type journalEntryView struct {
	ID         string          `json:"id"`
	EventID    string          `json:"event_id"`
	Type       string          `json:"type"`
	MerchantID string          `json:"merchant_id"`
	OrderID    string          `json:"order_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	RawPayload string          `json:"raw_payload,omitempty"`
	ReceivedAt time.Time       `json:"received_at"`
}

type journalPageView struct {
	Items      []journalEntryView `json:"items"`
	NextCursor string             `json:"next_cursor,omitempty"`
	HasMore    bool               `json:"has_more"`
}

// List returns recorded webhooks, newest first.
// Query: order_id, limit, cursor.
func (h *JournalHandler) List(c *gin.Context) {
	q := webhook.JournalQuery{
		OrderID: c.Query("order_id"),
		Cursor:  c.Query("cursor"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "limit must be a non-negative integer"})
			return
		}
		q.Limit = limit
	}

	page, err := h.reader.List(c.Request.Context(), q)
	if errors.Is(err, webhook.ErrInvalidCursor) {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	view := journalPageView{
		Items:      make([]journalEntryView, 0, len(page.Items)),
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}
	for _, e := range page.Items {
		v := journalEntryView{
			ID:         e.ID,
			EventID:    e.EventID,
			Type:       e.Type,
			MerchantID: e.MerchantID,
			OrderID:    e.OrderID,
			ReceivedAt: e.ReceivedAt,
		}
		if json.Valid(e.Payload) {
			v.Payload = e.Payload
		} else {
			v.RawPayload = string(e.Payload)
		}
		view.Items = append(view.Items, v)
	}

	c.JSON(http.StatusOK, view)
}
