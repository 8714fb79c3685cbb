package shopstub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/shashiranjanraj/bazaar/pkg/collection"
)

// The support bot escalates anything it cannot answer from order data.
const botFallback = "I don’t have access to that information, but I can " +
	"forward your request to our support team. Would you like me to do that?"

// handleChat is the rule-based assistant: a message that looks like an
// order number becomes an order-status lookup; everything else gets the
// canned escalation reply.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var in struct {
		Message string `json:"message"`
		OrderID string `json:"order_id"`
	}
	_ = json.NewDecoder(r.Body).Decode(&in)

	text := strings.ToLower(strings.TrimSpace(in.Message))

	orderID := in.OrderID
	if orderID == "" && looksLikeOrderID(text) {
		orderID = text
	}

	if orderID != "" {
		writeJSON(w, http.StatusOK, map[string]string{
			"bot": s.orderStatusReply(claims.UserID, orderID),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"bot": botFallback})
}

// looksLikeOrderID mirrors the backend's heuristic: all digits, or at
// least 8 alphanumeric characters (the hex order ids).
func looksLikeOrderID(text string) bool {
	if text == "" {
		return false
	}

	digitsOnly := true
	alnumOnly := true
	for _, r := range text {
		if !unicode.IsDigit(r) {
			digitsOnly = false
		}
		if !unicode.IsDigit(r) && !unicode.IsLetter(r) {
			alnumOnly = false
		}
	}

	return digitsOnly || (len(text) >= 8 && alnumOnly)
}

func (s *Server) orderStatusReply(userID, orderID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := collection.First(s.orders, func(o order) bool {
		return o.OrderID == orderID && o.UserID == userID
	})
	if !ok {
		return botFallback
	}

	placed, err := time.Parse(time.RFC3339, o.CreatedAt)
	if err != nil {
		placed = s.now().UTC()
	}
	delivery := placed.Add(5 * 24 * time.Hour)

	return fmt.Sprintf("Your order #%s is %s (placed on %s). Estimated delivery: %s.",
		orderID, o.Status, placed.Format("02 Jan 2006"), delivery.Format("02 Jan 2006"))
}
