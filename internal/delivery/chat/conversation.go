// Package chat implements the conversational front end for deal searches:
// a finite-state parameter collector (one state per pending field) and the
// message formatting used to render filter results for chat transports.
// The transport itself (Telegram, CLI, ...) stays outside the package; it
// feeds user text in and sends the returned replies out.
package chat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cosmicreseller/backend/internal/domain"
)

// State identifies which request field the conversation is waiting on.
type State int

const (
	StateSource State = iota
	StateKeyword
	StateMaxItems
	StateThreshold
	StateDone
)

const (
	promptSource    = "Which market are you looking for? Type: facebook or ebay"
	promptKeyword   = "What are you looking for?"
	promptMaxItems  = "How many items do you want to fetch?"
	promptThreshold = "Enter the threshold ratio as a float (e.g. 0.8 means 20% below average):"

	replyBadSource    = `Please type "facebook" or "ebay".`
	replyBadKeyword   = "Please enter a search keyword."
	replyBadMaxItems  = "Please enter a valid number of items (at least 1)."
	replyBadThreshold = "Please enter a valid float between 0 and 1 (e.g. 0.8)."
)

// Conversation collects the parameters of a deal search one field at a
// time, re-prompting until each input validates. It holds no reference to
// the deal service; once complete, Request hands the validated parameters
// to whoever drives the conversation.
type Conversation struct {
	state State
	req   domain.SearchRequest
}

// NewConversation starts a conversation waiting on the source field.
func NewConversation() *Conversation {
	return &Conversation{state: StateSource}
}

// State returns the field the conversation is currently waiting on.
func (c *Conversation) State() State {
	return c.state
}

// Prompt returns the question for the pending field.
func (c *Conversation) Prompt() string {
	switch c.state {
	case StateSource:
		return promptSource
	case StateKeyword:
		return promptKeyword
	case StateMaxItems:
		return promptMaxItems
	case StateThreshold:
		return promptThreshold
	default:
		return ""
	}
}

// Input feeds one user message into the conversation. The returned reply is
// either the next prompt, a re-prompt after invalid input, or the final
// acknowledgement when the request is complete.
func (c *Conversation) Input(text string) string {
	trimmed := strings.TrimSpace(text)

	switch c.state {
	case StateSource:
		source := strings.ToLower(trimmed)
		if source != "facebook" && source != "ebay" {
			return replyBadSource
		}
		c.req.Source = source
		c.state = StateKeyword
		return promptKeyword

	case StateKeyword:
		if trimmed == "" {
			return replyBadKeyword
		}
		c.req.Keyword = trimmed
		c.state = StateMaxItems
		return promptMaxItems

	case StateMaxItems:
		n, err := strconv.Atoi(trimmed)
		if err != nil || n < 1 {
			return replyBadMaxItems
		}
		c.req.MaxItems = n
		c.state = StateThreshold
		return promptThreshold

	case StateThreshold:
		ratio, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || ratio <= 0 || ratio >= 1 {
			return replyBadThreshold
		}
		c.req.ThresholdRatio = ratio
		c.state = StateDone
		return fmt.Sprintf("Searching %s for %q... This may take a moment.", c.req.Source, c.req.Keyword)
	}

	return ""
}

// Done reports whether every field has been collected.
func (c *Conversation) Done() bool {
	return c.state == StateDone
}

// Request returns the collected parameters. ok is false until the
// conversation is done.
func (c *Conversation) Request() (domain.SearchRequest, bool) {
	if c.state != StateDone {
		return domain.SearchRequest{}, false
	}
	return c.req, true
}

// Reset returns the conversation to its initial state for a fresh search.
func (c *Conversation) Reset() {
	*c = Conversation{state: StateSource}
}
