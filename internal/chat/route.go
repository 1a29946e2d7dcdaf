package chat

import (
	"strings"

	"github.com/ElBenerDev/asistenteAltamirano/internal/listing"
	"github.com/ElBenerDev/asistenteAltamirano/internal/models"
)

// TurnKind is what a finished turn shows to the user.
type TurnKind int

const (
	TurnText TurnKind = iota
	TurnListings
	TurnError
)

// String returns the string representation of a TurnKind
func (k TurnKind) String() string {
	switch k {
	case TurnText:
		return "text"
	case TurnListings:
		return "listings"
	case TurnError:
		return "error"
	default:
		return "unknown"
	}
}

// Turn is the outcome of one message exchange, ready for a presenter.
type Turn struct {
	ID       string
	Kind     TurnKind
	Text     string
	Listings []models.PropertyRecord
	Err      error
	Session  Session
}

// ErrorTurn wraps err in a turn carrying the localized error message.
func ErrorTurn(id string, err error) Turn {
	return Turn{
		ID:   id,
		Kind: TurnError,
		Text: UserMessage(err),
		Err:  err,
	}
}

// Route decides how a reply is displayed. Rich replies are run through the
// extractor; when no listing survives, the reply falls back to plain text.
// Replies flagged as HTML that carry markdown listings instead of card markup
// still go through the text extractor.
func Route(reply *Reply, extractor *listing.Extractor) Turn {
	turn := Turn{
		ID:   reply.RequestID,
		Kind: TurnText,
		Text: reply.Text,
	}

	if !reply.IsRich() {
		return turn
	}

	var records []models.PropertyRecord
	if reply.IsHTML {
		records = extractor.ExtractHTML(reply.Text)
	}
	if len(records) == 0 && strings.Contains(reply.Text, "**") {
		records = extractor.Extract(reply.Text)
	}

	if len(records) == 0 {
		if reply.IsHTML && listing.HasMarkup(reply.Text) {
			turn.Text = listing.PlainText(reply.Text)
		}
		return turn
	}

	turn.Kind = TurnListings
	turn.Listings = records
	return turn
}
