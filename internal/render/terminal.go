package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ElBenerDev/asistenteAltamirano/internal/chat"
	"github.com/ElBenerDev/asistenteAltamirano/internal/models"
)

// Terminal writes a turn as plain text.
func Terminal(w io.Writer, turn chat.Turn) error {
	switch turn.Kind {
	case chat.TurnListings:
		return ListingsText(w, turn.Listings)
	case chat.TurnError:
		_, err := fmt.Fprintf(w, "! %s\n", turn.Text)
		return err
	default:
		_, err := fmt.Fprintf(w, "%s\n", strings.TrimSpace(turn.Text))
		return err
	}
}

// ListingsText writes one block per record, numbered in order.
func ListingsText(w io.Writer, records []models.PropertyRecord) error {
	var b strings.Builder
	for i, record := range records {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s [%s · %s]\n", i+1, record.Title, record.PropertyType, record.Operation)

		var details []string
		if record.Price != "" {
			details = append(details, "$"+record.Price)
		}
		if record.Rooms != "" {
			details = append(details, record.Rooms+" Amb.")
		}
		if record.Surface != "" {
			details = append(details, record.Surface+" m²")
		}
		if record.Expenses != "" {
			details = append(details, "Exp: $"+record.Expenses)
		}
		if len(details) > 0 {
			fmt.Fprintf(&b, "   %s\n", strings.Join(details, " · "))
		}
		if record.Description != "" {
			fmt.Fprintf(&b, "   %s\n", record.Description)
		}
		if record.DetailURL != "" {
			fmt.Fprintf(&b, "   %s\n", record.DetailURL)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
