// Package render turns conversation turns into the widget's HTML fragments
// and into plain text for terminals.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"os"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/sirupsen/logrus"

	"github.com/ElBenerDev/asistenteAltamirano/internal/chat"
	"github.com/ElBenerDev/asistenteAltamirano/internal/models"
)

// DefaultPlaceholderImage is shown on cards whose listing has no image.
const DefaultPlaceholderImage = "/static/images/property-placeholder.svg"

const cardsTemplate = `<div class="property-grid">
{{- range .Records}}
<div class="property-card">
	<div class="property-image">
		<img src="{{if .ImageURL}}{{.ImageURL}}{{else}}{{$.Placeholder}}{{end}}" alt="{{or .Title "Propiedad"}}" loading="lazy">
		<div class="property-tags">
			{{- if .Operation}}
			<span class="tag operation-tag">{{.Operation}}</span>
			{{- end}}
			{{- if .Price}}
			<span class="tag price-tag">${{.Price}}</span>
			{{- end}}
		</div>
	</div>
	<div class="property-content">
		<h3 class="property-title">{{or .Title "Sin título"}}</h3>
		<div class="property-features">
			{{- if .PropertyType}}
			<div class="feature-item feature-type"><span>{{.PropertyType}}</span></div>
			{{- end}}
			{{- if .Rooms}}
			<div class="feature-item feature-rooms"><span>{{.Rooms}} Amb.</span></div>
			{{- end}}
			{{- if .Surface}}
			<div class="feature-item feature-surface"><span>{{.Surface}} m²</span></div>
			{{- end}}
			{{- if .Expenses}}
			<div class="feature-item feature-expenses"><span>Exp: ${{.Expenses}}</span></div>
			{{- end}}
		</div>
		{{- if .Description}}
		<div class="property-description">{{.Description}}</div>
		{{- end}}
		{{- if .DetailURL}}
		<a href="{{.DetailURL}}" class="property-button" target="_blank" rel="noopener noreferrer">Ver más detalles</a>
		{{- else}}
		<a href="#" class="property-button disabled" aria-disabled="true">Ver más detalles</a>
		{{- end}}
	</div>
</div>
{{- end}}
</div>`

const errorTemplate = `<div class="error-message">{{.}}</div>`

var (
	cards      = template.Must(template.New("cards").Parse(cardsTemplate))
	errorPanel = template.Must(template.New("error").Parse(errorTemplate))
)

// Renderer builds the HTML fragments the chat widget appends to its log.
type Renderer struct {
	placeholder string
	logger      *logrus.Logger
}

// NewRenderer creates a renderer. An empty placeholder falls back to
// DefaultPlaceholderImage.
func NewRenderer(placeholder string, logger *logrus.Logger) *Renderer {
	if placeholder == "" {
		placeholder = DefaultPlaceholderImage
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Renderer{
		placeholder: placeholder,
		logger:      logger,
	}
}

// Cards renders records as a grid of property cards. Nothing is returned
// unless the whole grid rendered.
func (r *Renderer) Cards(records []models.PropertyRecord) (template.HTML, error) {
	var buf bytes.Buffer
	data := struct {
		Records     []models.PropertyRecord
		Placeholder string
	}{
		Records:     records,
		Placeholder: r.placeholder,
	}
	if err := cards.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render property cards: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// TextBubble renders a plain reply. Assistant replies use markdown for
// emphasis and links, so the text goes through a markdown renderer with raw
// HTML dropped.
func (r *Renderer) TextBubble(text string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.HardLineBreak)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.SkipHTML | mdhtml.Safelink |
			mdhtml.HrefTargetBlank | mdhtml.NoopenerLinks | mdhtml.NoreferrerLinks,
	})
	body := markdown.ToHTML([]byte(text), p, renderer)
	return template.HTML(`<div class="text-bubble">` + string(body) + `</div>`)
}

// ErrorBubble renders a localized error message.
func (r *Renderer) ErrorBubble(message string) template.HTML {
	var buf bytes.Buffer
	if err := errorPanel.Execute(&buf, message); err != nil {
		r.logger.WithError(err).Error("Failed to render error bubble")
		return template.HTML(`<div class="error-message"></div>`)
	}
	return template.HTML(buf.String())
}

// Turn renders whatever a turn has to show.
func (r *Renderer) Turn(turn chat.Turn) (template.HTML, error) {
	switch turn.Kind {
	case chat.TurnListings:
		return r.Cards(turn.Listings)
	case chat.TurnError:
		return r.ErrorBubble(turn.Text), nil
	default:
		return r.TextBubble(turn.Text), nil
	}
}
