package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElBenerDev/asistenteAltamirano/internal/chat"
	"github.com/ElBenerDev/asistenteAltamirano/internal/models"
)

func parseFragment(t *testing.T, fragment string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	require.NoError(t, err)
	return doc
}

func TestRenderer_Cards(t *testing.T) {
	renderer := NewRenderer("", nil)

	html, err := renderer.Cards([]models.PropertyRecord{
		{
			Title:        "Depto en Palermo",
			PropertyType: models.TypeDepartamento,
			Operation:    models.OperationAlquiler,
			Price:        "150000",
			Surface:      "45",
			Expenses:     "20000",
			Rooms:        "2",
			Description:  "Luminoso",
			ImageURL:     "https://img.example.com/1.jpg",
			DetailURL:    "https://ficha.info/p/abc",
		},
		{
			Title:        "Casa en Munro",
			PropertyType: models.TypeCasa,
			Operation:    models.OperationAlquiler,
			Price:        "200000",
		},
	})
	require.NoError(t, err)

	doc := parseFragment(t, string(html))
	cards := doc.Find(".property-grid .property-card")
	require.Equal(t, 2, cards.Length())

	first := cards.Eq(0)
	assert.Equal(t, "Depto en Palermo", first.Find(".property-title").Text())
	assert.Equal(t, "Alquiler", first.Find(".operation-tag").Text())
	assert.Equal(t, "$150000", first.Find(".price-tag").Text())
	assert.Equal(t, "Departamento", strings.TrimSpace(first.Find(".feature-type").Text()))
	assert.Equal(t, "2 Amb.", strings.TrimSpace(first.Find(".feature-rooms").Text()))
	assert.Equal(t, "45 m²", strings.TrimSpace(first.Find(".feature-surface").Text()))
	assert.Equal(t, "Exp: $20000", strings.TrimSpace(first.Find(".feature-expenses").Text()))
	assert.Equal(t, "Luminoso", first.Find(".property-description").Text())
	src, _ := first.Find("img").Attr("src")
	assert.Equal(t, "https://img.example.com/1.jpg", src)
	href, _ := first.Find("a.property-button").Attr("href")
	assert.Equal(t, "https://ficha.info/p/abc", href)

	second := cards.Eq(1)
	src, _ = second.Find("img").Attr("src")
	assert.Equal(t, DefaultPlaceholderImage, src)
	assert.Equal(t, 0, second.Find(".feature-rooms").Length())
	assert.Equal(t, 0, second.Find(".property-description").Length())
	assert.True(t, second.Find("a.property-button").HasClass("disabled"))
}

func TestRenderer_Cards_EscapesContent(t *testing.T) {
	renderer := NewRenderer("/img/none.png", nil)

	html, err := renderer.Cards([]models.PropertyRecord{{
		Title:       `<script>alert("x")</script>`,
		Price:       "1",
		Description: `<b>negrita</b>`,
		DetailURL:   "javascript:alert(1)",
	}})
	require.NoError(t, err)

	assert.NotContains(t, string(html), "<script>")
	assert.NotContains(t, string(html), "<b>negrita</b>")
	assert.NotContains(t, string(html), "javascript:")

	doc := parseFragment(t, string(html))
	src, _ := doc.Find("img").Attr("src")
	assert.Equal(t, "/img/none.png", src)
}

func TestRenderer_TextBubble(t *testing.T) {
	renderer := NewRenderer("", nil)

	html := renderer.TextBubble("Necesito saber **la zona**.\n<script>alert(1)</script>\n[sitio](https://ficha.info)")
	doc := parseFragment(t, string(html))

	assert.Equal(t, 1, doc.Find(".text-bubble").Length())
	assert.Equal(t, "la zona", doc.Find(".text-bubble strong").Text())
	assert.Equal(t, 0, doc.Find("script").Length())
	target, _ := doc.Find("a").Attr("target")
	assert.Equal(t, "_blank", target)
}

func TestRenderer_Turn(t *testing.T) {
	renderer := NewRenderer("", nil)

	html, err := renderer.Turn(chat.ErrorTurn("", &chat.Error{Kind: chat.ErrServer, Message: "boom"}))
	require.NoError(t, err)
	assert.Equal(t, `<div class="error-message">❌ Error al procesar tu mensaje</div>`, string(html))

	html, err = renderer.Turn(chat.Turn{Kind: chat.TurnText, Text: "Hola"})
	require.NoError(t, err)
	assert.Contains(t, string(html), "<p>Hola</p>")

	html, err = renderer.Turn(chat.Turn{Kind: chat.TurnListings, Listings: []models.PropertyRecord{{Title: "Casa", Price: "1"}}})
	require.NoError(t, err)
	assert.Contains(t, string(html), `class="property-card"`)
}

func TestTerminal(t *testing.T) {
	var buf bytes.Buffer

	err := Terminal(&buf, chat.Turn{
		Kind: chat.TurnListings,
		Listings: []models.PropertyRecord{
			{
				Title:        "Depto en Palermo",
				PropertyType: models.TypeDepartamento,
				Operation:    models.OperationAlquiler,
				Price:        "150000",
				Surface:      "45",
				DetailURL:    "https://ficha.info/p/abc",
			},
			{
				Title:        "Casa en Munro",
				PropertyType: models.TypeCasa,
				Operation:    models.OperationAlquiler,
				Price:        "200000",
			},
		},
	})
	require.NoError(t, err)

	expected := "1. Depto en Palermo [Departamento · Alquiler]\n" +
		"   $150000 · 45 m²\n" +
		"   https://ficha.info/p/abc\n" +
		"\n" +
		"2. Casa en Munro [Casa · Alquiler]\n" +
		"   $200000\n"
	assert.Equal(t, expected, buf.String())

	buf.Reset()
	require.NoError(t, Terminal(&buf, chat.ErrorTurn("", errors.New("x"))))
	assert.Equal(t, "! ❌ Error al procesar tu mensaje\n", buf.String())

	buf.Reset()
	require.NoError(t, Terminal(&buf, chat.Turn{Kind: chat.TurnText, Text: "  Hola \n"}))
	assert.Equal(t, "Hola\n", buf.String())
}
