package listing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElBenerDev/asistenteAltamirano/internal/listing"
	"github.com/ElBenerDev/asistenteAltamirano/internal/models"
	"github.com/ElBenerDev/asistenteAltamirano/internal/render"
)

func TestExtractHTML_RenderedCards(t *testing.T) {
	records := []models.PropertyRecord{
		{
			Title:        "Depto en Palermo",
			PropertyType: models.TypeDepartamento,
			Operation:    models.OperationAlquiler,
			Price:        "150000",
			Surface:      "45",
			Expenses:     "20000",
			Rooms:        "2",
			Description:  "Luminoso, con balcón",
			ImageURL:     "https://img.example.com/1.jpg",
			DetailURL:    "https://ficha.info/p/abc",
		},
		{
			Title:        "Local en Once",
			PropertyType: models.TypeLocal,
			Operation:    models.OperationVenta,
			Price:        "90000",
		},
	}

	html, err := render.NewRenderer("", nil).Cards(records)
	require.NoError(t, err)

	assert.Equal(t, records, listing.ExtractHTML(string(html)))
}

func TestExtractHTML_BackendCards(t *testing.T) {
	fragment := `<div class="properties-grid">
		<div class="property-card">
			<div class="property-image">
				<img src="https://static.tokkobroker.com/pictures/1.jpg" alt="Casa en Munro">
				<div class="property-tags">
					<span class="tag operation-tag">Alquiler</span>
					<span class="tag price-tag">$350,000</span>
				</div>
			</div>
			<div class="property-content">
				<h3 class="property-title">Casa en Munro</h3>
				<div class="property-details">
					<span class="detail-item">120 m²</span>
					<span class="detail-item">4 ambientes</span>
				</div>
				<p class="description">Jardín y parrilla.</p>
				<a href="https://ficha.info/p/munro" class="property-button" target="_blank">Ver más detalles</a>
			</div>
		</div>
		<div class="property-card">
			<div class="property-content"><h3 class="property-title">Sin precio ni link</h3></div>
		</div>
	</div>`

	records := listing.ExtractHTML(fragment)

	require.Len(t, records, 1)
	assert.Equal(t, models.PropertyRecord{
		Title:        "Casa en Munro",
		PropertyType: models.TypeCasa,
		Operation:    models.OperationAlquiler,
		Price:        "350,000",
		Surface:      "120",
		Rooms:        "4",
		Description:  "Jardín y parrilla.",
		ImageURL:     "https://static.tokkobroker.com/pictures/1.jpg",
		DetailURL:    "https://ficha.info/p/munro",
	}, records[0])
}

func TestExtractHTML_EnglishOperationTags(t *testing.T) {
	card := func(tag, title string) string {
		return `<div class="property-card"><span class="tag operation-tag">` + tag + `</span>` +
			`<span class="tag price-tag">$100</span><h3 class="property-title">` + title + `</h3></div>`
	}

	records := listing.ExtractHTML(card("Sale", "Casa en Tigre") + card("Rent", "PH en Boedo"))

	require.Len(t, records, 2)
	assert.Equal(t, models.OperationVenta, records[0].Operation)
	assert.Equal(t, models.OperationAlquiler, records[1].Operation)
}

func TestHasMarkup(t *testing.T) {
	assert.True(t, listing.HasMarkup("<p>Hola</p>"))
	assert.False(t, listing.HasMarkup("1. **Casa**\nPrecio: $1"))
	assert.False(t, listing.HasMarkup(""))
}

func TestExtractHTML_NoCards(t *testing.T) {
	records := listing.ExtractHTML("<p>No encontré nada</p>")

	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Hola mundo", listing.PlainText("<div>\n  <p>Hola</p>\n <b>mundo</b></div>"))
	assert.Equal(t, "", listing.PlainText(""))
}
