package listing

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/ElBenerDev/asistenteAltamirano/internal/models"
)

// ExtractHTML parses server-rendered property cards with the default base
// origin.
func ExtractHTML(fragment string) []models.PropertyRecord {
	return defaultExtractor.ExtractHTML(fragment)
}

// ExtractHTML reads the .property-card elements of an HTML fragment, as sent
// by the backend when it flags a reply with isHtml. The retention rule is the
// same as for text replies.
func (e *Extractor) ExtractHTML(fragment string) []models.PropertyRecord {
	records := make([]models.PropertyRecord, 0)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		e.logger.WithError(err).Warn("Failed to parse property card markup")
		return records
	}

	operation := operationOf(doc.Text())

	doc.Find(".property-card").Each(func(i int, card *goquery.Selection) {
		record := e.parseCard(card, operation)
		if !record.Retained() {
			e.logger.WithFields(logrus.Fields{
				"index": i,
				"title": record.Title,
			}).Debug("Dropping property card without title, price or link")
			return
		}
		records = append(records, record)
	})

	return records
}

func (e *Extractor) parseCard(card *goquery.Selection, operation models.Operation) models.PropertyRecord {
	title := collapse(card.Find(".property-title").First().Text())

	record := models.PropertyRecord{
		Title:        title,
		PropertyType: propertyTypeOf(title),
		Operation:    operation,
		Price:        numberIn(card.Find(".price-tag").First().Text()),
		Description:  collapse(card.Find(".property-description, .description").First().Text()),
	}

	// Tokko cards carry the English operation names.
	switch strings.ToLower(collapse(card.Find(".operation-tag").First().Text())) {
	case "venta", "sale":
		record.Operation = models.OperationVenta
	case "alquiler", "rent":
		record.Operation = models.OperationAlquiler
	}

	card.Find(".feature-item, .detail-item").Each(func(_ int, item *goquery.Selection) {
		text := collapse(item.Text())
		switch {
		case strings.HasPrefix(text, "Exp"):
			record.Expenses = numberIn(text)
		case strings.Contains(text, "m²") || strings.HasSuffix(text, "m2"):
			record.Surface = numberIn(text)
		case roomsPattern.MatchString(text):
			record.Rooms = firstGroup(roomsPattern, text)
		}
	})

	if src, ok := card.Find(".property-image img").First().Attr("src"); ok && strings.HasPrefix(src, "https://") {
		record.ImageURL = src
	}

	if href, ok := card.Find("a.property-button").First().Attr("href"); ok {
		record.DetailURL = e.resolveLink(href)
	}

	return record
}

// PlainText returns the visible text of an HTML fragment with whitespace
// collapsed. Markup that cannot be parsed is returned as is.
func PlainText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return collapse(doc.Text())
}

// HasMarkup reports whether fragment contains at least one HTML element.
func HasMarkup(fragment string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return false
	}
	return doc.Find("body *").Length() > 0
}

func numberIn(text string) string {
	return cleanNumber(numberPattern.FindString(text))
}

func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
