// Package listing turns assistant replies into structured property records.
//
// Replies come in two shapes: markdown-like text with numbered, bolded titles
// and labelled fields, or server-rendered property card markup. Both are
// parsed on a best-effort basis; a listing that cannot be read is dropped and
// a reply with nothing usable yields an empty slice rather than an error.
package listing

import (
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ElBenerDev/asistenteAltamirano/internal/models"
)

// DefaultBaseOrigin is the host short detail links such as /p/ABC123 live on.
const DefaultBaseOrigin = "https://ficha.info"

var (
	itemSplitPattern   = regexp.MustCompile(`\d+\.[\s\x{00a0}]+\*\*`)
	titlePattern       = regexp.MustCompile(`^([^*]+)\*\*`)
	typePattern        = regexp.MustCompile(`(?i)(departamento|depto|dpto|casa|ph|local|oficina)`)
	pricePattern       = regexp.MustCompile(`Precio:(?:\*\*)?\s*(?:\$|ARS)?\s*([0-9][0-9,.]*)`)
	surfacePattern     = regexp.MustCompile(`Superficie:(?:\*\*)?\s*([0-9][0-9,.]*)\s*m(?:²|2)`)
	expensesPattern    = regexp.MustCompile(`Expensas:(?:\*\*)?\s*(?:\$|ARS)?\s*([0-9][0-9,.]*)`)
	roomsPattern       = regexp.MustCompile(`(?i)(\d+)\s*(?:amb|ambientes)`)
	descriptionPattern = regexp.MustCompile(`Descripción:(?:\*\*)?\s*([^\n]+)`)
	imagePattern       = regexp.MustCompile(`!\[(?:Imagen|Ver imagen|Ver imagen y más detalles)\]\((https://[^)\s]+)\)`)
	detailPattern      = regexp.MustCompile(`\[(?:Ver más|Ver más detalles|Más información|Ver detalles)\]\((https://[^)\s]+|/p/[^)\s]+)\)`)
	numberPattern      = regexp.MustCompile(`[0-9][0-9,.]*`)
)

// Extractor parses listing replies. The zero value is not usable; build one
// with NewExtractor.
type Extractor struct {
	baseOrigin string
	logger     *logrus.Logger
}

var defaultExtractor = NewExtractor(DefaultBaseOrigin, quietLogger())

// NewExtractor creates an extractor that resolves short detail links against
// baseOrigin. An empty baseOrigin falls back to DefaultBaseOrigin.
func NewExtractor(baseOrigin string, logger *logrus.Logger) *Extractor {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	baseOrigin = strings.TrimRight(strings.TrimSpace(baseOrigin), "/")
	if baseOrigin == "" {
		baseOrigin = DefaultBaseOrigin
	}
	return &Extractor{
		baseOrigin: baseOrigin,
		logger:     logger,
	}
}

// Extract parses source with the default base origin.
func Extract(source string) []models.PropertyRecord {
	return defaultExtractor.Extract(source)
}

// BaseOrigin returns the origin short links are resolved against.
func (e *Extractor) BaseOrigin() string {
	return e.baseOrigin
}

// Extract splits source into numbered listing segments and returns the
// records that carry a title and either a price or a detail link, in the
// order they appear.
func (e *Extractor) Extract(source string) []models.PropertyRecord {
	records := make([]models.PropertyRecord, 0)

	segments := itemSplitPattern.Split(source, -1)
	if len(segments) < 2 {
		return records
	}

	// The sale/rent signal is taken from the whole reply, not per listing.
	operation := operationOf(source)

	for i, segment := range segments[1:] {
		record := e.parseSegment(segment, operation)

		fields := logrus.Fields{
			"index":     i,
			"title":     record.Title,
			"has_price": record.Price != "",
			"has_image": record.ImageURL != "",
			"has_link":  record.DetailURL != "",
		}
		if !record.Retained() {
			e.logger.WithFields(fields).Debug("Dropping listing without title, price or link")
			continue
		}
		e.logger.WithFields(fields).Debug("Parsed listing")
		records = append(records, record)
	}

	return records
}

func (e *Extractor) parseSegment(segment string, operation models.Operation) models.PropertyRecord {
	title := strings.TrimSpace(firstGroup(titlePattern, segment))

	record := models.PropertyRecord{
		Title:        title,
		PropertyType: propertyTypeOf(title),
		Operation:    operation,
		Price:        cleanNumber(firstGroup(pricePattern, segment)),
		Surface:      cleanNumber(firstGroup(surfacePattern, segment)),
		Expenses:     cleanNumber(firstGroup(expensesPattern, segment)),
		Rooms:        firstGroup(roomsPattern, segment),
		Description:  strings.TrimSpace(firstGroup(descriptionPattern, segment)),
		ImageURL:     firstGroup(imagePattern, segment),
	}

	if link := firstGroup(detailPattern, segment); link != "" {
		record.DetailURL = e.resolveLink(link)
	}

	return record
}

// resolveLink makes a detail link absolute. Links already starting with
// http are returned as they are.
func (e *Extractor) resolveLink(link string) string {
	link = strings.TrimSpace(link)
	switch {
	case link == "" || link == "#":
		return ""
	case strings.HasPrefix(link, "http"):
		return link
	case strings.HasPrefix(link, "/"):
		return e.baseOrigin + link
	default:
		return e.baseOrigin + "/p/" + link
	}
}

func propertyTypeOf(title string) models.PropertyType {
	match := strings.ToLower(firstGroup(typePattern, title))
	switch match {
	case "departamento", "depto", "dpto":
		return models.TypeDepartamento
	case "casa":
		return models.TypeCasa
	case "ph":
		return models.TypePH
	case "local":
		return models.TypeLocal
	case "oficina":
		return models.TypeOficina
	default:
		return models.TypePropiedad
	}
}

func operationOf(text string) models.Operation {
	if strings.Contains(strings.ToLower(text), "venta") {
		return models.OperationVenta
	}
	return models.OperationAlquiler
}

func firstGroup(pattern *regexp.Regexp, text string) string {
	match := pattern.FindStringSubmatch(text)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}

// cleanNumber drops separators left dangling by sentence punctuation,
// e.g. "150.000." at the end of a line.
func cleanNumber(token string) string {
	return strings.TrimRight(strings.TrimSpace(token), ".,")
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
