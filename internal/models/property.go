package models

// PropertyType is the kind of property named in a listing title.
type PropertyType string

const (
	TypeDepartamento PropertyType = "Departamento"
	TypeCasa         PropertyType = "Casa"
	TypePH           PropertyType = "PH"
	TypeLocal        PropertyType = "Local"
	TypeOficina      PropertyType = "Oficina"
	TypePropiedad    PropertyType = "Propiedad"
)

// Operation is whether a listing is offered for sale or for rent.
type Operation string

const (
	OperationVenta    Operation = "Venta"
	OperationAlquiler Operation = "Alquiler"
)

// PropertyRecord is one listing parsed out of an assistant reply.
// Empty strings mean the field was not present in the source.
type PropertyRecord struct {
	Title        string       `json:"title,omitempty"`
	PropertyType PropertyType `json:"property_type"`
	Operation    Operation    `json:"operation"`
	Price        string       `json:"price,omitempty"`
	Surface      string       `json:"surface,omitempty"`
	Expenses     string       `json:"expenses,omitempty"`
	Rooms        string       `json:"rooms,omitempty"`
	Description  string       `json:"description,omitempty"`
	ImageURL     string       `json:"image_url,omitempty"`
	DetailURL    string       `json:"detail_url,omitempty"`
}

// Retained reports whether the record is complete enough to be shown:
// it needs a title and either a price or a detail link.
func (p PropertyRecord) Retained() bool {
	return p.Title != "" && (p.Price != "" || p.DetailURL != "")
}
