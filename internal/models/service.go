package models

// ServiceCategory represents a home-service category
type ServiceCategory string

const (
	CategoryCleaning  ServiceCategory = "cleaning"
	CategoryPlumbing  ServiceCategory = "plumbing"
	CategoryRepairing ServiceCategory = "repairing"
	CategoryPainting  ServiceCategory = "painting"
)

// CategoryProbeOrder is the fixed order in which categories are searched when
// resolving a service by id alone. The id does not encode its category, so
// resolution stops at the first category that contains it.
var CategoryProbeOrder = []ServiceCategory{
	CategoryPlumbing,
	CategoryCleaning,
	CategoryRepairing,
	CategoryPainting,
}

// IsValidCategory reports whether c is one of the known categories
func IsValidCategory(c ServiceCategory) bool {
	switch c {
	case CategoryCleaning, CategoryPlumbing, CategoryRepairing, CategoryPainting:
		return true
	}
	return false
}

// ServiceDefinition represents one priced catalog entry. Catalog rows are
// read-only to the booking flow; a booking freezes its own copy of the
// pricing at creation time.
type ServiceDefinition struct {
	ID       string          `json:"id" db:"id"`
	Category ServiceCategory `json:"category" db:"category"`
	Name     string          `json:"name" db:"name"`
	Amount   float64         `json:"amount" db:"amount"`
	ImageURL *string         `json:"image,omitempty" db:"image_url"`
}
