package entity

const (
	// Placeholder shown when an entity arrives without a name.
	FallbackName = "Unnamed"
	// Placeholder shown when an entity arrives without a description.
	FallbackDescription = "No description"
)

// Entity is a read-only snapshot of a record in the catalog. Entities are
// owned by the catalog service; this package only holds transient copies
// for the duration of one search session.
type Entity struct {
	ID          string            `json:"id"`
	URN         string            `json:"urn"`
	Name        string            `json:"name"`
	Kind        Kind              `json:"kind"`
	Service     string            `json:"service"`
	Description string            `json:"description"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// DisplayName returns the entity name, or a placeholder when the catalog
// returned none.
func (e Entity) DisplayName() string {
	if e.Name == "" {
		return FallbackName
	}
	return e.Name
}

// DisplayDescription returns the entity description, or a placeholder when
// the catalog returned none.
func (e Entity) DisplayDescription() string {
	if e.Description == "" {
		return FallbackDescription
	}
	return e.Description
}
