package entity

// Value is what the search field ultimately commits: either free text the
// user typed, or an entity the user picked from the suggestion list. The
// two cases are resolved explicitly rather than by runtime type inspection.
type Value struct {
	entity *Entity
	text   string
}

// FreeText wraps user-typed text that matched no catalog entity.
func FreeText(text string) Value {
	return Value{text: text}
}

// Selected wraps an entity picked from the suggestion list.
func Selected(e Entity) Value {
	return Value{entity: &e}
}

// IsEntity reports whether the value carries a selected entity.
func (v Value) IsEntity() bool {
	return v.entity != nil
}

// Entity returns the selected entity and whether one is present.
func (v Value) Entity() (Entity, bool) {
	if v.entity == nil {
		return Entity{}, false
	}
	return *v.entity, true
}

// Display renders the committed value: plain text verbatim, entities via
// their display name.
func (v Value) Display() string {
	if v.entity != nil {
		return v.entity.DisplayName()
	}
	return v.text
}
