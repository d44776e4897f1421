package domain

// StorableEntity is the identity shared by every entity kept in the graph.
// All three fields are non-empty once decoded.
type StorableEntity struct {
	UID       string `json:"uid" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Permalink string `json:"permalink" validate:"required"`
}

func (e StorableEntity) String() string {
	return "<" + e.UID + ": " + e.Title + ">"
}
