package domain

// Movie is a movie node. Only the shared identity is stored for now.
type Movie struct {
	Root StorableEntity `json:"root"`
}

func (m Movie) String() string {
	return m.Root.String()
}
