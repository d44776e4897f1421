package domain

// Biography holds optional personal details. A nil field means the source
// property was missing or not a string.
type Biography struct {
	FullName  *string `json:"full_name"`
	BirthDate *string `json:"birth_date"`
}

// Influences lists the names of persons and works that influenced someone.
// A nil slice means the list was absent from the source node.
type Influences struct {
	Persons    []string `json:"persons"`
	WorkOfArts []string `json:"work_of_arts"`
}

// Person is a person node with its optional substructures.
type Person struct {
	Root       StorableEntity `json:"root"`
	Biography  *Biography     `json:"biography"`
	Influences *Influences    `json:"influences"`
}

func (p Person) String() string {
	return p.Root.String()
}
