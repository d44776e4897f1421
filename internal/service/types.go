package service

// BiographyInput carries optional personal details.
type BiographyInput struct {
	FullName  string `json:"full_name,omitempty"`
	BirthDate string `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// InfluencesInput lists who and what influenced a person.
type InfluencesInput struct {
	Persons    []string `json:"persons,omitempty"`
	WorkOfArts []string `json:"work_of_arts,omitempty"`
}

// PersonInput is the inbound payload for creating or updating a person.
type PersonInput struct {
	UID        string          `json:"uid" validate:"required"`
	Title      string          `json:"title" validate:"required"`
	Permalink  string          `json:"permalink,omitempty" validate:"required"`
	Biography  BiographyInput  `json:"biography"`
	Influences InfluencesInput `json:"influences"`
}

// MovieInput is the inbound payload for creating or updating a movie.
type MovieInput struct {
	UID       string `json:"uid" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Permalink string `json:"permalink,omitempty" validate:"required"`
}
