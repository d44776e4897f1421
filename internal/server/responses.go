package server

import (
	"github.com/vanshika/filmgraph/internal/domain"
	"github.com/vanshika/filmgraph/internal/service"
)

type biographyResponse struct {
	FullName  *string `json:"fullName"`
	BirthDate *string `json:"birthDate"`
}

type influencesResponse struct {
	Persons    []string `json:"persons"`
	WorkOfArts []string `json:"workOfArts"`
}

type personResponse struct {
	UID        string              `json:"uid"`
	Title      string              `json:"title"`
	Permalink  string              `json:"permalink"`
	Biography  *biographyResponse  `json:"biography"`
	Influences *influencesResponse `json:"influences"`
}

type movieResponse struct {
	UID       string `json:"uid"`
	Title     string `json:"title"`
	Permalink string `json:"permalink"`
}

type personRequest struct {
	UID        string   `json:"uid"`
	Title      string   `json:"title"`
	Permalink  string   `json:"permalink"`
	FullName   string   `json:"fullName"`
	BirthDate  string   `json:"birthDate"`
	Persons    []string `json:"persons"`
	WorkOfArts []string `json:"workOfArts"`
}

type movieRequest struct {
	UID       string `json:"uid"`
	Title     string `json:"title"`
	Permalink string `json:"permalink"`
}

func (p personRequest) toServiceInput() service.PersonInput {
	return service.PersonInput{
		UID:       p.UID,
		Title:     p.Title,
		Permalink: p.Permalink,
		Biography: service.BiographyInput{
			FullName:  p.FullName,
			BirthDate: p.BirthDate,
		},
		Influences: service.InfluencesInput{
			Persons:    p.Persons,
			WorkOfArts: p.WorkOfArts,
		},
	}
}

func (m movieRequest) toServiceInput() service.MovieInput {
	return service.MovieInput{UID: m.UID, Title: m.Title, Permalink: m.Permalink}
}

func toPersonResponse(p domain.Person) personResponse {
	resp := personResponse{
		UID:       p.Root.UID,
		Title:     p.Root.Title,
		Permalink: p.Root.Permalink,
	}
	if p.Biography != nil {
		resp.Biography = &biographyResponse{
			FullName:  p.Biography.FullName,
			BirthDate: p.Biography.BirthDate,
		}
	}
	if p.Influences != nil {
		resp.Influences = &influencesResponse{
			Persons:    p.Influences.Persons,
			WorkOfArts: p.Influences.WorkOfArts,
		}
	}
	return resp
}

func toMovieResponse(m domain.Movie) movieResponse {
	return movieResponse{UID: m.Root.UID, Title: m.Root.Title, Permalink: m.Root.Permalink}
}
