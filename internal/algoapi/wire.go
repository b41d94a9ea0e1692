// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package algoapi

import "github.com/tomtom215/cinegraph/internal/models"

// Pelicula is a movie as serialized by the Algorithm Service.
// Unknown fields (similarity relationships) are ignored on decode.
type Pelicula struct {
	PeliculaID     int64    `json:"peliculaId"`
	Titulo         string   `json:"titulo"`
	Anio           int      `json:"año"`
	PromedioRating float64  `json:"promedioRating"`
	Duracion       int      `json:"duracion"`
	Generos        []Nombre `json:"generos"`
	Actores        []Nombre `json:"actores"`
}

// Nombre is the {"nombre": ...} node shape used for genres and actors.
type Nombre struct {
	Nombre string `json:"nombre"`
}

// Arista is one weighted edge of a spanning tree.
type Arista struct {
	Origen         *Pelicula `json:"origen"`
	Destino        *Pelicula `json:"destino"`
	Peso           float64   `json:"peso"`
	GenerosComunes int       `json:"generosComunes"`
}

// ToMovie converts the wire record into the canonical model.
func (p *Pelicula) ToMovie() models.Movie {
	m := models.Movie{
		ID:       p.PeliculaID,
		Title:    p.Titulo,
		Year:     p.Anio,
		Duration: p.Duracion,
		Rating:   p.PromedioRating,
		Genres:   names(p.Generos),
	}
	if len(p.Actores) > 0 {
		m.Actors = names(p.Actores)
	}
	return m
}

// ToMovies converts a wire list, never returning nil.
func ToMovies(in []Pelicula) []models.Movie {
	out := make([]models.Movie, 0, len(in))
	for i := range in {
		out = append(out, in[i].ToMovie())
	}
	return out
}

func names(in []Nombre) []string {
	out := make([]string, 0, len(in))
	for _, n := range in {
		if n.Nombre != "" {
			out = append(out, n.Nombre)
		}
	}
	return out
}
