// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package registry

// User-facing messages. The catalog and the Algorithm Service speak Spanish,
// so the status slot does too.
const (
	MsgSelectMovie        = "Por favor selecciona una película"
	MsgSelectBothMovies   = "Por favor selecciona ambas películas"
	MsgDistinctMovies     = "Selecciona dos películas distintas"
	MsgInvalidMinutes     = "Ingresa un tiempo válido en minutos"
	MsgSelectGenres       = "Selecciona al menos un género"
	MsgSelectGenre        = "Selecciona un género"
	MsgInvalidCount       = "Ingresa una cantidad válida"
	MsgInvalidTraversal   = "Ingresa una profundidad y un límite válidos"
	MsgUnknownAlgorithm   = "Algoritmo desconocido"
	MsgAlgorithmFailed    = "Error al ejecutar algoritmo"
	MsgGenreMixFailed     = "Error al generar mezcla de géneros"
	MsgGenreFilterFailed  = "Error filtrando por género"
	MsgTopFailed          = "Error al cargar películas principales"
	MsgTopLoaded          = "Característica: Películas principales cargadas"
	MsgCatalogLoadFailed  = "Error cargando películas"
	MsgCatalogTitle       = "Todas las Películas"
	MsgUnknownMoviePrefix = "película #"
)
