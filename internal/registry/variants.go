// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package registry

import (
	"fmt"
	"net/http"

	"github.com/tomtom215/cinegraph/internal/models"
)

// Variant is the registry key of one algorithm request.
type Variant string

// Closed set of variants.
const (
	VariantBFS                  Variant = "bfs"
	VariantDFS                  Variant = "dfs"
	VariantDijkstraPath         Variant = "dijkstra-path"
	VariantDijkstraNearest      Variant = "dijkstra-nearest"
	VariantGreedyRecommendation Variant = "greedy-recommendation"
	VariantGreedyTop            Variant = "greedy-top"
	VariantGreedyMarathon       Variant = "greedy-marathon"
	VariantQuicksortRating      Variant = "quicksort-rating"
	VariantQuicksortYear        Variant = "quicksort-year"
	VariantQuicksortDuration    Variant = "quicksort-duration"
	VariantMergesortRating      Variant = "mergesort-rating"
	VariantMergesortYear        Variant = "mergesort-year"
	VariantMergesortDuration    Variant = "mergesort-duration"
	VariantMergesortTitle       Variant = "mergesort-title"
	VariantGenreMix             Variant = "backtracking-genre-mix"
	VariantExactMarathon        Variant = "backtracking-exact-time"
	VariantCombinations         Variant = "backtracking-combinations"
	VariantDPOptimal            Variant = "dp-optimal"
	VariantDPQuantity           Variant = "dp-quantity"
	VariantDPMinimum            Variant = "dp-minimum"
	VariantPrimMST              Variant = "prim-mst"
	VariantKruskalMST           Variant = "kruskal-mst"
	VariantBBOptimal            Variant = "bb-optimal"
	VariantBBQuantity           Variant = "bb-quantity"
	VariantBBMinimum            Variant = "bb-minimum"
	VariantTopRated             Variant = "top-rated"
	VariantGenreFilter          Variant = "genre-filter"
)

func fromTitle(prefix string) func(models.Selection, TitleLookup) string {
	return func(sel models.Selection, lookup TitleLookup) string {
		return fmt.Sprintf(`%s "%s"`, prefix, lookup.TitleFor(sel.MovieID))
	}
}

func fixedTitle(title string) func(models.Selection, TitleLookup) string {
	return func(models.Selection, TitleLookup) string { return title }
}

func minutesTitle(format string, field Field) func(models.Selection, TitleLookup) string {
	return func(sel models.Selection, _ TitleLookup) string {
		v, _ := field.intValue(&sel)
		return fmt.Sprintf(format, v)
	}
}

func minimumTitle(format string, field Field) func(models.Selection, TitleLookup) string {
	return func(sel models.Selection, _ TitleLookup) string {
		v, _ := field.intValue(&sel)
		return fmt.Sprintf(format, v, models.IntValue(sel.Minimum))
	}
}

// standardDescriptors is the full variant table. Routes are relative to the
// catalog root (/api/peliculas) or the algorithms root (/api/algoritmos).
func standardDescriptors() []Descriptor {
	traversal := map[string]Field{"profundidad": FieldDepth, "limite": FieldLimit}
	dpBudget := map[string]Field{"tiempoMaximo": FieldDPMinutes}
	bbBudget := map[string]Field{"tiempoMaximo": FieldBBMinutes}

	return []Descriptor{
		{
			Variant: VariantBFS, Tag: models.TagTraversalBFS, API: APICatalog,
			Description: "Búsqueda en amplitud por películas similares",
			Route:       "/{movie_id}/bfs", Query: traversal, Shape: ShapeDirectList,
			Title: fromTitle("BFS desde"),
		},
		{
			Variant: VariantDFS, Tag: models.TagTraversalDFS, API: APICatalog,
			Description: "Búsqueda en profundidad por películas similares",
			Route:       "/{movie_id}/dfs", Query: traversal, Shape: ShapeDirectList,
			Title: fromTitle("DFS desde"),
		},
		{
			Variant: VariantDijkstraPath, Tag: models.TagShortestPath, API: APIAlgorithms,
			Description: "Camino de menor costo entre dos películas",
			Route:       "/dijkstra/camino/{start_id}/{end_id}", DistinctEndpoints: true, Shape: ShapeDirectList,
			Title: func(sel models.Selection, lookup TitleLookup) string {
				return fmt.Sprintf(`Camino Más Corto: "%s" → "%s"`, lookup.TitleFor(sel.StartID), lookup.TitleFor(sel.EndID))
			},
		},
		{
			Variant: VariantDijkstraNearest, Tag: models.TagShortestPath, API: APIAlgorithms,
			Description: "Las N películas más cercanas según Dijkstra",
			Route:       "/dijkstra/cercanas/{movie_id}", Query: map[string]Field{"n": FieldTopN}, Shape: ShapeDirectList,
			Title: fromTitle("Películas Cercanas a"),
		},
		{
			Variant: VariantGreedyRecommendation, Tag: models.TagGreedy, API: APIAlgorithms,
			Description: "Recomendación voraz por el género más frecuente",
			Route:       "/greedy/recomendacion", Shape: ShapeDirectList,
			Title: fixedTitle("Recomendación Greedy"),
		},
		{
			Variant: VariantGreedyTop, Tag: models.TagGreedy, API: APIAlgorithms,
			Description: "Top N voraz por calificación",
			Route:       "/greedy/top", Query: map[string]Field{"n": FieldTopN}, Shape: ShapeDirectList,
			Title: minutesTitle("Top %d Greedy", FieldTopN),
		},
		{
			Variant: VariantGreedyMarathon, Tag: models.TagGreedy, API: APIAlgorithms,
			Description: "Maratón voraz dentro de un tiempo máximo",
			Route:       "/greedy/maraton", Query: map[string]Field{"tiempoMaximo": FieldMarathonMinutes}, Shape: ShapeDirectList,
			Title: minutesTitle("Maratón Greedy (%d min)", FieldMarathonMinutes),
		},
		{
			Variant: VariantQuicksortRating, Tag: models.TagQuicksort, API: APIAlgorithms,
			Description: "QuickSort por calificación", Route: "/quicksort/rating", Shape: ShapeDirectList,
			Title: fixedTitle("Ordenado por Calificación"),
		},
		{
			Variant: VariantQuicksortYear, Tag: models.TagQuicksort, API: APIAlgorithms,
			Description: "QuickSort por año", Route: "/quicksort/año", Shape: ShapeDirectList,
			Title: fixedTitle("Ordenado por Año"),
		},
		{
			Variant: VariantQuicksortDuration, Tag: models.TagQuicksort, API: APIAlgorithms,
			Description: "QuickSort por duración", Route: "/quicksort/duracion", Shape: ShapeDirectList,
			Title: fixedTitle("Ordenado por Duración"),
		},
		{
			Variant: VariantMergesortRating, Tag: models.TagMergesort, API: APIAlgorithms,
			Description: "MergeSort estable por calificación", Route: "/mergesort/rating", Shape: ShapeDirectList,
			Title: fixedTitle("Ordenado por Calificación (MergeSort)"),
		},
		{
			Variant: VariantMergesortYear, Tag: models.TagMergesort, API: APIAlgorithms,
			Description: "MergeSort estable por año", Route: "/mergesort/año", Shape: ShapeDirectList,
			Title: fixedTitle("Ordenado por Año (MergeSort)"),
		},
		{
			Variant: VariantMergesortDuration, Tag: models.TagMergesort, API: APIAlgorithms,
			Description: "MergeSort estable por duración", Route: "/mergesort/duracion", Shape: ShapeDirectList,
			Title: fixedTitle("Ordenado por Duración (MergeSort)"),
		},
		{
			Variant: VariantMergesortTitle, Tag: models.TagMergesort, API: APIAlgorithms,
			Description: "MergeSort estable por título", Route: "/mergesort/titulo", Shape: ShapeDirectList,
			Title: fixedTitle("Ordenado por Título (MergeSort)"),
		},
		{
			Variant: VariantGenreMix, Tag: models.TagBacktracking, API: APIAlgorithms, Method: http.MethodPost,
			Description: "Combinación con una película por género",
			Route:       "/backtracking/mix-generos", GenresBody: true, Shape: ShapeCandidateList,
			Title:          fixedTitle("Mezcla de Géneros"),
			FailureMessage: MsgGenreMixFailed,
		},
		{
			Variant: VariantExactMarathon, Tag: models.TagBacktracking, API: APIAlgorithms,
			Description: "Maratones que suman exactamente el tiempo pedido",
			Route:       "/backtracking/maraton-exacto", Query: map[string]Field{"tiempo": FieldExactMinutes}, Shape: ShapeCandidateList,
			Title: minutesTitle("Maratón Exacto (%d min)", FieldExactMinutes),
		},
		{
			Variant: VariantCombinations, Tag: models.TagBacktracking, API: APIAlgorithms,
			Description: "Combinaciones de N películas",
			Route:       "/backtracking/combinaciones", Query: map[string]Field{"cantidad": FieldCombinationSize}, Shape: ShapeCandidateList,
			Title: minutesTitle("Combinaciones de %d Películas", FieldCombinationSize),
		},
		{
			Variant: VariantDPOptimal, Tag: models.TagDynamicProgramming, API: APIAlgorithms,
			Description: "Maratón que maximiza la calificación (mochila 0/1)",
			Route:       "/dp/maraton-optimo", Query: dpBudget, Shape: ShapeWrappedMetrics,
			Title: minutesTitle("Maratón Óptimo DP (%d min)", FieldDPMinutes),
		},
		{
			Variant: VariantDPQuantity, Tag: models.TagDynamicProgramming, API: APIAlgorithms,
			Description: "Maratón que maximiza la cantidad de películas",
			Route:       "/dp/maraton-cantidad", Query: dpBudget, Shape: ShapeWrappedMetrics,
			Title: minutesTitle("Maratón por Cantidad DP (%d min)", FieldDPMinutes),
		},
		{
			Variant: VariantDPMinimum, Tag: models.TagDynamicProgramming, API: APIAlgorithms,
			Description: "Maratón óptimo con un mínimo de películas",
			Route:       "/dp/maraton-minimo",
			Query:       map[string]Field{"tiempoMaximo": FieldDPMinutes, "minimo": FieldMinimum},
			Shape:       ShapeWrappedMetrics,
			Title:       minimumTitle("Maratón Mínimo DP (%d min, mínimo %d)", FieldDPMinutes),
		},
		{
			Variant: VariantPrimMST, Tag: models.TagMSTPrim, API: APIAlgorithms,
			Description: "Árbol de expansión mínima desde un nodo",
			Route:       "/prim/mst", Shape: ShapeEdgeList,
			Title: fixedTitle("Árbol de Expansión Mínima (Prim)"),
		},
		{
			Variant: VariantKruskalMST, Tag: models.TagMSTKruskal, API: APIAlgorithms,
			Description: "Árbol de expansión mínima global",
			Route:       "/kruskal/mst", Shape: ShapeEdgeList,
			Title: fixedTitle("Árbol de Expansión Mínima (Kruskal)"),
		},
		{
			Variant: VariantBBOptimal, Tag: models.TagBranchAndBound, API: APIAlgorithms,
			Description: "Maratón óptimo con poda por cotas",
			Route:       "/bb/maraton-optimo", Query: bbBudget, Shape: ShapeWrappedMetrics,
			Title: minutesTitle("Maratón Óptimo Branch & Bound (%d min)", FieldBBMinutes),
		},
		{
			Variant: VariantBBQuantity, Tag: models.TagBranchAndBound, API: APIAlgorithms,
			Description: "Máxima cantidad de películas con poda por cotas",
			Route:       "/bb/maraton-cantidad", Query: bbBudget, Shape: ShapeWrappedMetrics,
			Title: minutesTitle("Maratón por Cantidad Branch & Bound (%d min)", FieldBBMinutes),
		},
		{
			Variant: VariantBBMinimum, Tag: models.TagBranchAndBound, API: APIAlgorithms,
			Description: "Maratón óptimo con mínimo de películas y poda",
			Route:       "/bb/maraton-minimo",
			Query:       map[string]Field{"tiempoMaximo": FieldBBMinutes, "minimo": FieldMinimum},
			Shape:       ShapeWrappedMetrics,
			Title:       minimumTitle("Maratón Mínimo Branch & Bound (%d min, mínimo %d)", FieldBBMinutes),
		},
		{
			Variant: VariantTopRated, Tag: models.TagBrowse, API: APICatalog,
			Description: "Películas ordenadas por calificación promedio",
			Route:       "/top", Shape: ShapeDirectList,
			Title:          fixedTitle("Películas Mejor Calificadas"),
			FailureMessage: MsgTopFailed,
			SuccessMessage: MsgTopLoaded,
		},
		{
			Variant: VariantGenreFilter, Tag: models.TagFilter, API: APICatalog,
			Description: "Películas de un género",
			Route:       "/genero/{genre}", Shape: ShapeDirectList,
			Title: func(sel models.Selection, _ TitleLookup) string {
				return "Género: " + NormalizeGenre(sel.Genre)
			},
			FailureMessage: MsgGenreFilterFailed,
		},
	}
}
