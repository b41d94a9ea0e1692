// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package models

// Selection is the ephemeral set of user choices an algorithm may need.
// A zero movie id means "nothing selected".
//
// Budgets and counts are pointers so that an absent value (nil, takes the
// configured default) differs from an explicit 0, which is kept and rejected
// by the variant that needs it. Likewise a nil Genres is unset while an
// empty non-nil list is an explicit empty mix.
type Selection struct {
	MovieID int64 `json:"movie_id,omitempty" validate:"gte=0"`
	StartID int64 `json:"start_id,omitempty" validate:"gte=0"`
	EndID   int64 `json:"end_id,omitempty" validate:"gte=0"`

	MarathonMinutes *int `json:"marathon_minutes,omitempty" validate:"omitempty,gte=0,lte=100000"`
	ExactMinutes    *int `json:"exact_minutes,omitempty" validate:"omitempty,gte=0,lte=100000"`
	DPMinutes       *int `json:"dp_minutes,omitempty" validate:"omitempty,gte=0,lte=100000"`
	BBMinutes       *int `json:"bb_minutes,omitempty" validate:"omitempty,gte=0,lte=100000"`

	Genres []string `json:"genres,omitempty" validate:"omitempty,max=20,dive,max=100"`
	Genre  string   `json:"genre,omitempty" validate:"max=100"`

	Depth           *int `json:"depth,omitempty" validate:"omitempty,gte=0,lte=10"`
	Limit           *int `json:"limit,omitempty" validate:"omitempty,gte=0,lte=500"`
	TopN            *int `json:"top_n,omitempty" validate:"omitempty,gte=0,lte=500"`
	Minimum         *int `json:"minimum,omitempty" validate:"omitempty,gte=0,lte=500"`
	CombinationSize *int `json:"combination_size,omitempty" validate:"omitempty,gte=0,lte=20"`
}

// Int returns a pointer to v, for building selections in code.
func Int(v int) *int {
	return &v
}

// IntValue dereferences p, reading nil as 0.
func IntValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// WithDefaults returns a copy of s where every unset budget and count and an
// unset genre mix fall back to the values in defaults. Explicit values,
// including 0 and an empty genre list, are kept. Movie ids are never
// defaulted. The copy shares no memory with s or defaults.
func (s Selection) WithDefaults(defaults Selection) Selection {
	out := s
	fill := func(v **int, d *int) {
		switch {
		case *v != nil:
			*v = Int(**v)
		case d != nil:
			*v = Int(*d)
		}
	}
	fill(&out.MarathonMinutes, defaults.MarathonMinutes)
	fill(&out.ExactMinutes, defaults.ExactMinutes)
	fill(&out.DPMinutes, defaults.DPMinutes)
	fill(&out.BBMinutes, defaults.BBMinutes)
	fill(&out.Depth, defaults.Depth)
	fill(&out.Limit, defaults.Limit)
	fill(&out.TopN, defaults.TopN)
	fill(&out.Minimum, defaults.Minimum)
	fill(&out.CombinationSize, defaults.CombinationSize)
	switch {
	case out.Genres != nil:
		out.Genres = append(make([]string, 0, len(out.Genres)), out.Genres...)
	case defaults.Genres != nil:
		out.Genres = append(make([]string, 0, len(defaults.Genres)), defaults.Genres...)
	}
	return out
}
