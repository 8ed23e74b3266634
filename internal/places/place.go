package places

import (
	"cmp"
	"slices"
)

type PlaceType string

const (
	PlaceSchool         PlaceType = "school"
	PlaceHospital       PlaceType = "hospital"
	PlaceTransitStation PlaceType = "transit_station"
	PlaceOther          PlaceType = "other"
)

// Categories are the provider categories queried for every lookup.
var Categories = []PlaceType{PlaceSchool, PlaceHospital, PlaceTransitStation}

type Place struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Type PlaceType `json:"type"`
	Lat  float64   `json:"lat"`
	Lng  float64   `json:"lng"`
}

// tagTypes maps provider type tags onto our place types.
var tagTypes = map[string]PlaceType{
	"school":             PlaceSchool,
	"primary_school":     PlaceSchool,
	"secondary_school":   PlaceSchool,
	"university":         PlaceSchool,
	"hospital":           PlaceHospital,
	"transit_station":    PlaceTransitStation,
	"bus_station":        PlaceTransitStation,
	"train_station":      PlaceTransitStation,
	"subway_station":     PlaceTransitStation,
	"light_rail_station": PlaceTransitStation,
}

// Classify returns the type of the first recognised tag, or PlaceOther.
func Classify(tags []string) PlaceType {
	for _, tag := range tags {
		if t, ok := tagTypes[tag]; ok {
			return t
		}
	}
	return PlaceOther
}

func typeRank(t PlaceType) int {
	if i := slices.Index(Categories, t); i >= 0 {
		return i
	}
	return len(Categories)
}

func sortPlaces(places []Place) {
	slices.SortFunc(places, func(a, b Place) int {
		return cmp.Or(
			cmp.Compare(typeRank(a.Type), typeRank(b.Type)),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.ID, b.ID),
		)
	})
}
