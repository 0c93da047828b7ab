package models

import "time"

// Conventional place categories used by the guide.
const (
	CategoryChurch     = "iglesia"
	CategoryMuseum     = "museo"
	CategoryRestaurant = "restaurante"
	CategorySquare     = "plaza"
)

// Conventional marker hues.
const (
	MarkerRed    = "red"
	MarkerBlue   = "blue"
	MarkerGreen  = "green"
	MarkerOrange = "orange"
	MarkerViolet = "violet"
)

// Place is a point of interest shown on the map and in the card list.
// ID and CreatedAt are assigned by the store on insert and never change afterwards.
type Place struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Coordinates Coordinates `json:"coordinates"`
	Category    string      `json:"category"`
	MarkerColor string      `json:"markerColor"`
	Favorite    bool        `json:"favorite"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// PlaceDraft carries the user-entered fields of a place that does not exist yet.
type PlaceDraft struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Coordinates Coordinates `json:"coordinates"`
	Category    string      `json:"category"`
	MarkerColor string      `json:"markerColor"`
}

// Place converts the draft into a place record without identity.
func (d PlaceDraft) Place() Place {
	return Place{
		Name:        d.Name,
		Description: d.Description,
		Coordinates: d.Coordinates,
		Category:    d.Category,
		MarkerColor: d.MarkerColor,
	}
}

// PlaceStatistics is an aggregate snapshot over the full place collection.
type PlaceStatistics struct {
	TotalPlaces     int            `json:"totalPlaces"`
	FavoriteCount   int            `json:"favoriteCount"`
	CategoryCounts  map[string]int `json:"categoryCounts"`
	MostRecentPlace *Place         `json:"mostRecentPlace"`
}
