package repository

import "github.com/UnknownOlympus/hermes/internal/models"

// DefaultPlaces returns the landmarks of Dolores Hidalgo the guide starts with.
func DefaultPlaces() []models.Place {
	return []models.Place{
		{
			Name:        "Parroquia de Nuestra Señora de los Dolores",
			Description: "Templo barroco donde Miguel Hidalgo dio el Grito de Independencia en 1810.",
			Coordinates: models.Coordinates{Latitude: 21.1561, Longitude: -100.9316},
			Category:    models.CategoryChurch,
			MarkerColor: models.MarkerRed,
		},
		{
			Name:        "Museo Casa de Hidalgo",
			Description: "Casa donde vivió el cura Hidalgo, con documentos y objetos de la época.",
			Coordinates: models.Coordinates{Latitude: 21.1567, Longitude: -100.9334},
			Category:    models.CategoryMuseum,
			MarkerColor: models.MarkerBlue,
		},
		{
			Name:        "Jardín Principal",
			Description: "Plaza central famosa por sus nieves de sabores exóticos.",
			Coordinates: models.Coordinates{Latitude: 21.1558, Longitude: -100.9322},
			Category:    models.CategorySquare,
			MarkerColor: models.MarkerGreen,
		},
		{
			Name:        "Museo José Alfredo Jiménez",
			Description: "Casa natal del compositor, dedicada a su vida y su música.",
			Coordinates: models.Coordinates{Latitude: 21.1552, Longitude: -100.9348},
			Category:    models.CategoryMuseum,
			MarkerColor: models.MarkerBlue,
		},
		{
			Name:        "Mercado Municipal",
			Description: "Cocina tradicional guanajuatense y antojitos a un paso del centro.",
			Coordinates: models.Coordinates{Latitude: 21.1575, Longitude: -100.9305},
			Category:    models.CategoryRestaurant,
			MarkerColor: models.MarkerOrange,
		},
	}
}
