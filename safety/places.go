// Package safety provides the nearby-resource lookup shown on the map
// overlay. The data set is fixed; only the coordinates move with the
// caller.
package safety

import "github.com/havenapp/haven-api/models"

// NearbyPlaces returns the canned list of police stations, shelters and
// NGOs positioned relative to the given coordinates. Deterministic: the
// same input always yields the same five records.
func NearbyPlaces(lat, lng float64) []models.SafetyPlace {
	return []models.SafetyPlace{
		{
			ID:       "1",
			Name:     "City Police Station (HQ)",
			Type:     "Police",
			Address:  "42 Central Ave, Downtown",
			Distance: "0.8 km",
			Phone:    "100 / 011-23456789",
			Lat:      lat + 0.005,
			Lng:      lng + 0.003,
		},
		{
			ID:       "2",
			Name:     "Safe Haven Women's Shelter",
			Type:     "Shelter",
			Address:  "15 Peace St, West Side",
			Distance: "1.2 km",
			Phone:    "1800-11-2233",
			Lat:      lat - 0.004,
			Lng:      lng + 0.006,
		},
		{
			ID:       "3",
			Name:     "Empower Girls NGO",
			Type:     "NGO",
			Address:  "Building 7, Sector 4",
			Distance: "2.5 km",
			Phone:    "011-98765432",
			Lat:      lat + 0.008,
			Lng:      lng - 0.002,
		},
		{
			ID:       "4",
			Name:     "Regional Women's Protection Cell",
			Type:     "Police",
			Address:  "88 Justice Road",
			Distance: "3.1 km",
			Phone:    "1091 (Women Helpline)",
			Lat:      lat - 0.002,
			Lng:      lng - 0.005,
		},
		{
			ID:       "5",
			Name:     "Community Care Center",
			Type:     "Shelter",
			Address:  "102 Hope Lane",
			Distance: "4.0 km",
			Phone:    "011-44556677",
			Lat:      lat + 0.010,
			Lng:      lng + 0.010,
		},
	}
}
