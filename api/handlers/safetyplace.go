package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/havenapp/haven-api/config"
	"github.com/havenapp/haven-api/safety"
)

// SafetyPlacesHandler returns the fixed roster of nearby safe places
// positioned around the caller's coordinates
func SafetyPlacesHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	latStr := r.URL.Query().Get("lat")
	lngStr := r.URL.Query().Get("lng")

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		config.ErrorStatus("lat must be a number", http.StatusBadRequest, w, err)
		return
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		config.ErrorStatus("lng must be a number", http.StatusBadRequest, w, err)
		return
	}

	_ = json.NewEncoder(w).Encode(safety.NearbyPlaces(lat, lng))
}
