package models

// SafetyPlace is one nearby police station, shelter or NGO returned by
// the lookup. Coordinates are offsets from the caller's position.
type SafetyPlace struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"` // Police, Shelter or NGO
	Address  string  `json:"address"`
	Distance string  `json:"distance"`
	Phone    string  `json:"phone"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}
