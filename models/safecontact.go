package models

// SafeContact is a trusted NGO or helper the victim saves for quick reach
type SafeContact struct {
	ID    string `json:"id" bson:"_id"`
	Name  string `json:"name" bson:"name"`
	Type  string `json:"type" bson:"type"` // NGO or Helper
	Phone string `json:"phone" bson:"phone"`
}
