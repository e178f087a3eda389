package models

// AdminAccount is the singleton authority credential. The store never
// holds more than one; saving overwrites. The password is plaintext by
// design of the demo, so login is an exact string comparison.
type AdminAccount struct {
	Email    string `json:"email" bson:"email"`
	Password string `json:"password" bson:"password"`
}
