package models

// SessionState is the single persistence boundary for every session
// flag: the authority logged-in flag, the victim OTP-verified flag plus
// phone, and the victim's self-chosen 4-digit PIN. One document per
// deployment.
type SessionState struct {
	AdminLoggedIn       bool   `json:"adminLoggedIn" bson:"adminLoggedIn"`
	VictimAuthenticated bool   `json:"victimAuthenticated" bson:"victimAuthenticated"`
	VictimPhone         string `json:"victimPhone" bson:"victimPhone"`
	SessionPin          string `json:"sessionPin" bson:"sessionPin"`
}
