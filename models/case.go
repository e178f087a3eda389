package models

// Severity labels assigned by the classifier.
const (
	SeverityLow    = "Low"
	SeverityMedium = "Medium"
	SeverityHigh   = "High"
)

// Case status values. "In Progress" carries the space on the wire.
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusClosed     = "Closed"
)

// Case holds the structure for a single report in the cases collection
type Case struct {
	ID                 string          `json:"id" bson:"_id"`
	Pin                string          `json:"pin,omitempty" bson:"pin,omitempty"`
	Name               string          `json:"name" bson:"name"`
	Phone              string          `json:"phone" bson:"phone"`
	PreferredContact   string          `json:"preferredContact" bson:"preferredContact"`
	Location           Location        `json:"location" bson:"location"`
	DurationOfAbuse    string          `json:"durationOfAbuse" bson:"durationOfAbuse"`
	Frequency          string          `json:"frequency" bson:"frequency"`
	CurrentSituation   string          `json:"currentSituation" bson:"currentSituation"`
	CulpritDescription string          `json:"culpritDescription" bson:"culpritDescription"`
	SosMessage         string          `json:"sosMessage" bson:"sosMessage"`
	Severity           string          `json:"severity" bson:"severity"`
	Nature             string          `json:"nature" bson:"nature"`
	RiskLevel          string          `json:"riskLevel" bson:"riskLevel"`
	Status             string          `json:"status" bson:"status"`
	Timestamp          int64           `json:"timestamp" bson:"timestamp"`
	ImageURL           string          `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Timeline           []TimelineEvent `json:"timeline" bson:"timeline"`
}

// Location is the reported incident position
type Location struct {
	Lat     float64 `json:"lat" bson:"lat"`
	Lng     float64 `json:"lng" bson:"lng"`
	Address string  `json:"address" bson:"address"`
}

// TimelineEvent is one immutable entry in a case timeline. Entries are
// append-only; insertion order is chronological order.
type TimelineEvent struct {
	ID        string `json:"id" bson:"id"`
	Event     string `json:"event" bson:"event"`
	Timestamp int64  `json:"timestamp" bson:"timestamp"`
}

// Classification is the severity/nature/risk triple derived from a report
type Classification struct {
	Severity  string `json:"severity" bson:"severity"`
	Nature    string `json:"nature" bson:"nature"`
	RiskLevel string `json:"riskLevel" bson:"riskLevel"`
}

// CaseStats aggregates dashboard counts by status and severity
type CaseStats struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"byStatus"`
	BySeverity map[string]int `json:"bySeverity"`
}
