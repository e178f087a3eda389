package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/havenapp/haven-api/config"
	"github.com/havenapp/haven-api/models"
)

// demoCases returns the canned walkthrough cases with timestamps
// anchored to the current moment
func demoCases() []models.Case {
	now := time.Now().UnixMilli()

	return []models.Case{
		{
			ID:               "demo-1",
			Name:             "Priya Sharma",
			Phone:            "+91 98765 43210",
			PreferredContact: "WhatsApp",
			Location: models.Location{
				Lat:     28.6139,
				Lng:     77.2090,
				Address: "South Delhi, New Delhi",
			},
			DurationOfAbuse:    "1-3 years",
			Frequency:          "Daily",
			CurrentSituation:   "Experiencing daily verbal abuse and threats. Situation escalating over past few months.",
			CulpritDescription: "Husband, 35 years old, works in IT sector",
			SosMessage:         "Beautiful morning coffee ☕ Thinking about how some days feel longer than others. Sometimes I wish I could just breathe freely without walking on eggshells. Anyone else feel like they need a break from routine? #MorningThoughts #NeedingChange",
			Severity:           models.SeverityHigh,
			Nature:             "Physical and Emotional Abuse",
			RiskLevel:          "Critical - Immediate intervention needed",
			Status:             models.StatusOpen,
			Timestamp:          now - 3600000,
			Timeline: []models.TimelineEvent{
				{ID: "t1", Event: "Case created", Timestamp: now - 3600000},
			},
		},
		{
			ID:               "demo-2",
			Name:             "Anjali Reddy",
			Phone:            "+91 87654 32109",
			PreferredContact: "Phone",
			Location: models.Location{
				Lat:     28.7041,
				Lng:     77.1025,
				Address: "Rohini, New Delhi",
			},
			DurationOfAbuse:    "6 months - 1 year",
			Frequency:          "Multiple times a week",
			CurrentSituation:   "Facing financial control and emotional manipulation. Not allowed to work or meet family.",
			CulpritDescription: "In-laws and husband, living in joint family",
			SosMessage:         "Watching the sunrise 🌅 Reflecting on patterns that keep repeating. It's amazing how some people can make you feel so small in your own home. Grateful for those who truly listen. #NewDay #Hope",
			Severity:           models.SeverityMedium,
			Nature:             "Coercive Control",
			RiskLevel:          "Moderate - Regular monitoring required",
			Status:             models.StatusInProgress,
			Timestamp:          now - 7200000,
			Timeline: []models.TimelineEvent{
				{ID: "t2-1", Event: "Case created", Timestamp: now - 7200000},
				{ID: "t2-2", Event: "Status changed to In Progress", Timestamp: now - 3600000},
			},
		},
		{
			ID:               "demo-3",
			Name:             "Meera Patel",
			Phone:            "+91 76543 21098",
			PreferredContact: "Email",
			Location: models.Location{
				Lat:     28.5355,
				Lng:     77.3910,
				Address: "Noida, Uttar Pradesh",
			},
			DurationOfAbuse:    "More than 3 years",
			Frequency:          "Weekly",
			CurrentSituation:   "Long-term psychological abuse and gaslighting. Recently threats of violence.",
			CulpritDescription: "Husband, 42 years old, businessman",
			SosMessage:         "Lovely flowers today 🌸 But even beauty can't mask the tension at home. Days blend into weeks, weeks into months. If only walls could talk, they'd tell stories no one wants to hear. #StayStrong #OneDay",
			Severity:           models.SeverityHigh,
			Nature:             "Domestic Violence",
			RiskLevel:          "Critical - Immediate intervention needed",
			Status:             models.StatusOpen,
			Timestamp:          now - 10800000,
			Timeline: []models.TimelineEvent{
				{ID: "t3", Event: "Case created", Timestamp: now - 10800000},
			},
		},
		{
			ID:               "demo-4",
			Name:             "Kavita Singh",
			Phone:            "+91 65432 10987",
			PreferredContact: "SMS",
			Location: models.Location{
				Lat:     28.6139,
				Lng:     77.2090,
				Address: "Central Delhi, New Delhi",
			},
			DurationOfAbuse:    "1-6 months",
			Frequency:          "Occasionally",
			CurrentSituation:   "Verbal abuse during arguments, threats of divorce and separation from children.",
			CulpritDescription: "Husband, 38 years old, government employee",
			SosMessage:         "Coffee date with myself ☕ Sometimes solitude is safer than company. Been dealing with increasing pressure lately. Remember: appearing happy doesn't mean you are. #SelfCare #Hidden",
			Severity:           models.SeverityMedium,
			Nature:             "Emotional Manipulation",
			RiskLevel:          "Moderate - Regular monitoring required",
			Status:             models.StatusOpen,
			Timestamp:          now - 14400000,
			Timeline: []models.TimelineEvent{
				{ID: "t4", Event: "Case created", Timestamp: now - 14400000},
			},
		},
	}
}

// DemoSeedHandler loads the walkthrough cases. Seeding only happens
// when the store is empty so real reports are never mixed with canned
// ones.
func (c Case) DemoSeedHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	existing, err := c.DB.List(r.Context(), "")
	if err != nil {
		config.ErrorStatus("failed to check existing cases", http.StatusInternalServerError, w, err)
		return
	}
	if len(existing) > 0 {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message": "Cases already present, demo data not loaded"}`))
		return
	}

	for _, demo := range demoCases() {
		if err := c.DB.Save(r.Context(), demo); err != nil {
			config.ErrorStatus("failed to seed demo case", http.StatusInternalServerError, w, err)
			return
		}
	}
	zap.S().Info("loaded demo cases")

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(`{"message": "Demo data loaded"}`))
}
