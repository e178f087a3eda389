package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/havenapp/haven-api/ai"
	"github.com/havenapp/haven-api/api"
	"github.com/havenapp/haven-api/api/scheduler"
	"github.com/havenapp/haven-api/config"
	"github.com/havenapp/haven-api/databases"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	dbHelper databases.DatabaseHelper
}

// HealthCheckResponse is the body served at /health
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// bearer-token cache for victim sessions
	api.SetupGuardian()

	r := mux.NewRouter()
	r.Use(api.TimeoutMiddleware(30 * time.Second))

	sdb := databases.NewSessionDatabase(a.dbHelper)
	adminAuth := api.AdminAuth{Secret: []byte(a.Config.JWTSecret), SDB: sdb}

	ollama := ai.NewOllamaClient(a.Config.OllamaURL, a.Config.OllamaModel)
	feed := NewCaseFeed()
	mailer := NewAlertMailer(a.Config.SendgridKey, a.Config.AlertEmailTo)

	// covert posts come from the canned pools unless the deployment
	// opts into the local model
	var generator ai.Generator = ai.NewTemplateGenerator()
	if a.Config.NarrativeSource == "model" {
		generator = ai.NewOllamaGenerator(ollama)
	}

	c := Case{
		DB:        databases.NewCaseDatabase(a.dbHelper),
		Generator: generator,
		Feed:      feed,
		Mailer:    mailer,
	}
	auth := Auth{
		ADB:       databases.NewAdminDatabase(a.dbHelper),
		SDB:       sdb,
		JWTSecret: []byte(a.Config.JWTSecret),
		OTP:       NewOtpStore(5 * time.Minute),
	}
	sc := SafeContact{DB: databases.NewSafeContactDatabase(a.dbHelper)}
	chat := Chat{AI: ollama}
	cloudinaryHandler := CloudinaryHandler{}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	r.HandleFunc("/ws/cases", feed.HandleCasesWebSocket)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/admin/signup", http.HandlerFunc(auth.AdminSignupHandler)).Methods("POST")
	apiCreate.Handle("/auth/admin/login", http.HandlerFunc(auth.AdminLoginHandler)).Methods("POST")
	apiCreate.Handle("/auth/admin/logout", adminAuth.Middleware(http.HandlerFunc(auth.AdminLogoutHandler))).Methods("POST")
	apiCreate.Handle("/auth/victim/otp", http.HandlerFunc(auth.VictimOtpHandler)).Methods("POST")
	apiCreate.Handle("/auth/victim/verify", http.HandlerFunc(auth.VictimVerifyHandler)).Methods("POST")
	apiCreate.Handle("/auth/victim/logout", api.VictimMiddleware(http.HandlerFunc(auth.VictimLogoutHandler))).Methods("POST")
	apiCreate.Handle("/auth/pin", http.HandlerFunc(auth.PinHandler)).Methods("POST")
	apiCreate.Handle("/auth/session", http.HandlerFunc(auth.SessionHandler)).Methods("GET")

	apiCreate.Handle("/cases", http.HandlerFunc(c.CreateCaseHandler)).Methods("POST")
	apiCreate.Handle("/cases", http.HandlerFunc(c.CasesHandler)).Methods("GET")
	apiCreate.Handle("/cases/stats", http.HandlerFunc(c.CaseStatsHandler)).Methods("GET")
	apiCreate.Handle("/cases/demo-seed", http.HandlerFunc(c.DemoSeedHandler)).Methods("POST")
	apiCreate.Handle("/cases/{case_id}", http.HandlerFunc(c.CaseByIDHandler)).Methods("GET")
	apiCreate.Handle("/cases/{case_id}/status", adminAuth.Middleware(http.HandlerFunc(c.UpdateCaseStatusHandler))).Methods("PATCH")

	apiCreate.Handle("/safety-places", http.HandlerFunc(SafetyPlacesHandler)).Methods("GET")

	apiCreate.Handle("/safe-contacts", api.VictimMiddleware(http.HandlerFunc(sc.SafeContactsHandler))).Methods("GET")
	apiCreate.Handle("/safe-contacts", api.VictimMiddleware(http.HandlerFunc(sc.CreateSafeContactHandler))).Methods("POST")
	apiCreate.Handle("/safe-contacts/{contact_id}", api.VictimMiddleware(http.HandlerFunc(sc.DeleteSafeContactHandler))).Methods("DELETE")

	apiCreate.Handle("/chat/support", api.VictimMiddleware(http.HandlerFunc(chat.SupportChatHandler))).Methods("POST")
	apiCreate.Handle("/chat/legal", api.VictimMiddleware(http.HandlerFunc(chat.LegalChatHandler))).Methods("POST")

	apiCreate.Handle("/generate-signature", api.VictimMiddleware(http.HandlerFunc(cloudinaryHandler.GenerateSignature))).Methods("POST")
	apiCreate.Handle("/upload-evidence", api.VictimMiddleware(http.HandlerFunc(cloudinaryHandler.UploadEvidenceHandler))).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("haven-api has connected to the database")

	// start the daily digest scheduler
	s := scheduler.NewScheduler(databases.NewCaseDatabase(a.dbHelper), &a.Config)
	s.Start()

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, `{"alive": true}`)
}
