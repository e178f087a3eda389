package handlers

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/havenapp/haven-api/api"
	"github.com/havenapp/haven-api/config"
	"github.com/havenapp/haven-api/databases"
	"github.com/havenapp/haven-api/models"
)

var errInvalidInput = errors.New("invalid input")

// Auth bundles the three identity gates: the singleton admin account,
// the simulated victim OTP login, and the self-chosen session PIN.
type Auth struct {
	ADB       databases.AdminDatabase
	SDB       databases.SessionDatabase
	JWTSecret []byte
	OTP       *OtpStore
}

// OtpStore holds generated one-time codes in memory until they are
// verified or expire. There is no delivery channel; the code goes back
// to the caller, which is the point of the demo.
type OtpStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	codes map[string]otpEntry
}

type otpEntry struct {
	code    string
	expires time.Time
}

// NewOtpStore returns a store whose codes expire after ttl. A
// background sweep drops expired codes so unverified requests do not
// accumulate.
func NewOtpStore(ttl time.Duration) *OtpStore {
	s := &OtpStore{
		ttl:   ttl,
		codes: make(map[string]otpEntry),
	}
	go s.sweep()
	return s
}

func (s *OtpStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.removeExpired(time.Now())
	}
}

func (s *OtpStore) removeExpired(now time.Time) {
	s.mu.Lock()
	for phone, entry := range s.codes {
		if now.After(entry.expires) {
			delete(s.codes, phone)
		}
	}
	s.mu.Unlock()
}

// Generate creates and remembers a 6-digit code for the phone
func (s *OtpStore) Generate(phone string) string {
	code := ""
	for i := 0; i < 6; i++ {
		code += string(rune('0' + rand.Intn(10)))
	}
	s.mu.Lock()
	s.codes[phone] = otpEntry{code: code, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return code
}

// Verify consumes the code for the phone when it matches and has not
// expired
func (s *OtpStore) Verify(phone, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.codes[phone]
	if !ok || time.Now().After(entry.expires) || entry.code != code {
		return false
	}
	delete(s.codes, phone)
	return true
}

type adminAccountRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// AdminSignupHandler stores the authority account. The account is a
// singleton: signing up again overwrites the previous credential. The
// email is stored exactly as typed; login compares byte for byte.
func (a Auth) AdminSignupHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req adminAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if req.Email == "" || req.Password == "" {
		config.ErrorStatus("email and password required", http.StatusBadRequest, w, errInvalidInput)
		return
	}
	if len(req.Password) < 6 {
		config.ErrorStatus("password must be at least 6 characters", http.StatusBadRequest, w, errInvalidInput)
		return
	}

	if err := a.ADB.Save(r.Context(), models.AdminAccount{Email: req.Email, Password: req.Password}); err != nil {
		config.ErrorStatus("failed to save admin account", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(`{"message": "Admin account created"}`))
}

// AdminLoginHandler checks the submitted credentials against the stored
// singleton with an exact string comparison (the demo keeps passwords
// in plaintext on purpose) and returns an authority JWT on success. A
// mismatch rejects without touching the logged-in flag.
func (a Auth) AdminLoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req adminAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if req.Email == "" || req.Password == "" {
		config.ErrorStatus("email and password required", http.StatusBadRequest, w, errInvalidInput)
		return
	}

	admin, err := a.ADB.Get(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
		return
	}

	if admin.Email != req.Email || admin.Password != req.Password {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
		return
	}

	claims := jwt.MapClaims{
		"sub":   admin.Email,
		"scope": "authority",
		"typ":   "access",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.JWTSecret)
	if err != nil {
		config.ErrorStatus("token generation failed", http.StatusInternalServerError, w, err)
		return
	}

	if err := a.SDB.AdminLogin(r.Context()); err != nil {
		config.ErrorStatus("failed to persist session", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(adminLoginResponse{Token: signed, Email: admin.Email})
}

// AdminLogoutHandler clears the authority logged-in flag, which also
// invalidates outstanding tokens
func (a Auth) AdminLogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.SDB.AdminLogout(r.Context()); err != nil {
		config.ErrorStatus("failed to clear session", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Logged out"}`))
}

type otpRequest struct {
	Phone string `json:"phone"`
}

// VictimOtpHandler generates the 6-digit login code. Delivery is
// simulated: the code is returned in the response the way the source
// app showed it in a toast.
func (a Auth) VictimOtpHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req otpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Phone == "" {
		config.ErrorStatus("phone is required", http.StatusBadRequest, w, errInvalidInput)
		return
	}

	code := a.OTP.Generate(req.Phone)
	zap.S().Infow("generated victim otp", "phone", req.Phone)

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"otp": code})
}

type otpVerifyRequest struct {
	Phone string `json:"phone"`
	Otp   string `json:"otp"`
}

// VictimVerifyHandler matches the submitted code against the generated
// one; on success the victim flags are persisted and a bearer token is
// issued. Wrong codes just get a retry message, with no lockout.
func (a Auth) VictimVerifyHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req otpVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if !a.OTP.Verify(req.Phone, req.Otp) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid OTP"})
		return
	}

	if err := a.SDB.VictimLogin(r.Context(), req.Phone); err != nil {
		config.ErrorStatus("failed to persist session", http.StatusInternalServerError, w, err)
		return
	}

	token := api.IssueVictimToken(req.Phone, r)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"token": token, "phone": req.Phone})
}

// VictimLogoutHandler revokes the bearer token and clears every victim
// flag, the session PIN included
func (a Auth) VictimLogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := api.RevokeVictimToken(r); err != nil {
		zap.S().With(err).Warn("failed to revoke victim token")
	}
	if err := a.SDB.VictimLogout(r.Context()); err != nil {
		config.ErrorStatus("failed to clear session", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Logged out"}`))
}

type pinRequest struct {
	Pin string `json:"pin"`
}

// PinHandler adopts any syntactically valid 4-digit string as the
// session identity. There is no registration step: the first PIN typed
// becomes canonical for the session, and its only use is grouping "my
// cases".
func (a Auth) PinHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req pinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if !validPin(req.Pin) {
		config.ErrorStatus("pin must be exactly 4 digits", http.StatusBadRequest, w, errInvalidInput)
		return
	}

	if err := a.SDB.SetPin(r.Context(), req.Pin); err != nil {
		config.ErrorStatus("failed to persist session", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "PIN set"}`))
}

// SessionHandler returns the current session flags
func (a Auth) SessionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	state, err := a.SDB.Get(r.Context())
	if err != nil {
		config.ErrorStatus("failed to read session", http.StatusInternalServerError, w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(state)
}

func validPin(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
