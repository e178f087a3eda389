package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/havenapp/haven-api/api"
	"github.com/havenapp/haven-api/api/handlers"
	mocksdb "github.com/havenapp/haven-api/databases/mocks"
	"github.com/havenapp/haven-api/models"
)

func newAuthHandler(adb *mocksdb.AdminDatabase, sdb *mocksdb.SessionDatabase) handlers.Auth {
	return handlers.Auth{
		ADB:       adb,
		SDB:       sdb,
		JWTSecret: []byte("test-secret"),
		OTP:       handlers.NewOtpStore(5 * time.Minute),
	}
}

func TestAuth_AdminSignupHandler(t *testing.T) {
	adb := &mocksdb.AdminDatabase{}
	// the email is stored exactly as typed, casing included
	adb.On("Save", mock.Anything, models.AdminAccount{Email: "Admin@Haven.local", Password: "hunter2"}).Return(nil)

	auth := newAuthHandler(adb, &mocksdb.SessionDatabase{})

	body := `{"email": "Admin@Haven.local", "password": "hunter2"}`
	req, _ := http.NewRequest("POST", "/api/v1/auth/admin/signup", strings.NewReader(body))
	rr := httptest.NewRecorder()

	http.HandlerFunc(auth.AdminSignupHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	adb.AssertExpectations(t)
}

func TestAuth_AdminSignupHandlerRejectsShortPassword(t *testing.T) {
	adb := &mocksdb.AdminDatabase{}
	auth := newAuthHandler(adb, &mocksdb.SessionDatabase{})

	body := `{"email": "admin@haven.local", "password": "abc12"}`
	req, _ := http.NewRequest("POST", "/api/v1/auth/admin/signup", strings.NewReader(body))
	rr := httptest.NewRecorder()

	http.HandlerFunc(auth.AdminSignupHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	adb.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuth_AdminSignupHandlerMissingFields(t *testing.T) {
	adb := &mocksdb.AdminDatabase{}
	auth := newAuthHandler(adb, &mocksdb.SessionDatabase{})

	req, _ := http.NewRequest("POST", "/api/v1/auth/admin/signup", strings.NewReader(`{"email": "a@b.c"}`))
	rr := httptest.NewRecorder()

	http.HandlerFunc(auth.AdminSignupHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	adb.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuth_AdminLoginHandler(t *testing.T) {
	adb := &mocksdb.AdminDatabase{}
	adb.On("Get", mock.Anything).Return(&models.AdminAccount{Email: "admin@haven.local", Password: "hunter2"}, nil)
	sdb := &mocksdb.SessionDatabase{}
	sdb.On("AdminLogin", mock.Anything).Return(nil)

	auth := newAuthHandler(adb, sdb)

	body := `{"email": "admin@haven.local", "password": "hunter2"}`
	req, _ := http.NewRequest("POST", "/api/v1/auth/admin/login", strings.NewReader(body))
	rr := httptest.NewRecorder()

	http.HandlerFunc(auth.AdminLoginHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got map[string]string
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.NotEmpty(t, got["token"])

	token, err := jwt.Parse(got["token"], func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "authority", claims["scope"])
	sdb.AssertExpectations(t)
}

func TestAuth_AdminLoginHandlerWrongPassword(t *testing.T) {
	adb := &mocksdb.AdminDatabase{}
	adb.On("Get", mock.Anything).Return(&models.AdminAccount{Email: "admin@haven.local", Password: "hunter2"}, nil)
	sdb := &mocksdb.SessionDatabase{}

	auth := newAuthHandler(adb, sdb)

	body := `{"email": "admin@haven.local", "password": "Hunter2"}`
	req, _ := http.NewRequest("POST", "/api/v1/auth/admin/login", strings.NewReader(body))
	rr := httptest.NewRecorder()

	http.HandlerFunc(auth.AdminLoginHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	sdb.AssertNotCalled(t, "AdminLogin", mock.Anything)
}

func TestAuth_AdminLoginHandlerCaseDifferingEmail(t *testing.T) {
	adb := &mocksdb.AdminDatabase{}
	adb.On("Get", mock.Anything).Return(&models.AdminAccount{Email: "admin@haven.local", Password: "hunter2"}, nil)
	sdb := &mocksdb.SessionDatabase{}

	auth := newAuthHandler(adb, sdb)

	body := `{"email": "ADMIN@HAVEN.LOCAL", "password": "hunter2"}`
	req, _ := http.NewRequest("POST", "/api/v1/auth/admin/login", strings.NewReader(body))
	rr := httptest.NewRecorder()

	http.HandlerFunc(auth.AdminLoginHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	sdb.AssertNotCalled(t, "AdminLogin", mock.Anything)
}

func TestAuth_AdminLoginHandlerNoAccount(t *testing.T) {
	adb := &mocksdb.AdminDatabase{}
	adb.On("Get", mock.Anything).Return(nil, errors.New("mongo: no documents in result"))

	auth := newAuthHandler(adb, &mocksdb.SessionDatabase{})

	body := `{"email": "admin@haven.local", "password": "hunter2"}`
	req, _ := http.NewRequest("POST", "/api/v1/auth/admin/login", strings.NewReader(body))
	rr := httptest.NewRecorder()

	http.HandlerFunc(auth.AdminLoginHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_AdminLogoutHandler(t *testing.T) {
	sdb := &mocksdb.SessionDatabase{}
	sdb.On("AdminLogout", mock.Anything).Return(nil)

	auth := newAuthHandler(&mocksdb.AdminDatabase{}, sdb)

	req, _ := http.NewRequest("POST", "/api/v1/auth/admin/logout", nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(auth.AdminLogoutHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	sdb.AssertExpectations(t)
}

func TestAuth_VictimOtpAndVerify(t *testing.T) {
	api.SetupGuardian()

	sdb := &mocksdb.SessionDatabase{}
	sdb.On("VictimLogin", mock.Anything, "+91 98765 43210").Return(nil)

	auth := newAuthHandler(&mocksdb.AdminDatabase{}, sdb)

	// request an OTP; delivery is simulated so the code comes back in
	// the response body
	req, _ := http.NewRequest("POST", "/api/v1/auth/victim/otp", strings.NewReader(`{"phone": "+91 98765 43210"}`))
	rr := httptest.NewRecorder()
	http.HandlerFunc(auth.VictimOtpHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var otpResp map[string]string
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &otpResp))
	assert.Len(t, otpResp["otp"], 6)

	// verify with the generated code
	body := `{"phone": "+91 98765 43210", "otp": "` + otpResp["otp"] + `"}`
	req, _ = http.NewRequest("POST", "/api/v1/auth/victim/verify", strings.NewReader(body))
	rr = httptest.NewRecorder()
	http.HandlerFunc(auth.VictimVerifyHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var verifyResp map[string]string
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &verifyResp))
	assert.NotEmpty(t, verifyResp["token"])
	sdb.AssertExpectations(t)

	// a code cannot be replayed
	req, _ = http.NewRequest("POST", "/api/v1/auth/victim/verify", strings.NewReader(body))
	rr = httptest.NewRecorder()
	http.HandlerFunc(auth.VictimVerifyHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_VictimVerifyHandlerWrongCode(t *testing.T) {
	api.SetupGuardian()

	sdb := &mocksdb.SessionDatabase{}
	auth := newAuthHandler(&mocksdb.AdminDatabase{}, sdb)

	req, _ := http.NewRequest("POST", "/api/v1/auth/victim/otp", strings.NewReader(`{"phone": "+91 11111 11111"}`))
	rr := httptest.NewRecorder()
	http.HandlerFunc(auth.VictimOtpHandler).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	body := `{"phone": "+91 11111 11111", "otp": "000000"}`
	req, _ = http.NewRequest("POST", "/api/v1/auth/victim/verify", strings.NewReader(body))
	rr = httptest.NewRecorder()
	http.HandlerFunc(auth.VictimVerifyHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	sdb.AssertNotCalled(t, "VictimLogin", mock.Anything, mock.Anything)
}

func TestAuth_VictimLogoutHandler(t *testing.T) {
	api.SetupGuardian()

	sdb := &mocksdb.SessionDatabase{}
	sdb.On("VictimLogout", mock.Anything).Return(nil)

	auth := newAuthHandler(&mocksdb.AdminDatabase{}, sdb)

	req, _ := http.NewRequest("POST", "/api/v1/auth/victim/logout", nil)
	req.Header.Set("Authorization", "Bearer abc123")
	rr := httptest.NewRecorder()

	http.HandlerFunc(auth.VictimLogoutHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	sdb.AssertExpectations(t)
}

func TestAuth_PinHandler(t *testing.T) {
	sdb := &mocksdb.SessionDatabase{}
	sdb.On("SetPin", mock.Anything, "1234").Return(nil)

	auth := newAuthHandler(&mocksdb.AdminDatabase{}, sdb)

	req, _ := http.NewRequest("POST", "/api/v1/auth/pin", strings.NewReader(`{"pin": "1234"}`))
	rr := httptest.NewRecorder()

	http.HandlerFunc(auth.PinHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	sdb.AssertExpectations(t)
}

func TestAuth_PinHandlerRejectsMalformedPins(t *testing.T) {
	sdb := &mocksdb.SessionDatabase{}
	auth := newAuthHandler(&mocksdb.AdminDatabase{}, sdb)

	for _, pin := range []string{"123", "12345", "12a4", "", "١٢٣٤"} {
		req, _ := http.NewRequest("POST", "/api/v1/auth/pin", strings.NewReader(`{"pin": "`+pin+`"}`))
		rr := httptest.NewRecorder()

		http.HandlerFunc(auth.PinHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "pin %q should be rejected", pin)
	}
	sdb.AssertNotCalled(t, "SetPin", mock.Anything, mock.Anything)
}

func TestAuth_SessionHandler(t *testing.T) {
	sdb := &mocksdb.SessionDatabase{}
	sdb.On("Get", mock.Anything).Return(&models.SessionState{
		AdminLoggedIn: true,
		SessionPin:    "1234",
	}, nil)

	auth := newAuthHandler(&mocksdb.AdminDatabase{}, sdb)

	req, _ := http.NewRequest("GET", "/api/v1/auth/session", nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(auth.SessionHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got models.SessionState
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.True(t, got.AdminLoggedIn)
	assert.Equal(t, "1234", got.SessionPin)
}
