package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/havenapp/haven-api/ai"
	"github.com/havenapp/haven-api/api/handlers"
	mocksdb "github.com/havenapp/haven-api/databases/mocks"
	"github.com/havenapp/haven-api/models"
)

// stubGenerator returns fixed output so handler assertions stay stable
type stubGenerator struct{}

func (stubGenerator) Narrative(_ context.Context, _ ai.FormData, _ string) string {
	return "a covert post"
}

func (stubGenerator) Classify(_ string, form ai.FormData) models.Classification {
	return ai.Classify("", form)
}

func newCaseHandler(db *mocksdb.CaseDatabase) handlers.Case {
	return handlers.Case{
		DB:        db,
		Generator: stubGenerator{},
		Feed:      handlers.NewCaseFeed(),
		Mailer:    handlers.NewAlertMailer("", ""),
	}
}

func TestCase_CreateCaseHandler(t *testing.T) {
	db := &mocksdb.CaseDatabase{}
	db.On("Save", mock.Anything, mock.AnythingOfType("models.Case")).Return(nil)

	c := newCaseHandler(db)

	body := `{
		"pin": "1234",
		"name": "Priya Sharma",
		"phone": "+91 98765 43210",
		"frequency": "Daily",
		"durationOfAbuse": "1-3 years",
		"currentSituation": "threats at home"
	}`
	req, _ := http.NewRequest("POST", "/api/v1/cases", strings.NewReader(body))
	rr := httptest.NewRecorder()

	http.HandlerFunc(c.CreateCaseHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var got models.Case
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "1234", got.Pin)
	assert.Equal(t, "a covert post", got.SosMessage)
	assert.Equal(t, models.SeverityHigh, got.Severity)
	assert.Equal(t, models.StatusOpen, got.Status)
	assert.Len(t, got.Timeline, 1)
	assert.Equal(t, "Case created", got.Timeline[0].Event)

	db.AssertExpectations(t)
}

func TestCase_CreateCaseHandlerMissingName(t *testing.T) {
	db := &mocksdb.CaseDatabase{}
	c := newCaseHandler(db)

	req, _ := http.NewRequest("POST", "/api/v1/cases", strings.NewReader(`{"phone": "123"}`))
	rr := httptest.NewRecorder()

	http.HandlerFunc(c.CreateCaseHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	db.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCase_CreateCaseHandlerMalformedPin(t *testing.T) {
	db := &mocksdb.CaseDatabase{}
	c := newCaseHandler(db)

	body := `{"name": "Priya", "phone": "123", "pin": "12a4"}`
	req, _ := http.NewRequest("POST", "/api/v1/cases", strings.NewReader(body))
	rr := httptest.NewRecorder()

	http.HandlerFunc(c.CreateCaseHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCase_CreateCaseHandlerSurvivesSaveFailure(t *testing.T) {
	db := &mocksdb.CaseDatabase{}
	db.On("Save", mock.Anything, mock.Anything).Return(errors.New("mocked-error"))

	c := newCaseHandler(db)

	body := `{"name": "Priya", "phone": "123"}`
	req, _ := http.NewRequest("POST", "/api/v1/cases", strings.NewReader(body))
	rr := httptest.NewRecorder()

	http.HandlerFunc(c.CreateCaseHandler).ServeHTTP(rr, req)

	// the caller still gets the case back even though the write was lost
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestCase_CasesHandler(t *testing.T) {
	db := &mocksdb.CaseDatabase{}
	db.On("List", mock.Anything, "").Return([]models.Case{
		{ID: "a", Status: models.StatusOpen},
		{ID: "b", Status: models.StatusClosed},
	}, nil)

	c := newCaseHandler(db)

	req, _ := http.NewRequest("GET", "/api/v1/cases", nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(c.CasesHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got []models.Case
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestCase_CasesHandlerPinFilter(t *testing.T) {
	db := &mocksdb.CaseDatabase{}
	db.On("List", mock.Anything, "1234").Return([]models.Case{{ID: "a", Pin: "1234"}}, nil)

	c := newCaseHandler(db)

	req, _ := http.NewRequest("GET", "/api/v1/cases?pin=1234", nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(c.CasesHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got []models.Case
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 1)
	assert.Equal(t, "1234", got[0].Pin)
	db.AssertExpectations(t)
}

func TestCase_CasesHandlerStatusFilter(t *testing.T) {
	db := &mocksdb.CaseDatabase{}
	db.On("List", mock.Anything, "").Return([]models.Case{
		{ID: "a", Status: models.StatusOpen},
		{ID: "b", Status: models.StatusClosed},
	}, nil)

	c := newCaseHandler(db)

	req, _ := http.NewRequest("GET", "/api/v1/cases?status=Open", nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(c.CasesHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got []models.Case
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestCase_CasesHandlerListErrorReturnsEmptyList(t *testing.T) {
	db := &mocksdb.CaseDatabase{}
	db.On("List", mock.Anything, "").Return(nil, errors.New("mocked-error"))

	c := newCaseHandler(db)

	req, _ := http.NewRequest("GET", "/api/v1/cases", nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(c.CasesHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}

func TestCase_CaseByIDHandlerNotFound(t *testing.T) {
	db := &mocksdb.CaseDatabase{}
	db.On("FindByID", mock.Anything, "missing").Return(nil, errors.New("mocked-error"))

	c := newCaseHandler(db)

	req, _ := http.NewRequest("GET", "/api/v1/cases/missing", nil)
	req = mux.SetURLVars(req, map[string]string{"case_id": "missing"})
	rr := httptest.NewRecorder()

	http.HandlerFunc(c.CaseByIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCase_CaseByIDHandler(t *testing.T) {
	db := &mocksdb.CaseDatabase{}
	db.On("FindByID", mock.Anything, "case-1").Return(&models.Case{ID: "case-1", Name: "Priya"}, nil)

	c := newCaseHandler(db)

	req, _ := http.NewRequest("GET", "/api/v1/cases/case-1", nil)
	req = mux.SetURLVars(req, map[string]string{"case_id": "case-1"})
	rr := httptest.NewRecorder()

	http.HandlerFunc(c.CaseByIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got models.Case
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Priya", got.Name)
}

func TestCase_UpdateCaseStatusHandler(t *testing.T) {
	db := &mocksdb.CaseDatabase{}
	db.On("UpdateStatus", mock.Anything, "case-1", models.StatusInProgress).Return(nil)

	c := newCaseHandler(db)

	req, _ := http.NewRequest("PATCH", "/api/v1/cases/case-1/status", strings.NewReader(`{"status": "In Progress"}`))
	req = mux.SetURLVars(req, map[string]string{"case_id": "case-1"})
	rr := httptest.NewRecorder()

	http.HandlerFunc(c.UpdateCaseStatusHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message": "Case status updated"}`, rr.Body.String())
	db.AssertExpectations(t)
}

func TestCase_UpdateCaseStatusHandlerMissingStatus(t *testing.T) {
	db := &mocksdb.CaseDatabase{}
	c := newCaseHandler(db)

	req, _ := http.NewRequest("PATCH", "/api/v1/cases/case-1/status", strings.NewReader(`{}`))
	req = mux.SetURLVars(req, map[string]string{"case_id": "case-1"})
	rr := httptest.NewRecorder()

	http.HandlerFunc(c.UpdateCaseStatusHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	db.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestCase_CaseStatsHandler(t *testing.T) {
	db := &mocksdb.CaseDatabase{}
	db.On("List", mock.Anything, "").Return([]models.Case{
		{ID: "a", Status: models.StatusOpen, Severity: models.SeverityHigh},
		{ID: "b", Status: models.StatusOpen, Severity: models.SeverityMedium},
		{ID: "c", Status: models.StatusClosed, Severity: models.SeverityHigh},
	}, nil)

	c := newCaseHandler(db)

	req, _ := http.NewRequest("GET", "/api/v1/cases/stats", nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(c.CaseStatsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got models.CaseStats
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 2, got.ByStatus[models.StatusOpen])
	assert.Equal(t, 1, got.ByStatus[models.StatusClosed])
	assert.Equal(t, 2, got.BySeverity[models.SeverityHigh])
}

func TestCase_DemoSeedHandler(t *testing.T) {
	db := &mocksdb.CaseDatabase{}
	db.On("List", mock.Anything, "").Return([]models.Case{}, nil)
	db.On("Save", mock.Anything, mock.AnythingOfType("models.Case")).Return(nil).Times(4)

	c := newCaseHandler(db)

	req, _ := http.NewRequest("POST", "/api/v1/cases/demo-seed", nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(c.DemoSeedHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	db.AssertExpectations(t)
}

func TestCase_DemoSeedHandlerSkipsWhenCasesExist(t *testing.T) {
	db := &mocksdb.CaseDatabase{}
	db.On("List", mock.Anything, "").Return([]models.Case{{ID: "a"}}, nil)

	c := newCaseHandler(db)

	req, _ := http.NewRequest("POST", "/api/v1/cases/demo-seed", nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(c.DemoSeedHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	db.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
