package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/havenapp/haven-api/config"
	"github.com/havenapp/haven-api/databases"
	"github.com/havenapp/haven-api/models"
)

// SafeContact exposes the victim's trusted contact list
type SafeContact struct {
	DB databases.SafeContactDatabase
}

// SafeContactsHandler returns all saved contacts
func (s SafeContact) SafeContactsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	contacts, err := s.DB.List(r.Context())
	if err != nil {
		config.ErrorStatus("failed to get safe contacts", http.StatusInternalServerError, w, err)
		return
	}
	if contacts == nil {
		contacts = []models.SafeContact{}
	}
	_ = json.NewEncoder(w).Encode(contacts)
}

type safeContactRequest struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Phone string `json:"phone"`
}

// CreateSafeContactHandler stores a new trusted contact
func (s SafeContact) CreateSafeContactHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req safeContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Name == "" || req.Phone == "" {
		config.ErrorStatus("name and phone required", http.StatusBadRequest, w, errInvalidInput)
		return
	}

	contact := models.SafeContact{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Type:  req.Type,
		Phone: req.Phone,
	}
	if err := s.DB.Save(r.Context(), contact); err != nil {
		config.ErrorStatus("failed to save safe contact", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(contact)
}

// DeleteSafeContactHandler removes a contact by id
func (s SafeContact) DeleteSafeContactHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	contactID := mux.Vars(r)["contact_id"]
	if err := s.DB.Delete(r.Context(), contactID); err != nil {
		config.ErrorStatus("failed to delete safe contact", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Contact removed"}`))
}
