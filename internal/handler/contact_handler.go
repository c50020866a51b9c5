// internal/handler/contact_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/brightcart/mailblast-backend/internal/model"
	"github.com/brightcart/mailblast-backend/internal/repository"

	"github.com/go-chi/chi/v5"
)

// ContactHandler exposes the minimal group/contact management the
// recipient resolver depends on.
type ContactHandler struct {
	ContactRepo repository.ContactRepositoryInterface
	GroupRepo   repository.GroupRepositoryInterface
}

func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	contact := &model.Contact{
		Email:     body.Email,
		FirstName: body.FirstName,
		LastName:  body.LastName,
	}
	if err := h.ContactRepo.Create(contact); err != nil {
		http.Error(w, "failed to create contact: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contact)
}

func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.ContactRepo.ListAll()
	if err != nil {
		http.Error(w, "failed to fetch contacts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": contacts})
}

func (h *ContactHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.Name == "" || body.Name == model.GroupAll {
		http.Error(w, "invalid group name", http.StatusBadRequest)
		return
	}

	group := &model.Group{Name: body.Name}
	if err := h.GroupRepo.Create(group); err != nil {
		http.Error(w, "failed to create group: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(group)
}

func (h *ContactHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.GroupRepo.ListAll()
	if err != nil {
		http.Error(w, "failed to fetch groups: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": groups})
}

func (h *ContactHandler) AddGroupMember(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid group id", http.StatusBadRequest)
		return
	}

	var body struct {
		ContactID int `json:"contact_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if _, err := h.GroupRepo.GetByID(groupID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	if err := h.GroupRepo.AddMember(groupID, body.ContactID); err != nil {
		http.Error(w, "failed to add member: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"group_id":   groupID,
		"contact_id": body.ContactID,
	})
}
