package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"pulse-backend/internal/models"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type TemplateHandler struct {
	templateStore TemplateStore
}

func NewTemplateHandler(templateStore TemplateStore) *TemplateHandler {
	return &TemplateHandler{templateStore: templateStore}
}

type SaveTemplateRequest struct {
	Department string   `json:"department" validate:"required"`
	Questions  []string `json:"questions" validate:"required,min=1"`
}

func (req *SaveTemplateRequest) normalize() (models.Department, []string, string) {
	dept := models.Department(req.Department)
	if !dept.IsValid() {
		return "", nil, "unknown department"
	}
	questions := make([]string, 0, len(req.Questions))
	for _, q := range req.Questions {
		q = strings.TrimSpace(q)
		if q == "" {
			return "", nil, "all questions must have text"
		}
		questions = append(questions, q)
	}
	return dept, questions, ""
}

// --- GET /admin/templates ---

func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templateStore.FindAll(r.Context())
	if err != nil {
		log.Printf("Error fetching templates: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"templates": templates})
}

// --- POST /admin/templates ---

func (h *TemplateHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req SaveTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "department and at least one question are required")
		return
	}
	dept, questions, msg := req.normalize()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	template := &models.QuestionTemplate{
		Department: dept,
		Questions:  questions,
	}
	if err := h.templateStore.Create(r.Context(), template); err != nil {
		log.Printf("Error creating template: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save template")
		return
	}

	writeJSON(w, http.StatusCreated, template)
}

// --- PUT /admin/templates/{id} ---

// UpdateTemplate edits a template in place. Periods seeded from it
// earlier are unaffected — they own value copies of the questions.
func (h *TemplateHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	templateID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid template ID")
		return
	}

	var req SaveTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "department and at least one question are required")
		return
	}
	dept, questions, msg := req.normalize()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.templateStore.Update(r.Context(), templateID, dept, questions); err != nil {
		if err == mongo.ErrNoDocuments {
			writeError(w, http.StatusNotFound, "question template not found")
			return
		}
		log.Printf("Error updating template: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save template")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "template updated"})
}

// --- DELETE /admin/templates/{id} ---

func (h *TemplateHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	templateID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid template ID")
		return
	}

	if err := h.templateStore.Delete(r.Context(), templateID); err != nil {
		if err == mongo.ErrNoDocuments {
			writeError(w, http.StatusNotFound, "question template not found")
			return
		}
		log.Printf("Error deleting template: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete template")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "template deleted"})
}
