package controllers

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/dtos"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/services"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

// kindByPath maps the {kind} route segment to a taxonomy.
var kindByPath = map[string]models.TaxonomyKind{
	"categories": models.KindCategory,
	"regions":    models.KindRegion,
	"topics":     models.KindTopic,
}

// TaxonomyController serves categories, regions and topics from one set
// of handlers.
type TaxonomyController struct {
	taxonomyService *services.TaxonomyService
	validate        *validator.Validate
}

func NewTaxonomyController(taxonomyService *services.TaxonomyService) *TaxonomyController {
	return &TaxonomyController{taxonomyService: taxonomyService, validate: dtos.NewValidator()}
}

func kindFromPath(r *http.Request) (models.TaxonomyKind, error) {
	kind, ok := kindByPath[mux.Vars(r)["kind"]]
	if !ok {
		return "", utils.NotFound("Unknown taxonomy")
	}
	return kind, nil
}

// GET /api/v1/admin/{kind}?q=
func (c *TaxonomyController) ListHandler(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFromPath(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	terms, err := c.taxonomyService.List(r.Context(), kind, strings.TrimSpace(r.URL.Query().Get("q")))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, terms)
}

// GET /api/v1/admin/{kind}/{id}
func (c *TaxonomyController) GetHandler(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFromPath(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	term, err := c.taxonomyService.Get(r.Context(), kind, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, term)
}

// POST /api/v1/admin/{kind}
func (c *TaxonomyController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	editorID, err := getEditorID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	kind, err := kindFromPath(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	var req dtos.TermRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	term, err := c.taxonomyService.Create(r.Context(), editorID, kind, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, term)
}

// PUT /api/v1/admin/{kind}/{id}
func (c *TaxonomyController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	editorID, err := getEditorID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	kind, err := kindFromPath(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	var req dtos.TermRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	term, err := c.taxonomyService.Update(r.Context(), editorID, kind, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, term)
}

// DELETE /api/v1/admin/{kind}/{id}
func (c *TaxonomyController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	editorID, err := getEditorID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	kind, err := kindFromPath(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if err := c.taxonomyService.Delete(r.Context(), editorID, kind, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ConfirmationResponse{Message: "Deleted", ID: id.String()})
}
