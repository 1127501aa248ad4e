package controllers

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/dtos"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/services"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

type FlatPageController struct {
	flatPageService *services.FlatPageService
	validate        *validator.Validate
}

func NewFlatPageController(flatPageService *services.FlatPageService) *FlatPageController {
	return &FlatPageController{flatPageService: flatPageService, validate: dtos.NewValidator()}
}

// GET /api/v1/admin/flatpages?q=
func (c *FlatPageController) ListHandler(w http.ResponseWriter, r *http.Request) {
	pages, err := c.flatPageService.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("q")))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, pages)
}

// GET /api/v1/admin/flatpages/{id}
func (c *FlatPageController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	page, err := c.flatPageService.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, page)
}

// POST /api/v1/admin/flatpages
func (c *FlatPageController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	editorID, err := getEditorID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	var req dtos.FlatPageRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	page, err := c.flatPageService.Create(r.Context(), editorID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, page)
}

// PUT /api/v1/admin/flatpages/{id}
func (c *FlatPageController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	editorID, err := getEditorID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	var req dtos.FlatPageRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	page, err := c.flatPageService.Update(r.Context(), editorID, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, page)
}

// DELETE /api/v1/admin/flatpages/{id}
func (c *FlatPageController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	editorID, err := getEditorID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if err := c.flatPageService.Delete(r.Context(), editorID, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ConfirmationResponse{Message: "Flat page deleted", ID: id.String()})
}
