package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/dtos"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/services"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

// RecordsController serves the plainly registered models: user edits and
// most-popular snapshots.
type RecordsController struct {
	userEditService    *services.UserEditService
	mostPopularService *services.MostPopularService
	validate           *validator.Validate
}

func NewRecordsController(userEdits *services.UserEditService, mostPopular *services.MostPopularService) *RecordsController {
	return &RecordsController{
		userEditService:    userEdits,
		mostPopularService: mostPopular,
		validate:           dtos.NewValidator(),
	}
}

// GET /api/v1/admin/user-edits?article=&page=&page_size=
func (c *RecordsController) ListUserEditsHandler(w http.ResponseWriter, r *http.Request) {
	articleID, err := queryUUID(r, "article")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	page, err := queryInt(r, "page", 1)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	pageSize, err := queryInt(r, "page_size", services.DefaultPageSize)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	edits, err := c.userEditService.List(r.Context(), articleID, page, pageSize)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, edits)
}

// GET /api/v1/admin/most-popular?limit=
func (c *RecordsController) ListMostPopularHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", services.DefaultPageSize)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	rows, err := c.mostPopularService.List(r.Context(), limit)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rows)
}

// POST /api/v1/admin/most-popular
func (c *RecordsController) CreateMostPopularHandler(w http.ResponseWriter, r *http.Request) {
	editorID, err := getEditorID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	var req dtos.MostPopularRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	row, err := c.mostPopularService.Create(r.Context(), editorID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, row)
}
