package controllers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/admin"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/services"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

// RegistryController exposes the admin site's model descriptors and the
// fixed choice lists so a client can render the change lists and forms.
type RegistryController struct {
	site    *admin.Site
	choices *services.ChoicesService
}

func NewRegistryController(site *admin.Site, choices *services.ChoicesService) *RegistryController {
	return &RegistryController{site: site, choices: choices}
}

// GET /api/v1/admin/models
func (c *RegistryController) ListModelsHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, c.site.Models())
}

// GET /api/v1/admin/models/{name}
func (c *RegistryController) GetModelHandler(w http.ResponseWriter, r *http.Request) {
	m, ok := c.site.Get(mux.Vars(r)["name"])
	if !ok {
		utils.HandleAppError(w, utils.NotFound("Model not registered"))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, m)
}

// GET /api/v1/admin/choices/image-sizes
func (c *RegistryController) ImageSizesHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, c.choices.ImageSizes())
}

// GET /api/v1/admin/choices/schedule-results
func (c *RegistryController) ScheduleResultsHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, c.choices.ScheduleResults())
}
