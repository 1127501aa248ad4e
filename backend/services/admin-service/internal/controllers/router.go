package controllers

import (
	"crypto/rsa"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/routes"
	"github.com/newsroom/mono-repo/backend/shared/go-middleware"
)

// Handlers bundles every controller the admin service mounts.
type Handlers struct {
	Health    *HealthController
	Auth      *AuthController
	Registry  *RegistryController
	Articles  *ArticleController
	Authors   *AuthorController
	Taxonomy  *TaxonomyController
	FlatPages *FlatPageController
	Records   *RecordsController
}

// NewRouter mounts the public routes and the editor-only admin routes.
func NewRouter(h Handlers, pub *rsa.PublicKey) *mux.Router {
	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, h.Health.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.AuthLogin, h.Auth.LoginHandler).Methods(http.MethodPost)
	router.Handle(routes.AuthLogout,
		middleware.OptionalAuthMiddleware(pub)(http.HandlerFunc(h.Auth.LogoutHandler)),
	).Methods(http.MethodPost)

	// Protected routes (JWT middleware)
	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.EditorAuthMiddleware(pub))

	secured.HandleFunc(routes.AuthMe, h.Auth.MeHandler).Methods(http.MethodGet)

	// Registry + choices
	secured.HandleFunc(routes.Models, h.Registry.ListModelsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ModelByName, h.Registry.GetModelHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ChoicesImageSizes, h.Registry.ImageSizesHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ChoicesScheduleResult, h.Registry.ScheduleResultsHandler).Methods(http.MethodGet)

	// Articles
	secured.HandleFunc(routes.Articles, h.Articles.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Articles, h.Articles.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.ArticleByID, h.Articles.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ArticleByID, h.Articles.UpdateHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.ArticleByID, h.Articles.DeleteHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.ArticleEdit, h.Articles.EditHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ArticleEdits, h.Articles.UserEditsHandler).Methods(http.MethodGet)

	// Authors
	secured.HandleFunc(routes.Authors, h.Authors.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Authors, h.Authors.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.AuthorByID, h.Authors.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.AuthorByID, h.Authors.UpdateHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.AuthorByID, h.Authors.DeleteHandler).Methods(http.MethodDelete)

	// Taxonomy
	secured.HandleFunc(routes.Terms, h.Taxonomy.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Terms, h.Taxonomy.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.TermByID, h.Taxonomy.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.TermByID, h.Taxonomy.UpdateHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.TermByID, h.Taxonomy.DeleteHandler).Methods(http.MethodDelete)

	// Flat pages: reading is open to editors, changes need an admin.
	secured.HandleFunc(routes.FlatPages, h.FlatPages.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.FlatPageByID, h.FlatPages.GetHandler).Methods(http.MethodGet)
	adminOnly := secured.NewRoute().Subrouter()
	adminOnly.Use(middleware.AdminOnly)
	adminOnly.HandleFunc(routes.FlatPages, h.FlatPages.CreateHandler).Methods(http.MethodPost)
	adminOnly.HandleFunc(routes.FlatPageByID, h.FlatPages.UpdateHandler).Methods(http.MethodPut)
	adminOnly.HandleFunc(routes.FlatPageByID, h.FlatPages.DeleteHandler).Methods(http.MethodDelete)

	// User edits + most popular
	secured.HandleFunc(routes.UserEdits, h.Records.ListUserEditsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.MostPopular, h.Records.ListMostPopularHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.MostPopular, h.Records.CreateMostPopularHandler).Methods(http.MethodPost)

	return router
}
