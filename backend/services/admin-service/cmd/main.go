package main

import (
	"context"
	"net/http"
	"time"

	_ "time/tzdata" // Load timezone data

	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/admin"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/app"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/config"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/controllers"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/services"
	internal_utils "github.com/newsroom/mono-repo/backend/services/admin-service/internal/utils"
	"github.com/newsroom/mono-repo/backend/shared/go-repositories"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize the application:", err)
	}
	defer application.Close()

	// Repositories
	articleRepo := repositories.NewArticleRepository(application.DB)
	termRepo := repositories.NewTermRepository(application.DB)
	authorRepo := repositories.NewAuthorRepository(application.DB)
	editorRepo := repositories.NewEditorRepository(application.DB)
	flatPageRepo := repositories.NewFlatPageRepository(application.DB)
	userEditRepo := repositories.NewUserEditRepository(application.DB)
	mostPopularRepo := repositories.NewMostPopularRepository(application.DB)
	auditRepo := repositories.NewAuditLogRepository(application.DB)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := app.SeedDefaults(seedCtx, termRepo, editorRepo, cfg.LDFlag_SeedDbWithDefaultEditor); err != nil {
		utils.Logger.Fatal("Failed to seed defaults:", err)
	}
	seedCancel()

	imageSizes, err := internal_utils.LoadImageSizes(cfg.ImageVersionsFile)
	if err != nil {
		utils.Logger.Fatal("Failed to load image versions:", err)
	}
	site, err := admin.NewNewsroomSite()
	if err != nil {
		utils.Logger.Fatal("Failed to build the admin site:", err)
	}

	// Services
	choicesService := services.NewChoicesService(imageSizes)
	articleService := services.NewArticleService(
		articleRepo, termRepo, authorRepo, editorRepo, userEditRepo, auditRepo,
		choicesService, services.NewConflictNotifier(cfg), cfg.RecentEditorsWindow,
	)
	authorService := services.NewAuthorService(authorRepo, articleService, auditRepo)
	taxonomyService := services.NewTaxonomyService(termRepo, auditRepo)
	flatPageService := services.NewFlatPageService(flatPageRepo, auditRepo)
	userEditService := services.NewUserEditService(userEditRepo, cfg.UserEditRetention)
	mostPopularService := services.NewMostPopularService(mostPopularRepo, auditRepo)
	authService := services.NewAuthService(editorRepo, cfg.RSAPrivateKey, cfg.TokenExpiry)

	// Prune old user edits every hour
	c := cron.New()
	_, schErr := c.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := userEditService.Prune(ctx); err != nil {
			utils.Logger.WithError(err).Error("Scheduled user edit pruning failed")
		}
	})
	if schErr != nil {
		utils.Logger.WithError(schErr).Fatal("Failed to schedule user edit pruning job")
	}
	c.Start()
	defer c.Stop()

	// Controllers + router
	router := controllers.NewRouter(controllers.Handlers{
		Health:    controllers.NewHealthController(application.DB),
		Auth:      controllers.NewAuthController(authService, cfg),
		Registry:  controllers.NewRegistryController(site, choicesService),
		Articles:  controllers.NewArticleController(articleService, userEditService),
		Authors:   controllers.NewAuthorController(authorService),
		Taxonomy:  controllers.NewTaxonomyController(taxonomyService),
		FlatPages: controllers.NewFlatPageController(flatPageService),
		Records:   controllers.NewRecordsController(userEditService, mostPopularService),
	}, cfg.RSAPublicKey)

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}

	// CORS config
	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Failed to start server:", err)
	}
}
