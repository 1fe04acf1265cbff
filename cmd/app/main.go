package main

import (
	"log"

	"github.com/rakibul58/mpms-backend/internal/api"
	"github.com/rakibul58/mpms-backend/internal/config"
	"github.com/rakibul58/mpms-backend/internal/service"
	"github.com/rakibul58/mpms-backend/internal/storage"
	"github.com/rakibul58/mpms-backend/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := storage.NewPostgresDB(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	repos := storage.NewRepositories(db)
	tokens := token.NewManager(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	authSvc := service.NewAuth(repos.Users, tokens, cfg.BcryptCost)
	userSvc := service.NewUsers(repos.Users, cfg.BcryptCost)
	projectSvc := service.NewProjects(repos.Projects, repos.Users, repos.Reports)
	sprintSvc := service.NewSprints(repos.Sprints, repos.Projects, repos.Tasks, repos.Reports)
	taskSvc := service.NewTasks(repos.Tasks, repos.Projects, repos.Sprints, repos.Users)
	commentSvc := service.NewComments(repos.Comments, repos.Tasks)
	reportSvc := service.NewReports(repos.Reports, repos.Users, repos.Projects)

	handler := api.NewHandler(authSvc, userSvc, projectSvc, sprintSvc, taskSvc, commentSvc, reportSvc, cfg.IsDevelopment())
	router := api.SetupRouter(handler, tokens)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
