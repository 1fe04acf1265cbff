package main

import (
	"context"
	"log"
	"time"

	"github.com/rakibul58/mpms-backend/internal/config"
	"github.com/rakibul58/mpms-backend/internal/domain"
	"github.com/rakibul58/mpms-backend/internal/service"
	"github.com/rakibul58/mpms-backend/internal/storage"
	"github.com/rakibul58/mpms-backend/internal/token"
)

// seed populates a fresh database with a demo workspace: one admin, one
// manager, three members, a project with two sprints and a handful of
// tasks and comments. Safe to run only against an empty database, repeated
// runs fail on the duplicate emails.
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

	ctx := context.Background()

	admin, err := userSvc.Create(ctx, domain.CreateUserInput{
		Name:       "Admin User",
		Email:      "admin@example.com",
		Password:   "admin12345",
		Role:       domain.RoleAdmin,
		Department: "Operations",
	})
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	manager, err := userSvc.Create(ctx, domain.CreateUserInput{
		Name:       "Maya Lindqvist",
		Email:      "maya@example.com",
		Password:   "manager12345",
		Role:       domain.RoleManager,
		Department: "Delivery",
	})
	if err != nil {
		log.Fatalf("Failed to create manager: %v", err)
	}

	memberSpecs := []struct{ name, email, dept string }{
		{"Jonas Berg", "jonas@example.com", "Engineering"},
		{"Priya Nair", "priya@example.com", "Engineering"},
		{"Tom Okafor", "tom@example.com", "Design"},
	}
	members := make([]*domain.User, 0, len(memberSpecs))
	for _, m := range memberSpecs {
		res, err := authSvc.Register(ctx, domain.RegisterInput{
			Name:       m.name,
			Email:      m.email,
			Password:   "member12345",
			Department: m.dept,
		})
		if err != nil {
			log.Fatalf("Failed to register %s: %v", m.email, err)
		}
		members = append(members, res.User)
	}

	start := time.Now().AddDate(0, 0, -14)
	end := start.AddDate(0, 2, 0)
	budget := 48000.0

	project, err := projectSvc.Create(ctx, domain.CreateProjectInput{
		Title:         "Website Redesign",
		Client:        "Northwind Traders",
		Description:   "Full redesign of the public marketing site.",
		StartDate:     start,
		EndDate:       &end,
		Budget:        &budget,
		Status:        domain.ProjectActive,
		TeamMemberIDs: []uint{members[0].ID, members[1].ID, members[2].ID},
		ManagerIDs:    []uint{manager.ID},
	}, admin.ID)
	if err != nil {
		log.Fatalf("Failed to create project: %v", err)
	}

	sprint1, err := sprintSvc.Create(ctx, domain.CreateSprintInput{
		Title:       "Discovery",
		ProjectID:   project.ID,
		Description: "Audit the current site and agree the information architecture.",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 14),
		Status:      domain.SprintCompleted,
	})
	if err != nil {
		log.Fatalf("Failed to create sprint: %v", err)
	}

	sprint2, err := sprintSvc.Create(ctx, domain.CreateSprintInput{
		Title:       "Build",
		ProjectID:   project.ID,
		Description: "Implement the new templates.",
		StartDate:   start.AddDate(0, 0, 14),
		EndDate:     start.AddDate(0, 0, 28),
		Status:      domain.SprintActive,
	})
	if err != nil {
		log.Fatalf("Failed to create sprint: %v", err)
	}

	due := time.Now().AddDate(0, 0, 5)
	estimate := 16.0

	taskSpecs := []domain.CreateTaskInput{
		{
			Title:       "Content inventory",
			Description: "List every page and who owns it.",
			ProjectID:   project.ID,
			SprintID:    &sprint1.ID,
			AssigneeIDs: []uint{members[2].ID},
			Priority:    domain.PriorityMedium,
			Status:      domain.TaskDone,
		},
		{
			Title:          "Homepage template",
			Description:    "New hero, navigation and footer.",
			ProjectID:      project.ID,
			SprintID:       &sprint2.ID,
			AssigneeIDs:    []uint{members[0].ID, members[1].ID},
			Estimate:       &estimate,
			Priority:       domain.PriorityHigh,
			Status:         domain.TaskInProgress,
			DueDate:        &due,
			RequiresReview: true,
		},
		{
			Title:       "Set up staging environment",
			ProjectID:   project.ID,
			SprintID:    &sprint2.ID,
			AssigneeIDs: []uint{members[1].ID},
			Priority:    domain.PriorityUrgent,
			Status:      domain.TaskTodo,
			DueDate:     &due,
		},
	}

	var firstTask *domain.Task
	for _, in := range taskSpecs {
		task, err := taskSvc.Create(ctx, in, manager.ID)
		if err != nil {
			log.Fatalf("Failed to create task %q: %v", in.Title, err)
		}
		if firstTask == nil {
			firstTask = task
		}
	}

	if _, err := taskSvc.AddSubtask(ctx, firstTask.ID, "Export sitemap from CMS"); err != nil {
		log.Fatalf("Failed to add subtask: %v", err)
	}

	comment, err := commentSvc.Create(ctx, firstTask.ID, domain.CreateCommentInput{
		Content: "Inventory spreadsheet is in the shared drive.",
	}, members[2].ID)
	if err != nil {
		log.Fatalf("Failed to create comment: %v", err)
	}
	if _, err := commentSvc.Create(ctx, firstTask.ID, domain.CreateCommentInput{
		Content:         "Thanks, reviewing it now.",
		ParentCommentID: &comment.ID,
	}, manager.ID); err != nil {
		log.Fatalf("Failed to create reply: %v", err)
	}

	log.Printf("Seeded project %q (slug %s) with %d tasks", project.Title, project.Slug, len(taskSpecs))
	log.Println("Logins: admin@example.com / admin12345, maya@example.com / manager12345, members / member12345")
}
