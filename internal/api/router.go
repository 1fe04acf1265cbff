package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rakibul58/mpms-backend/internal/policy"
	"github.com/rakibul58/mpms-backend/internal/token"
)

// SetupRouter wires every route under /api/v1. Role gates are applied per
// route so the map below doubles as the access matrix.
func SetupRouter(handler *Handler, tokens *token.Manager) *gin.Engine {
	if !handler.dev {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		respond(c, http.StatusOK, "OK", gin.H{"status": "up"})
	})

	authed := Authenticate(tokens)

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", handler.Register)
			auth.POST("/login", handler.Login)
			auth.POST("/refresh-token", handler.RefreshToken)
			auth.POST("/logout", authed, handler.Logout)
			auth.GET("/me", authed, handler.Me)
			auth.POST("/admin/create-user", authed, requireAction(policy.ActionUserManage), handler.AdminCreateUser)
		}

		users := api.Group("/users", authed)
		{
			users.GET("/profile", handler.GetProfile)
			users.PATCH("/profile", handler.UpdateProfile)
			users.POST("/change-password", handler.ChangePassword)
			users.GET("/team-members", handler.GetTeamMembers)
			users.GET("/stats", requireAction(policy.ActionUserManage), handler.GetUserStats)
			users.GET("", requireAction(policy.ActionUserList), handler.ListUsers)
			users.GET("/:id", requireAction(policy.ActionUserList), handler.GetUser)
			users.PATCH("/:id", requireAction(policy.ActionUserManage), handler.UpdateUser)
			users.PATCH("/:id/role", requireAction(policy.ActionUserManage), handler.UpdateUserRole)
			users.DELETE("/:id", requireAction(policy.ActionUserManage), handler.DeleteUser)
		}

		projects := api.Group("/projects", authed)
		{
			projects.GET("/my-projects", handler.ListMyProjects)
			projects.GET("", requireAction(policy.ActionProjectList), handler.ListProjects)
			projects.POST("", requireAction(policy.ActionProjectCreate), handler.CreateProject)
			projects.GET("/:idOrSlug", handler.GetProject)
			projects.GET("/:idOrSlug/stats", handler.GetProjectStats)
			projects.PATCH("/:idOrSlug", requireAction(policy.ActionProjectUpdate), handler.UpdateProject)
			projects.DELETE("/:idOrSlug", requireAction(policy.ActionProjectDelete), handler.DeleteProject)
			projects.POST("/:idOrSlug/team-members", requireAction(policy.ActionProjectMembers), handler.AddTeamMembers)
			projects.DELETE("/:idOrSlug/team-members", requireAction(policy.ActionProjectMembers), handler.RemoveTeamMembers)
		}

		sprints := api.Group("/sprints", authed)
		{
			sprints.POST("", requireAction(policy.ActionSprintManage), handler.CreateSprint)
			sprints.GET("/project/:projectID", handler.ListProjectSprints)
			sprints.GET("/project/:projectID/active", handler.GetActiveSprint)
			sprints.POST("/project/:projectID/reorder", requireAction(policy.ActionSprintManage), handler.ReorderSprints)
			sprints.GET("/:id", handler.GetSprint)
			sprints.GET("/:id/stats", handler.GetSprintStats)
			sprints.PATCH("/:id", requireAction(policy.ActionSprintManage), handler.UpdateSprint)
			sprints.DELETE("/:id", requireAction(policy.ActionSprintManage), handler.DeleteSprint)
		}

		tasks := api.Group("/tasks", authed)
		{
			tasks.GET("/my-tasks", handler.ListMyTasks)
			tasks.POST("", requireAction(policy.ActionTaskManage), handler.CreateTask)
			tasks.GET("/project/:projectID", handler.ListProjectTasks)
			tasks.GET("/project/:projectID/kanban", handler.GetKanbanBoard)
			tasks.GET("/sprint/:sprintID", handler.ListSprintTasks)
			tasks.GET("/:id", handler.GetTask)
			tasks.PATCH("/:id", requireAction(policy.ActionTaskManage), handler.UpdateTask)
			tasks.PATCH("/:id/status", requireAction(policy.ActionTaskStatus), handler.UpdateTaskStatus)
			tasks.POST("/:id/log-time", requireAction(policy.ActionTaskLogTime), handler.LogTime)
			tasks.DELETE("/:id", requireAction(policy.ActionTaskManage), handler.DeleteTask)
			tasks.POST("/:id/subtasks", requireAction(policy.ActionSubtaskManage), handler.AddSubtask)
			tasks.PATCH("/:id/subtasks/:subtaskID", requireAction(policy.ActionSubtaskManage), handler.UpdateSubtask)
			tasks.DELETE("/:id/subtasks/:subtaskID", requireAction(policy.ActionSubtaskManage), handler.DeleteSubtask)
		}

		comments := api.Group("/comments", authed)
		{
			comments.GET("/task/:taskID", handler.ListTaskComments)
			comments.POST("/task/:taskID", requireAction(policy.ActionCommentManage), handler.CreateComment)
			comments.PATCH("/:id", requireAction(policy.ActionCommentManage), handler.UpdateComment)
			comments.DELETE("/:id", requireAction(policy.ActionCommentManage), handler.DeleteComment)
		}

		reports := api.Group("/reports", authed)
		{
			reports.GET("/dashboard", requireAction(policy.ActionReportDashboard), handler.GetDashboardReport)
			reports.GET("/my-report", requireAction(policy.ActionReportSelf), handler.GetMyReport)
			reports.GET("/project/:projectID", requireAction(policy.ActionReportProject), handler.GetProjectReport)
		}
	}

	return router
}
