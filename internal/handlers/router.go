package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps bundles everything the router needs.
type Deps struct {
	Jobs         *JobHandler
	Applications *ApplicationHandler
	Resumes      *ResumeHandler
	Preferences  *PreferenceHandler
	Matches      *MatchHandler
	Reminders    *ReminderHandler
	Agent        *AgentHandler
}

// NewRouter builds the Gin engine with CORS and all routes registered.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck)

		api.GET("/jobs", deps.Jobs.ListJobs)
		api.GET("/jobs/search", deps.Jobs.SearchJobs)
		api.GET("/jobs/:id", deps.Jobs.GetJob)

		api.GET("/applications", deps.Applications.ListApplications)
		api.GET("/applications/summary", deps.Applications.Summary)
		api.POST("/applications", deps.Applications.CreateApplication)
		api.GET("/applications/:id", deps.Applications.GetApplication)
		api.PATCH("/applications/:id", deps.Applications.UpdateApplication)
		api.POST("/applications/:id/documents", deps.Applications.SaveDocument)

		api.GET("/resumes", deps.Resumes.ListResumes)
		api.POST("/resumes", deps.Resumes.UploadResume)
		api.GET("/resumes/primary", deps.Resumes.GetPrimary)

		api.GET("/preferences", deps.Preferences.GetPreferences)
		api.PUT("/preferences", deps.Preferences.UpdatePreferences)

		api.GET("/matches", deps.Matches.ListMatches)

		api.POST("/reminders", deps.Reminders.CreateReminder)
		api.POST("/reminders/:id/complete", deps.Reminders.CompleteReminder)

		api.POST("/agent/run", deps.Agent.RunAgent)
	}

	return r
}
