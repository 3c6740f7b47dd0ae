package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/dhlf/dhcf-backend/internal/handlers"
)

type RouterConfig struct {
	DomainHandler         *handlers.DomainHandler
	CompetencyHandler     *handlers.CompetencyHandler
	RoleHandler           *handlers.RoleHandler
	LearningModuleHandler *handlers.LearningModuleHandler
	CourseHandler         *handlers.CourseHandler
	MappingHandler        *handlers.MappingHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))
	router.Use(otelgin.Middleware("dhcf-backend"))

	router.GET("/health", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Framework taxonomy
		api.GET("/domains", cfg.DomainHandler.ListDomains)
		api.GET("/domains/:id", cfg.DomainHandler.GetDomain)
		api.GET("/domains/:id/subdomains", cfg.DomainHandler.ListSubdomains)
		api.GET("/competencies", cfg.CompetencyHandler.ListCompetencies)
		api.GET("/competencies/:id", cfg.CompetencyHandler.GetCompetency)

		// Roles
		api.GET("/roles", cfg.RoleHandler.ListRoles)
		api.POST("/roles", cfg.RoleHandler.CreateRole)
		api.GET("/roles/:id", cfg.RoleHandler.GetRole)
		api.PUT("/roles/:id", cfg.RoleHandler.UpdateRole)
		api.DELETE("/roles/:id", cfg.RoleHandler.DeleteRole)
		api.GET("/roles/:id/competencies", cfg.RoleHandler.GetRoleCompetencies)
		api.POST("/roles/:id/competencies", cfg.RoleHandler.MapCompetencies)
		api.DELETE("/roles/:id/competencies/:competencyId", cfg.RoleHandler.UnmapCompetency)

		// Learning modules
		api.GET("/learning-modules", cfg.LearningModuleHandler.ListModules)
		api.POST("/learning-modules", cfg.LearningModuleHandler.CreateModule)
		api.GET("/learning-modules/:id", cfg.LearningModuleHandler.GetModule)
		api.PUT("/learning-modules/:id", cfg.LearningModuleHandler.UpdateModule)
		api.DELETE("/learning-modules/:id", cfg.LearningModuleHandler.DeleteModule)

		// Courses (legacy surface)
		api.GET("/courses", cfg.CourseHandler.ListCourses)
		api.POST("/courses", cfg.CourseHandler.CreateCourse)
		api.GET("/courses/:id", cfg.CourseHandler.GetCourse)
		api.PUT("/courses/:id", cfg.CourseHandler.UpdateCourse)
		api.DELETE("/courses/:id", cfg.CourseHandler.DeleteCourse)

		// Spreadsheet mapping import
		api.POST("/mappings/parse", cfg.MappingHandler.ParseMappingFile)
		api.POST("/mappings/save", cfg.MappingHandler.SaveMappings)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}

func allowedOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}
