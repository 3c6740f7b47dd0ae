package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/dhlf/dhcf-backend/internal/db"
	"github.com/dhlf/dhcf-backend/internal/handlers"
	"github.com/dhlf/dhcf-backend/internal/observability"
	"github.com/dhlf/dhcf-backend/internal/pkg/envutil"
	"github.com/dhlf/dhcf-backend/internal/pkg/logger"
	"github.com/dhlf/dhcf-backend/internal/repos"
	"github.com/dhlf/dhcf-backend/internal/rolemap"
	"github.com/dhlf/dhcf-backend/internal/server"
	"github.com/dhlf/dhcf-backend/internal/services"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	shutdownOtel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "dhcf-backend",
		Environment: envutil.GetEnv("APP_ENV", "development", log),
		Version:     "1.0.0",
	})
	if shutdownOtel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOtel(ctx)
		}()
	}

	// Database
	dbService, err := db.New(log)
	if err != nil {
		log.Fatal("Database init failed", "error", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Fatal("Auto migration failed", "error", err)
	}
	theDB := dbService.DB()

	// Role name mappings
	roleNames := rolemap.Defaults()
	if path := os.Getenv("ROLE_MAPPINGS_PATH"); path != "" {
		roleNames, err = rolemap.LoadFile(path)
		if err != nil {
			log.Fatal("Role mappings load failed", "path", path, "error", err)
		}
		log.Info("Loaded role mappings", "path", path, "entries", roleNames.Len())
	}

	// Repos
	log.Info("Setting up repos...")
	domainRepo := repos.NewDomainRepo(theDB, log)
	subdomainRepo := repos.NewSubdomainRepo(theDB, log)
	competencyRepo := repos.NewCompetencyRepo(theDB, log)
	criteriaRepo := repos.NewPerformanceCriteriaRepo(theDB, log)
	roleRepo := repos.NewRoleRepo(theDB, log)
	roleCompetencyRepo := repos.NewRoleCompetencyRepo(theDB, log)
	learningModuleRepo := repos.NewLearningModuleRepo(theDB, log)
	learningModuleCompetencyRepo := repos.NewLearningModuleCompetencyRepo(theDB, log)
	courseRepo := repos.NewCourseRepo(theDB, log)
	courseCompetencyRepo := repos.NewCourseCompetencyRepo(theDB, log)

	// Services
	log.Info("Setting up services...")
	catalogService := services.NewCatalogService(theDB, log, domainRepo, subdomainRepo, competencyRepo, criteriaRepo)
	roleService := services.NewRoleService(theDB, log, roleRepo, competencyRepo, roleCompetencyRepo)
	learningModuleService := services.NewLearningModuleService(theDB, log, learningModuleRepo, learningModuleCompetencyRepo)
	courseService := services.NewCourseService(theDB, log, courseRepo, courseCompetencyRepo)
	mappingService := services.NewMappingService(theDB, log, roleNames, roleRepo, competencyRepo, roleCompetencyRepo)

	// Handlers
	log.Info("Setting up handlers...")
	domainHandler := handlers.NewDomainHandler(log, catalogService)
	competencyHandler := handlers.NewCompetencyHandler(log, catalogService)
	roleHandler := handlers.NewRoleHandler(log, roleService)
	learningModuleHandler := handlers.NewLearningModuleHandler(log, learningModuleService)
	courseHandler := handlers.NewCourseHandler(log, courseService)
	mappingHandler := handlers.NewMappingHandler(log, mappingService)

	// Router
	log.Info("Setting up router...")
	router := server.NewRouter(server.RouterConfig{
		DomainHandler:         domainHandler,
		CompetencyHandler:     competencyHandler,
		RoleHandler:           roleHandler,
		LearningModuleHandler: learningModuleHandler,
		CourseHandler:         courseHandler,
		MappingHandler:        mappingHandler,
	})

	port := envutil.GetEnv("PORT", "3001", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server failed", "error", err)
	}
}
