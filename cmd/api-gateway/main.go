package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/BIGSHOL/ijw-Calander-sub010/api/swagger"
	"github.com/BIGSHOL/ijw-Calander-sub010/internal/handler"
	internalmiddleware "github.com/BIGSHOL/ijw-Calander-sub010/internal/middleware"
	"github.com/BIGSHOL/ijw-Calander-sub010/internal/models"
	"github.com/BIGSHOL/ijw-Calander-sub010/internal/repository"
	"github.com/BIGSHOL/ijw-Calander-sub010/internal/service"
	"github.com/BIGSHOL/ijw-Calander-sub010/pkg/cache"
	"github.com/BIGSHOL/ijw-Calander-sub010/pkg/config"
	"github.com/BIGSHOL/ijw-Calander-sub010/pkg/database"
	"github.com/BIGSHOL/ijw-Calander-sub010/pkg/logger"
	corsmiddleware "github.com/BIGSHOL/ijw-Calander-sub010/pkg/middleware/cors"
	reqidmiddleware "github.com/BIGSHOL/ijw-Calander-sub010/pkg/middleware/requestid"
)

// @title IJW Calander Room Plan API
// @version 1.0.0
// @description Daily room assignment engine for academy timetables
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, room catalog cache disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	roomRepo := repository.NewRoomRepository(db)
	slotRepo := repository.NewTimetableSlotRepository(db)
	overrideRepo := repository.NewRoomOverrideRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	roomSvc := service.NewRoomService(roomRepo, cacheRepo, metricsSvc, cfg.RoomPlan.RoomCacheTTL, validate, logr)
	assignSvc := service.NewAssignmentService(
		roomSvc,
		slotRepo,
		overrideRepo,
		db,
		metricsSvc,
		validate,
		logr,
		service.AssignmentConfig{
			ProposalTTL:        cfg.RoomPlan.ProposalTTL,
			LabClassPattern:    cfg.RoomPlan.LabClassPattern,
			LabRoomPattern:     cfg.RoomPlan.LabRoomPattern,
			ConsecutiveGapMin:  cfg.RoomPlan.ConsecutiveGapMin,
			DefaultWeights:     defaultWeights(cfg.RoomPlan.Weights),
			DefaultConstraints: defaultConstraints(cfg.RoomPlan.Constraints),
		},
	)
	exportSvc := service.NewExportService(assignSvc, nil, nil, logr)

	assignHandler := handler.NewAssignmentHandler(assignSvc, exportSvc)
	roomHandler := handler.NewRoomHandler(roomSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if metricsSvc != nil {
		r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		assignments := api.Group("/assignments")
		{
			assignments.POST("/preview", assignHandler.Preview)
			assignments.POST("/apply", assignHandler.Apply)
			assignments.POST("/revalidate", assignHandler.Revalidate)
			assignments.GET("/proposals/:id", assignHandler.GetProposal)
			assignments.GET("/proposals/:id/export", assignHandler.Export)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", roomHandler.List)
			rooms.POST("", roomHandler.Create)
			rooms.GET("/:id", roomHandler.Get)
			rooms.PUT("/:id", roomHandler.Update)
			rooms.DELETE("/:id", roomHandler.Delete)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func defaultWeights(w config.RoomPlanWeights) models.Weights {
	return models.Weights{
		SubjectAffinity:  w.SubjectAffinity,
		CapacityFit:      w.CapacityFit,
		TeacherProximity: w.TeacherProximity,
		Distribution:     w.Distribution,
		GradeGrouping:    w.GradeGrouping,
	}
}

func defaultConstraints(c config.RoomPlanConstraints) models.Constraints {
	return models.Constraints{
		EnforceCapacity:   c.EnforceCapacity,
		EnforceLab:        c.EnforceLab,
		PreferConsecutive: c.PreferConsecutive,
	}
}
