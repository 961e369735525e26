package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/hr-records-api/internal/adapters/http/handler"
	"github.com/ogurasousui/hr-records-api/internal/adapters/repository/postgres"
	"github.com/ogurasousui/hr-records-api/internal/core/auth"
	"github.com/ogurasousui/hr-records-api/internal/core/department"
	"github.com/ogurasousui/hr-records-api/internal/core/employee"
	"github.com/ogurasousui/hr-records-api/internal/core/report"
	"github.com/ogurasousui/hr-records-api/internal/core/skill"
	"github.com/ogurasousui/hr-records-api/internal/platform/config"
	pg "github.com/ogurasousui/hr-records-api/internal/platform/db/postgres"
	"github.com/ogurasousui/hr-records-api/internal/platform/logging"
	"github.com/ogurasousui/hr-records-api/internal/platform/server"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		logrus.Fatalf("failed to initialize logger: %v", err)
	}
	gin.SetMode(cfg.Server.Mode)

	dbPool, err := pg.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize database pool")
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool)

	skillRepo := postgres.NewSkillRepository(dbPool)
	employeeRepo := postgres.NewEmployeeRepository(dbPool)
	departmentRepo := postgres.NewDepartmentRepository(dbPool)
	reportRepo := postgres.NewReportRepository(dbPool)
	userRepo := postgres.NewUserRepository(dbPool)

	employeeSvc := employee.NewService(employeeRepo, skill.NewResolver(skillRepo), nil, txManager)
	reportSvc := report.NewService(reportRepo, nil, txManager)
	skillSvc := skill.NewService(skillRepo)
	departmentSvc := department.NewService(departmentRepo)
	authSvc, err := auth.NewService(userRepo, auth.Config{
		Secret:     cfg.Auth.JWTSecret,
		TokenTTL:   cfg.Auth.TokenTTL,
		BcryptCost: cfg.Auth.BcryptCost,
	}, nil)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize auth service")
	}

	router := handler.NewRouter(handler.Handlers{
		Employees: handler.NewEmployeeHandler(employeeSvc, logger),
		Reports:   handler.NewReportHandler(reportSvc, logger),
		Reference: handler.NewReferenceHandler(departmentSvc, skillSvc, logger),
		Auth:      handler.NewAuthHandler(authSvc, logger),
		Health:    handler.NewHealthHandler(dbPool, cfg.Server.Mode, logger),
	}, authSvc, logger)

	httpServer := server.New(cfg.Server, router, logger)
	if err := httpServer.Run(ctx); err != nil {
		logger.WithError(err).Fatal("server stopped with error")
	}
	logger.Info("server stopped")
}
