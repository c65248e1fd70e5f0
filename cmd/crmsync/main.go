package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/kaduart/agenda-clinica-service/config"
	"github.com/kaduart/agenda-clinica-service/internal/infrastructure/cache"
	"github.com/kaduart/agenda-clinica-service/internal/infrastructure/database"
	"github.com/kaduart/agenda-clinica-service/internal/integrations/crm"
	"github.com/kaduart/agenda-clinica-service/internal/repository"
	"github.com/kaduart/agenda-clinica-service/internal/service"
	"github.com/kaduart/agenda-clinica-service/internal/usecase"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	log := logrus.StandardLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.CRM.BaseURL == "" {
		log.Fatal("CRM_BASE_URL is not configured")
	}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	patientRepo := repository.NewPatientRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(log, auditLogRepo)
	stateService := service.NewReconcileStateService(redisClient, log)
	crmClient := crm.NewClient(cfg.CRM.BaseURL, cfg.CRM.Token, cfg.CRM.Timeout, log)

	exportUsecase := usecase.NewExportUsecase(
		db, log, patientRepo, appointmentRepo, crmClient, auditService, stateService)

	result, err := exportUsecase.RunExport(context.Background())
	if err != nil {
		log.Fatalf("CRM export failed: %v", err)
	}

	fmt.Printf("exported=%d skipped=%d failed=%d\n",
		result.Exported, result.Skipped, len(result.Failed))
	for _, failure := range result.Failed {
		fmt.Printf("failed kind=%s id=%s reason=%s\n", failure.Kind, failure.ID, failure.Reason)
	}

	if result.HasFailures() {
		os.Exit(1)
	}
}
