package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/kaduart/agenda-clinica-service/config"
	"github.com/kaduart/agenda-clinica-service/internal/infrastructure/cache"
	"github.com/kaduart/agenda-clinica-service/internal/infrastructure/database"
	"github.com/kaduart/agenda-clinica-service/internal/repository"
	"github.com/kaduart/agenda-clinica-service/internal/service"
	"github.com/kaduart/agenda-clinica-service/internal/usecase"
)

// defaultNameFilter narrows candidate discovery when no name argument is
// given, so an accidental bare run never scans the whole patient table.
const defaultNameFilter = "Maria Araujo"

func main() {
	strategyFlag := flag.String("strategy", string(service.OldestWins),
		"canonical record selection: oldest or most_complete")
	fuzzyFlag := flag.Bool("fuzzy", false, "group near-identical names by edit distance")
	maxDistanceFlag := flag.Int("max-distance", 1, "edit distance threshold for -fuzzy")
	dryRunFlag := flag.Bool("dry-run", false, "report planned merges without mutating anything")
	flag.Parse()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	log := logrus.StandardLogger()

	nameFilter := defaultNameFilter
	if flag.NArg() > 0 {
		nameFilter = flag.Arg(0)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
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
	preAppointmentRepo := repository.NewPreAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(log, auditLogRepo)
	stateService := service.NewReconcileStateService(redisClient, log)

	reconcileUsecase := usecase.NewReconcileUsecase(
		db, log, patientRepo, appointmentRepo, preAppointmentRepo, auditService, stateService)

	opts := usecase.BatchOptions{
		NameFilter: nameFilter,
		Strategy:   service.ParseCanonicalStrategy(*strategyFlag),
		DryRun:     *dryRunFlag,
	}
	if *fuzzyFlag {
		opts.Matcher = service.LevenshteinMatcher{MaxDistance: *maxDistanceFlag}
	}

	result, err := reconcileUsecase.RunBatch(context.Background(), opts)
	if err != nil {
		log.Fatalf("Reconciliation batch failed: %v", err)
	}

	fmt.Printf("groups=%d merged=%d skipped=%d failed=%d\n",
		result.Groups, result.Merged, result.Skipped, len(result.Failed))
	for _, failure := range result.Failed {
		fmt.Printf("failed duplicate=%s canonical=%s step=%s reason=%s\n",
			failure.DuplicateID, failure.CanonicalID, failure.Step, failure.Reason)
	}

	// Partial failures must be visible to schedulers, not just in logs.
	if result.HasFailures() {
		os.Exit(1)
	}
}
