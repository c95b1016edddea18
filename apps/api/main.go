package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	echoapi "github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/apps/api/echo"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/attendance"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/conduct"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/document"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/operator"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/roster"
	appsync "github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/sync"
	backupsvc "github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/services/backup"
	dummybackup "github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/services/backup/dummy"
	logsvc "github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/services/logger"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/storage/local"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(false)
	} else {
		rollbar := logsvc.NewRollbarLogger(
			log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
			conf,
		)
		rollbar.Enable(true)
		logger = rollbar
	}

	// set up storage
	store := document.NewStore(local.NewDocumentRepository(conf.DataDir))

	// set up services
	oprSvc := operator.NewService(local.NewOperatorRepository(conf.DataDir), local.NewSessionRepository(conf.DataDir))
	rosterSvc := roster.NewService(document.NewRosterRepository(store))
	attSvc := attendance.NewService(document.NewAttendanceRepository(store))
	conductSvc := conduct.NewService(document.NewConductRepository(store))

	var backupSvc appsync.BackupService
	if conf.Backup.Enabled {
		backupSvc = backupsvc.NewDriveBackupService(conf, logger)
	} else {
		backupSvc = dummybackup.NewService()
	}
	reconciler := appsync.NewReconciler(store, backupSvc, logger, conf.Backup.Enabled)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate, translator := core.NewValidator()
	operator.RegisterValidators(validate, translator)
	roster.RegisterValidators(validate, translator)
	attendance.RegisterValidators(validate, translator)
	conduct.RegisterValidators(validate, translator)

	// =========================================================================
	// Start API Service

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(
		&echoapi.Options{
			Conf:           conf,
			Logger:         logger,
			Validate:       validate,
			Translator:     translator,
			OperatorSvc:    oprSvc,
			RosterSvc:      rosterSvc,
			AttendanceSvc:  attSvc,
			ConductSvc:     conductSvc,
			Store:          store,
			Reconciler:     reconciler,
			SignalShutdown: func() { shutdown <- syscall.SIGTERM },
		},
	)

	go server.Start()

	// =========================================================================
	// Shutdown

	sig := <-shutdown
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Fatal(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}
