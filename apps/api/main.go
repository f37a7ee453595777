package main

import (
	"context"
	"database/sql"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/dojanghq/dojang/apps/api/echo"
	"github.com/dojanghq/dojang/core"
	"github.com/dojanghq/dojang/core/alert"
	"github.com/dojanghq/dojang/core/attendance"
	"github.com/dojanghq/dojang/core/club"
	"github.com/dojanghq/dojang/core/member"
	"github.com/dojanghq/dojang/core/payment"
	backupsvc "github.com/dojanghq/dojang/services/backup"
	calsvc "github.com/dojanghq/dojang/services/calendar"
	logsvc "github.com/dojanghq/dojang/services/logger"
	"github.com/dojanghq/dojang/storage/database"
	sqlxrepos "github.com/dojanghq/dojang/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Fatal("Failed to close", err)
		}
	}()
	sdb := sqlx.NewDb(db, conf.Database.Engine)

	// set up services
	cal := calsvc.NewJalaliCalendar()
	memberSvc := member.NewService(sqlxrepos.NewMemberRepository(sdb), cal)
	clubSvc := club.NewService(sqlxrepos.NewClubRepository(sdb))
	paymentSvc := payment.NewService(sqlxrepos.NewPaymentRepository(sdb), cal)
	attendanceSvc := attendance.NewService(sqlxrepos.NewAttendanceRepository(sdb), cal)
	alertEngine := alert.NewEngine(cal, paymentSvc)
	backupMgr := backupsvc.NewManager(conf, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	member.InitValidators(validate, translator)
	club.InitValidators(validate, translator)
	attendance.InitValidators(validate, translator)

	// =========================================================================
	// Start Scheduled Backups

	cronSched, err := backupMgr.Start()
	if err != nil {
		logger.Fatal(fmt.Sprintf("starting backup scheduler: %v", err), err)
	}
	defer cronSched.Stop()

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err = http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			Calendar:      cal,
			MemberSvc:     memberSvc,
			ClubSvc:       clubSvc,
			PaymentSvc:    paymentSvc,
			AttendanceSvc: attendanceSvc,
			AlertEngine:   alertEngine,
			Backup:        backupMgr,
			Validate:      validate,
			Translator:    translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
