package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/attendance"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/conduct"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/document"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/operator"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/roster"
	appsync "github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/sync"
)

type (
	Options struct {
		Conf           *core.Config
		Logger         core.Logger
		Validate       *validator.Validate
		Translator     ut.Translator
		DisableReqLogs bool

		OperatorSvc   *operator.Service
		RosterSvc     *roster.Service
		AttendanceSvc *attendance.Service
		ConductSvc    *conduct.Service
		Store         *document.Store
		Reconciler    *appsync.Reconciler

		SignalShutdown func()
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts.SignalShutdown == nil {
		opts.SignalShutdown = func() {}
	}
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.opts.SignalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1", autoSyncMiddleware(s.opts.Reconciler))
	jwt := middleware.JWTWithConfig(newJWTConfig(conf))

	registerOperatorAPI(v1, jwt, s.opts)
	registerRosterAPI(v1, jwt, s.opts)
	registerAttendanceAPI(v1, jwt, s.opts)
	registerConductAPI(v1, jwt, s.opts)
	registerAnalyticsAPI(v1, jwt, s.opts)
	registerSyncAPI(v1, jwt, s.opts)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Conf.Address()))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Smart Report Mahasina API!")
}
