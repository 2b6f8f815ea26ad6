package echoapi

import (
	"context"
	"crypto/subtle"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/Ramcharan123-lang/hackthon/core"
	"github.com/Ramcharan123-lang/hackthon/core/portal"
)

type (
	Options struct {
		Addr           string
		Token          string // bearer token expected on every request
		Debug          bool
		TestMode       bool
		DisableReqLogs bool
		Store          portal.Store
		Validate       *validator.Validate
		Translator     ut.Translator
		Logger         core.Logger
	}

	Server interface {
		http.Handler
		Start()
		Stop(ctx context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

// headerClientID carries the caller's per-process correlation id; it is
// echoed into the request and error logs.
const headerClientID = "X-Client-ID"

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Format: `{"time":"${time_rfc3339_nano}","client_id":"${header:` + headerClientID + `}",` +
				`"remote_ip":"${remote_ip}","method":"${method}","uri":"${uri}","status":${status},` +
				`"error":"${error}","latency_human":"${latency_human}","bytes_out":${bytes_out}}` + "\n",
		}))
	}
	// do not recover in DEV|TEST mode
	if !(s.opts.Debug || s.opts.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator)
	s.app.Debug = s.opts.Debug

	s.app.GET("/", home)

	auth := middleware.KeyAuth(func(key string, ctx echo.Context) (bool, error) {
		return subtle.ConstantTimeCompare([]byte(key), []byte(s.opts.Token)) == 1, nil
	})
	g := s.app.Group("", auth)

	registerAccountAPI(g, s.opts.Store, s.opts.Validate)
	registerCollectionAPI(g, s.opts.Store)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Addr))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the FEDF-PS35 Portal API!")
}
