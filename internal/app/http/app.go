package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"user_galleries/internal/middleware"
	httprouters "user_galleries/internal/transport/http"
	"user_galleries/internal/transport/http/dto"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func NewValidator() *CustomValidator {
	validate := validator.New()

	_ = validate.RegisterValidation("profile_picture", func(fl validator.FieldLevel) bool {
		_, err := dto.ParsePictureSelection(fl.Field().String())
		return err == nil
	})

	return &CustomValidator{validator: validate}
}

type Options struct {
	Host          string
	Port          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	AllowOrigins  []string
	JWTSecret     string
	SessionSecret string
	UploadsDir    string
}

type Server struct {
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	users   middleware.UserLoader
	opts    Options
}

func New(log *slog.Logger, opts Options, routers *httprouters.Routers, users middleware.UserLoader) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = opts.ReadTimeout
	e.Server.WriteTimeout = opts.WriteTimeout

	e.Validator = NewValidator()

	store := sessions.NewCookieStore([]byte(opts.SessionSecret))
	store.Options.HttpOnly = true
	store.Options.Path = "/"
	e.Use(session.Middleware(store))

	if len(opts.AllowOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     opts.AllowOrigins,
			AllowMethods:     []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
			AllowCredentials: true,
		}))
	} else {
		e.Use(echomw.CORS())
	}
	e.Use(echomw.Recover())
	e.Use(middleware.PrometheusMetrics)

	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogMethod:   true,
		LogLatency:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	return &Server{
		log:     log,
		e:       e,
		routers: routers,
		users:   users,
		opts:    opts,
	}
}

// Handler нужен для httptest
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"), slog.String("port", s.opts.Port))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(fmt.Sprintf("%s:%s", s.opts.Host, s.opts.Port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) BuildRouters() {
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	if s.opts.UploadsDir != "" {
		s.e.Static("/uploads", s.opts.UploadsDir)
	}

	// /debug/pprof/*
	pprof.Register(s.e)

	swagger := s.e.Group("/swag")
	{
		swagger.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	actor := middleware.LoadActor(s.log, s.users)
	required := middleware.JWT(s.opts.JWTSecret, false)
	optional := middleware.JWT(s.opts.JWTSecret, true)

	api := s.e.Group("/api/v1")

	api.GET("/users/:user_id/galleries/:type", s.routers.DisplayGallery, optional, actor)

	auth := []echo.MiddlewareFunc{required, actor}
	{
		api.GET("/users/:user_id/galleries/:type/manage", s.routers.ManageGallery, auth...)
		api.POST("/users/:user_id/galleries/:type/manage", s.routers.SaveGallery, auth...)
		api.DELETE("/users/:user_id/galleries/:type/images/:file_id", s.routers.DeleteGalleryImage, auth...)
		api.PUT("/users/:user_id/galleries/:type/profile-picture/:file_id", s.routers.SetProfilePicture, auth...)
		api.GET("/galleries/shared", s.routers.SharedGalleries, auth...)
		api.POST("/galleries", s.routers.CreateGallery, auth...)
	}

	adminGroup := api.Group("/admin", required, actor, middleware.AdminOnly)
	{
		adminGroup.GET("/galleries", s.routers.ListGalleries)
		adminGroup.GET("/galleries/orphans", s.routers.ScanOrphans)
		adminGroup.POST("/galleries/orphans", s.routers.CleanOrphans)
		adminGroup.GET("/galleries/:id/edit", s.routers.EditGallery)
	}
}
