package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	mw "fourcut/internal/middleware"
	httprouters "fourcut/internal/transport/http"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// NewValidator валидатор с тегом notblank для строк из одних пробелов.
func NewValidator() *CustomValidator {
	validate := validator.New()
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return &CustomValidator{validator: validate}
}

type RateLimitOptions struct {
	Enabled bool
	Limit   int
	Window  time.Duration
}

// Options все, что нужно серверу помимо роутеров.
type Options struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	IdleTimeout  time.Duration
	JWTSecret    string
	UploadsDir   string // пусто, если изображения отдает внешнее хранилище
	UploadsRoute string
	RateLimit    RateLimitOptions
}

type Server struct {
	m        *http.ServeMux
	log      *slog.Logger
	e        *echo.Echo
	routers  *httprouters.Routers
	resolver mw.MemberResolver
	limiter  mw.Limiter
	opts     Options
}

func New(log *slog.Logger, opts Options, routers *httprouters.Routers, resolver mw.MemberResolver, limiter mw.Limiter) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = opts.ReadTimeout
	e.Server.WriteTimeout = opts.ReadTimeout
	e.Server.IdleTimeout = opts.IdleTimeout

	e.Validator = NewValidator()

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(mw.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogRemoteIP:  true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote ip", v.RemoteIP),
				slog.String("request_id", v.RequestID),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	err := statsviz.Register(mux)
	if err != nil {
		log.Info("Statsviz start with error", slog.Any("err", err))
	}

	return &Server{
		m:        mux,
		log:      log,
		e:        e,
		routers:  routers,
		resolver: resolver,
		limiter:  limiter,
		opts:     opts,
	}
}

// Echo нужен тестам, чтобы гонять запросы через httptest без сети.
func (s *Server) Echo() *echo.Echo {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"), slog.String("addr", s.addr()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.addr()); err != nil && err != http.ErrServerClosed {
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

func (s *Server) addr() string {
	return fmt.Sprintf("%s:%s", s.opts.Host, s.opts.Port)
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	if s.opts.UploadsDir != "" {
		s.e.Static(s.opts.UploadsRoute, s.opts.UploadsDir)
	}

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz/", echo.WrapHandler(s.m))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}

	swagger := s.e.Group("/swag")
	{
		swagger.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := s.e.Group("/api/v1")

	// чтение доступно анонимно; если токен прислан, зритель определяется по нему
	public := api.Group("", mw.JWT(s.opts.JWTSecret, true), mw.Identity(s.log, s.resolver, false))
	{
		public.GET("/galleries/:gallery_id", s.routers.GetGallery)
		public.GET("/galleries/:gallery_id/artworks", s.routers.ListArtworks)
		public.GET("/galleries/:gallery_id/artworks/like", s.routers.TopArtworks)
		public.GET("/galleries/:gallery_id/artworks/:artwork_id", s.routers.GetArtwork)
		public.GET("/galleries/:gallery_id/comments", s.routers.GalleryComments)
		public.GET("/galleries/:gallery_id/artworks/:artwork_id/comments", s.routers.ArtworkComments)
	}

	private := api.Group("", mw.JWT(s.opts.JWTSecret, false), mw.Identity(s.log, s.resolver, true))
	if s.opts.RateLimit.Enabled && s.limiter != nil {
		private.Use(mw.RateLimit(s.log, s.limiter, s.opts.RateLimit.Limit, s.opts.RateLimit.Window))
	}
	{
		private.POST("/galleries", s.routers.OpenGallery)
		private.PATCH("/galleries/me", s.routers.PatchMyGallery)
		private.DELETE("/galleries/me", s.routers.CloseMyGallery)

		private.POST("/galleries/:gallery_id/artworks", s.routers.CreateArtwork)
		private.PATCH("/galleries/:gallery_id/artworks/:artwork_id", s.routers.UpdateArtwork)
		private.DELETE("/galleries/:gallery_id/artworks/:artwork_id", s.routers.DeleteArtwork)
		private.PUT("/galleries/:gallery_id/artworks/:artwork_id/likes", s.routers.ToggleLike)

		private.POST("/galleries/:gallery_id/comments", s.routers.CommentOnGallery)
		private.POST("/galleries/:gallery_id/artworks/:artwork_id/comments", s.routers.CommentOnArtwork)
		private.PATCH("/galleries/:gallery_id/comments/:comment_id", s.routers.ModifyComment)
		private.DELETE("/galleries/:gallery_id/comments/:comment_id", s.routers.DeleteComment)

		private.GET("/members/me/alarms", s.routers.ListMyAlarms)
		private.GET("/members/me/alarms/unread-count", s.routers.UnreadAlarmCount)
		private.PATCH("/members/me/alarms/:alarm_id", s.routers.ReadAlarm)
	}
}
