package web

import (
	"context"
	"embed"
	"errors"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/quantumstack/site/internal/config"
	"github.com/quantumstack/site/internal/content"
	"github.com/quantumstack/site/internal/entities"
	"github.com/quantumstack/site/internal/metrics"
	"github.com/quantumstack/site/internal/services"
	log "github.com/sirupsen/logrus"
	"html/template"
	"io/fs"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

type listings interface {
	Jobs(ctx context.Context) []entities.JobOpening
	Job(ctx context.Context, id string) (entities.JobOpening, bool)
	Staff(ctx context.Context) []entities.StaffMember
	StaffMember(ctx context.Context, slug string) (entities.StaffMember, bool)
	Portfolio(ctx context.Context) services.PortfolioGroups
}

type contactSubmitter interface {
	Validate(submission *entities.ContactSubmission) *services.ValidationError
	Submit(ctx context.Context, client string, submission entities.ContactSubmission) error
}

type applicationReceiver interface {
	Apply(ctx context.Context, job entities.JobOpening, application *entities.JobApplication) error
}

type Dependencies struct {
	Listings     listings
	Contact      contactSubmitter
	Applications applicationReceiver
	Content      *content.Content
}

type Server struct {
	cfg        config.ServerConfig
	deps       Dependencies
	router     *gin.Engine
	httpServer *http.Server
}

func NewServer(cfg config.ServerConfig, deps Dependencies) (*Server, error) {

	if deps.Listings == nil || deps.Contact == nil || deps.Applications == nil {
		return nil, errors.New("web server dependencies are incomplete")
	}
	if deps.Content == nil {
		return nil, errors.New("site content is nil")
	}
	if cfg.ApplyDelay <= 0 {
		cfg.ApplyDelay = defaultApplyDelay
	}

	s := &Server{cfg: cfg, deps: deps}

	router, err := s.setupRouter()
	if err != nil {
		return nil, err
	}
	s.router = router
	s.httpServer = &http.Server{
		Addr:              cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run blocks until the server is shut down.
func (s *Server) Run() error {
	log.Infof("Web server listening on %s", s.cfg.Address)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) setupRouter() (*gin.Engine, error) {

	router := gin.New()
	router.Use(requestID(), accessLog(), recovery(), requestMetrics())

	tmpl, err := template.New("site").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	router.StaticFS("/static", http.FS(static))

	router.GET("/", s.home)
	router.GET("/about", s.about)
	router.GET("/services", s.services)
	router.GET("/portfolio", s.portfolio)
	router.GET("/staff", s.staff)
	router.GET("/staff/:slug", s.staffDetail)
	router.GET("/careers", s.careers)
	router.POST("/careers/:id/apply", s.apply)
	router.GET("/contact", s.contactPage)
	router.POST("/contact", s.submitContact)

	api := router.Group("/api")
	if len(s.cfg.AllowedOrigins) > 0 {
		api.Use(cors.New(cors.Config{
			AllowOrigins: s.cfg.AllowedOrigins,
			AllowMethods: []string{http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
			MaxAge:       12 * time.Hour,
		}))
	}
	api.POST("/contact", s.submitContactJSON)
	api.OPTIONS("/contact", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.NoRoute(s.notFound)

	return router, nil
}
