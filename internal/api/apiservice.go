package api

import (
	"database/sql"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/digidesa/desa-cms/internal/assets"
	"github.com/digidesa/desa-cms/internal/auth"
	"github.com/digidesa/desa-cms/internal/config"
	"github.com/digidesa/desa-cms/internal/content"
	"github.com/digidesa/desa-cms/internal/stats"
	"github.com/digidesa/desa-cms/internal/village"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// APIService wires the asset lifecycles and repositories into the HTTP API.
type APIService struct {
	log        *zap.Logger
	publicPath string
	assetRoot  string
	startedAt  time.Time

	news    *content.Lifecycle[*content.News]
	gallery *content.Lifecycle[*content.GalleryItem]
	events  *content.Lifecycle[*content.Event]
	members *content.Lifecycle[*content.OrganizationMember]

	newsRepo    *content.NewsRepository
	galleryRepo *content.GalleryRepository
	eventRepo   *content.EventRepository
	memberRepo  *content.OrganizationRepository

	auth        *auth.Service
	settings    *village.SettingsRepository
	services    *village.ServiceRepository
	submissions *village.SubmissionRepository
	stats       *stats.Service
}

// statsCacheTTL keeps dashboard counts fresh enough while shielding the
// database from repeated COUNT scans.
const statsCacheTTL = time.Minute

func NewAPIService(cfg *config.ServiceConfig, db *sql.DB, cache *redis.Client, log *zap.Logger) *APIService {
	newsRepo := content.NewNewsRepository(db)
	galleryRepo := content.NewGalleryRepository(db)
	eventRepo := content.NewEventRepository(db)
	memberRepo := content.NewOrganizationRepository(db)

	authRepo := auth.NewRepository(db)
	tokenTTL := time.Duration(cfg.Auth.TokenExpiryHours) * time.Hour

	return &APIService{
		log:        log,
		publicPath: cfg.Assets.PublicPath,
		assetRoot:  cfg.Assets.Root,
		startedAt:  time.Now(),

		news:    lifecycleFor[*content.News](cfg, "news", newsRepo, log),
		gallery: lifecycleFor[*content.GalleryItem](cfg, "gallery", galleryRepo, log),
		events:  lifecycleFor[*content.Event](cfg, "events", eventRepo, log),
		members: lifecycleFor[*content.OrganizationMember](cfg, "organization", memberRepo, log),

		newsRepo:    newsRepo,
		galleryRepo: galleryRepo,
		eventRepo:   eventRepo,
		memberRepo:  memberRepo,

		auth:        auth.NewService(authRepo, cfg.Auth.JWTSecret, tokenTTL, log),
		settings:    village.NewSettingsRepository(db),
		services:    village.NewServiceRepository(db),
		submissions: village.NewSubmissionRepository(db),
		stats:       stats.NewService(db, cache, statsCacheTTL, log),
	}
}

// lifecycleFor builds the store, resolver and coordinator for one media
// category. Every category gets its own directory under the asset root and
// its own URL prefix.
func lifecycleFor[T content.Record](cfg *config.ServiceConfig, category string, repo content.Repository[T], log *zap.Logger) *content.Lifecycle[T] {
	store := assets.NewStore(filepath.Join(cfg.Assets.Root, category), log)
	resolver := assets.NewResolver(cfg.Assets.PublicPath, category)
	return content.NewLifecycle[T](repo, store, resolver, log)
}

func (s *APIService) SetRoutes(e *echo.Echo) {
	e.GET("/health", s.health)

	// Stored assets are served straight from disk under the public path.
	e.Static(s.publicPath, s.assetRoot)

	api := e.Group("/api")

	api.POST("/auth/login", s.login)
	api.GET("/auth/verify", s.verifyToken)

	api.GET("/desa", s.getSettings)
	api.GET("/news", s.listNews)
	api.GET("/news/:slug", s.getNewsBySlug)
	api.GET("/galleries", s.listGalleries)
	api.GET("/galleries/:id", s.getGallery)
	api.GET("/events", s.listEvents)
	api.GET("/events/:id", s.getEvent)
	api.GET("/organization", s.listOrganization)
	api.GET("/organization/:id", s.getOrganizationMember)
	api.GET("/services", s.listServices)
	api.GET("/services/:id", s.getService)
	api.POST("/services/:id/submissions", s.createSubmission)
	api.GET("/statistics", s.statistics)

	admin := api.Group("", auth.Middleware(s.auth))
	admin.POST("/auth/register", s.register)
	admin.PUT("/desa", s.updateSettings)
	admin.POST("/news", s.createNews)
	admin.PUT("/news/:id", s.updateNews)
	admin.DELETE("/news/:id", s.deleteNews)
	admin.POST("/galleries", s.createGallery)
	admin.PUT("/galleries/:id", s.updateGallery)
	admin.DELETE("/galleries/:id", s.deleteGallery)
	admin.POST("/events", s.createEvent)
	admin.PUT("/events/:id", s.updateEvent)
	admin.DELETE("/events/:id", s.deleteEvent)
	admin.POST("/organization", s.createOrganizationMember)
	admin.PUT("/organization/:id", s.updateOrganizationMember)
	admin.DELETE("/organization/:id", s.deleteOrganizationMember)
	admin.POST("/services", s.createService)
	admin.PUT("/services/:id", s.updateService)
	admin.DELETE("/services/:id", s.deleteService)
	admin.GET("/submissions", s.listSubmissions)
	admin.PUT("/submissions/:id/status", s.updateSubmissionStatus)
}

func (s *APIService) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).Seconds(),
	})
}

// requestBase extracts the externally visible origin for URL resolution.
func requestBase(c echo.Context) assets.Base {
	return assets.RequestBase(c.Request())
}

func paramID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func intQuery(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
