// Package server contains the HTTP handlers and routing for the site.
package server

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"linguaspace/internal/auth"
	"linguaspace/internal/config"
	"linguaspace/internal/database"
	"linguaspace/internal/middleware"
	"linguaspace/internal/repository"
	"linguaspace/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"gorm.io/gorm"
)

//go:embed views
var viewsFS embed.FS

// Server holds all dependencies and provides handlers
type Server struct {
	config      *config.Config
	db          *gorm.DB
	app         *fiber.App
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	userService *service.UserService
	postService *service.PostService
	sessions    *auth.SessionManager
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, db), nil
}

// NewServerWithDeps creates a Server using an already-initialized database.
// Use this in tests or when a bootstrap layer establishes the DB.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	return &Server{
		config:      cfg,
		db:          db,
		userRepo:    userRepo,
		postRepo:    postRepo,
		userService: service.NewUserService(userRepo),
		postService: service.NewPostService(postRepo),
		sessions:    auth.NewSessionManager(cfg.SessionSecret, userRepo),
	}
}

// newApp builds the Fiber app with views, middleware, and routes configured.
func (s *Server) newApp() *fiber.App {
	views, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err) // embedded directory always exists
	}
	engine := html.NewFileSystem(http.FS(views), ".html")

	app := fiber.New(fiber.Config{
		AppName: "Linguaspace",
		Views:   engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusNotFound {
				c.Status(fiber.StatusNotFound)
				return c.Render("notfound", fiber.Map{}, "layouts/main")
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
				slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		},
	})

	s.setupMiddleware(app)
	s.setupRoutes(app)
	return app
}

// setupMiddleware configures middleware for the Fiber app
func (s *Server) setupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for log correlation
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Resolve the session cookie once per request; handlers read the result
	// from locals and never touch the cookie themselves.
	app.Use(s.LoadCurrentUser())
}

// setupRoutes configures all routes for the application
func (s *Server) setupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)

	app.Get("/", s.Home)
	app.Get("/post/:id", s.ShowPost)

	app.Get("/register", s.ShowRegister)
	app.Post("/register", s.Register)
	app.Get("/login", s.ShowLogin)
	app.Post("/login", s.Login)
	app.Get("/logout", s.Logout)

	app.Get("/new", s.RequireAuth(), s.ShowNewPost)
	app.Post("/new", s.RequireAuth(), s.CreatePost)

	app.Get("/admin", s.AdminDashboard)
}

// LoadCurrentUser resolves the session cookie to a user and stores it in
// locals. A missing, invalid, or stale cookie leaves the request anonymous.
func (s *Server) LoadCurrentUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := s.sessions.Resolve(c.Context(), c.Cookies(auth.SessionCookie))
		if err != nil {
			// Store failure: continue anonymously rather than failing the page.
			middleware.Logger.WarnContext(c.UserContext(), "session resolution failed",
				slog.String("error", err.Error()))
			return c.Next()
		}
		if user != nil {
			c.Locals(currentUserKey, user)
			ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
			c.SetUserContext(ctx)
		}
		return c.Next()
	}
}

// RequireAuth redirects anonymous requests to the login page.
func (s *Server) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !auth.CanCreatePost(s.currentUser(c)) {
			return s.redirectWithFlash(c, "/login", flashWarning, "Please log in to write a new post.")
		}
		return c.Next()
	}
}

// HealthCheck reports process and database health.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	status := fiber.StatusOK
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": dbStatus,
		"time":   time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	s.app = s.newApp()
	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
