package main

import (
	"context"
	"embed"
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sf7293/history-compare/configs"
	"github.com/sf7293/history-compare/internal/domain"
	"github.com/sf7293/history-compare/internal/errval"
	"github.com/sf7293/history-compare/internal/history"
	"github.com/sf7293/history-compare/internal/routes"
	"github.com/sf7293/history-compare/internal/server"
	"html/template"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"unicode"
)

//go:embed templates/page.tmpl
var templatesFS embed.FS

func main() {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	slog.SetDefault(slog.New(h))

	cfg := configs.InitConfig()

	// The record set is generated once and shared read-only for the process lifetime
	records := history.GenerateRecords(time.Now())
	historyService := history.NewService(records, history.Options{
		FetchDelay:      cfg.History.FetchDelay(),
		CreateDelay:     cfg.History.CreateDelay(),
		DefaultPageSize: cfg.History.DefaultPageSize,
		MaxPageSize:     cfg.History.MaxPageSize,
	})
	slog.Info("History records have been generated", "count", len(records))

	routeTable, err := routes.Load()
	if err != nil {
		log.Fatal(err)
	}
	slog.Info("Route table has been loaded", "routes", len(routeTable.Routes()))

	router := setupHTTPServer(server.NewServerLogic(historyService), routeTable, cfg)
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ServerTimeOut(),
		WriteTimeout: cfg.ServerTimeOut() + cfg.History.FetchDelay() + cfg.History.CreateDelay(),
	}

	// Initializing the server in a goroutine so that
	// it won't block the graceful shutdown handling below
	go func() {
		slog.Info("Starting server", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ServerTimeOut())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	slog.Info("Server exiting")
}

func setupHTTPServer(serverLogic *server.ServerLogic, routeTable *routes.Table, cfg *configs.Config) *gin.Engine {
	r := gin.Default()
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("validate_record_id", validateRecordID)
		if err != nil {
			log.Fatal("failed to bind validation rule of validate_record_id")
		}
	}

	pageTemplate := template.Must(template.ParseFS(templatesFS, "templates/page.tmpl"))
	r.SetHTMLTemplate(pageTemplate)

	for _, route := range routeTable.Routes() {
		r.GET(route.Path, routeHandler(routeTable, route))
	}

	api := r.Group("/api", server.RateLimitMiddleware(cfg.RateLimit.RequestsPerMinute))
	api.GET("/history", func(c *gin.Context) {
		req := domain.RouterRequestFetchHistory{
			Page:     history.DefaultPage,
			PageSize: cfg.History.DefaultPageSize,
		}
		// Query parameters that are absent keep the defaults set above
		err := c.ShouldBindQuery(&req)
		if err != nil {
			slog.Error("error occurred while binding request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "page and pageSize must be positive integers"})
			return
		}

		page, err := serverLogic.FetchHistoryPage(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, page)
	})

	api.POST("/comparison-tasks", func(c *gin.Context) {
		req := domain.RouterRequestCreateComparison{}
		err := c.ShouldBindJSON(&req)
		if err != nil {
			slog.Error("error occurred while binding request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "currentId and baselineId are required"})
			return
		}

		task, err := serverLogic.CreateComparisonTask(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, task)
	})

	r.GET("/readiness", func(c *gin.Context) {
		if serverLogic != nil && len(routeTable.Routes()) > 0 {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
		} else {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		}
	})
	r.GET("/liveness", func(c *gin.Context) {
		err := serverLogic.Ping(c.Request.Context())
		if err != nil {
			slog.Error("History service is not answering in liveness API", "error", err.Error())
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not healthy"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "up"})
	})

	return r
}

func routeHandler(routeTable *routes.Table, route routes.Route) gin.HandlerFunc {
	if route.IsRedirect() {
		return func(c *gin.Context) {
			c.Redirect(http.StatusFound, route.Redirect)
		}
	}

	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "page.tmpl", gin.H{
			"Name":   route.Name,
			"Page":   route.Page,
			"Title":  route.Title,
			"Routes": routeTable.Routes(),
		})
	}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errval.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out"})
	case errors.Is(err, context.Canceled):
		// The client is gone, nobody reads the body
		c.AbortWithStatus(http.StatusRequestTimeout)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": errval.ErrInternal.Error()})
	}
}

var validateRecordID validator.Func = func(fl validator.FieldLevel) bool {
	recordID := fl.Field().String()
	if strings.TrimSpace(recordID) == "" {
		return false
	}

	return strings.IndexFunc(recordID, unicode.IsSpace) == -1
}
