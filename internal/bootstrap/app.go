package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/taskforge/apiserver/internal/cache"
	"github.com/taskforge/apiserver/internal/config"
	"github.com/taskforge/apiserver/internal/database"
	"github.com/taskforge/apiserver/internal/domain"
	"github.com/taskforge/apiserver/internal/handler"
	"github.com/taskforge/apiserver/internal/logger"
	"github.com/taskforge/apiserver/internal/report"
	"github.com/taskforge/apiserver/internal/repository"
	dsrepo "github.com/taskforge/apiserver/internal/repository/datastore"
	"github.com/taskforge/apiserver/internal/search"
	"github.com/taskforge/apiserver/internal/service"
)

type App struct {
	Echo   *echo.Echo
	DB     *sql.DB
	DS     *dsrepo.Store
	Search *search.Indexer
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	cfg := config.DefaultEnvConfig

	logger.InitLogging(cfg.LOG_FILE_PATH)
	logger.InfoLog(ctx, "environment configuration loaded")

	lists, tasks, err := a.initStore(ctx)
	if err != nil {
		return err
	}

	// The search index is optional; the store stays the system of record.
	var indexer service.TaskIndexer
	if cfg.ELASTIC_URL != "" {
		idx, err := search.NewIndexer(ctx, cfg.ELASTIC_URL)
		if err != nil {
			return fmt.Errorf("failed to initialize search index: %w", err)
		}
		a.Search = idx
		indexer = idx
		logger.InfoLog(ctx, "search index connected at %s", cfg.ELASTIC_URL)
	}

	idgen := domain.UUIDGenerator{}
	listSvc := service.NewTaskListService(lists, tasks, idgen)
	taskSvc := service.NewTaskService(lists, tasks, idgen, indexer)

	if cfg.CACHE_ENABLED {
		store := cache.NewStore()
		listSvc = cache.NewTaskListService(listSvc, store)
		taskSvc = cache.NewTaskService(taskSvc, store)
		logger.InfoLog(ctx, "cache layer enabled")
	}

	reportCfg := report.DefaultConfig()
	if cfg.REPORT_CONFIG_PATH != "" {
		reportCfg, err = report.LoadConfig(cfg.REPORT_CONFIG_PATH)
		if err != nil {
			return fmt.Errorf("failed to load report config: %w", err)
		}
	}

	listHandler := handler.NewTaskListHandler(listSvc)
	taskHandler := handler.NewTaskHandler(taskSvc)
	reportHandler := handler.NewReportHandler(listSvc, report.NewExporter(reportCfg))
	var searchHandler *handler.SearchHandler
	if a.Search != nil {
		searchHandler = handler.NewSearchHandler(a.Search, lists, tasks)
	}

	a.RegisterMiddlewares()
	a.RegisterRoutes(listHandler, taskHandler, reportHandler, searchHandler)

	return nil
}

// initStore selects the persistence backend and returns the repositories
// bound to it.
func (a *App) initStore(ctx context.Context) (domain.TaskListRepository, domain.TaskRepository, error) {
	cfg := config.DefaultEnvConfig

	switch cfg.STORE_BACKEND {
	case "datastore":
		store, err := dsrepo.NewStore(ctx, cfg.GCP_PROJECT_ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize datastore backend: %w", err)
		}
		a.DS = store
		return store.TaskLists(), store.Tasks(), nil

	default:
		db, err := database.NewPostgresDB(ctx, database.Config{
			Host:            cfg.DB_HOST,
			Port:            cfg.DB_PORT,
			User:            cfg.DB_USER,
			Password:        cfg.DB_PASSWORD,
			DBName:          cfg.DB_NAME,
			SSLMode:         cfg.DB_SSL_MODE,
			MaxOpenConns:    cfg.DB_MAX_OPEN_CONNS,
			MaxIdleConns:    cfg.DB_MAX_IDLE_CONNS,
			ConnMaxLifetime: cfg.DB_CONN_MAX_LIFETIME,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := database.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		a.DB = db
		return repository.NewTaskListRepository(db), repository.NewTaskRepository(db), nil
	}
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(listHandler *handler.TaskListHandler, taskHandler *handler.TaskHandler, reportHandler *handler.ReportHandler, searchHandler *handler.SearchHandler) {
	a.Echo.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api := a.Echo.Group("/api/v1")

	api.POST("/task-lists", listHandler.CreateHandler)
	api.GET("/task-lists", listHandler.ListHandler)
	api.GET("/task-lists/export", reportHandler.ExportHandler)
	api.GET("/task-lists/:list_id", listHandler.GetHandler)
	api.PUT("/task-lists/:list_id", listHandler.UpdateHandler)
	api.DELETE("/task-lists/:list_id", listHandler.DeleteHandler)

	api.POST("/task-lists/:list_id/tasks", taskHandler.CreateHandler)
	api.GET("/task-lists/:list_id/tasks", taskHandler.ListHandler)
	api.GET("/task-lists/:list_id/tasks/:task_id", taskHandler.GetHandler)
	api.PUT("/task-lists/:list_id/tasks/:task_id", taskHandler.UpdateHandler)
	api.DELETE("/task-lists/:list_id/tasks/:task_id", taskHandler.DeleteHandler)

	if searchHandler != nil {
		api.GET("/tasks/_search", searchHandler.SearchHandler)
		api.POST("/tasks/_reindex", searchHandler.ReindexHandler)
	}
}

func (a *App) Run() error {
	if a.DB != nil {
		defer a.DB.Close()
	}
	if a.DS != nil {
		defer a.DS.Close()
	}
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
