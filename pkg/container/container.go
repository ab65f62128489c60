package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"thriven-backend/internal/config"
	infraCache "thriven-backend/internal/infrastructure/cache"
	"thriven-backend/internal/infrastructure/database"
	"thriven-backend/internal/infrastructure/queue"
	"thriven-backend/internal/infrastructure/storage"
	"thriven-backend/internal/shared/request"
	"thriven-backend/pkg/cache"
	"thriven-backend/pkg/jwt"

	accountHandler "thriven-backend/internal/domains/account/handler"
	accountRepo "thriven-backend/internal/domains/account/repository"
	accountService "thriven-backend/internal/domains/account/service"
	commentHandler "thriven-backend/internal/domains/comment/handler"
	commentRepo "thriven-backend/internal/domains/comment/repository"
	commentService "thriven-backend/internal/domains/comment/service"
	engagementHandler "thriven-backend/internal/domains/engagement/handler"
	engagementRepo "thriven-backend/internal/domains/engagement/repository"
	engagementService "thriven-backend/internal/domains/engagement/service"
	followHandler "thriven-backend/internal/domains/follow/handler"
	followRepo "thriven-backend/internal/domains/follow/repository"
	followService "thriven-backend/internal/domains/follow/service"
	notificationHandler "thriven-backend/internal/domains/notification/handler"
	notificationRepo "thriven-backend/internal/domains/notification/repository"
	notificationService "thriven-backend/internal/domains/notification/service"
	postHandler "thriven-backend/internal/domains/post/handler"
	postRepo "thriven-backend/internal/domains/post/repository"
	postService "thriven-backend/internal/domains/post/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph shared by the API and the worker
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client
	Storage     *storage.MinIOStorage
	Media       *storage.MediaStore
	Notifier    *queue.Notifier

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	AccountRepo      accountRepo.Repository
	PostRepo         postRepo.Repository
	CommentRepo      commentRepo.Repository
	EngagementRepo   engagementRepo.Repository
	FollowRepo       followRepo.Repository
	NotificationRepo notificationRepo.NotificationRepository

	// ========================================
	// SERVICE LAYER
	// ========================================
	AccountService      accountService.Service
	PostService         postService.Service
	CommentService      commentService.Service
	EngagementService   engagementService.Service
	FollowService       followService.Service
	NotificationService notificationService.NotificationService

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	AccountHandler      *accountHandler.AccountHandler
	PostHandler         *postHandler.PostHandler
	CommentHandler      *commentHandler.CommentHandler
	EngagementHandler   *engagementHandler.EngagementHandler
	FollowHandler       *followHandler.FollowHandler
	NotificationHandler *notificationHandler.NotificationHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the graph in dependency order:
// config, infrastructure, repositories, services, handlers
func NewContainer() (*Container, error) {
	log.Println("Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// ========================================
	// STEP 3: INITIALIZE CACHE AND QUEUE
	// ========================================
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(ctx); err != nil {
			// the account cache degrades to database reads
			log.Printf("Redis connection failed (non-critical): %v", err)
		}
	}
	c.Cache = redisCache

	c.AsynqClient = asynq.NewClient(c.RedisOpt())
	c.Notifier = queue.NewNotifier(c.AsynqClient)

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// ========================================
	// STEP 4: INITIALIZE OBJECT STORAGE
	// ========================================
	minioStorage, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init minio: %w", err)
	}
	c.Storage = minioStorage
	c.Media = storage.NewMediaStore(minioStorage, storage.NewImageProcessor(request.MaxImageSize), c.AsynqClient)

	// ========================================
	// STEP 5: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("DI Container initialized successfully")
	return c, nil
}

// RedisOpt is the asynq connection used by the client, the worker and the scheduler
func (c *Container) RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	}
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.AccountRepo = accountRepo.NewPostgresRepository(pool, c.Cache)
	c.PostRepo = postRepo.NewPostgresRepository(pool)
	c.CommentRepo = commentRepo.NewPostgresRepository(pool)
	c.EngagementRepo = engagementRepo.NewPostgresRepository(pool)
	c.FollowRepo = followRepo.NewPostgresRepository(pool)
	c.NotificationRepo = notificationRepo.NewNotificationRepository(pool)
}

func (c *Container) initServices() {
	c.AccountService = accountService.NewAccountService(c.AccountRepo, c.FollowRepo, c.JWTManager, c.Media)
	c.PostService = postService.NewPostService(c.PostRepo, c.AccountRepo, c.Media)
	c.CommentService = commentService.NewCommentService(c.CommentRepo, c.PostRepo, c.Notifier)
	c.EngagementService = engagementService.NewEngagementService(c.EngagementRepo, c.PostRepo, c.Notifier)
	c.FollowService = followService.NewFollowService(c.FollowRepo, c.AccountRepo, c.Notifier)
	c.NotificationService = notificationService.NewNotificationService(c.NotificationRepo)
}

func (c *Container) initHandlers() {
	c.AccountHandler = accountHandler.NewAccountHandler(c.AccountService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService)
	c.CommentHandler = commentHandler.NewCommentHandler(c.CommentService)
	c.EngagementHandler = engagementHandler.NewEngagementHandler(c.EngagementService)
	c.FollowHandler = followHandler.NewFollowHandler(c.FollowService)
	c.NotificationHandler = notificationHandler.NewNotificationHandler(c.NotificationService)
}

// ========================================
// HELPER METHODS
// ========================================

// Cleanup releases connections on shutdown
func (c *Container) Cleanup() {
	log.Println("Cleaning up container resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("Failed to close asynq client: %v", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("Failed to close Redis: %v", err)
			}
		}
	}

	log.Println("Container cleanup completed")
}
