package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"

	"firebase.google.com/go/messaging"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"societyBack/internal/cache"
	"societyBack/internal/config"
	"societyBack/internal/handlers"
	"societyBack/internal/notify"
	"societyBack/internal/repositories"
	"societyBack/internal/services"
	"societyBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB
	rdb      *redis.Client

	tokens  *utils.Manager
	cookies handlers.SessionCookies
	hub     *CommentHub

	userRepo     *repositories.UserRepository
	providerRepo *repositories.ProviderRepository
	offeringRepo *repositories.OfferingRepository
	commentRepo  *repositories.CommentRepository
	wishlistRepo *repositories.WishlistRepository
	topRepo      *repositories.TopRepository

	userService     *services.UserService
	providerService *services.ProviderService
	commentService  *services.CommentService
	wishlistService *services.WishlistService
	topService      *services.TopService

	userHandler     *handlers.UserHandler
	providerHandler *handlers.ProviderHandler
	commentHandler  *handlers.CommentHandler
	wishlistHandler *handlers.WishlistHandler
	topHandler      *handlers.TopHandler
}

// errStorageDisabled is returned for uploads when no bucket is configured.
var errStorageDisabled = errors.New("image storage is not configured")

type disabledStorage struct{}

func (disabledStorage) Upload(context.Context, string, string, []byte) (string, error) {
	return "", errStorageDisabled
}

func initializeApp(cfg config.Config, db *sql.DB, rdb *redis.Client, fcmClient *messaging.Client, errorLog, infoLog *log.Logger) (*application, error) {
	logger := stdLogger{info: infoLog, err: errorLog}

	tokens, err := utils.NewManager(cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}

	var storage services.ImageStorage = disabledStorage{}
	if cfg.S3.Bucket != "" {
		s3, err := utils.NewS3Storage(utils.S3Config{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			PublicURL: cfg.S3.PublicURL,
		})
		if err != nil {
			return nil, err
		}
		storage = s3
	} else {
		infoLog.Printf("S3 bucket not set, portfolio uploads disabled")
	}

	var topCache services.Cache
	if rdb != nil {
		topCache = cache.NewRedisCache(rdb, "society")
	}

	// Repositories
	userRepo := &repositories.UserRepository{DB: db}
	providerRepo := &repositories.ProviderRepository{DB: db}
	offeringRepo := &repositories.OfferingRepository{DB: db}
	commentRepo := &repositories.CommentRepository{DB: db}
	wishlistRepo := &repositories.WishlistRepository{DB: db}
	topRepo := repositories.NewTopRepository(db)

	hub := NewCommentHub(logger, offeringRepo, cfg.Server.AllowedOrigins)

	var pusher services.Pusher = notify.Noop{}
	if fcmClient != nil {
		pusher = notify.NewFCM(fcmClient, userRepo, logger)
	}

	// Services
	userService := &services.UserService{UserRepo: userRepo, TokenManager: tokens, AccessTTL: cfg.JWT.AccessTTL, RefreshTTL: cfg.JWT.RefreshTTL}
	providerService := &services.ProviderService{Providers: providerRepo, Offerings: offeringRepo, Storage: storage, ImageFolder: cfg.S3.Folder}
	commentService := &services.CommentService{Comments: commentRepo, Offerings: offeringRepo, Events: hub, Pusher: pusher, Log: logger}
	wishlistService := &services.WishlistService{Wishlist: wishlistRepo, Offerings: offeringRepo}
	topService := services.NewTopService(topRepo, topCache, cfg.Top.CacheTTL, logger)

	cookies := handlers.SessionCookies{AccessTTL: cfg.JWT.AccessTTL, RefreshTTL: cfg.JWT.RefreshTTL, Secure: cfg.Server.SecureCookies}

	return &application{
		errorLog: errorLog,
		infoLog:  infoLog,
		db:       db,
		rdb:      rdb,

		tokens:  tokens,
		cookies: cookies,
		hub:     hub,

		userRepo:     userRepo,
		providerRepo: providerRepo,
		offeringRepo: offeringRepo,
		commentRepo:  commentRepo,
		wishlistRepo: wishlistRepo,
		topRepo:      topRepo,

		userService:     userService,
		providerService: providerService,
		commentService:  commentService,
		wishlistService: wishlistService,
		topService:      topService,

		userHandler:     &handlers.UserHandler{Service: userService, Cookies: cookies},
		providerHandler: &handlers.ProviderHandler{Service: providerService},
		commentHandler:  &handlers.CommentHandler{Service: commentService},
		wishlistHandler: &handlers.WishlistHandler{Service: wishlistService},
		topHandler:      &handlers.TopHandler{Service: topService},
	}, nil
}

func openDB(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxIdleConns(35)
	log.Println("Successfully connected to database")
	return db, nil
}

// openRedis returns nil when no address is configured; the top listings are
// then served straight from MySQL.
func openRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func addSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Cross-Origin-Resource-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
