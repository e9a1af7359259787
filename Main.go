package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"Storefront/accounts"
	"Storefront/cart"
	"Storefront/catalog"
	"Storefront/config"
	"Storefront/handlers"
	"Storefront/jwt"
	"Storefront/logger"
	"Storefront/models"
	"Storefront/routers"
	"Storefront/session"
)

func main() {
	configPath := flag.String("config", "", "設定檔路徑")
	seed := flag.Bool("seed", false, "建立測試帳號後結束")
	flag.Parse()

	//.env 不存在時沿用環境變數
	_ = godotenv.Load()

	path := *configPath
	if path == "" {
		path = os.Getenv("STOREFRONT_CONFIG")
	}
	if path == "" {
		path = config.DefaultPath
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		logrus.WithError(err).Fatal("無法讀取設定檔")
	}
	log := logger.New(cfg.Log)

	db, err := config.SetupMySQLConnection(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("無法連接到資料庫")
	}
	defer closeDatabase(db, log)

	accountRepo := accounts.NewRepository(db)

	if *seed {
		user, err := accountRepo.SeedUser(context.Background(), "usuario teste", "admin@storefront.test", "admin123", models.RoleAdmin)
		if err != nil {
			log.WithError(err).Fatal("建立測試帳號失敗")
		}
		log.WithField("email", user.Email).Info("已建立測試帳號")
		return
	}

	rdb := config.SetupRedisConnection(cfg)
	defer rdb.Close()

	sessionStore, menuCache, err := sessionBackends(context.Background(), cfg, rdb, log)
	if err != nil {
		log.WithError(err).Fatal("無法連接到Redis")
	}

	tokens, err := jwt.LoadManager(cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath)
	if err != nil {
		log.WithError(err).Fatal("無法讀取JWT金鑰")
	}

	deps := handlers.Deps{
		Catalog:  catalog.NewRepository(db, menuCache, cfg.Catalog.PageSize, cfg.Catalog.MenuCacheTTL, log),
		Accounts: accountRepo,
		Carts:    cart.NewService(cart.NewSessionStore(sessionStore)),
		Sessions: session.NewManager(sessionStore, session.Options{
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
			Secure:     cfg.Server.SecureCookies,
		}, log),
		Tokens:        tokens,
		TokenTTL:      cfg.JWT.TTL,
		SecureCookies: cfg.Server.SecureCookies,
		Log:           log,
	}

	router, err := routers.SetupRouters(deps, accountRepo, routers.Options{
		TrustedProxies: cfg.Server.TrustedProxies,
		Log:            log,
	})
	if err != nil {
		log.WithError(err).Fatal("無法建立路由")
	}

	log.WithField("addr", cfg.Server.Addr).Info("伺服器啟動")
	if err := router.Run(cfg.Server.Addr); err != nil {
		log.WithError(err).Fatal("伺服器停止")
	}
}

func closeDatabase(db *gorm.DB, log logrus.FieldLogger) {
	dbInstance, err := db.DB()
	if err != nil {
		log.WithError(err).Error("無法取得資料庫連線")
		return
	}
	if err := dbInstance.Close(); err != nil {
		log.WithError(err).Error("關閉資料庫連線失敗")
	}
}

// sessionBackends 依設定選擇Session儲存方式，Redis無法連線時只有memory driver可以繼續執行且不使用選單快取
func sessionBackends(ctx context.Context, cfg config.Config, rdb redis.Cmdable, log logrus.FieldLogger) (session.Store, redis.Cmdable, error) {
	var menuCache redis.Cmdable = rdb
	if cfg.Catalog.MenuCacheTTL <= 0 {
		menuCache = nil
	}

	if err := rdb.Ping(ctx).Err(); err != nil {
		if cfg.Session.Driver != "memory" {
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		log.WithError(err).Warn("無法連接到Redis，分類選單不使用快取")
		menuCache = nil
	}

	if cfg.Session.Driver == "memory" {
		return session.NewMemoryStore(cfg.Session.TTL), menuCache, nil
	}
	return session.NewRedisStore(rdb, cfg.Session.TTL), menuCache, nil
}
