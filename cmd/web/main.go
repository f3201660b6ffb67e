package main

import (
	"context"
	"log"
	"os"
	"time"

	"log/slog"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/config"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/flash"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/guestcookie"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/handlers"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/router"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/kv"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/mailer"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/auth"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/blog"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/cart"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/checkout"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/favorites"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/notify"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/remote"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/storage"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	redis, err := kv.NewRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	mediaRes, err := storage.New(ctx, cfg.Media)
	if err != nil {
		log.Fatalf("media storage: %v", err)
	}
	media := mediaRes.Storage
	logger.Info("media storage ready", slog.String("driver", mediaRes.Driver))

	secret := []byte(cfg.CookieSecret)
	flashes := flash.NewCodec(secret, cfg.FlashCookieName, cfg.Secure)
	guests := guestcookie.NewCodec(secret, cfg.GuestCookieName, cfg.Secure)

	cartAPI := remote.NewClient(cfg.Remote.CartBaseURL, logger)
	catalogAPI := remote.NewClient(cfg.Remote.CatalogBaseURL, logger)
	accountsAPI := remote.NewClient(cfg.Remote.AccountsBaseURL, logger)

	catalogClient := remote.NewCatalogClient(catalogAPI)
	accountsClient := remote.NewAccountsClient(accountsAPI)

	promos := cart.NewPromoStore(redis, logger)
	carts := cart.NewManager(func(sessionKey, token string) cart.Service {
		return remote.NewCartClient(cartAPI, sessionKey, token)
	}, promos, logger)

	mail := mailer.NewSMTPMailer(cfg.SMTP)
	notifier := notify.NewService(mail, cfg.SMTP.FromName, cfg.SMTP.From, logger)

	authSvc := auth.NewService(accountsClient, db, cfg.SessionTTL, logger)
	checkoutSvc := checkout.NewService(accountsClient, logger)
	favs := favorites.NewRepo(db)
	blogRepo := blog.NewRepo(db)

	r := router.New(router.Deps{
		Log:     logger,
		Flashes: flashes,
		Guests:  guests,
		Auth:    authSvc,
		Carts:   carts,

		SessionCookieName: cfg.SessionCookieName,
		Secure:            cfg.Secure,
		AdminToken:        cfg.AdminToken,

		Home:      handlers.NewHomeHandler(blogRepo),
		Catalog:   handlers.NewCatalogHandler(catalogClient, cfg.SearchDebounce),
		Product:   handlers.NewProductHandler(catalogClient, favs),
		Cart:      handlers.NewCartHandler(carts, flashes),
		Checkout:  handlers.NewCheckoutHandler(checkoutSvc, carts, flashes, notifier),
		AuthH:     handlers.NewAuthHandler(authSvc, carts, flashes, cfg.SessionCookieName, int(cfg.SessionTTL.Seconds()), cfg.Secure),
		Orders:    handlers.NewOrdersHandler(checkoutSvc),
		Favorites: handlers.NewFavoritesHandler(favs, flashes),
		Blog:      handlers.NewBlogHandler(blogRepo, media),
		Partners:  handlers.NewPartnersHandler(blogRepo, media),
	})

	logger.Info("listening", slog.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
