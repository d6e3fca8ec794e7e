package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"storefront/internal/config"
	mydb "storefront/internal/db"
	"storefront/internal/payment"
	"storefront/internal/routes"
	"storefront/internal/seed"
)

func main() {
	// грузим .env из нескольких мест: текущая папка, родительская, корень репо
	_ = godotenv.Overload(".env", "../.env", "../../.env")

	cfg := config.Load()

	db := mydb.MustOpen(cfg.DatabaseDSN)
	if err := mydb.Migrate(db); err != nil {
		log.Fatal(err)
	}
	if err := seed.Products(db); err != nil {
		log.Fatal(err)
	}

	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	gateway := payment.NewClient(cfg.GatewayURL, cfg.GatewaySecretKey)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// раздача статики
	r.Static("/uploads", "./uploads")

	// sessions
	secret := cfg.SessionSecret
	if secret == "" {
		secret = "dev_fallback_secret" // <<< дефолт, чтобы не падало на пустом
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("storefront_session", store))

	// health
	r.GET("/health", func(c *gin.Context) {
		if err := sqlDB.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "db": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	routes.SetupRoutes(r, db, cfg, gateway)

	log.Println("Server listening on :" + cfg.AppPort)
	log.Fatal(r.Run(":" + cfg.AppPort))
}
