package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"givehope/auth"
	"givehope/db"
	"givehope/handler"
	"givehope/mailer"
	"givehope/storage"
	"givehope/store"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "modernc.org/sqlite"
)

const DEV_ENV = "dev"
const PRO_ENV = "pro"

type config struct {
	Environment  string
	Address      string
	BasePath     string
	DBURL        string
	JWTSecret    string
	EnableSignup bool
	StrictDelete bool
	PhoneDigits  int

	Storage storage.Config

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	AdminEmail   string
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		panic(err)
	}

	fmt.Println("Running database schema migrations...")
	conn, err := setupDB(cfg.DBURL)
	if err != nil {
		panic(fmt.Sprintf("error during database setup: %v", err))
	}

	bucket, err := storage.NewBucket(cfg.Storage)
	if err != nil {
		panic(err)
	}
	if err := bucket.EnsureBucket(context.Background()); err != nil {
		panic(err)
	}

	h := &handler.Handler{
		Store:        store.New(conn),
		Verifier:     auth.NewVerifier(cfg.JWTSecret),
		Uploader:     bucket,
		Mailer:       mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom, cfg.AdminEmail),
		JWTSecret:    cfg.JWTSecret,
		EnableSignup: cfg.EnableSignup,
		StrictDelete: cfg.StrictDelete,
		PhoneDigits:  cfg.PhoneDigits,
	}

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, "apikey"},
	}))

	h.Register(e, cfg.BasePath)

	e.Logger.Fatal(e.Start(cfg.Address))
}

func loadConfig() (config, error) {
	env := os.Getenv("ENV")
	if env == "" {
		env = PRO_ENV
	}

	secret, err := fetchSecret(env)
	if err != nil {
		return config{}, err
	}

	addr := os.Getenv("ADDRESS_LISTEN")
	if addr == "" {
		addr = ":8080"
	}
	basePath := os.Getenv("BASE_PATH")
	if basePath == "" {
		basePath = "/server"
	}
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		dbURL = "./givehope.db?_pragma=foreign_keys(1)"
	}

	cfg := config{
		Environment:  env,
		Address:      addr,
		BasePath:     basePath,
		DBURL:        dbURL,
		JWTSecret:    secret,
		EnableSignup: os.Getenv("ENABLE_SIGNUP") == "true",
		StrictDelete: os.Getenv("STRICT_DELETE") == "true",
		PhoneDigits:  envInt("PHONE_DIGITS", 11),
		Storage: storage.Config{
			Endpoint:     envDefault("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:    os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey:    os.Getenv("MINIO_SECRET_KEY"),
			Bucket:       envDefault("MINIO_BUCKET", "attachments"),
			UseSSL:       os.Getenv("MINIO_USE_SSL") == "true",
			SignedURLTTL: envDuration("SIGNED_URL_TTL", 365*24*time.Hour),
		},
		SMTPHost:     envDefault("SMTP_HOST", "localhost"),
		SMTPPort:     envInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     envDefault("MAIL_FROM", "noreply@givehope.org"),
		AdminEmail:   envDefault("ADMIN_EMAIL", "contact@givehope.org"),
	}
	return cfg, nil
}

func fetchSecret(env string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" && env == DEV_ENV {
		secret = "unsecure"
	}
	if secret == "" {
		return "", errors.New("no secret defined")
	}
	return secret, nil
}

func setupDB(dataSourceName string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
