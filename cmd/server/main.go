package main

import (
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"

	_ "github.com/go-sql-driver/mysql"

	"github.com/kokomiu/kokomiu-api/admin"
	"github.com/kokomiu/kokomiu-api/auth"
	"github.com/kokomiu/kokomiu-api/config"
	"github.com/kokomiu/kokomiu-api/gpt"
	"github.com/kokomiu/kokomiu-api/server"
	"github.com/kokomiu/kokomiu-api/social"
	"github.com/kokomiu/kokomiu-api/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	sqldb, err := sql.Open("mysql", cfg.MySQL.DSN())
	if err != nil {
		log.Fatal(err)
	}
	db := bun.NewDB(sqldb, mysqldialect.New())

	app := build(cfg, db)

	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}

// build wires every dependency explicitly, once, at startup.
func build(cfg *config.Config, db *bun.DB) *fiber.App {
	logger := server.StdLogger{}

	policy := auth.PolicyFor(string(cfg.Env), cfg.CookieDomain)
	issuer := auth.NewSessionIssuer([]byte(cfg.JWTSecret), policy, auth.WithIssuerLogger(logger))

	google := social.NewGoogle(social.GoogleConfig{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURI:  cfg.Google.RedirectURI,
	})

	userRepo := user.NewRepository(db)
	adminRepo := admin.NewRepository(db)
	gptRepo := gpt.NewRepository(db)

	authService := auth.NewService(
		google,
		user.NewPrincipalStore(userRepo),
		admin.NewPrincipalStore(adminRepo),
		issuer,
		auth.WithServiceLogger(logger),
	)
	adminService := admin.NewService(adminRepo, admin.WithServiceLogger(logger))
	gptService := gpt.NewService(
		gptRepo,
		gpt.NewOpenAIFileStore(cfg.OpenAIAPIKey, logger),
		gpt.WithServiceLogger(logger),
	)

	return server.New(server.Dependencies{
		Logger: logger,
		Auth:   auth.NewController(authService, auth.WithControllerLogger(logger)),
		Admin:  admin.NewController(adminService, issuer, admin.WithControllerLogger(logger)),
		User:   user.NewController(userRepo),
		Gpt:    gpt.NewController(gptService, logger),
	})
}
