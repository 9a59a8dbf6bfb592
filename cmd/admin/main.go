// admin 引导工具：角色提升不走 API，只能在带外完成。
// 用法：go run ./cmd/admin -email admin@shop.dev -password changeme
// 账号不存在则创建为 admin，存在则提升为 admin。
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"sweet-shop-api/internal/core/config"
	"sweet-shop-api/internal/core/database"
	"sweet-shop-api/internal/core/logger"
	"sweet-shop-api/internal/domain"
	"sweet-shop-api/internal/repo"
	"sweet-shop-api/pkg/utils"
)

func main() {
	email := flag.String("email", "", "admin account email")
	password := flag.String("password", "", "admin account password (min 6 chars, required when creating)")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	if *email == "" {
		log.Fatal("missing -email")
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	users := repo.NewUserRepo(db)

	u, err := users.FindByEmail(*email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		if len(*password) < 6 {
			log.Fatal("password must be at least 6 chars when creating an account")
		}
		hash, herr := utils.HashPassword(*password)
		if herr != nil {
			log.Fatal("hash password", zap.Error(herr))
		}
		nu := &domain.User{Email: *email, PasswordHash: hash, Role: "admin"}
		if cerr := users.Create(nu); cerr != nil {
			log.Fatal("create admin", zap.Error(cerr))
		}
		log.Info("admin account created", zap.Uint("id", nu.ID), zap.String("email", nu.Email))

	case err != nil:
		log.Fatal("lookup account", zap.Error(err))

	default:
		if u.Role == "admin" {
			log.Info("account is already admin", zap.Uint("id", u.ID))
			return
		}
		if uerr := users.UpdateRole(u.ID, "admin"); uerr != nil {
			log.Fatal("promote account", zap.Error(uerr))
		}
		log.Info("account promoted to admin", zap.Uint("id", u.ID), zap.String("email", u.Email))
	}
}
