package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "loanguard-backend/internal/adapter/http"
	"loanguard-backend/internal/adapter/middleware"
	"loanguard-backend/internal/adapter/repository/mysql"
	"loanguard-backend/internal/auth"
	"loanguard-backend/internal/config"
	fraudDomain "loanguard-backend/internal/domain/fraud"
	loanDomain "loanguard-backend/internal/domain/loan"
	userDomain "loanguard-backend/internal/domain/user"
	"loanguard-backend/internal/infrastructure/cache"
	"loanguard-backend/internal/infrastructure/db"
	"loanguard-backend/internal/infrastructure/mailer"
	approvalUC "loanguard-backend/internal/usecase/approval"
	fraudUC "loanguard-backend/internal/usecase/fraud"
	loanUC "loanguard-backend/internal/usecase/loan"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := gdb.AutoMigrate(&userDomain.User{}, &loanDomain.Application{}, &fraudDomain.FraudFlag{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	kvStore := cache.NewRedisStore(rdb)

	loans := mysql.NewLoanRepository(gdb)
	users := mysql.NewUserRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	var notifier fraudDomain.Notifier = mailer.LogNotifier{}
	if cfg.SMTPAddr != "" {
		notifier = mailer.NewSMTPNotifier(cfg.SMTPAddr, cfg.MailFrom, cfg.AdminEmail)
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	if err != nil {
		log.Fatalf("jwt: %v", err)
	}

	fraudChecks := fraudUC.NewUsecase(loans, tx, kvStore, notifier)
	loanFlow := loanUC.NewUsecase(loans, tx, fraudChecks, kvStore)
	approvals := approvalUC.NewUsecase(tx, kvStore)

	h := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(users, tokens)
	loanH := httpadp.NewLoanHandler(loanFlow)
	adminH := httpadp.NewAdminHandler(approvals, fraudChecks)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	e.Validator = httpadp.NewValidator()

	jwtAuth := middleware.JWTAuth(tokens)
	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	// routes
	e.GET("/health", h.Health)

	ag := e.Group("/auth")
	ag.POST("/register", authH.Register)
	ag.POST("/login", authH.Login)
	ag.POST("/refresh", authH.Refresh)
	ag.POST("/logout", authH.Logout, jwtAuth)

	lg := e.Group("/loans", jwtAuth)
	lg.POST("", loanH.CreateLoan, idemp)
	lg.GET("", loanH.ListLoans)
	lg.GET("/dashboard", loanH.Dashboard)
	lg.GET("/:id", loanH.GetLoan)
	lg.POST("/:id/withdraw", loanH.Withdraw)

	adm := e.Group("/admin", jwtAuth, middleware.AdminOnly())
	adm.POST("/loans/:id/approve", adminH.Approve)
	adm.POST("/loans/:id/reject", adminH.Reject)
	adm.POST("/loans/:id/flag", adminH.Flag)
	adm.GET("/fraud/flagged", adminH.ListFlagged)
	adm.GET("/fraud/flagged/all", adminH.ListFlaggedHistory)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
