package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"peerlend-backend/internal/adapter/events"
	httpadp "peerlend-backend/internal/adapter/http"
	mw "peerlend-backend/internal/adapter/middleware"
	mysqlrepo "peerlend-backend/internal/adapter/repository/mysql"
	"peerlend-backend/internal/config"
	"peerlend-backend/internal/infrastructure/cache"
	"peerlend-backend/internal/infrastructure/db"
	enforceruc "peerlend-backend/internal/usecase/enforcer"
	loanuc "peerlend-backend/internal/usecase/loan"
	reputationuc "peerlend-backend/internal/usecase/reputation"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	uow := mysqlrepo.NewGormUoW(gdb)
	loans := loanuc.NewUsecase(mysqlrepo.NewLoanRepository(gdb), uow, events.NewRedisPublisher(rdb))
	reputations := reputationuc.NewUsecase(mysqlrepo.NewReputationRepository(gdb))
	enforcer := enforceruc.NewUsecase(uow)

	h := httpadp.NewHandler()
	lh := httpadp.NewLoanHandler(loans)
	rh := httpadp.NewReputationHandler(reputations)
	eh := httpadp.NewEnforcerHandler(enforcer)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	// routes
	e.GET("/health", h.Health)

	v1 := e.Group("/v1", mw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	v1.GET("/loans/available", lh.ListAvailable)
	v1.GET("/loans/:loan_id", lh.GetLoan)
	v1.GET("/users/:user_id/loans", lh.UserLoans)
	v1.GET("/users/:user_id/reputation", rh.GetReputation)

	actor := v1.Group("", mw.RequireActor())
	actor.POST("/loans", lh.CreateLoan)
	actor.POST("/loans/:loan_id/take", lh.TakeLoan)
	actor.POST("/loans/:loan_id/repay", lh.RepayLoan)
	actor.POST("/users/:user_id/reviews", rh.AddReview)
	actor.POST("/enforcer/sweep", eh.Sweep)

	if cfg.SweepIntervalSecs > 0 {
		go runSweeper(enforcer, time.Duration(cfg.SweepIntervalSecs)*time.Second)
	}

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

func runSweeper(uc *enforceruc.Usecase, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for range t.C {
		res, err := uc.Sweep(context.Background())
		if err != nil {
			log.Printf("sweep failed: %v", err)
			continue
		}
		if res.Penalized > 0 {
			log.Printf("sweep: %d overdue, %d penalized", res.Scanned, res.Penalized)
		}
	}
}
