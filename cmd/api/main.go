package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "sacco-guarantor-service/internal/adapter/http"
	"sacco-guarantor-service/internal/adapter/middleware"
	"sacco-guarantor-service/internal/adapter/repository/mysql"
	"sacco-guarantor-service/internal/config"
	"sacco-guarantor-service/internal/infrastructure/cache"
	"sacco-guarantor-service/internal/infrastructure/db"
	coverageUC "sacco-guarantor-service/internal/usecase/coverage"
	eligibilityUC "sacco-guarantor-service/internal/usecase/eligibility"
	guaranteeUC "sacco-guarantor-service/internal/usecase/guarantee"
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

	members := mysql.NewMemberRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	guarantees := mysql.NewGuaranteeRepository(gdb)
	unit := mysql.NewGormUoW(gdb)

	elig := eligibilityUC.NewUsecase(members, loans, guarantees, cfg.TenureMonths)
	guar := guaranteeUC.NewUsecase(unit, members, loans, guarantees, cfg.TenureMonths)
	cov := coverageUC.NewUsecase(unit, loans, guarantees, cfg.MinGuarantors)

	h := httpadp.NewHandler()
	guarantorH := httpadp.NewGuarantorHandler(elig, guar)
	guaranteeH := httpadp.NewGuaranteeHandler(guar)
	coverageH := httpadp.NewCoverageHandler(cov)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)

	e.GET("/loans/:loan_id/guarantors/eligible", guarantorH.SearchEligible)
	e.GET("/loans/:loan_id/guarantors", guarantorH.ListGuarantors)
	e.POST("/loans/:loan_id/guarantors", guarantorH.AddGuarantor, idemp)
	e.DELETE("/loans/:loan_id/guarantors/:member_id", guarantorH.RemoveGuarantor, idemp)

	e.GET("/guarantees/:guarantee_id", guaranteeH.Get)
	e.POST("/guarantees/:guarantee_id/approve", guaranteeH.Approve, idemp)
	e.POST("/guarantees/:guarantee_id/decline", guaranteeH.Decline, idemp)

	e.GET("/loans/:loan_id/coverage", coverageH.GetCoverage)
	e.POST("/loans/:loan_id/submit", coverageH.SubmitLoan, idemp)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
