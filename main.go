package main

import (
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"serialvault/config"
	"serialvault/database"
	_ "serialvault/docs" // Swagger 문서
	"serialvault/handlers"
	"serialvault/logger"
	"serialvault/middleware"
	"serialvault/scheduler"
	"serialvault/services"

	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Serial Vault Server API
// @version 1.0
// @description 머신 바인딩 기반 시리얼 검증 서버
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT 토큰을 입력하세요. 형식: Bearer {token}

func main() {
	cfg := config.Load()

	// 로거 초기화
	logConfig := logger.Config{
		Level:    logger.INFO, // 운영: INFO, 개발: DEBUG
		LogDir:   cfg.LogDir,
		MaxAge:   7, // 7일
		UseColor: true,
		Prefix:   "",
	}

	if err := logger.Initialize(logConfig); err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}

	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Info("🚀 Serial Vault Server Starting")
	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	// 데이터베이스 초기화 (sqlite 또는 mysql)
	// MySQL DSN 형식: "user:password@tcp(host:port)/dbname"
	if err := database.Initialize(cfg.DBType, cfg.DBDSN); err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// 서비스 계층 초기화
	sqlExecutor := services.NewSQLExecutor(database.DB)
	tokenService := services.NewTokenService(sqlExecutor, cfg.TokenTTLHours)
	validationService := services.NewValidationService(sqlExecutor, tokenService, cfg.ForceOnline)
	serialService := services.NewSerialService(sqlExecutor)
	blacklistService := services.NewBlacklistService(sqlExecutor)
	statsService := services.NewStatsService(sqlExecutor)

	handlers.SetServices(validationService, serialService, blacklistService, tokenService, statsService)

	// 스케줄러 시작 (만료된 검증 토큰 자동 정리)
	scheduler.StartScheduler(tokenService)

	// 라우터 설정
	mux := http.NewServeMux()

	// Swagger 문서
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Public 엔드포인트
	mux.HandleFunc("/", homeHandler(statsService))
	mux.HandleFunc("/api/health", healthHandler)

	// 클라이언트 API (인증 불필요)
	mux.HandleFunc("/api/validate",
		middleware.ChainMiddleware(
			handlers.ValidateSerial,
			middleware.LoggingMiddleware,
			middleware.CORSMiddleware,
			middleware.SetJSONHeader,
		))

	mux.HandleFunc("/api/blacklist/check",
		middleware.ChainMiddleware(
			handlers.CheckBlacklist,
			middleware.LoggingMiddleware,
			middleware.CORSMiddleware,
			middleware.SetJSONHeader,
		))

	// 인증 API (관리자)
	mux.HandleFunc("/api/admin/login",
		middleware.ChainMiddleware(
			handlers.Login,
			middleware.LoggingMiddleware,
			middleware.CORSMiddleware,
			middleware.SetJSONHeader,
		))

	// 관리자 API (인증 필요)
	mux.HandleFunc("/api/admin/me",
		middleware.ChainMiddleware(
			handlers.GetMe,
			middleware.LoggingMiddleware,
			middleware.AuthMiddleware,
			middleware.CORSMiddleware,
			middleware.SetJSONHeader,
		))

	mux.HandleFunc("/api/admin/change-password",
		middleware.ChainMiddleware(
			handlers.ChangePassword,
			middleware.LoggingMiddleware,
			middleware.AuthMiddleware,
			middleware.CORSMiddleware,
			middleware.SetJSONHeader,
		))

	// 시리얼 관리 API (인증 필요)
	mux.HandleFunc("/api/register",
		middleware.ChainMiddleware(
			handlers.RegisterSerial,
			middleware.LoggingMiddleware,
			middleware.AuthMiddleware,
			middleware.CORSMiddleware,
			middleware.SetJSONHeader,
		))

	mux.HandleFunc("/api/revoke",
		middleware.ChainMiddleware(
			handlers.RevokeSerial,
			middleware.LoggingMiddleware,
			middleware.AuthMiddleware,
			middleware.CORSMiddleware,
			middleware.SetJSONHeader,
		))

	mux.HandleFunc("/api/restore",
		middleware.ChainMiddleware(
			handlers.RestoreSerial,
			middleware.LoggingMiddleware,
			middleware.AuthMiddleware,
			middleware.CORSMiddleware,
			middleware.SetJSONHeader,
		))

	mux.HandleFunc("/api/serial/status",
		middleware.ChainMiddleware(
			handlers.GetSerialStatus,
			middleware.LoggingMiddleware,
			middleware.AuthMiddleware,
			middleware.CORSMiddleware,
			middleware.SetJSONHeader,
		))

	// 블랙리스트 관리 API (인증 필요)
	mux.HandleFunc("/api/blacklist",
		middleware.ChainMiddleware(
			handlers.AddToBlacklist,
			middleware.LoggingMiddleware,
			middleware.AuthMiddleware,
			middleware.CORSMiddleware,
			middleware.SetJSONHeader,
		))

	mux.HandleFunc("/api/blacklist/remove",
		middleware.ChainMiddleware(
			handlers.RemoveFromBlacklist,
			middleware.LoggingMiddleware,
			middleware.AuthMiddleware,
			middleware.CORSMiddleware,
			middleware.SetJSONHeader,
		))

	// 토큰 발급 API (인증 필요)
	mux.HandleFunc("/api/token/issue",
		middleware.ChainMiddleware(
			handlers.IssueToken,
			middleware.LoggingMiddleware,
			middleware.AuthMiddleware,
			middleware.CORSMiddleware,
			middleware.SetJSONHeader,
		))

	// 통계 API (인증 필요)
	mux.HandleFunc("/api/stats",
		middleware.ChainMiddleware(
			handlers.GetStats,
			middleware.LoggingMiddleware,
			middleware.AuthMiddleware,
			middleware.CORSMiddleware,
			middleware.SetJSONHeader,
		))

	// 서버 설정
	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown 설정
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		logger.Warn("Received shutdown signal")
		database.Close()
		os.Exit(0)
	}()

	logger.Info("Server listening on http://localhost%s", addr)
	logger.Info("Swagger UI: http://localhost%s/swagger/index.html", addr)
	logger.Info("Log directory: %s", cfg.LogDir)
	logger.Info("Database: %s - %s", cfg.DBType, cfg.DBDSN)
	logger.Info("Default admin - username: admin, password: admin123")
	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("Server failed to start: %v", err)
	}
}

// homeHandler 루트 핸들러. 서버 상태와 현재 통계를 함께 반환합니다.
func homeHandler(stats services.StatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "success",
			"message": "Serial Vault Server",
			"version": "1.0.0",
			"stats":   stats.Collect(r.Context()),
		})
	}
}

// healthHandler 헬스체크 핸들러
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"success","message":"Server is healthy"}`))
}
