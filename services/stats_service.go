package services

import (
	"context"

	"serialvault/logger"
	"serialvault/models"
	"serialvault/utils"
)

// StatsService는 운영 통계 집계를 정의합니다. 판정 로직에는 관여하지 않습니다.
type StatsService interface {
	Collect(ctx context.Context) models.Statistics
}

type statsService struct {
	db SQLExecutor
}

// NewStatsService는 StatsService 구현체를 생성합니다.
func NewStatsService(db SQLExecutor) StatsService {
	return &statsService{db: db}
}

// Collect 통계 수집. 개별 질의 실패는 경고만 남기고 나머지 값을 채워 반환합니다.
func (s *statsService) Collect(ctx context.Context) models.Statistics {
	var stats models.Statistics

	s.count(ctx, &stats.TotalSerials, "SELECT COUNT(*) FROM serials")
	s.count(ctx, &stats.ActiveSerials, "SELECT COUNT(*) FROM serials WHERE is_active = 1")
	s.count(ctx, &stats.ForceOnlineSerials, "SELECT COUNT(*) FROM serials WHERE force_online = 1")
	s.count(ctx, &stats.BlacklistCount, "SELECT COUNT(*) FROM blacklist")

	stats.RevokedSerials = stats.TotalSerials - stats.ActiveSerials

	now := utils.NowSeoul()
	todayStart := utils.FormatDateTimeForDB(utils.StartOfDay(now))
	s.count(ctx, &stats.TodayValidations,
		"SELECT COUNT(*) FROM validation_logs WHERE validation_time >= ?", todayStart)

	s.count(ctx, &stats.ActiveTokens,
		"SELECT COUNT(*) FROM validation_tokens WHERE expires_at >= ?", utils.FormatDateTimeForDB(now))

	return stats
}

func (s *statsService) count(ctx context.Context, dest *int, query string, args ...any) {
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(dest); err != nil {
		logger.WithFields(map[string]interface{}{
			"query": query,
			"error": err.Error(),
		}).Warn("Failed to collect statistic")
	}
}
