package scheduler

import (
	"context"
	"time"

	"serialvault/logger"
	"serialvault/services"
)

// StartScheduler 스케줄러 시작 (만료된 검증 토큰 정리)
func StartScheduler(tokens services.TokenService) {
	logger.Info("Scheduler started")

	// 1시간마다 실행
	ticker := time.NewTicker(1 * time.Hour)

	// 서버 시작 시 즉시 한 번 실행
	sweepExpiredTokens(tokens)

	go func() {
		for {
			<-ticker.C
			logger.Info("Scheduler tick: Running sweepExpiredTokens")
			sweepExpiredTokens(tokens)
		}
	}()
}

// sweepExpiredTokens 만료된 토큰 삭제. 사용 시점의 지연 만료 검사가 정합성을
// 보장하므로 이 작업이 지연되거나 실패해도 검증 결과에는 영향이 없습니다.
func sweepExpiredTokens(tokens services.TokenService) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := tokens.SweepExpired(ctx)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Error("Failed to sweep expired tokens")
		return
	}

	if removed > 0 {
		logger.WithFields(map[string]interface{}{
			"count": removed,
		}).Info("Expired validation tokens removed")
	}
}
