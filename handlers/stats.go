package handlers

import (
	"encoding/json"
	"net/http"

	"serialvault/models"
)

// GetStats 운영 통계 조회
// @Summary 운영 통계 조회
// @Description 시리얼/블랙리스트/검증 관련 집계를 반환합니다. 일부 집계 실패 시 채워진 값만 반환됩니다.
// @Tags 관리자 - 통계
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=models.Statistics} "조회 성공"
// @Router /api/stats [get]
func GetStats(w http.ResponseWriter, r *http.Request) {
	stats := statsService.Collect(r.Context())
	json.NewEncoder(w).Encode(models.SuccessResponse("Statistics retrieved", stats))
}
