package handlers

import (
	"encoding/json"
	"net/http"

	"serialvault/logger"
	"serialvault/models"
)

// IssueToken 검증 토큰 발급
// @Summary 검증 토큰 발급
// @Description 온라인 검증용 베어러 토큰을 발급합니다. 원본 토큰은 이 응답에서만 확인할 수 있습니다.
// @Tags 관리자 - 토큰
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.IssueTokenRequest true "발급 정보"
// @Success 201 {object} models.APIResponse{data=models.IssueTokenResponse} "발급 성공"
// @Failure 400 {object} models.APIResponse "잘못된 요청"
// @Failure 500 {object} models.APIResponse "서버 에러"
// @Router /api/token/issue [post]
func IssueToken(w http.ResponseWriter, r *http.Request) {
	requestID := r.Context().Value("request_id")

	var req models.IssueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse("Invalid request body", err))
		return
	}

	createdBy := adminName(r.Context().Value("username"))

	issued, err := tokenService.Issue(r.Context(), req.TTLHours, createdBy)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to issue validation token")

		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ErrorResponse("Failed to issue validation token", err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.SuccessResponse("Validation token issued", issued))
}
