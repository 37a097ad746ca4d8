package handlers

import (
	"encoding/json"
	"net/http"

	"serialvault/logger"
	"serialvault/middleware"
	"serialvault/models"
)

// ValidateSerial 시리얼 검증
// @Summary 시리얼 검증
// @Description 시리얼 키와 머신 ID로 라이선스를 검증합니다. force_online 시리얼은 token이 필요합니다.
// @Tags 클라이언트
// @Accept json
// @Produce json
// @Param request body models.ValidateRequest true "검증 정보"
// @Success 200 {object} models.APIResponse{data=models.Verdict} "검증 성공"
// @Failure 400 {object} models.APIResponse "잘못된 요청"
// @Failure 403 {object} models.APIResponse "검증 거부"
// @Failure 404 {object} models.APIResponse "시리얼 없음"
// @Failure 503 {object} models.APIResponse "저장소 장애"
// @Router /api/validate [post]
func ValidateSerial(w http.ResponseWriter, r *http.Request) {
	requestID := r.Context().Value("request_id")

	var req models.ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithFields(map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid validate request")

		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse("Invalid request body", err))
		return
	}

	clientIP, _ := r.Context().Value("client_ip").(string)
	if clientIP == "" {
		clientIP = middleware.GetClientIP(r)
	}

	verdict, err := validationService.Validate(r.Context(), req, clientIP)
	if err != nil {
		// 저장소 장애는 검증 거부와 구분하여 반환합니다.
		logger.WithFields(map[string]interface{}{
			"request_id": requestID,
			"machine_id": req.MachineID,
			"error":      err.Error(),
		}).Error("Validation failed due to store error")

		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(models.ErrorResponse("Validation temporarily unavailable", err))
		return
	}

	if !verdict.Valid {
		logger.WithFields(map[string]interface{}{
			"request_id": requestID,
			"machine_id": req.MachineID,
			"result":     verdict.Result,
		}).Warn("Serial validation denied")

		w.WriteHeader(statusForResult(verdict.Result))
		json.NewEncoder(w).Encode(models.APIResponse{
			Status:  "error",
			Message: verdict.Message,
			Data:    verdict,
		})
		return
	}

	json.NewEncoder(w).Encode(models.SuccessResponse("Serial is valid", verdict))
}

// statusForResult 판정 결과에 대응하는 HTTP 상태 코드
func statusForResult(result models.ValidationResult) int {
	switch result {
	case models.ResultNotFound:
		return http.StatusNotFound
	case models.ResultInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusForbidden
	}
}

// CheckBlacklist 블랙리스트 조회 (공개)
// @Summary 블랙리스트 조회
// @Description 머신 ID가 차단되어 있는지 확인합니다
// @Tags 클라이언트
// @Accept json
// @Produce json
// @Param request body models.BlacklistCheckRequest true "조회 정보"
// @Success 200 {object} models.APIResponse "조회 성공"
// @Failure 400 {object} models.APIResponse "잘못된 요청"
// @Failure 500 {object} models.APIResponse "서버 에러"
// @Router /api/blacklist/check [post]
func CheckBlacklist(w http.ResponseWriter, r *http.Request) {
	var req models.BlacklistCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse("Invalid request body", err))
		return
	}

	if req.MachineID == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse("machine_id is required", nil))
		return
	}

	entry, err := blacklistService.Check(r.Context(), req.MachineID)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ErrorResponse("Failed to check blacklist", err))
		return
	}

	if entry == nil {
		json.NewEncoder(w).Encode(models.SuccessResponse("Machine is not blacklisted", map[string]interface{}{
			"blacklisted": false,
		}))
		return
	}

	json.NewEncoder(w).Encode(models.SuccessResponse("Machine is blacklisted", map[string]interface{}{
		"blacklisted": true,
		"reason":      entry.Reason,
		"created_at":  entry.CreatedAt,
	}))
}
