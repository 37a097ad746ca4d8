package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"serialvault/logger"
	"serialvault/models"
	"serialvault/services"
)

// AddToBlacklist 블랙리스트 추가
// @Summary 블랙리스트 추가
// @Description 머신을 차단하고 해당 머신의 모든 활성 시리얼을 함께 정지합니다
// @Tags 관리자 - 블랙리스트
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.BlacklistRequest true "차단 정보"
// @Success 200 {object} models.APIResponse "추가 성공"
// @Failure 400 {object} models.APIResponse "잘못된 요청"
// @Failure 500 {object} models.APIResponse "서버 에러"
// @Router /api/blacklist [post]
func AddToBlacklist(w http.ResponseWriter, r *http.Request) {
	requestID := r.Context().Value("request_id")

	var req models.BlacklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse("Invalid request body", err))
		return
	}

	createdBy := adminName(r.Context().Value("username"))

	err := blacklistService.Add(r.Context(), req.MachineID, req.Reason, createdBy)
	if err != nil {
		if errors.Is(err, services.ErrInvalidMachineID) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse("machine_id is required", nil))
			return
		}

		logger.WithFields(map[string]interface{}{
			"request_id": requestID,
			"machine_id": req.MachineID,
			"error":      err.Error(),
		}).Error("Failed to add machine to blacklist")

		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ErrorResponse("Failed to add machine to blacklist", err))
		return
	}

	json.NewEncoder(w).Encode(models.SuccessResponse("Machine blacklisted successfully", nil))
}

// RemoveFromBlacklist 블랙리스트 제거
// @Summary 블랙리스트 제거
// @Description 차단 항목만 제거합니다. 연쇄 정지된 시리얼은 복구되지 않습니다.
// @Tags 관리자 - 블랙리스트
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.BlacklistRemoveRequest true "제거 정보"
// @Success 200 {object} models.APIResponse "제거 성공"
// @Failure 400 {object} models.APIResponse "잘못된 요청"
// @Failure 404 {object} models.APIResponse "차단 항목 없음"
// @Failure 500 {object} models.APIResponse "서버 에러"
// @Router /api/blacklist/remove [post]
func RemoveFromBlacklist(w http.ResponseWriter, r *http.Request) {
	var req models.BlacklistRemoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse("Invalid request body", err))
		return
	}

	err := blacklistService.Remove(r.Context(), req.MachineID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMachineNotBlacklisted):
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(models.ErrorResponse("Machine is not blacklisted", nil))
		case errors.Is(err, services.ErrInvalidMachineID):
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse("machine_id is required", nil))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(models.ErrorResponse("Failed to remove machine from blacklist", err))
		}
		return
	}

	json.NewEncoder(w).Encode(models.SuccessResponse("Machine removed from blacklist", nil))
}
