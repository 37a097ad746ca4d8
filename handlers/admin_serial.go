package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"serialvault/logger"
	"serialvault/models"
	"serialvault/services"
)

// RegisterSerial 시리얼 등록
// @Summary 시리얼 등록
// @Description 시리얼 키를 머신에 바인딩하여 등록합니다. 같은 키를 다시 등록하면 기존 정보를 덮어씁니다.
// @Tags 관리자 - 시리얼
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.RegisterRequest true "등록 정보"
// @Success 201 {object} models.APIResponse{data=models.Serial} "등록 성공"
// @Failure 400 {object} models.APIResponse "잘못된 요청"
// @Failure 500 {object} models.APIResponse "서버 에러"
// @Router /api/register [post]
func RegisterSerial(w http.ResponseWriter, r *http.Request) {
	requestID := r.Context().Value("request_id")

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse("Invalid request body", err))
		return
	}

	serial, err := serialService.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSerialInput) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse("serial_key and machine_id are required", nil))
			return
		}

		logger.WithFields(map[string]interface{}{
			"request_id": requestID,
			"machine_id": req.MachineID,
			"error":      err.Error(),
		}).Error("Failed to register serial")

		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ErrorResponse("Failed to register serial", err))
		return
	}

	logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"machine_id": serial.MachineID,
		"tier":       serial.Tier,
		"admin":      adminName(r.Context().Value("username")),
	}).Info("Serial registered by admin")

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.SuccessResponse("Serial registered successfully", serial))
}

// RevokeSerial 시리얼 정지
// @Summary 시리얼 정지
// @Description 시리얼을 정지하여 이후 검증이 거부되도록 합니다
// @Tags 관리자 - 시리얼
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.RevokeRequest true "정지 정보"
// @Success 200 {object} models.APIResponse "정지 성공"
// @Failure 400 {object} models.APIResponse "잘못된 요청"
// @Failure 404 {object} models.APIResponse "시리얼 없음"
// @Failure 500 {object} models.APIResponse "서버 에러"
// @Router /api/revoke [post]
func RevokeSerial(w http.ResponseWriter, r *http.Request) {
	var req models.RevokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse("Invalid request body", err))
		return
	}

	err := serialService.Revoke(r.Context(), req.SerialKey, req.Reason)
	if err != nil {
		writeLifecycleError(w, err, "Failed to revoke serial")
		return
	}

	json.NewEncoder(w).Encode(models.SuccessResponse("Serial revoked successfully", nil))
}

// RestoreSerial 시리얼 복구
// @Summary 시리얼 복구
// @Description 정지된 시리얼을 다시 활성화합니다
// @Tags 관리자 - 시리얼
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.RestoreRequest true "복구 정보"
// @Success 200 {object} models.APIResponse "복구 성공"
// @Failure 400 {object} models.APIResponse "잘못된 요청"
// @Failure 404 {object} models.APIResponse "시리얼 없음"
// @Failure 500 {object} models.APIResponse "서버 에러"
// @Router /api/restore [post]
func RestoreSerial(w http.ResponseWriter, r *http.Request) {
	var req models.RestoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse("Invalid request body", err))
		return
	}

	err := serialService.Restore(r.Context(), req.SerialKey)
	if err != nil {
		writeLifecycleError(w, err, "Failed to restore serial")
		return
	}

	json.NewEncoder(w).Encode(models.SuccessResponse("Serial restored successfully", nil))
}

// GetSerialStatus 시리얼 상태 조회
// @Summary 시리얼 상태 조회
// @Description 시리얼의 바인딩/정지/만료 상태를 조회합니다. 검증 로그를 남기지 않습니다.
// @Tags 관리자 - 시리얼
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.SerialStatusRequest true "조회 정보"
// @Success 200 {object} models.APIResponse{data=models.SerialStatus} "조회 성공"
// @Failure 400 {object} models.APIResponse "잘못된 요청"
// @Failure 500 {object} models.APIResponse "서버 에러"
// @Router /api/serial/status [post]
func GetSerialStatus(w http.ResponseWriter, r *http.Request) {
	var req models.SerialStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse("Invalid request body", err))
		return
	}

	status, err := serialService.Status(r.Context(), req.SerialKey)
	if err != nil {
		writeLifecycleError(w, err, "Failed to query serial status")
		return
	}

	json.NewEncoder(w).Encode(models.SuccessResponse("Serial status retrieved", status))
}

// writeLifecycleError 수명 주기 오류를 HTTP 응답으로 변환
func writeLifecycleError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, services.ErrSerialNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.ErrorResponse("Serial not found", nil))
	case errors.Is(err, services.ErrInvalidSerialInput):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse("serial_key is required", nil))
	default:
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ErrorResponse(message, err))
	}
}
