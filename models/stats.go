package models

// Statistics 운영 통계. 일부 질의가 실패해도 채워진 값만 반환됩니다.
type Statistics struct {
	TotalSerials       int `json:"total_serials"`
	ActiveSerials      int `json:"active_serials"`
	RevokedSerials     int `json:"revoked_serials"`
	ForceOnlineSerials int `json:"force_online_serials"`
	BlacklistCount     int `json:"blacklist_count"`
	TodayValidations   int `json:"today_validations"`
	ActiveTokens       int `json:"active_tokens"`
}
