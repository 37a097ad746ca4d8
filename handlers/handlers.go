package handlers

import "serialvault/services"

var (
	validationService services.ValidationService
	serialService     services.SerialService
	blacklistService  services.BlacklistService
	tokenService      services.TokenService
	statsService      services.StatsService
)

// SetServices 핸들러가 사용할 서비스 계층을 주입합니다.
func SetServices(
	validation services.ValidationService,
	serials services.SerialService,
	blacklist services.BlacklistService,
	tokens services.TokenService,
	stats services.StatsService,
) {
	validationService = validation
	serialService = serials
	blacklistService = blacklist
	tokenService = tokens
	statsService = stats
}

// adminName 컨텍스트에서 관리자 이름을 꺼냅니다.
func adminName(v interface{}) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return "admin"
}
