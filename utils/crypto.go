package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// GenerateSerialKey 시리얼 키 생성 (형식: XXXX-XXXX-XXXX-XXXX)
func GenerateSerialKey() (string, error) {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	key := strings.ToUpper(hex.EncodeToString(bytes))

	// 4자리씩 끊어서 대시로 연결
	formatted := fmt.Sprintf("%s-%s-%s-%s",
		key[0:4],
		key[4:8],
		key[8:12],
		key[12:16],
	)

	return formatted, nil
}

// HashSerial 시리얼 키의 SHA-256 해시 생성. DB 조회 키로 사용되며 원본 키는 질의에 쓰지 않습니다.
func HashSerial(serialKey string) string {
	hash := sha256.Sum256([]byte(serialKey))
	return hex.EncodeToString(hash[:])
}

// GenerateValidationToken 검증 토큰 생성. 원본 토큰은 발급 시 한 번만 반환됩니다.
func GenerateValidationToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// HashToken 토큰의 SHA-256 해시 생성. 저장소에는 해시만 보관합니다.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// GenerateID UUID 스타일 ID 생성
func GenerateID(prefix string) (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	id := hex.EncodeToString(bytes)
	if prefix != "" {
		return fmt.Sprintf("%s-%s", prefix, id[:16]), nil
	}
	return id[:16], nil
}

// HashPassword 비밀번호 해싱
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword 비밀번호 검증
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
