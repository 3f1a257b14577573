package config

import (
	"strings"
)

// MaskSecret маскирует секрет, оставляя только первые 4 и последние 4 символа
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}

	// Если секрет слишком короткий, маскируем полностью
	if len(secret) < 8 {
		return "***"
	}

	prefix := secret[:4]
	suffix := secret[len(secret)-4:]
	masked := strings.Repeat("*", len(secret)-8)

	return prefix + masked + suffix
}

// formatValidationError форматирует ошибку валидации с маскированными секретами
func formatValidationError(field, message string, secret string) error {
	var errorMsg string
	if secret != "" {
		errorMsg = field + ": " + message + " (value: " + MaskSecret(secret) + ")"
	} else {
		errorMsg = field + ": " + message
	}

	return &ValidationError{Field: field, Message: errorMsg}
}

// ValidationError представляет ошибку валидации с дополнительной информацией
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
