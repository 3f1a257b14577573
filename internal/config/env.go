package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv загружает переменные окружения из .env файла.
// Значения из файла перекрывают уже установленные переменные.
// Возвращает ошибку если файл не существует или не может быть разобран.
func LoadEnv(path string) error {
	return godotenv.Overload(path)
}

// LoadEnvOptional загружает переменные окружения из .env файла, если он существует.
// Если файл не существует - возвращает nil (без ошибки).
func LoadEnvOptional(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return LoadEnv(path)
}
