package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config ortam yapılandırmalarını tutar
type Config struct {
	AppEnv string
	Port   string
	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	// Ödeme ayarları (tüm tutarlar kuruş cinsinden)
	MinPaymentAmount int64
	FrontendURL      string

	// Mock banka ayarları
	BankWebhookDelay   time.Duration
	BankPayoutDelay    time.Duration
	BankPayoutFailRate float64
}

// yardımcı fonksiyon: ortam değişkeni yoksa default değeri döner
func getEnv(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// yardımcı fonksiyon: int64 ortam değişkeni okur, parse edilemezse default döner
func getEnvInt64(key string, defaultVal int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// yardımcı fonksiyon: float64 ortam değişkeni okur
func getEnvFloat(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// LoadConfig tüm yapılandırmayı yükler
func LoadConfig() *Config {
	return &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "8080"),
		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBUser: getEnv("DB_USER", "ilhan"),
		DBPass: getEnv("DB_PASS", "password"),
		DBName: getEnv("DB_NAME", "bettingdb"),

		// Minimum yatırma/çekme tutarı: 10000 kuruş = 100 TL
		MinPaymentAmount: getEnvInt64("MIN_PAYMENT_AMOUNT", 10000),
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:3000"),

		BankWebhookDelay:   time.Duration(getEnvInt64("BANK_WEBHOOK_DELAY_MS", 3000)) * time.Millisecond,
		BankPayoutDelay:    time.Duration(getEnvInt64("BANK_PAYOUT_DELAY_MS", 7000)) * time.Millisecond,
		BankPayoutFailRate: getEnvFloat("BANK_PAYOUT_FAIL_RATE", 0.05),
	}
}

// GetDSN veritabanı bağlantı URL'sini döner
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName,
	)
}
