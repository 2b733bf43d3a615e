package config

import (
	"os"
	"strconv"
	"strings"

	"hostella/internal/domain"
)

type Env struct {
	AppAddr   string
	GinMode   string
	DBUser    string
	DBPass    string
	DBHost    string
	DBName    string
	JWTSecret string
	UploadDir string

	// flat charges applied on top of base rent
	MaintenanceFee float64
	GeneratorFee   float64
	WaterBill      float64

	// bank account shown to payers on bank-transfer initiation
	BankName      string
	BankAccount   string
	BankAccountNo string
}

func LoadEnv() Env {
	charges := domain.DefaultCharges()

	return Env{
		AppAddr:   getEnv("APP_ADDR", ":8080"),
		GinMode:   strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBUser:    getEnv("DB_USER", "root"),
		DBPass:    strings.TrimSpace(os.Getenv("DB_PASS")),
		DBHost:    getEnv("DB_HOST", "127.0.0.1:3306"),
		DBName:    getEnv("DB_NAME", "hostella"),
		JWTSecret: getEnv("JWT_SECRET", "change-me-in-production"),
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),

		MaintenanceFee: getEnvFloat("MAINTENANCE_FEE", charges.MaintenanceFee),
		GeneratorFee:   getEnvFloat("GENERATOR_FEE", charges.GeneratorFee),
		WaterBill:      getEnvFloat("WATER_BILL", charges.WaterBill),

		BankName:      getEnv("BANK_NAME", "Zed Commercial Bank"),
		BankAccount:   getEnv("BANK_ACCOUNT_NAME", "Hostella Ltd"),
		BankAccountNo: getEnv("BANK_ACCOUNT_NUMBER", "0102003004005"),
	}
}

// Charges bundles the configured flat charges for the receipt calculator.
func (e Env) Charges() domain.ChargeConfig {
	return domain.ChargeConfig{
		MaintenanceFee: e.MaintenanceFee,
		GeneratorFee:   e.GeneratorFee,
		WaterBill:      e.WaterBill,
	}
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
