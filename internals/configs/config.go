package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
	RestAPIKey       string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")
	RestAPIKey = GetEnv("REST_API_KEY")

	// Konfigurasi wajib: tanpa ini server tidak boleh jalan
	mustSet := map[string]string{
		"JWT_SECRET":         JWTSecret,
		"JWT_REFRESH_SECRET": JWTRefreshSecret,
		"REST_API_KEY":       RestAPIKey,
		"DB_HOST":            GetEnv("DB_HOST"),
		"DB_USER":            GetEnv("DB_USER"),
		"DB_NAME":            GetEnv("DB_NAME"),
	}
	for key, val := range mustSet {
		if val == "" {
			log.Fatalf("❌ %s belum diset!", key)
		}
		log.Printf("✅ %s berhasil dimuat.", key)
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
