package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret      string
	GoogleClientID string

	// PhonePe checkout
	PhonePeClientID      string
	PhonePeClientSecret  string
	PhonePeClientVersion string
	PhonePeHostURL       string
	GatewayTimeout       time.Duration
	GatewayTokenTTL      time.Duration

	APIURL            string
	ClientURL         string
	StoragePath       string
	CourseModuleCount int
	UploadMaxBytes    int

	SendgridAPIKey string
	FromName       string
	FromEmail      string

	WhatsAppPhoneID string
	WhatsAppToken   string
	WhatsAppAPIBase string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiAPIBase string

	RedisURL string

	ReconcileCron   string
	ReconcileMinAge time.Duration
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" && os.Getenv("RENDER") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ .env not found, using system ENV")
		} else {
			log.Println("✅ .env loaded")
		}
	} else {
		log.Println("🚀 Running on a managed host, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")

	PhonePeClientID = GetEnv("PHONEPE_CLIENT_ID", "PGTESTPAYUAT")
	PhonePeClientSecret = GetEnv("PHONEPE_CLIENT_SECRET")
	PhonePeClientVersion = GetEnv("PHONEPE_CLIENT_VERSION", "1")
	PhonePeHostURL = strings.TrimRight(GetEnv("PHONEPE_HOST_URL", "https://api-preprod.phonepe.com/apis/pg-sandbox"), "/")
	GatewayTimeout = GetDuration("GATEWAY_TIMEOUT", 10*time.Second)
	GatewayTokenTTL = GetDuration("GATEWAY_TOKEN_TTL", 15*time.Minute)

	APIURL = strings.TrimRight(GetEnv("API_URL", "http://localhost:5000"), "/")
	ClientURL = strings.TrimRight(GetEnv("CLIENT_URL", "http://localhost:5173"), "/")
	StoragePath = GetEnv("STORAGE_PATH")
	CourseModuleCount = GetInt("COURSE_MODULE_COUNT", 6)
	UploadMaxBytes = GetInt("UPLOAD_MAX_BYTES", 10*1024*1024)

	SendgridAPIKey = GetEnv("SENDGRID_API_KEY")
	FromName = GetEnv("FROM_NAME", "ZAMANAT")
	FromEmail = GetEnv("FROM_EMAIL", "noreply@zamanat.com")

	WhatsAppPhoneID = GetEnv("WHATSAPP_PHONE_ID")
	WhatsAppToken = GetEnv("WHATSAPP_TOKEN")
	WhatsAppAPIBase = strings.TrimRight(GetEnv("WHATSAPP_API_BASE", "https://graph.facebook.com/v19.0"), "/")

	GeminiAPIKey = GetEnv("GEMINI_API_KEY")
	GeminiModel = GetEnv("GEMINI_MODEL", "gemini-1.5-flash")
	GeminiAPIBase = strings.TrimRight(GetEnv("GEMINI_API_BASE", "https://generativelanguage.googleapis.com/v1beta"), "/")

	RedisURL = GetEnv("REDIS_URL")

	ReconcileCron = GetEnv("RECONCILE_CRON", "@every 10m")
	ReconcileMinAge = GetDuration("RECONCILE_MIN_AGE", 5*time.Minute)

	report("JWT_SECRET", JWTSecret)
	report("PHONEPE_CLIENT_SECRET", PhonePeClientSecret)
	report("STORAGE_PATH", StoragePath)
	report("GOOGLE_CLIENT_ID", GoogleClientID)
}

func report(key, value string) {
	if value == "" {
		log.Printf("❌ %s is not set!", key)
		return
	}
	log.Printf("✅ %s loaded.", key)
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("⚠️ invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

// GetDuration accepts Go durations ("10s") or plain seconds ("10").
func GetDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	log.Printf("⚠️ invalid %s=%q, using %s", key, v, def)
	return def
}
