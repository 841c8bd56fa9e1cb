package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppPort       string
	AppEnv        string
	DBDSN         string
	JWTSecret     string
	JWTExpiresMin int

	RedisAddr     string
	RedisPassword string

	UploadDir     string
	PublicBaseURL string

	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string

	VerifyAPIURL string
	VerifyAPIKey string

	RegistrationKey string // AES key for permanent registration numbers

	// EOI key-date offsets in days from the publication date
	EOISubmissionDays      int
	EOIProvisionalListDays int
	EOIObjectionDays       int
	EOIFinalListDays       int
}

func Load() Config {
	expires, _ := strconv.Atoi(get("JWT_EXPIRES_MIN", "10080"))
	return Config{
		AppPort:       get("APP_PORT", "8080"),
		AppEnv:        get("APP_ENV", "development"),
		DBDSN:         must("DB_DSN"),
		JWTSecret:     must("JWT_SECRET"),
		JWTExpiresMin: expires,

		RedisAddr:     get("REDIS_ADDR", "localhost:6379"),
		RedisPassword: get("REDIS_PASSWORD", ""),

		UploadDir:     get("UPLOAD_DIR", "./uploads"),
		PublicBaseURL: get("APP_BASE_URL", ""),

		GoogleClientID:  get("GOOGLE_CLIENT_ID", ""),
		GoogleSecret:    get("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirect:  get("GOOGLE_REDIRECT_URL", ""),
		FrontendBaseURL: get("FRONTEND_BASE_URL", "http://localhost:3000"),

		VerifyAPIURL: get("VERIFY_API_URL", ""),
		VerifyAPIKey: get("VERIFY_API_KEY", ""),

		RegistrationKey: get("REGISTRATION_KEY", ""),

		EOISubmissionDays:      getInt("EOI_SUBMISSION_DAYS", 15),
		EOIProvisionalListDays: getInt("EOI_PROVISIONAL_LIST_DAYS", 25),
		EOIObjectionDays:       getInt("EOI_OBJECTION_DAYS", 30),
		EOIFinalListDays:       getInt("EOI_FINAL_LIST_DAYS", 40),
	}
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
