// internal/config/config.go
package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	Review struct {
		// 復習日の切替時刻（0〜23）。深夜0時ではなくこの時刻で日付が切り替わる。
		CutoverHour int `mapstructure:"cutover_hour"`
		// 1復習日あたりの最大レビュー数
		DailyQuota int `mapstructure:"daily_quota"`
		// 1回の取得で返すバッチの上限
		BatchLimit int `mapstructure:"batch_limit"`
	} `mapstructure:"review"`
	JWT struct {
		SecretKey   string `mapstructure:"secret_key"`
		ExpiryHours int    `mapstructure:"expiry_hours"`
	} `mapstructure:"jwt"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数からの上書き (例: APP_DATABASE_URL)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- デフォルト値の設定 ---
	if Cfg.Server.Port == "" {
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.Log.Level == "" {
		Cfg.Log.Level = DefaultLogLevel
	}
	if Cfg.Log.Format == "" {
		Cfg.Log.Format = DefaultLogFormat
	}
	// cutover_hour は 0 が正当な設定値なので IsSet で未設定か判定する
	if !viper.IsSet("review.cutover_hour") {
		Cfg.Review.CutoverHour = DefaultReviewCutoverHour
	}
	if Cfg.Review.CutoverHour < 0 || Cfg.Review.CutoverHour > 23 {
		log.Printf("Invalid review cutover hour %d, using default %d", Cfg.Review.CutoverHour, DefaultReviewCutoverHour)
		Cfg.Review.CutoverHour = DefaultReviewCutoverHour
	}
	if Cfg.Review.DailyQuota <= 0 {
		Cfg.Review.DailyQuota = DefaultReviewDailyQuota
	}
	if Cfg.Review.BatchLimit <= 0 {
		Cfg.Review.BatchLimit = DefaultReviewBatchLimit
	}
	if Cfg.JWT.ExpiryHours <= 0 {
		Cfg.JWT.ExpiryHours = DefaultJWTExpiryHours
	}
	if Cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if Cfg.JWT.SecretKey == "" {
		log.Println("Warning: JWT secret key is not set in config.")
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Review Cutover Hour: %d", Cfg.Review.CutoverHour)
	log.Printf("Review Daily Quota: %d", Cfg.Review.DailyQuota)

	return nil
}
