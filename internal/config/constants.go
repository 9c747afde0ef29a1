// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "vocab_review_keep"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort = ":8080"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "json"

	// 復習日の切替時刻（02:00）
	DefaultReviewCutoverHour = 2
	// 1復習日あたりの最大レビュー数
	DefaultReviewDailyQuota = 20
	// 1回の取得で返すバッチの上限
	DefaultReviewBatchLimit = 20

	DefaultJWTExpiryHours = 24
)
