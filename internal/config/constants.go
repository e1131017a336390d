// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "signlearn"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort        = ":8080"
	DefaultLogLevel          = "info"
	DefaultPracticeInterval  = 5
	DefaultAutoAdvanceMs     = 1000
	DefaultSessionTTL        = 2 * time.Hour
	DefaultSessionSweepEvery = 10 * time.Minute
)
