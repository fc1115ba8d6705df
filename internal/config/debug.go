package config

import (
	"os"
	"strings"
)

func IsDebug() bool {
	return os.Getenv("CRMCHAT_DEBUG") == "1"
}

// LogFormat is "console" unless CRMCHAT_LOG_FORMAT asks for "json".
func LogFormat() string {
	if strings.EqualFold(os.Getenv("CRMCHAT_LOG_FORMAT"), "json") {
		return "json"
	}
	return "console"
}
