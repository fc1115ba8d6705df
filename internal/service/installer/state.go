package installer

// EnvFile is what the wizard writes to <runtime>/.env. Flags are strings so
// an explicit "false" is written instead of falling back to the default.
type EnvFile struct {
	DBDriver       string `env:"CRMCHAT_DB_DRIVER"`
	DatabaseURL    string `env:"CRMCHAT_DATABASE_URL"`
	EnableCLI      string `env:"CRMCHAT_ENABLE_CLI"`
	EnableTelegram string `env:"CRMCHAT_ENABLE_TELEGRAM"`
	EnableHTTP     string `env:"CRMCHAT_ENABLE_HTTP"`
	HTTPAddr       string `env:"CRMCHAT_HTTP_ADDR"`
	TelegramToken  string `env:"CRMCHAT_TELEGRAM_TOKEN"`
	TelegramOwner  int64  `env:"CRMCHAT_TELEGRAM_OWNER_ID"`
}

type InstallState struct {
	Env      EnvFile
	Channels map[string]bool
}

func NewInstallState() *InstallState {
	return &InstallState{
		Channels: make(map[string]bool),
	}
}
