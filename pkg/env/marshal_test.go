package env

import (
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Driver     string        `env:"CRMCHAT_DB_DRIVER" envDefault:"sqlite3"`
	OwnerID    int64         `env:"CRMCHAT_TELEGRAM_OWNER_ID,required"`
	EnableCLI  bool          `env:"CRMCHAT_ENABLE_CLI"`
	SessionTTL time.Duration `env:"CRMCHAT_SESSION_TTL"`
	Empty      string        `env:"CRMCHAT_EMPTY"`
	NoTag      string
	hidden     string `env:"CRMCHAT_HIDDEN"`
}

func TestMarshalEnv(t *testing.T) {
	s := &sample{
		Driver:     "postgres",
		OwnerID:    42,
		EnableCLI:  true,
		SessionTTL: 90 * time.Minute,
		NoTag:      "x",
		hidden:     "y",
	}

	got, err := MarshalEnv(s)
	require.NoError(t, err)
	assert.Equal(t, "CRMCHAT_DB_DRIVER=\"postgres\"\nCRMCHAT_ENABLE_CLI=\"true\"\nCRMCHAT_SESSION_TTL=\"1h30m0s\"\nCRMCHAT_TELEGRAM_OWNER_ID=42\n", got)
}

func TestMarshalEnv_RoundTrip(t *testing.T) {
	type dsn struct {
		URL string `env:"CRMCHAT_DATABASE_URL"`
	}
	in := &dsn{URL: "postgres://crm:s3cr3t@db:5432/crm?sslmode=disable&application_name=crm chat"}

	out, err := MarshalEnv(in)
	require.NoError(t, err)

	parsed, err := godotenv.Unmarshal(out)
	require.NoError(t, err)
	assert.Equal(t, in.URL, parsed["CRMCHAT_DATABASE_URL"])
}

func TestMarshalEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "required_missing", in: &sample{Driver: "sqlite3"}, want: "CRMCHAT_TELEGRAM_OWNER_ID is required"},
		{name: "not_a_pointer", in: sample{}, want: ErrNotStruct.Error()},
		{name: "not_a_struct", in: new(string), want: ErrNotStruct.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MarshalEnv(tt.in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMarshalEnv_AllZero(t *testing.T) {
	type optional struct {
		Debug bool   `env:"CRMCHAT_DEBUG"`
		Addr  string `env:"CRMCHAT_HTTP_ADDR"`
	}

	got, err := MarshalEnv(&optional{})
	require.NoError(t, err)
	assert.Empty(t, got)
}
