package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/hrctl-labs/hrctl/internal/branding"
)

func TestAPIBaseURL_Default(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	if got := APIBaseURL(); got != branding.DefaultAPIBaseURL() {
		t.Errorf("APIBaseURL() = %q, want built-in default %q", got, branding.DefaultAPIBaseURL())
	}
}

func TestAPIBaseURL_OverrideWins(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetAPIBaseURL("https://hr.example.com/")

	if got := APIBaseURL(); got != "https://hr.example.com" {
		t.Errorf("APIBaseURL() = %q, want override without trailing slash", got)
	}
}

func TestAPIURL_JoinsPath(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetAPIBaseURL("https://hr.example.com")

	tests := []struct {
		endpoint string
		want     string
	}{
		{"/api/Employee", "https://hr.example.com/api/Employee"},
		{"api/Employee", "https://hr.example.com/api/Employee"},
		{"/api/Auth/login", "https://hr.example.com/api/Auth/login"},
	}
	for _, tt := range tests {
		if got := APIURL(tt.endpoint); got != tt.want {
			t.Errorf("APIURL(%q) = %q, want %q", tt.endpoint, got, tt.want)
		}
	}
}

func TestFilePath_UnderHomeDir(t *testing.T) {
	if !strings.Contains(FilePath(), branding.HomeDir()) {
		t.Errorf("FilePath() = %q, expected it under %s", FilePath(), branding.HomeDir())
	}
	if !strings.HasSuffix(FilePath(), "config.yaml") {
		t.Errorf("FilePath() = %q, want config.yaml suffix", FilePath())
	}
}
