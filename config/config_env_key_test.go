package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"security": map[string]any{
			"secretKey":                "",
			"accessTokenExpireMinutes": 30,
		},
		"categories": map[string]any{
			"maxPerUser": 5,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "SECURITY_SECRETKEY", want: "security.secretKey"},
		{envKey: "SECURITY_ACCESSTOKENEXPIREMINUTES", want: "security.accessTokenExpireMinutes"},
		{envKey: "CATEGORIES_MAXPERUSER", want: "categories.maxPerUser"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
