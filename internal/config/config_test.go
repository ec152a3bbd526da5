package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Auth:            Auth{SecretKey: "segredo", TokenTTL: time.Hour},
		Business:        Business{TrialDays: 30},
		SessionReminder: SessionReminder{CronSchedule: "0 * * * *", HoursAhead: 24},
		TrialExpiration: TrialExpiration{CronSchedule: "0 2 * * *"},
		BusinessRanking: BusinessRanking{CronSchedule: "0 6 * * *"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "Configuração válida", mutate: func(*Config) {}},
		{name: "Cron inválido", mutate: func(c *Config) { c.BusinessRanking.CronSchedule = "todo dia" }, wantErr: true},
		{name: "Sem segredo JWT", mutate: func(c *Config) { c.Auth.SecretKey = "" }, wantErr: true},
		{name: "Trial negativo", mutate: func(c *Config) { c.Business.TrialDays = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_ValidateAppliesFallbacks(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.TokenTTL = 0
	cfg.SessionReminder.HoursAhead = 0

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 24, cfg.SessionReminder.HoursAhead)
}
