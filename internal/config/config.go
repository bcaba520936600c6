package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// CORS configuration
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`

	// Session configuration
	SessionSecret   string `mapstructure:"SESSION_SECRET"`
	SessionTTLHours int    `mapstructure:"SESSION_TTL_HOURS"`

	// KoBo proxy configuration
	KoboBaseURL  string `mapstructure:"KOBO_BASE_URL"`
	KoboAPIToken string `mapstructure:"KOBO_API_TOKEN"`
	KoboRetryMax int    `mapstructure:"KOBO_RETRY_MAX"`

	// Form ids of the upstream collection project
	MainFormID        string `mapstructure:"MAIN_FORM_ID"`
	ChangeLogFormID   string `mapstructure:"CHANGE_LOG_FORM_ID"`
	UT3AdvancedFormID string `mapstructure:"UT3_ADVANCED_FORM_ID"`
	UT3EarlyFormID    string `mapstructure:"UT3_EARLY_FORM_ID"`
	UT4AdvancedFormID string `mapstructure:"UT4_ADVANCED_FORM_ID"`
	UT4EarlyFormID    string `mapstructure:"UT4_EARLY_FORM_ID"`

	// Upstream schema field names. These encode the shape of the form
	// definitions and change whenever the forms are redesigned, so they stay
	// configuration rather than code.
	ToolIDField       string   `mapstructure:"TOOL_ID_FIELD"`
	ToolNameField     string   `mapstructure:"TOOL_NAME_FIELD"`
	MaturityField     string   `mapstructure:"MATURITY_FIELD"`
	OwnerField        string   `mapstructure:"OWNER_FIELD"`
	ChangeToolIDField string   `mapstructure:"CHANGE_TOOL_ID_FIELD"`
	ChangeOwnerField  string   `mapstructure:"CHANGE_OWNER_FIELD"`
	ToolIDCandidates  []string `mapstructure:"TOOL_ID_CANDIDATES"`
	GenderFieldOrder  []string `mapstructure:"GENDER_FIELD_ORDER"`
	AgeFieldOrder     []string `mapstructure:"AGE_FIELD_ORDER"`

	// Dashboard behaviour
	SummaryRetryDelay time.Duration `mapstructure:"SUMMARY_RETRY_DELAY"`

	// Outbound endpoints
	ScoringTriggerURL string        `mapstructure:"SCORING_TRIGGER_URL"`
	NotifyFlowURL     string        `mapstructure:"NOTIFY_FLOW_URL"`
	FeedbackFlowURL   string        `mapstructure:"FEEDBACK_FLOW_URL"`
	StopNotifyDelay   time.Duration `mapstructure:"STOP_NOTIFY_DELAY"`
	ReportBaseURL     string        `mapstructure:"REPORT_BASE_URL"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PORT", "7010")
	viper.SetDefault("LOG_LEVEL", "info")

	// CORS defaults
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:8080"})

	// Session defaults
	viper.SetDefault("SESSION_SECRET", "change-me-in-production")
	viper.SetDefault("SESSION_TTL_HOURS", 12)

	// KoBo defaults
	viper.SetDefault("KOBO_BASE_URL", "")
	viper.SetDefault("KOBO_API_TOKEN", "")
	viper.SetDefault("KOBO_RETRY_MAX", 3)

	// Form id defaults match the current collection project
	viper.SetDefault("MAIN_FORM_ID", "aJn2DsjpAeJjrB6VazHjtz")
	viper.SetDefault("CHANGE_LOG_FORM_ID", "avPNYf5KFFyGhrxGx6u4K3")
	viper.SetDefault("UT3_ADVANCED_FORM_ID", "aFfhFi5vpsierwc3b5SNvc")
	viper.SetDefault("UT3_EARLY_FORM_ID", "aCAhpbKYdsMbnGcWo4yR42")
	viper.SetDefault("UT4_ADVANCED_FORM_ID", "aU5LwrZps9u7Yt7obeShjv")
	viper.SetDefault("UT4_EARLY_FORM_ID", "aKhnEosysRHsrUKxanCSKc")

	// Schema field defaults
	viper.SetDefault("TOOL_ID_FIELD", "ID")
	viper.SetDefault("TOOL_NAME_FIELD", "tool_name")
	viper.SetDefault("MATURITY_FIELD", "tool_maturity")
	viper.SetDefault("OWNER_FIELD", "coordinator_email")
	viper.SetDefault("CHANGE_TOOL_ID_FIELD", "tool_id")
	viper.SetDefault("CHANGE_OWNER_FIELD", "Email_of_the_Coordinator")
	viper.SetDefault("TOOL_ID_CANDIDATES", []string{
		"group_intro/Q_13110000",
		"group_requester/Q_13110000",
		"Q_13110000",
		"tool_id",
	})
	viper.SetDefault("GENDER_FIELD_ORDER", []string{
		"group_individualinfo/Q_32120000",
		"group_intro_001/Q_32120000",
		"group_individualinfo/Q_42120000",
		"Q_individualinfo/Q_42120000",
		"Q_32120000",
		"Q_42120000",
	})
	viper.SetDefault("AGE_FIELD_ORDER", []string{
		"group_individualinfo/Q_32110000",
		"group_intro_001/Q_32110000",
		"group_individualinfo/Q_42110000",
		"Q_individualinfo/Q_32110000",
		"Q_32110000",
		"Q_42110000",
	})

	// Dashboard defaults
	viper.SetDefault("SUMMARY_RETRY_DELAY", "5s")

	// Outbound defaults
	viper.SetDefault("SCORING_TRIGGER_URL", "")
	viper.SetDefault("NOTIFY_FLOW_URL", "")
	viper.SetDefault("FEEDBACK_FLOW_URL", "")
	viper.SetDefault("STOP_NOTIFY_DELAY", "30s")
	viper.SetDefault("REPORT_BASE_URL", "")
}

func validate(config *Config) error {
	if config.Environment == "production" {
		if config.SessionSecret == "change-me-in-production" {
			return fmt.Errorf("SESSION_SECRET must be set in production")
		}
	}

	if config.KoboBaseURL == "" {
		return fmt.Errorf("KOBO_BASE_URL is required")
	}
	if !strings.HasPrefix(config.KoboBaseURL, "http://") && !strings.HasPrefix(config.KoboBaseURL, "https://") {
		config.KoboBaseURL = "https://" + config.KoboBaseURL
	}
	config.KoboBaseURL = strings.TrimRight(config.KoboBaseURL, "/")

	if config.MainFormID == "" || config.ChangeLogFormID == "" {
		return fmt.Errorf("main and change-log form ids are required")
	}

	return nil
}

// EvalFormID returns the form id for a user-type category and maturity variant.
// Unknown combinations return an empty id.
func (c *Config) EvalFormID(category, maturity string) string {
	switch category + "/" + maturity {
	case "ut3/advanced":
		return c.UT3AdvancedFormID
	case "ut3/early":
		return c.UT3EarlyFormID
	case "ut4/advanced":
		return c.UT4AdvancedFormID
	case "ut4/early":
		return c.UT4EarlyFormID
	}
	return ""
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
