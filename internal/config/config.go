package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type OTPConfig struct {
	TTL    string `yaml:"ttl"`
	Length int    `yaml:"length"`
}

type EmailConfig struct {
	SendGridKey   string `yaml:"sendgrid_key"`
	FromAddress   string `yaml:"from_address"`
	FromName      string `yaml:"from_name"`
	OperatorEmail string `yaml:"operator_email"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	VerifySID  string `yaml:"verify_sid"`
}

type GoogleConfig struct {
	ClientID string `yaml:"client_id"`
}

type PayPalConfig struct {
	BaseURL      string `yaml:"base_url"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	BrandName    string `yaml:"brand_name"`
}

type ThrottleConfig struct {
	AnonLimit  int    `yaml:"anon_limit"`
	UserLimit  int    `yaml:"user_limit"`
	Window     string `yaml:"window"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Email    EmailConfig    `yaml:"email"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Google   GoogleConfig   `yaml:"google"`
	PayPal   PayPalConfig   `yaml:"paypal"`
	Throttle ThrottleConfig `yaml:"throttle"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

// Config is the flattened runtime configuration. Provider credentials are
// injected into collaborators at construction time, never read ad hoc
// inside flow logic.
type Config struct {
	Port          string
	GinMode       string
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret  string
	JWTIssuer  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	OTPTTL    time.Duration
	OTPLength int

	SendGridKey   string
	EmailFrom     string
	EmailFromName string
	OperatorEmail string

	TwilioSID       string
	TwilioToken     string
	TwilioVerifySID string

	GoogleClientID string

	PayPalBaseURL      string
	PayPalClientID     string
	PayPalClientSecret string
	PayPalBrandName    string

	ThrottleAnonLimit int
	ThrottleUserLimit int
	ThrottleWindow    time.Duration

	CasbinModelPath string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(configFile.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	window, err := time.ParseDuration(configFile.Throttle.Window)
	if err != nil {
		return nil, fmt.Errorf("invalid throttle window: %w", err)
	}

	return &Config{
		Port:          fmt.Sprintf("%d", configFile.App.Port),
		GinMode:       configFile.App.GinMode,
		DSN:           env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:     env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:       configFile.Redis.DB,

		JWTSecret:  env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:  configFile.JWT.Issuer,
		AccessTTL:  accTTL,
		RefreshTTL: refTTL,

		OTPTTL:    otpTTL,
		OTPLength: configFile.OTP.Length,

		SendGridKey:   env("SENDGRID_API_KEY", configFile.Email.SendGridKey),
		EmailFrom:     env("EMAIL_ADDRESS", configFile.Email.FromAddress),
		EmailFromName: configFile.Email.FromName,
		OperatorEmail: env("OPERATOR_EMAIL", configFile.Email.OperatorEmail),

		TwilioSID:       env("ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:     env("AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioVerifySID: env("VERIFY_SID", configFile.Twilio.VerifySID),

		GoogleClientID: env("GOOGLE_CLIENT_ID", configFile.Google.ClientID),

		PayPalBaseURL:      configFile.PayPal.BaseURL,
		PayPalClientID:     env("PAYPAL_CLIENT_ID", configFile.PayPal.ClientID),
		PayPalClientSecret: env("PAYPAL_CLIENT_SECRET", configFile.PayPal.ClientSecret),
		PayPalBrandName:    configFile.PayPal.BrandName,

		ThrottleAnonLimit: configFile.Throttle.AnonLimit,
		ThrottleUserLimit: configFile.Throttle.UserLimit,
		ThrottleWindow:    window,

		CasbinModelPath: configFile.Casbin.ModelPath,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
