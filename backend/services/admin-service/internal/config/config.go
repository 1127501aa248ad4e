package config

import (
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
	"github.com/spf13/viper"
)

type Config struct {
	OrganizationName    string
	AppName             string
	AppPort             string
	AppUrl              string
	Env                 string
	UniqueRunNumber     string
	UniqueRunnerID      string
	DBUrl               string
	SendgridAPIKey      string
	ImageVersionsFile   string
	UserEditRetention   time.Duration
	RecentEditorsWindow time.Duration
	TokenExpiry         time.Duration
	RSAPrivateKey       *rsa.PrivateKey
	RSAPublicKey        *rsa.PublicKey
	LDSDKKey            string

	LDFlag_CORSHighSecurity        bool
	LDFlag_SeedDbWithDefaultEditor bool
	LDFlag_NotifyEditConflicts     bool
	LDFlag_SendgridFromEmail       string
	LDFlag_UsingIsolatedSchema     bool
}

const (
	OrganizationName    = utils.OrganizationName
	LDConnectionTimeout = 5 * time.Second
)

// Default values, override via ldflags at build time.
var (
	AppName             = "admin-service"
	UniqueRunNumber     string
	UniqueRunnerID      string
	LDServerContextKey  string
	LDServerContextKind = "service"
)

// flagSource is satisfied by *ld.LDClient and by envFlags.
type flagSource interface {
	BoolVariation(key string, context ldcontext.Context, defaultVal bool) (bool, error)
	StringVariation(key string, context ldcontext.Context, defaultVal string) (string, error)
}

// LoadConfig reads the environment and feature flags. Missing required
// values are fatal.
func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	v := viper.New()
	v.AutomaticEnv()

	cfg, err := Load(v)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to load config")
	}
	return cfg
}

// Load builds a Config from v. Flags come from LaunchDarkly when
// LD_SDK_KEY is set and from FLAG_* variables otherwise.
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	dbURL := v.GetString("DB_URL")
	if dbURL == "" {
		return nil, errors.New("DB_URL env var is missing")
	}

	privateKey, err := parsePrivateKey(v.GetString("RSA_PRIVATE_KEY_BASE64"))
	if err != nil {
		return nil, err
	}
	publicKey, err := parsePublicKey(v.GetString("RSA_PUBLIC_KEY_BASE64"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		OrganizationName:    OrganizationName,
		AppName:             AppName,
		AppPort:             v.GetString("APP_PORT"),
		AppUrl:              v.GetString("APP_URL_FROM_ANYWHERE"),
		Env:                 v.GetString("ENV"),
		UniqueRunNumber:     utils.FirstNonEmpty(UniqueRunNumber, v.GetString("UNIQUE_RUN_NUMBER")),
		UniqueRunnerID:      utils.FirstNonEmpty(UniqueRunnerID, v.GetString("UNIQUE_RUNNER_ID")),
		DBUrl:               dbURL,
		SendgridAPIKey:      v.GetString("SENDGRID_API_KEY"),
		ImageVersionsFile:   v.GetString("IMAGE_VERSIONS_FILE"),
		UserEditRetention:   v.GetDuration("USER_EDIT_RETENTION"),
		RecentEditorsWindow: v.GetDuration("RECENT_EDITORS_WINDOW"),
		TokenExpiry:         v.GetDuration("TOKEN_EXPIRY"),
		RSAPrivateKey:       privateKey,
		RSAPublicKey:        publicKey,
		LDSDKKey:            v.GetString("LD_SDK_KEY"),
	}
	if cfg.UserEditRetention <= 0 || cfg.RecentEditorsWindow <= 0 || cfg.TokenExpiry <= 0 {
		return nil, errors.New("USER_EDIT_RETENTION, RECENT_EDITORS_WINDOW and TOKEN_EXPIRY must be positive durations")
	}

	var flags flagSource = envFlags{v: v}
	if cfg.LDSDKKey != "" {
		ldClient, err := ld.MakeClient(cfg.LDSDKKey, LDConnectionTimeout)
		if err != nil {
			return nil, fmt.Errorf("create LaunchDarkly client: %w", err)
		}
		defer ldClient.Close()
		if !ldClient.Initialized() {
			return nil, errors.New("LaunchDarkly client failed to initialize")
		}
		flags = ldClient
	} else {
		utils.Logger.Info("LD_SDK_KEY not set; reading feature flags from FLAG_* env vars.")
	}

	if err := cfg.loadFlags(flags); err != nil {
		return nil, err
	}

	utils.Logger.Debugf("App can be accessed at: %s", cfg.AppUrl)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_URL_FROM_ANYWHERE", "http://localhost:8080")
	v.SetDefault("ENV", "dev")
	v.SetDefault("USER_EDIT_RETENTION", 72*time.Hour)
	v.SetDefault("RECENT_EDITORS_WINDOW", time.Hour)
	v.SetDefault("TOKEN_EXPIRY", 12*time.Hour)
}

func (c *Config) loadFlags(flags flagSource) error {
	ctx := ldcontext.NewWithKind(
		ldcontext.Kind(LDServerContextKind),
		utils.FirstNonEmpty(LDServerContextKey, c.AppName),
	)

	var err error
	if c.LDFlag_CORSHighSecurity, err = flags.BoolVariation("cors_high_security", ctx, false); err != nil {
		return fmt.Errorf("error retrieving cors_high_security flag: %w", err)
	}
	if c.LDFlag_SeedDbWithDefaultEditor, err = flags.BoolVariation("seed_db_with_default_editor", ctx, false); err != nil {
		return fmt.Errorf("error retrieving seed_db_with_default_editor flag: %w", err)
	}
	if c.LDFlag_NotifyEditConflicts, err = flags.BoolVariation("notify_edit_conflicts", ctx, false); err != nil {
		return fmt.Errorf("error retrieving notify_edit_conflicts flag: %w", err)
	}
	if c.LDFlag_SendgridFromEmail, err = flags.StringVariation("sendgrid_from_email", ctx, ""); err != nil {
		return fmt.Errorf("error retrieving sendgrid_from_email flag: %w", err)
	}
	if c.LDFlag_UsingIsolatedSchema, err = flags.BoolVariation("using_isolated_schema", ctx, false); err != nil {
		return fmt.Errorf("error retrieving using_isolated_schema flag: %w", err)
	}

	utils.Logger.Debugf("cors_high_security=%t seed_db_with_default_editor=%t notify_edit_conflicts=%t using_isolated_schema=%t",
		c.LDFlag_CORSHighSecurity, c.LDFlag_SeedDbWithDefaultEditor, c.LDFlag_NotifyEditConflicts, c.LDFlag_UsingIsolatedSchema)
	return nil
}

// envFlags serves flag "some_flag" from the FLAG_SOME_FLAG variable.
type envFlags struct {
	v *viper.Viper
}

func envFlagKey(key string) string {
	return "FLAG_" + strings.ToUpper(key)
}

func (e envFlags) BoolVariation(key string, _ ldcontext.Context, defaultVal bool) (bool, error) {
	if !e.v.IsSet(envFlagKey(key)) {
		return defaultVal, nil
	}
	return e.v.GetBool(envFlagKey(key)), nil
}

func (e envFlags) StringVariation(key string, _ ldcontext.Context, defaultVal string) (string, error) {
	if !e.v.IsSet(envFlagKey(key)) {
		return defaultVal, nil
	}
	return e.v.GetString(envFlagKey(key)), nil
}

func parsePrivateKey(b64 string) (*rsa.PrivateKey, error) {
	if b64 == "" {
		return nil, errors.New("RSA_PRIVATE_KEY_BASE64 env var is missing")
	}
	pemBytes, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode base64 private key: %w", err)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parse RSA private key: %w", err)
	}
	return key, nil
}

func parsePublicKey(b64 string) (*rsa.PublicKey, error) {
	if b64 == "" {
		return nil, errors.New("RSA_PUBLIC_KEY_BASE64 env var is missing")
	}
	pemBytes, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode base64 public key: %w", err)
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parse RSA public key: %w", err)
	}
	return key, nil
}
