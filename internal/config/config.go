package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"motorheat/internal/models"

	"github.com/spf13/viper"
)

// EnvPrefix scopes environment overrides, e.g. MOTORHEAT_DB_PATH.
const EnvPrefix = "MOTORHEAT"

type Config struct {
	Port        string             `mapstructure:"port"`
	LogLevel    string             `mapstructure:"log_level"`
	LogEncoding string             `mapstructure:"log_encoding"`
	HTTP        HTTPConfig         `mapstructure:"http"`
	DB          DBConfig           `mapstructure:"db"`
	Auth        AuthConfig         `mapstructure:"auth"`
	Render      RenderConfig       `mapstructure:"render"`
	Motor       models.MotorConfig `mapstructure:"motor"`
}

type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

type RenderConfig struct {
	OutputDir string   `mapstructure:"output_dir"`
	Formats   []string `mapstructure:"formats"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_encoding", "console")
	v.SetDefault("http.read_header_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("db.path", "motorheat.db")
	v.SetDefault("auth.signing_key", "change-me")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("render.output_dir", "plots")
	v.SetDefault("render.formats", []string{"png"})

	v.SetDefault("motor.class", "F")
	v.SetDefault("motor.rated_power_kw", 3.0)
	v.SetDefault("motor.efficiency_percent", 82.0)
	v.SetDefault("motor.mass_kg", 34.0)
	v.SetDefault("motor.speed_rpm", 1500.0)
	v.SetDefault("motor.continuous_duration_min", 180.0)
	v.SetDefault("motor.short_time_duration_min", 60.0)
	v.SetDefault("motor.intermittent_duty_percent", 40.0)
}

// Load reads path (or configs/config.yml when empty) on top of the
// defaults and applies MOTORHEAT_* environment overrides. A missing
// default file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Render.Formats = splitFormats(cfg.Render.Formats)
	if strings.TrimSpace(cfg.Auth.SigningKey) == "" {
		return Config{}, errors.New("auth.signing_key must not be empty")
	}
	if cfg.Auth.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("auth.token_ttl must be > 0, got %s", cfg.Auth.TokenTTL)
	}
	return cfg, nil
}

// splitFormats accepts both a YAML list and a comma separated env value.
func splitFormats(in []string) []string {
	var out []string
	for _, f := range in {
		for _, part := range strings.Split(f, ",") {
			if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
