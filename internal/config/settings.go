package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// CalendarSystems lists the accepted values of Settings.CalendarSystem.
var CalendarSystems = []string{"auto", "gregorian", "julian"}

// Settings holds the user configuration of the command line tool and server.
// The contacts web password is not part of it; it lives in the system keyring.
type Settings struct {
	CalendarSystem  string `mapstructure:"calendar_system"`
	Language        string `mapstructure:"language"`
	ServerPort      string `mapstructure:"server_port"`
	RefreshInterval int    `mapstructure:"refresh_interval_min"`
	SourceMode      string `mapstructure:"source_mode"`
	LocalPath       string `mapstructure:"local_path"`
	WebURL          string `mapstructure:"web_url"`
	WebUser         string `mapstructure:"web_user"`
	ReminderTrigger string `mapstructure:"reminder_trigger"` // ISO8601 duration, e.g. "-P1D"
	LogLevel        string `mapstructure:"log_level"`

	// The feed carries public holidays and anniversaries unless disabled.
	IncludeHolidays      bool `mapstructure:"include_holidays"`
	IncludeAnniversaries bool `mapstructure:"include_anniversaries"`
}

// LoadOptions tells LoadSettings where to look.
type LoadOptions struct {
	// ConfigPath is an optional YAML file.
	ConfigPath string
	// EnvFile is loaded into the environment first when it exists.
	EnvFile string
	// Flags overrides file and environment values when set on the command line.
	Flags *pflag.FlagSet
}

// flagKeys maps command line flags to the settings they override.
var flagKeys = map[string]string{
	FlagLanguage: KeyLanguage,
	FlagCalendar: KeyCalendarSystem,
	FlagPort:     KeyServerPort,
}

// LoadSettings resolves settings from defaults, the YAML file, MMCAL_* environment
// variables and flags, in increasing order of precedence.
func LoadSettings(opts LoadOptions) (*Settings, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err == nil {
			slog.Debug(MsgEnvLoaded,
				LogKeyComponent, CompSettings,
				LogKeyFile, opts.EnvFile,
			)
		}
	}

	v := viper.New()
	v.SetDefault(KeyCalendarSystem, DefaultCalendar)
	v.SetDefault(KeyLanguage, DefaultLanguage)
	v.SetDefault(KeyServerPort, DefaultPort)
	v.SetDefault(KeyRefreshInterval, DefaultRefreshMin)
	v.SetDefault(KeySourceMode, SourceModeNone)
	v.SetDefault(KeyLocalPath, "")
	v.SetDefault(KeyWebURL, "")
	v.SetDefault(KeyWebUser, "")
	v.SetDefault(KeyReminderTrigger, "")
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyIncludeHolidays, true)
	v.SetDefault(KeyIncludeAnniversary, true)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if opts.ConfigPath != "" {
		v.SetConfigFile(opts.ConfigPath)
		v.SetConfigType(ConfigType)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrSettingsRead, err)
		}
	}

	if opts.Flags != nil {
		for flag, key := range flagKeys {
			if f := opts.Flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("%s: %w", ErrSettingsRead, err)
				}
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSettingsDecode, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSettingsValid, err)
	}
	return &s, nil
}

// Validate reports every invalid field at once.
func (s *Settings) Validate() error {
	var errs []error

	if err := ValidatePort(s.ServerPort); err != nil {
		errs = append(errs, err)
	}
	if s.RefreshInterval < DisabledInterval {
		errs = append(errs, errors.New(ErrIntervalRange))
	}

	lang := strings.ToLower(s.Language)
	base, _, _ := strings.Cut(lang, "-")
	if !slices.Contains(SupportedLanguages, base) {
		errs = append(errs, fmt.Errorf("%s: %q", ErrLanguage, s.Language))
	}
	if !slices.Contains(CalendarSystems, strings.ToLower(s.CalendarSystem)) {
		errs = append(errs, fmt.Errorf("%s: %q", ErrCalendarSystem, s.CalendarSystem))
	}

	switch s.SourceMode {
	case SourceModeNone:
	case SourceModeLocal:
		if s.LocalPath == "" {
			errs = append(errs, errors.New(ErrLocalPathEmpty))
		}
	case SourceModeWeb:
		if s.WebURL == "" {
			errs = append(errs, errors.New(ErrWebURLEmpty))
		}
	default:
		errs = append(errs, fmt.Errorf("%s: %q", ErrModeUnsupport, s.SourceMode))
	}

	if _, err := s.Level(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Level returns the slog level named by LogLevel.
func (s *Settings) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%s: %q", ErrLogLevel, s.LogLevel)
	}
	return l, nil
}

// ValidatePort checks that a port is a number between MinPort and MaxPort.
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return errors.New(ErrPortNumber)
	}
	if n < MinPort || n > MaxPort {
		return errors.New(ErrPortRange)
	}
	return nil
}
