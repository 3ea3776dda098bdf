package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/logging"
)

// Default returns the configuration built from the embedded defaults only
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	return unmarshal(k, nil)
}

// Load builds the effective configuration:
//  1. embedded defaults
//  2. the TOML file at userPath, when it exists
//  3. PATHPIRATE_* environment variables
//
// A missing user file is not an error. A user file that fails to parse is.
func Load(userPath string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config
	var sources []string
	if userPath != "" {
		if _, err := os.Stat(userPath); err == nil {
			if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", userPath).
					WithDetail("path", userPath)
			}
			sources = append(sources, userPath)
			logger.Debug().Str("path", userPath).Msg("Loaded user config")
		} else {
			logger.Debug().Str("path", userPath).Msg("No user config found")
		}
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	return unmarshal(k, sources)
}

// envKey maps PATHPIRATE_HALSHOW__BASE_URL to halshow.base_url
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func unmarshal(k *koanf.Koanf, sources []string) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := check(&cfg); err != nil {
		return nil, err
	}

	cfg.Sources = sources
	cfg.raw = k.Raw()
	return &cfg, nil
}

var validate = newValidator()

// newValidator reports fields by their koanf key
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("koanf"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func check(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(err, errors.ErrConfigParse, "failed to validate configuration")
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		key := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			problems = append(problems, fmt.Sprintf("%s fails %s=%s", key, fe.Tag(), fe.Param()))
		} else {
			problems = append(problems, fmt.Sprintf("%s fails %s", key, fe.Tag()))
		}
	}
	return errors.Newf(errors.ErrConfigParse, "invalid configuration: %s", strings.Join(problems, "; ")).
		WithDetail("fields", problems)
}

// TOML renders the effective configuration as TOML. Durations keep the
// form they were written in.
func (c *Config) TOML() ([]byte, error) {
	var data []byte
	var err error
	if c.raw != nil {
		data, err = gotoml.Marshal(c.raw)
	} else {
		data, err = gotoml.Marshal(c)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return data, nil
}
