package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

const envPrefix = "BOOTGIF_"

// rawBytesProvider feeds embedded config bytes to koanf.
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// LoadSettings builds the renderer settings by layering embedded defaults,
// a TOML file, BOOTGIF_* environment variables and explicit overrides,
// highest last. Override keys are dotted config paths such as
// "files.cache_file"; the CLI feeds its flag values through here.
// File search order: customPath -> ~/.bootgif/bootgif.toml -> ./bootgif.toml.
func LoadSettings(customPath string, overrides map[string]interface{}) (Settings, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultSettingsTOML}, toml.Parser()); err != nil {
		return DefaultSettings(), fmt.Errorf("config: load embedded defaults: %w", err)
	}

	if path := settingsPath(customPath); path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return DefaultSettings(), fmt.Errorf("config: load %s: %w", path, err)
		}
	} else if customPath != "" {
		return DefaultSettings(), fmt.Errorf("config: read %s: %w", customPath, os.ErrNotExist)
	}

	// BOOTGIF_GENERAL_COLOR_SCHEME -> general.color_scheme: only the first
	// underscore separates section from key.
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		if parts := strings.SplitN(key, "_", 2); len(parts) == 2 {
			return parts[0] + "." + parts[1]
		}
		return key
	}), nil)
	if err != nil {
		return DefaultSettings(), fmt.Errorf("config: load environment: %w", err)
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return DefaultSettings(), fmt.Errorf("config: load overrides: %w", err)
		}
	}

	var cfg Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return DefaultSettings(), fmt.Errorf("config: unmarshal settings: %w", err)
	}
	return cfg, nil
}

// settingsPath picks the settings file to load, or empty if none exists.
func settingsPath(customPath string) string {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath
		}
		return ""
	}
	if userPath := userConfigPath("bootgif.toml"); userPath != "" {
		if _, err := os.Stat(userPath); err == nil {
			return userPath
		}
	}
	if _, err := os.Stat("bootgif.toml"); err == nil {
		return "bootgif.toml"
	}
	return ""
}

// LoadProfile loads the profile card data.
// Search order: path -> embedded default -> hardcoded default.
func LoadProfile(path string) (Profile, error) {
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			var p Profile
			if err := yaml.Unmarshal(data, &p); err != nil {
				return DefaultProfile(), fmt.Errorf("config: parse profile %s: %w", path, err)
			}
			return p, nil
		}
	}

	var p Profile
	if err := yaml.Unmarshal(defaultProfileYAML, &p); err != nil {
		return DefaultProfile(), nil
	}
	return p, nil
}

// userConfigPath returns the path to a user config file, or empty if home is
// unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bootgif", filename)
}
