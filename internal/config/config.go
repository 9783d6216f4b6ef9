// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"unistore/pkg/common"
	"unistore/pkg/storage"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ConfigFileName = "config.yaml"
	ConfigDirName  = "unistore"
	EnvPrefix      = "UNISTORE"
	DefaultTimeout = 5 * time.Minute
)

// Every key accepted by SetValue, in dot notation
var knownKeys = []string{
	"aws.region",
	"aws.bucket",
	"aws.credentials.access_key_id",
	"aws.credentials.secret_access_key",
	"gcp.bucket",
	"gcp.key_filename",
	"azure.account_name",
	"azure.account_key",
	"azure.container_name",
	"r2.account_id",
	"r2.access_key_id",
	"r2.secret_access_key",
	"r2.bucket",
	"timeout",
}

var secretKeys = map[string]bool{
	"aws.credentials.secret_access_key": true,
	"azure.account_key":                 true,
	"r2.secret_access_key":              true,
}

type Config struct {
	AWS   *storage.AWSConfig   `mapstructure:"aws" yaml:"aws,omitempty"`
	GCP   *storage.GCPConfig   `mapstructure:"gcp" yaml:"gcp,omitempty"`
	Azure *storage.AzureConfig `mapstructure:"azure" yaml:"azure,omitempty"`
	R2    *storage.R2Config    `mapstructure:"r2" yaml:"r2,omitempty"`
	// Upper bound for a single provider operation
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout,omitempty"`
}

// Returns the configuration section for p. An absent section yields an empty config of the
// right shape so that validation reports every missing field.
func (c *Config) ProviderConfig(p common.Provider) (storage.ProviderConfig, error) {
	switch p {
	case common.AWS:
		if c.AWS == nil {
			return &storage.AWSConfig{}, nil
		}
		return c.AWS, nil
	case common.GCP:
		if c.GCP == nil {
			return &storage.GCPConfig{}, nil
		}
		return c.GCP, nil
	case common.Azure:
		if c.Azure == nil {
			return &storage.AzureConfig{}, nil
		}
		return c.Azure, nil
	case common.R2:
		if c.R2 == nil {
			return &storage.R2Config{}, nil
		}
		return c.R2, nil
	default:
		return nil, storage.NewUnsupportedProviderError(string(p))
	}
}

// Providers that have at least one value set, in display order
func (c *Config) ConfiguredProviders() []common.Provider {
	var configured []common.Provider
	if c.AWS != nil {
		configured = append(configured, common.AWS)
	}
	if c.GCP != nil {
		configured = append(configured, common.GCP)
	}
	if c.Azure != nil {
		configured = append(configured, common.Azure)
	}
	if c.R2 != nil {
		configured = append(configured, common.R2)
	}
	return configured
}

// ConfigManager reads the YAML config file with environment overrides and persists edits.
// Edits only ever touch the file; environment values are never written back.
type ConfigManager struct {
	configPath string
	file       *viper.Viper
	effective  *viper.Viper
}

func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", ConfigDirName, ConfigFileName), nil
}

// Creates a manager for the config file at configPath, or the default location when empty
func NewConfigManager(configPath string) (*ConfigManager, error) {
	if configPath == "" {
		var err error
		configPath, err = DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	m := &ConfigManager{configPath: configPath}
	if err := m.reload(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *ConfigManager) Path() string {
	return m.configPath
}

func (m *ConfigManager) reload() error {
	file := newViper(m.configPath)
	if err := readIfExists(file); err != nil {
		return err
	}

	effective := newViper(m.configPath)
	effective.SetEnvPrefix(EnvPrefix)
	effective.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range knownKeys {
		if err := effective.BindEnv(key); err != nil {
			return fmt.Errorf("error binding environment for %s: %w", key, err)
		}
	}
	if err := readIfExists(effective); err != nil {
		return err
	}

	m.file = file
	m.effective = effective
	return nil
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	return v
}

func readIfExists(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Decodes the effective settings (file plus UNISTORE_* environment) into a Config
func (m *ConfigManager) LoadConfig() (*Config, error) {
	var cfg Config
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := m.effective.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &cfg, nil
}

func IsKnownKey(key string) bool {
	for _, k := range knownKeys {
		if k == key {
			return true
		}
	}
	return false
}

func KnownKeys() []string {
	keys := make([]string, len(knownKeys))
	copy(keys, knownKeys)
	return keys
}

func IsSecretKey(key string) bool {
	return secretKeys[key]
}

func (m *ConfigManager) SetValue(key, value string) error {
	key = strings.ToLower(key)
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key: %s. Valid keys are: %s", key, strings.Join(knownKeys, ", "))
	}
	if key == "timeout" {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid timeout %q: %w", value, err)
		}
	}

	m.file.Set(key, value)
	return m.save(m.file)
}

// Returns the effective value of key and whether it is set to something non-empty
func (m *ConfigManager) GetValue(key string) (string, bool) {
	key = strings.ToLower(key)
	if !m.effective.IsSet(key) {
		return "", false
	}
	value := m.effective.GetString(key)
	return value, value != ""
}

// Removes key from the config file. Reports false when the file did not set it.
func (m *ConfigManager) DeleteValue(key string) (bool, error) {
	key = strings.ToLower(key)
	settings := m.file.AllSettings()
	if !deleteNested(settings, strings.Split(key, ".")) {
		return false, nil
	}

	fresh := newViper(m.configPath)
	if err := fresh.MergeConfigMap(settings); err != nil {
		return false, fmt.Errorf("error rebuilding config: %w", err)
	}
	if err := m.save(fresh); err != nil {
		return false, err
	}
	return true, nil
}

func (m *ConfigManager) save(v *viper.Viper) error {
	if err := v.WriteConfigAs(m.configPath); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return m.reload()
}

// Returns every non-empty effective value keyed in dot notation, with secrets masked
func (m *ConfigManager) ListValues() map[string]string {
	flattened := FlattenConfigMap(m.effective.AllSettings())
	values := make(map[string]string, len(flattened))
	for k, v := range flattened {
		if v == nil {
			continue
		}
		s := fmt.Sprint(v)
		if s == "" {
			continue
		}
		if IsSecretKey(k) {
			s = MaskSecret(s)
		}
		values[k] = s
	}
	return values
}

// Recursively flattens a nested map (like Viper's config) into a flat map with dot notation keys
func FlattenConfigMap(nestedMap map[string]interface{}) map[string]interface{} {
	flattenedMap := make(map[string]interface{})

	var flatten func(string, interface{})
	flatten = func(prefix string, value interface{}) {
		switch v := value.(type) {
		case map[string]interface{}:
			for k, val := range v {
				newPrefix := k
				if prefix != "" {
					newPrefix = prefix + "." + k
				}
				flatten(newPrefix, val)
			}
		default:
			if prefix != "" {
				flattenedMap[prefix] = value
			}
		}
	}

	flatten("", nestedMap)
	return flattenedMap
}

// Keeps the last four characters of long secrets so they stay recognizable
func MaskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}

// Deletes the leaf at path and prunes parents left empty
func deleteNested(m map[string]interface{}, path []string) bool {
	if len(path) == 0 {
		return false
	}
	if len(path) == 1 {
		if _, ok := m[path[0]]; !ok {
			return false
		}
		delete(m, path[0])
		return true
	}

	child, ok := m[path[0]].(map[string]interface{})
	if !ok {
		return false
	}
	if !deleteNested(child, path[1:]) {
		return false
	}
	if len(child) == 0 {
		delete(m, path[0])
	}
	return true
}

// Loads KEY=VALUE pairs from the given .env files (default ".env") into the process
// environment. Missing files are skipped; variables already set are left alone.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("error loading environment file: %w", err)
	}
	return nil
}

// Sorted keys of a flattened listing
func SortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
