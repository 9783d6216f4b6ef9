// File: pkg/storage/config.go
package storage

import (
	"fmt"

	"unistore/pkg/common"
)

// ProviderConfig is the closed union of per-provider configuration shapes
type ProviderConfig interface {
	Provider() common.Provider
}

type AWSCredentials struct {
	AccessKeyID     string `mapstructure:"access_key_id" yaml:"access_key_id" validate:"required"`
	SecretAccessKey string `mapstructure:"secret_access_key" yaml:"secret_access_key" validate:"required"`
}

// When Credentials is nil the SDK default credential chain is used. The factory still
// requires them; direct construction through aws.NewAWSStorage does not.
type AWSConfig struct {
	Region      string          `mapstructure:"region" yaml:"region" validate:"required"`
	Bucket      string          `mapstructure:"bucket" yaml:"bucket" validate:"required"`
	Credentials *AWSCredentials `mapstructure:"credentials" yaml:"credentials,omitempty" validate:"required"`
}

type GCPConfig struct {
	Bucket string `mapstructure:"bucket" yaml:"bucket" validate:"required"`
	// Path to a service-account JSON key
	KeyFilename string `mapstructure:"key_filename" yaml:"key_filename" validate:"required"`
}

type AzureConfig struct {
	AccountName   string `mapstructure:"account_name" yaml:"account_name" validate:"required"`
	AccountKey    string `mapstructure:"account_key" yaml:"account_key" validate:"required"`
	ContainerName string `mapstructure:"container_name" yaml:"container_name" validate:"required"`
}

type R2Config struct {
	AccountID       string `mapstructure:"account_id" yaml:"account_id" validate:"required"`
	AccessKeyID     string `mapstructure:"access_key_id" yaml:"access_key_id" validate:"required"`
	SecretAccessKey string `mapstructure:"secret_access_key" yaml:"secret_access_key" validate:"required"`
	Bucket          string `mapstructure:"bucket" yaml:"bucket" validate:"required"`
}

func (c *AWSConfig) Provider() common.Provider   { return common.AWS }
func (c *GCPConfig) Provider() common.Provider   { return common.GCP }
func (c *AzureConfig) Provider() common.Provider { return common.Azure }
func (c *R2Config) Provider() common.Provider    { return common.R2 }

// Narrows a ProviderConfig to the concrete shape expected for provider p.
// A nil or mismatched config is reported as an invalid configuration for p.
func ConfigAs[T ProviderConfig](p common.Provider, cfg ProviderConfig) (T, error) {
	typed, ok := cfg.(T)
	if !ok || cfg == nil {
		var zero T
		got := "nil"
		if cfg != nil {
			got = fmt.Sprintf("%T", cfg)
		}
		return zero, &Error{
			Msg:  fmt.Sprintf("Invalid %s configuration: unexpected configuration type %s", p.DisplayName(), got),
			kind: ErrInvalidConfig,
		}
	}
	return typed, nil
}
