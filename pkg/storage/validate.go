// File: pkg/storage/validate.go
package storage

import (
	"errors"
	"reflect"
	"strings"

	"unistore/pkg/common"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their config key rather than the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" {
			return fld.Name
		}
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Checks presence of every required field for the provider the config belongs to.
// Purely structural: no network or filesystem access.
func Validate(cfg ProviderConfig) error {
	switch c := cfg.(type) {
	case *AWSConfig:
		return ValidateAWSConfig(c)
	case *GCPConfig:
		return ValidateGCPConfig(c)
	case *AzureConfig:
		return ValidateAzureConfig(c)
	case *R2Config:
		return ValidateR2Config(c)
	default:
		return &Error{Msg: "Invalid configuration: unknown configuration type", kind: ErrInvalidConfig}
	}
}

func ValidateAWSConfig(cfg *AWSConfig) error {
	return checkRequired(common.AWS, cfg)
}

func ValidateGCPConfig(cfg *GCPConfig) error {
	return checkRequired(common.GCP, cfg)
}

func ValidateAzureConfig(cfg *AzureConfig) error {
	return checkRequired(common.Azure, cfg)
}

func ValidateR2Config(cfg *R2Config) error {
	return checkRequired(common.R2, cfg)
}

func checkRequired(p common.Provider, cfg any) error {
	if v := reflect.ValueOf(cfg); !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return NewConfigError(p.DisplayName(), nil)
	}

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return NewConfigError(p.DisplayName(), nil)
	}

	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		missing = append(missing, fieldPath(fe.Namespace()))
	}
	return NewConfigError(p.DisplayName(), missing)
}

// Drops the leading struct name from a validator namespace ("AWSConfig.credentials.access_key_id")
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
