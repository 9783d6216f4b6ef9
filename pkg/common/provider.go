// File: pkg/common/provider.go
package common

import "strings"

type Provider string

const (
	AWS   Provider = "aws"
	GCP   Provider = "gcp"
	Azure Provider = "azure"
	R2    Provider = "r2"
)

// Returns the closed set of provider tags in display order
func Providers() []Provider {
	return []Provider{AWS, GCP, Azure, R2}
}

// Normalizes a user-supplied tag. The second result is false for anything outside the closed set
func ParseProvider(name string) (Provider, bool) {
	p := Provider(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Providers() {
		if p == known {
			return p, true
		}
	}
	return p, false
}

func (p Provider) String() string {
	return string(p)
}

// Human readable vendor name used in messages
func (p Provider) DisplayName() string {
	switch p {
	case AWS:
		return "AWS"
	case GCP:
		return "GCP"
	case Azure:
		return "Azure"
	case R2:
		return "R2"
	default:
		return string(p)
	}
}
