// File: pkg/formatter/object_formatter_test.go
package formatter

import (
	"errors"
	"testing"
	"time"

	"unistore/pkg/common"
	"unistore/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestObjectFormatter_FormatUploadResults(t *testing.T) {
	out := NewObjectFormatter().FormatUploadResults([]storage.Transfer{
		{
			LocalPath:  "a.txt",
			RemotePath: "in/a.txt",
			URL:        "https://my-bucket.s3.amazonaws.com/in/a.txt",
			Bytes:      2048,
			Duration:   1500 * time.Millisecond,
		},
		{
			LocalPath:  "b.txt",
			RemotePath: "in/b.txt",
			Bytes:      -1,
			Err:        errors.New("Failed to upload file: denied"),
		},
	})

	assert.Contains(t, out, "https://my-bucket.s3.amazonaws.com/in/a.txt")
	assert.Contains(t, out, "2.0 KB")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "ERROR: Failed to upload file: denied")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "1 of 2 files uploaded, 1 failed")
}

func TestObjectFormatter_FormatConfig(t *testing.T) {
	f := NewObjectFormatter()
	values := map[string]string{
		"r2.bucket":            "assets",
		"r2.secret_access_key": "****cdef",
	}

	out := f.FormatConfig(values, []string{"r2.bucket", "r2.secret_access_key"})
	assert.Contains(t, out, "Current configuration")
	assert.Contains(t, out, "| r2.bucket            | assets   |")

	yamlOut, err := f.FormatConfigYAML(values)
	require.NoError(t, err)

	var decoded map[string]map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(yamlOut), &decoded))
	assert.Equal(t, map[string]map[string]string{
		"r2": {"bucket": "assets", "secret_access_key": "****cdef"},
	}, decoded)
}

func TestObjectFormatter_FormatProviders(t *testing.T) {
	out := NewObjectFormatter().FormatProviders([]string{"aws", "azure", "gcp", "r2"}, []common.Provider{common.R2})

	assert.Contains(t, out, "| aws      | AWS   | no         |")
	assert.Contains(t, out, "| r2       | R2    | yes        |")
}
