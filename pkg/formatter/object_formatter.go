// File: pkg/formatter/object_formatter.go
package formatter

import (
	"fmt"
	"strings"
	"time"

	"unistore/pkg/common"
	"unistore/pkg/storage"

	"gopkg.in/yaml.v3"
)

type ObjectFormatter struct{}

func NewObjectFormatter() *ObjectFormatter {
	return &ObjectFormatter{}
}

// Renders one row per transfer followed by a summary line
func (f *ObjectFormatter) FormatUploadResults(results []storage.Transfer) string {
	table := NewTable([]string{"FILE", "KEY", "SIZE", "DURATION", "RESULT"})

	failed := 0
	for _, r := range results {
		result := r.URL
		if !r.Succeeded() {
			failed++
			result = "ERROR: " + r.Err.Error()
		}
		table.AddRow([]string{
			r.LocalPath,
			r.RemotePath,
			storage.FormatBytes(r.Bytes),
			r.Duration.Round(time.Millisecond).String(),
			result,
		})
	}

	var sb strings.Builder
	sb.WriteString(table.String())
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%d of %d files uploaded", len(results)-failed, len(results))
	if failed > 0 {
		fmt.Fprintf(&sb, ", %d failed", failed)
	}
	return sb.String()
}

// Renders flattened config values as a KEY/VALUE table in the given key order
func (f *ObjectFormatter) FormatConfig(values map[string]string, keys []string) string {
	table := NewTable([]string{"KEY", "VALUE"})
	for _, k := range keys {
		table.AddRow([]string{k, values[k]})
	}
	return FormatSectionTitle("Current configuration") + "\n" + table.String()
}

// Renders flattened config values as nested YAML
func (f *ObjectFormatter) FormatConfigYAML(values map[string]string) (string, error) {
	nested := make(map[string]interface{})
	for key, value := range values {
		parts := strings.Split(key, ".")
		node := nested
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]interface{})
			if !ok {
				child = make(map[string]interface{})
				node[part] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = value
	}

	out, err := yaml.Marshal(nested)
	if err != nil {
		return "", fmt.Errorf("error encoding configuration: %w", err)
	}
	return string(out), nil
}

// Lists every provider tag and whether the configuration has a section for it
func (f *ObjectFormatter) FormatProviders(supported []string, configured []common.Provider) string {
	isConfigured := make(map[string]bool, len(configured))
	for _, p := range configured {
		isConfigured[string(p)] = true
	}

	table := NewTable([]string{"PROVIDER", "NAME", "CONFIGURED"})
	for _, tag := range supported {
		name := tag
		if p, ok := common.ParseProvider(tag); ok {
			name = p.DisplayName()
		}
		status := "no"
		if isConfigured[tag] {
			status = "yes"
		}
		table.AddRow([]string{tag, name, status})
	}
	return table.String()
}
