// File: cmd/unistore/config_cmd.go
package main

import (
	"fmt"
	"strings"

	"unistore/internal/config"
	"unistore/internal/flags"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage configuration settings for providers. You can set, get, list, and delete configuration values.
Values can also be supplied through UNISTORE_* environment variables (for example UNISTORE_AWS_REGION)
or a .env file in the working directory; those override the file but are never written to it.`,
	}

	configSetCmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set a configuration key-value pair",
		Long: fmt.Sprintf(`Sets a configuration value. For example: 'unistore config set r2.bucket my-bucket'

Valid keys:
  %s`, strings.Join(config.KnownKeys(), "\n  ")),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			key := strings.ToLower(args[0])
			value := args[1]

			if err := app.ConfigManager.SetValue(key, value); err != nil {
				return fmt.Errorf("error setting configuration: %w", err)
			}

			shown := value
			if config.IsSecretKey(key) {
				shown = config.MaskSecret(value)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration set: %s = %s\n", key, shown)
			return nil
		},
	}

	configGetCmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value by key",
		Long:  `Retrieves a configuration value for a given key. For example: 'unistore config get aws.region'`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			key := strings.ToLower(args[0])
			value, exists := app.ConfigManager.GetValue(key)
			if !exists {
				return fmt.Errorf("configuration key '%s' not found or not set", key)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
			return nil
		},
	}

	configDeleteCmd := &cobra.Command{
		Use:   "delete [key]",
		Short: "Delete a configuration value by key",
		Long:  `Deletes a configuration value for a given key. For example: 'unistore config delete aws.region'`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			key := strings.ToLower(args[0])
			deleted, err := app.ConfigManager.DeleteValue(key)
			if err != nil {
				return fmt.Errorf("error deleting configuration: %w", err)
			}
			if !deleted {
				return fmt.Errorf("configuration key '%s' not found", key)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration key '%s' deleted\n", key)
			return nil
		},
	}

	var output string
	configListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all current configuration values",
		Long:  `Displays all the key-value pairs currently in effect. Secrets are masked.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			values := app.ConfigManager.ListValues()
			if len(values) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No configuration values set. Use 'unistore config set <key> <value>'.")
				return nil
			}

			switch strings.ToLower(output) {
			case "", "text":
				fmt.Fprintln(cmd.OutOrStdout(), app.ObjectFormatter.FormatConfig(values, config.SortedKeys(values)))
			case "yaml":
				rendered, err := app.ObjectFormatter.FormatConfigYAML(values)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), rendered)
			default:
				return fmt.Errorf("unsupported output format '%s'. Use 'text' or 'yaml'", output)
			}
			return nil
		},
	}
	configListCmd.Flags().StringVarP(&output, flags.Output, flags.OutputShort, "text", "Output format: text or yaml")

	configCmd.AddCommand(configSetCmd, configGetCmd, configDeleteCmd, configListCmd)
	return configCmd
}
