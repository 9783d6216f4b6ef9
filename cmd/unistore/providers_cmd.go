// File: cmd/unistore/providers_cmd.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List supported storage providers",
		Long:  `Lists every storage provider unistore can talk to and whether the configuration has a section for it.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), app.ObjectFormatter.FormatProviders(
				app.ProviderFactory.SupportedProviders(),
				app.Config.ConfiguredProviders(),
			))
			return nil
		},
	}
}
