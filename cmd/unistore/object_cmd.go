// File: cmd/unistore/object_cmd.go
package main

import (
	"context"
	"fmt"
	"strings"

	"unistore/internal/flags"
	"unistore/internal/service"
	"unistore/internal/ui/spinner"
	"unistore/pkg/storage"
	"unistore/pkg/storage/registry"

	"github.com/spf13/cobra"
)

type objectFlags struct {
	provider    string
	dest        string
	key         string
	concurrency int
	force       bool
}

func addProviderFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, flags.Provider, flags.ProviderShort, "",
		fmt.Sprintf("Storage provider to use (%s) (required)", strings.Join(registry.GetSupportedProviders(), ", ")))
	cmd.MarkFlagRequired(flags.Provider)
}

func newObjectCmd() *cobra.Command {
	cmdFlags := objectFlags{}

	objectCmd := &cobra.Command{
		Use:   "object",
		Short: "Upload, download, delete and pre-sign objects",
		Long:  `The object command moves files between the local filesystem and a configured storage provider.`,
	}

	uploadCmd := &cobra.Command{
		Use:   "upload [local-file]...",
		Short: "Upload one or more local files",
		Long: `Uploads local files to the provider given with --provider. Each file is stored under its base name,
below the --dest prefix when given. A single file can be stored under an exact key with --key.
Files are uploaded concurrently; one failed file does not stop the others.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			requests, err := service.PlanUploads(args, cmdFlags.dest, cmdFlags.key)
			if err != nil {
				return err
			}

			var results []storage.Transfer
			title := fmt.Sprintf("Uploading %d file(s) to %s", len(requests), cmdFlags.provider)
			err = spinner.Run(cmd.Context(), cmd.OutOrStdout(), title, func(ctx context.Context) error {
				var uploadErr error
				results, uploadErr = app.ObjectService.UploadFiles(ctx, cmdFlags.provider, requests, cmdFlags.concurrency)
				return uploadErr
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), app.ObjectFormatter.FormatUploadResults(results))

			failed := 0
			for _, r := range results {
				if !r.Succeeded() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d uploads failed", failed, len(results))
			}
			return nil
		},
	}
	addProviderFlag(uploadCmd, &cmdFlags.provider)
	uploadCmd.Flags().StringVar(&cmdFlags.dest, flags.Dest, "", "Key prefix to upload under")
	uploadCmd.Flags().StringVarP(&cmdFlags.key, flags.Key, flags.KeyShort, "", "Exact object key (single file only)")
	uploadCmd.Flags().IntVarP(&cmdFlags.concurrency, flags.Concurrency, flags.ConcurrencyShort, service.DefaultConcurrency, "Maximum number of concurrent uploads")
	uploadCmd.MarkFlagsMutuallyExclusive(flags.Dest, flags.Key)

	presignCmd := &cobra.Command{
		Use:   "presign [key]",
		Short: "Generate a pre-signed upload URL",
		Long: fmt.Sprintf(`Prints a URL that allows anyone holding it to upload an object under the given key
with a plain HTTP PUT. The URL expires after %s.`, storage.PresignExpiry),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			url, err := app.ObjectService.PresignUpload(cmd.Context(), cmdFlags.provider, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
	addProviderFlag(presignCmd, &cmdFlags.provider)

	downloadCmd := &cobra.Command{
		Use:   "download [key] [local-file]",
		Short: "Download an object to a local file",
		Long:  `Downloads the object stored under key. The local file is only replaced once the whole object has been received.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			key, localPath := args[0], args[1]
			title := fmt.Sprintf("Downloading %s from %s", key, cmdFlags.provider)
			err = spinner.Run(cmd.Context(), cmd.OutOrStdout(), title, func(ctx context.Context) error {
				return app.ObjectService.DownloadFile(ctx, cmdFlags.provider, key, localPath)
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Object '%s' downloaded to %s.\n", key, localPath)
			return nil
		},
	}
	addProviderFlag(downloadCmd, &cmdFlags.provider)

	deleteCmd := &cobra.Command{
		Use:   "delete [key]",
		Short: "Delete an object",
		Long:  `Deletes the object stored under key. Deleting an object that does not exist succeeds.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			key := args[0]
			if !cmdFlags.force {
				message := fmt.Sprintf("This will permanently delete object '%s' from provider %s.", key, cmdFlags.provider)
				confirmed, err := app.Prompter.Confirm(message, key)
				if err != nil {
					return err
				}
				if !confirmed {
					return fmt.Errorf("deletion of '%s' cancelled", key)
				}
			}

			if err := app.ObjectService.DeleteFile(cmd.Context(), cmdFlags.provider, key); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Object '%s' deleted from provider %s.\n", key, cmdFlags.provider)
			return nil
		},
	}
	addProviderFlag(deleteCmd, &cmdFlags.provider)
	deleteCmd.Flags().BoolVarP(&cmdFlags.force, flags.Force, flags.ForceShort, false, "Skip the confirmation prompt")

	objectCmd.AddCommand(uploadCmd, presignCmd, downloadCmd, deleteCmd)
	return objectCmd
}
