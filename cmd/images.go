package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ImagesCmd downloads item images from Drive into the thumbnail cache
var ImagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Warm the export thumbnail cache from Google Drive.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if a.Download == nil {
			return errors.New("google drive is not configured: set GOOGLE_APPLICATION_CREDENTIALS and SKORPIK_DRIVE_FOLDER_ID")
		}
		stats, err := a.Download.DownloadAllImages(cmd.Context(), cfg.Drive.FolderID)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "downloaded %d, cached %d, failed %d of %d images\n",
			stats.Downloaded, stats.Skipped, len(stats.Errors), stats.Total)
		for _, e := range stats.Errors {
			fmt.Fprintln(cmd.ErrOrStderr(), e)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ImagesCmd)
}
