package cli

import (
	"Encrypty/internal/app"

	"github.com/spf13/cobra"
)

var directoryCmd = &cobra.Command{
	Use:   "directory",
	Short: "Encrypt or decrypt a directory on the backend host",
	Long: `Ask the backend to encrypt or decrypt every file in a directory on
the backend's own file system. Nothing is uploaded or downloaded.

Examples:
  encrypty directory -d /srv/data
  encrypty directory -d /srv/data -a decrypt`,
	RunE: runDirectory,
}

// Directory flags
var (
	dirPath   string
	dirAction string
	dirHTML   string
	dirQuiet  bool
)

func init() {
	rootCmd.AddCommand(directoryCmd)

	directoryCmd.Flags().StringVarP(&dirPath, "dir", "d", "", "Directory path on the backend host")
	directoryCmd.Flags().StringVarP(&dirAction, "action", "a", "encrypt", "Action: encrypt or decrypt")
	directoryCmd.Flags().StringVar(&dirHTML, "html", "", "Write the rendered results container to this file")
	directoryCmd.Flags().BoolVarP(&dirQuiet, "quiet", "q", false, "Suppress the busy indicator")
}

func runDirectory(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	reporter := NewReporter(cmd.OutOrStdout(), cmd.ErrOrStderr(), dirQuiet, client.DownloadURL)
	_, err = submit(cmd, client, reporter, dirHTML, func(c *app.Controller) (app.Outcome, error) {
		return c.SubmitDirectory(cmd.Context(), app.DirectoryForm{Directory: dirPath, Action: dirAction})
	})
	return err
}
