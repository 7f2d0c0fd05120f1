package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"Encrypty/internal/api"
	"Encrypty/internal/errors"
	"Encrypty/internal/log"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxParallelDownloads bounds concurrent GETs against the backend.
const maxParallelDownloads = 4

var downloadCmd = &cobra.Command{
	Use:   "download <filename>...",
	Short: "Download produced files from the backend",
	Long: `Fetch files the backend produced by an earlier upload.

Examples:
  encrypty download report.pdf notes.txt -o ./out`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDownload,
}

// Download flags
var (
	dlOutput string
	dlYes    bool
)

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVarP(&dlOutput, "output", "o", ".", "Directory to save files into")
	downloadCmd.Flags().BoolVarP(&dlYes, "yes", "y", false, "Overwrite existing files without prompting")
}

func runDownload(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	return downloadAll(cmd, client, args, dlOutput, dlYes)
}

// downloadAll saves every name into dir. Overwrites are confirmed up front,
// then the files are fetched in parallel. Repeated names are fetched once.
func downloadAll(cmd *cobra.Command, client *api.Client, names []string, dir string, overwrite bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewFileError("mkdir", dir, err)
	}

	// Only the base name is used so a server-supplied name cannot escape dir
	names = lo.UniqBy(names, filepath.Base)
	in := bufio.NewReader(cmd.InOrStdin())

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, filepath.Base(name))
		if _, err := os.Stat(paths[i]); err == nil && !overwrite {
			if !confirm(in, cmd.ErrOrStderr(), fmt.Sprintf("File %s already exists. Overwrite?", paths[i])) {
				return fmt.Errorf("operation cancelled")
			}
		}
	}

	var mu sync.Mutex
	out := cmd.OutOrStdout()

	eg, ctx := errgroup.WithContext(cmd.Context())
	eg.SetLimit(maxParallelDownloads)
	for i, name := range names {
		path := paths[i]
		eg.Go(func() error {
			n, err := fetch(ctx, client, name, path)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(out, "Saved %s (%s)\n", path, humanize.IBytes(uint64(n)))
			return nil
		})
	}
	return eg.Wait()
}

// fetch streams name into path. Partial files are removed on error.
func fetch(ctx context.Context, client *api.Client, name, path string) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, errors.NewFileError("create", path, err)
	}

	n, err := client.Download(ctx, name, f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = errors.NewFileError("close", path, cerr)
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, err
	}

	log.Debug("downloaded", log.String("file", name), log.Int64("bytes", n))
	return n, nil
}
