package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"Encrypty/internal/api"
	"Encrypty/internal/app"
	"Encrypty/internal/errors"
	"Encrypty/internal/log"
	"Encrypty/internal/util"

	"github.com/dustin/go-humanize"
	"github.com/gobwas/glob"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload files for encryption or decryption",
	Long: `Upload one or more local files to the backend, which encrypts or
decrypts them and offers the results for download.

Examples:
  # Encrypt two files
  encrypty upload -i report.pdf -i notes.txt

  # Decrypt and save the results next to the inputs
  encrypty upload -i report.pdf -a decrypt --save-to .

  # Also write the HTML results container to a file
  encrypty upload -i 'data/*.csv' --html results.html`,
	RunE: runUpload,
}

// Upload flags
var (
	upInput   []string
	upAction  string
	upHTML    string
	upSaveTo  string
	upExclude []string
	upQuiet   bool
	upYes     bool
)

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringArrayVarP(&upInput, "input", "i", nil, "Input file(s) or glob pattern(s) (can be specified multiple times)")
	uploadCmd.Flags().StringVarP(&upAction, "action", "a", "encrypt", "Action: encrypt or decrypt")
	uploadCmd.Flags().StringVar(&upHTML, "html", "", "Write the rendered results container to this file")
	uploadCmd.Flags().StringVar(&upSaveTo, "save-to", "", "Download produced files into this directory")
	uploadCmd.Flags().StringArrayVarP(&upExclude, "exclude", "x", nil, "Skip inputs whose file name matches this glob (can be specified multiple times)")
	uploadCmd.Flags().BoolVarP(&upQuiet, "quiet", "q", false, "Suppress the busy indicator")
	uploadCmd.Flags().BoolVarP(&upYes, "yes", "y", false, "Overwrite existing files without prompting")
}

// expandInputs resolves glob patterns to regular files in argument order.
func expandInputs(patterns []string) ([]string, error) {
	var files []string
	for _, input := range patterns {
		matches, err := filepath.Glob(input)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", input, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("input file not found: %s", input)
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, fmt.Errorf("cannot access %s: %w", match, err)
			}
			if info.IsDir() {
				return nil, fmt.Errorf("%s is a directory; use 'encrypty directory' for server-side directories", match)
			}
			files = append(files, match)
		}
	}
	return files, nil
}

// rejectByGlobs drops paths whose base name matches any of globs.
func rejectByGlobs(paths []string, globs []string) ([]string, error) {
	if len(globs) == 0 {
		return paths, nil
	}
	matchers := make([]glob.Glob, 0, len(globs))
	for _, g := range globs {
		m, err := glob.Compile(g)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", g, err)
		}
		matchers = append(matchers, m)
	}
	return lo.Reject(paths, func(path string, _ int) bool {
		name := filepath.Base(path)
		return lo.SomeBy(matchers, func(m glob.Glob) bool { return m.Match(name) })
	}), nil
}

// openUploads opens every path for streaming. The returned func closes
// whatever was opened.
func openUploads(paths []string) ([]api.UploadFile, func(), error) {
	var opened []*os.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	files := make([]api.UploadFile, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, closeAll, errors.NewFileError("open", path, err)
		}
		opened = append(opened, f)
		info, err := f.Stat()
		if err != nil {
			return nil, closeAll, errors.NewFileError("stat", path, err)
		}
		files = append(files, api.UploadFile{
			Name:    filepath.Base(path),
			Size:    info.Size(),
			Content: f,
		})
	}
	return files, closeAll, nil
}

func runUpload(cmd *cobra.Command, args []string) error {
	paths, err := expandInputs(upInput)
	if err != nil {
		return err
	}
	paths, err = rejectByGlobs(paths, upExclude)
	if err != nil {
		return err
	}

	files, closeAll, err := openUploads(paths)
	defer closeAll()
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	if !upQuiet && len(files) > 0 {
		total := lo.SumBy(files, func(f api.UploadFile) int64 { return f.Size })
		fmt.Fprintf(cmd.ErrOrStderr(), "Uploading %d file(s), %s total\n", len(files), humanize.IBytes(uint64(total)))
		fmt.Fprintln(cmd.ErrOrStderr(), app.ReportSelection(app.SelectionOf(files)))
	}

	reporter := NewReporter(cmd.OutOrStdout(), cmd.ErrOrStderr(), upQuiet, client.DownloadURL)
	out, err := submit(cmd, client, reporter, upHTML, func(c *app.Controller) (app.Outcome, error) {
		return c.SubmitUpload(cmd.Context(), app.UploadForm{Files: files, Action: upAction})
	})
	if err != nil {
		return err
	}

	if upSaveTo != "" && out.HasDownloads() {
		return downloadAll(cmd, client, out.OutputFiles, upSaveTo, upYes)
	}
	return nil
}

// submit runs one controller flow with the terminal reporter and, when
// htmlPath is set, an HTML panel whose markup is written afterwards.
func submit(cmd *cobra.Command, client *api.Client, reporter *Reporter, htmlPath string, flow func(*app.Controller) (app.Outcome, error)) (app.Outcome, error) {
	renderers := app.MultiRenderer{reporter}
	panel := newPanel(client, htmlPath)
	if panel != nil {
		renderers = append(renderers, panel)
	}

	ctrl := app.NewController(client, renderers)
	ctrl.SetLogger(log.GetLogger())

	start := time.Now()
	out, err := flow(ctrl)
	if !reporter.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Finished in %s\n", util.Timeify(int(time.Since(start).Seconds())))
	}
	if panel != nil {
		if werr := writeHTML(htmlPath, panel); werr != nil {
			return out, werr
		}
	}
	if err != nil {
		return out, &renderedError{err: err}
	}
	return out, nil
}
