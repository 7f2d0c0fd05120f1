package cli

import (
	"os"

	"Encrypty/internal/api"
	"Encrypty/internal/errors"
	"Encrypty/internal/render"
)

func newPanel(client *api.Client, path string) *render.Panel {
	if path == "" {
		return nil
	}
	return render.NewPanel(client.DownloadURL)
}

// writeHTML saves the panel's results container as a standalone fragment.
func writeHTML(path string, panel *render.Panel) error {
	if err := os.WriteFile(path, []byte(panel.HTML()+"\n"), 0644); err != nil {
		return errors.NewFileError("write", path, err)
	}
	return nil
}
