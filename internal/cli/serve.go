package cli

import (
	"Encrypty/internal/log"
	"Encrypty/internal/web"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web interface",
	Long: `Serve the Encrypty page. Form submissions are forwarded to the
backend and answered with the page showing the results.

Examples:
  encrypty serve
  encrypty serve --listen 0.0.0.0:8080 --log-format json`,
	RunE: runServe,
}

var serveListen string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "Listen address (overrides listen)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Listen
	if cmd.Flags().Changed("listen") {
		addr = serveListen
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	srv, err := web.NewServer(client, log.GetLogger())
	if err != nil {
		return err
	}
	return srv.ListenAndServe(cmd.Context(), addr)
}
