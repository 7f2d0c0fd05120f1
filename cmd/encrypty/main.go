// Encrypty
//
// A client for the Encrypty file encryption service. Files are uploaded to
// the backend, or a directory on the backend host is named, and the backend
// encrypts or decrypts them; the client reports the outcome and links to
// the produced files.
//
// Build modes:
//   - Default build: GUI + CLI (requires graphics libraries)
//   - CLI-only build: go build -tags cli (no graphics dependencies)

package main

// version is the application version displayed in the window title.
const version = "v1.0.0"

func main() {
	run()
}
