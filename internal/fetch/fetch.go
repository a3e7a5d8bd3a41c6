// Package fetch downloads paper PDFs into the working directory.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Fetch returns the local PDF path for paper, downloading it if needed.
// If the file already exists no transfer happens and the existing path
// is returned; calling Fetch repeatedly is safe. A failed transfer is
// reported on w and signalled with ok=false — the caller skips the
// paper rather than aborting the run.
func Fetch(client *http.Client, paper types.Paper, cfg types.FetchConfig, w io.Writer) (path string, ok bool) {
	path = filepath.Join(cfg.PapersDir, paper.SafeID()+".pdf")

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "already downloaded: %s\n", path)
		return path, true
	}

	fmt.Fprintf(w, "downloading: %s\n", paper.Title)
	if err := download(client, paper.PDFURL, path, cfg); err != nil {
		fmt.Fprintf(w, "download failed %s: %v\n", paper.ID, err)
		return "", false
	}
	fmt.Fprintf(w, "downloaded to %s\n", path)
	return path, true
}

// Remove deletes the transient PDF after analysis. Failure (including a
// file that is already gone) is logged, never raised.
func Remove(path string, w io.Writer) {
	err := os.Remove(path)
	switch {
	case err == nil:
		fmt.Fprintf(w, "deleted %s\n", path)
	case os.IsNotExist(err):
		fmt.Fprintf(w, "nothing to delete at %s\n", path)
	default:
		fmt.Fprintf(w, "deleting %s: %v\n", path, err)
	}
}

// download fetches url to destPath using a temporary file so a partial
// transfer never leaves a truncated PDF behind.
func download(client *http.Client, url, destPath string, cfg types.FetchConfig) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
