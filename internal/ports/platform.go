package ports

import "context"

// Platform isolates the per-OS differences: which package manager installs
// a missing tool and how a browser is opened.
type Platform interface {
	// InstallTool attempts to install a missing tool, trying the native
	// package manager first and a direct download second. Elevation
	// failures are returned, not retried.
	InstallTool(ctx context.Context, tool string) error
	// OpenBrowser opens the URL in the default browser.
	OpenBrowser(ctx context.Context, url string) error
}
