package dropboxrepo

import "context"

// Repo is the file-store boundary: binary images go in, a stable path comes
// back, and paths can later be resolved to short-lived display links.
type Repo interface {
	Upload(ctx context.Context, path string, contents []byte) (string, error)
	Delete(ctx context.Context, path string) error
	TemporaryLink(ctx context.Context, path string) (string, error)
}
