package providers

import "context"

// ObjectStore moves generated files to and from remote storage. Object keys
// are "{folder}/{filename}".
type ObjectStore interface {
	Upload(ctx context.Context, localPath, objectKey string) error
	Download(ctx context.Context, objectKey, localPath string) error
}
