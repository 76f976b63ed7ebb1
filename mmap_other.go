//go:build !unix

package gomatch

import "context"

// Memory mapping is only wired up on Unix-like systems; everywhere else the
// regular scanner path is used.
func (e *SearchEngine) mmapSearchFile(ctx context.Context, filePath string, fileSize int64) ([]Match, error) {
	return e.scanFile(ctx, filePath)
}
