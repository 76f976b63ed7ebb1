//go:build unix

package gomatch

import (
	"context"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// mmapSearchFile maps a large file into memory and searches it line by line
// without copying it through a scanner buffer. Falls back to the regular
// scan when the mapping fails.
func (e *SearchEngine) mmapSearchFile(ctx context.Context, filePath string, fileSize int64) ([]Match, error) {
	if fileSize == 0 {
		return nil, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := unix.Mmap(int(file.Fd()), 0, int(fileSize), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return e.scanFile(ctx, filePath)
	}
	defer func() {
		_ = unix.Munmap(data)
	}()

	lines := strings.Split(string(data), "\n")

	var matches []Match
	for lineNum, line := range lines {
		if lineNum%1024 == 0 {
			select {
			case <-ctx.Done():
				return matches, ctx.Err()
			default:
			}
		}

		line = strings.TrimSuffix(line, "\r")
		for _, pos := range e.findInLine(line) {
			matches = append(matches, Match{
				File:    filePath,
				Line:    lineNum + 1,
				Column:  pos + 1,
				Content: line,
			})
		}
	}

	return matches, nil
}
