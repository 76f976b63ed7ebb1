package gomatch

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/encoding"
)

// SearchConfig holds configuration for the search engine.
type SearchConfig struct {
	SearchPath    string
	MaxWorkers    int
	MaxResults    int
	UseNaive      bool // brute-force scan instead of Boyer-Moore
	UseGitignore  bool
	IgnoreCase    bool
	IncludeHidden bool
	Recursive     bool
	FilePattern   string
	Encoding      string
	UseMemoryMap  bool
	MmapThreshold int64
	Timeout       time.Duration
}

// SearchStats tracks search performance metrics.
type SearchStats struct {
	FilesScanned int64
	FilesSkipped int64
	FilesIgnored int64
	BytesScanned int64
	MatchesFound int64
	Duration     time.Duration
	StartTime    time.Time
	EndTime      time.Time
}

// SearchResults contains search results and metadata.
type SearchResults struct {
	Matches []Match
	Stats   SearchStats
	Query   string
}

// HasMatches returns true if any matches were found.
func (r *SearchResults) HasMatches() bool {
	return len(r.Matches) > 0
}

// Count returns the number of matches.
func (r *SearchResults) Count() int {
	return len(r.Matches)
}

// Files returns the unique files that contain matches.
func (r *SearchResults) Files() []string {
	fileSet := make(map[string]bool)
	for _, match := range r.Matches {
		fileSet[match.File] = true
	}

	files := make([]string, 0, len(fileSet))
	for file := range fileSet {
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}

// SearchEngine runs a fixed-pattern search over a file or directory tree,
// delegating the per-line matching to a Matcher.
type SearchEngine struct {
	config  SearchConfig
	matcher *Matcher
	decoder encoding.Encoding
	ignore  *IgnoreRules

	filesScanned atomic.Int64
	filesSkipped atomic.Int64
	filesIgnored atomic.Int64
	bytesScanned atomic.Int64
}

// NewSearchEngine creates a search engine for the given pattern. The matcher
// and its heuristic tables are built once here and shared by all workers.
func NewSearchEngine(config SearchConfig, pattern string) (*SearchEngine, error) {
	matcher, err := NewMatcher(pattern, !config.IgnoreCase)
	if err != nil {
		return nil, err
	}

	decoder, err := lookupEncoding(config.Encoding)
	if err != nil {
		return nil, err
	}

	engine := &SearchEngine{
		config:  config,
		matcher: matcher,
		decoder: decoder,
	}

	if config.UseGitignore {
		engine.ignore = LoadIgnoreRules(config.SearchPath)
	}

	return engine, nil
}

// Search walks the configured path and returns all matches, ordered by file,
// line and column.
func (e *SearchEngine) Search(ctx context.Context) (*SearchResults, error) {
	startTime := time.Now()

	results := &SearchResults{
		Query: e.matcher.Pattern(),
		Stats: SearchStats{StartTime: startTime},
	}

	if err := e.performSearch(ctx, results); err != nil {
		return nil, err
	}

	sort.Slice(results.Matches, func(i, j int) bool {
		a, b := results.Matches[i], results.Matches[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	if e.config.MaxResults > 0 && len(results.Matches) > e.config.MaxResults {
		results.Matches = results.Matches[:e.config.MaxResults]
	}

	results.Stats.FilesScanned = e.filesScanned.Load()
	results.Stats.FilesSkipped = e.filesSkipped.Load()
	results.Stats.FilesIgnored = e.filesIgnored.Load()
	results.Stats.BytesScanned = e.bytesScanned.Load()
	results.Stats.MatchesFound = int64(len(results.Matches))
	results.Stats.EndTime = time.Now()
	results.Stats.Duration = results.Stats.EndTime.Sub(results.Stats.StartTime)

	return results, nil
}

// performSearch fans the discovered files out to a worker pool and collects
// the per-file match slices.
func (e *SearchEngine) performSearch(ctx context.Context, results *SearchResults) error {
	workers := e.config.MaxWorkers
	if workers < 1 {
		workers = 1
	}

	filesChan := make(chan string, workers*2)
	resultsChan := make(chan []Match, workers)
	walkErr := make(chan error, 1)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go e.searchWorker(ctx, filesChan, resultsChan, &wg)
	}

	go func() {
		defer close(filesChan)
		walkErr <- e.walkFiles(ctx, filesChan)
	}()

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for workerResults := range resultsChan {
		results.Matches = append(results.Matches, workerResults...)
	}

	if err := <-walkErr; err != nil {
		return err
	}
	return ctx.Err()
}

// searchWorker processes files from the files channel.
func (e *SearchEngine) searchWorker(ctx context.Context, filesChan <-chan string, resultsChan chan<- []Match, wg *sync.WaitGroup) {
	defer wg.Done()

	for filePath := range filesChan {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fileResults, err := e.SearchFile(ctx, filePath)
		if err != nil {
			// Unreadable files are skipped, not fatal to the search.
			e.filesSkipped.Add(1)
			continue
		}
		e.filesScanned.Add(1)

		if len(fileResults) > 0 {
			resultsChan <- fileResults
		}
	}
}

// SearchFile searches a single file and returns its matches in line order.
func (e *SearchEngine) SearchFile(ctx context.Context, filePath string) ([]Match, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, err
	}
	e.bytesScanned.Add(info.Size())

	// The mmap path works on raw bytes, so it only applies to UTF-8 input.
	if e.config.UseMemoryMap && e.decoder == nil && info.Size() >= e.mmapThreshold() {
		return e.mmapSearchFile(ctx, filePath, info.Size())
	}

	return e.scanFile(ctx, filePath)
}

func (e *SearchEngine) mmapThreshold() int64 {
	if e.config.MmapThreshold > 0 {
		return e.config.MmapThreshold
	}
	return 1024 * 1024 // 1MB
}

// scanFile reads a file line by line through the configured decoder.
func (e *SearchEngine) scanFile(ctx context.Context, filePath string) ([]Match, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var results []Match
	scanner := bufio.NewScanner(decodeReader(file, e.decoder))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNum := 1
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		line := scanner.Text()
		for _, pos := range e.findInLine(line) {
			results = append(results, Match{
				File:    filePath,
				Line:    lineNum,
				Column:  pos + 1,
				Content: line,
			})
		}

		lineNum++
	}

	return results, scanner.Err()
}

// findInLine runs the configured algorithm over a single line.
func (e *SearchEngine) findInLine(line string) []int {
	return e.matcher.findAll(line, e.config.UseNaive)
}

// walkFiles discovers the files to search and sends them to filesChan.
func (e *SearchEngine) walkFiles(ctx context.Context, filesChan chan<- string) error {
	info, err := os.Stat(e.config.SearchPath)
	if err != nil {
		return err
	}

	// A single file is searched directly, ignoring the filter rules.
	if !info.IsDir() {
		select {
		case filesChan <- e.config.SearchPath:
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	}

	if e.config.Recursive {
		return e.walkRecursive(ctx, filesChan)
	}
	return e.walkImmediate(ctx, filesChan)
}

// walkRecursive walks the entire directory tree under the search path.
func (e *SearchEngine) walkRecursive(ctx context.Context, filesChan chan<- string) error {
	return filepath.WalkDir(e.config.SearchPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // continue on errors
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			if path != e.config.SearchPath && e.shouldIgnoreDir(path, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if e.shouldIgnoreFile(path, d.Name()) {
			e.filesSkipped.Add(1)
			return nil
		}

		select {
		case filesChan <- path:
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	})
}

// walkImmediate sends only the files in the search directory itself.
func (e *SearchEngine) walkImmediate(ctx context.Context, filesChan chan<- string) error {
	entries, err := os.ReadDir(e.config.SearchPath)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(e.config.SearchPath, entry.Name())
		if e.shouldIgnoreFile(path, entry.Name()) {
			e.filesSkipped.Add(1)
			continue
		}

		select {
		case filesChan <- path:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

// shouldIgnoreDir decides whether a whole directory is skipped during a
// recursive walk.
func (e *SearchEngine) shouldIgnoreDir(path, name string) bool {
	if !e.config.IncludeHidden && strings.HasPrefix(name, ".") {
		return true
	}
	if e.ignore != nil && e.ignore.ShouldIgnore(path) {
		e.filesIgnored.Add(1)
		return true
	}
	return false
}

// shouldIgnoreFile applies the configured filter rules to a candidate file.
func (e *SearchEngine) shouldIgnoreFile(path, name string) bool {
	if !e.config.IncludeHidden && strings.HasPrefix(name, ".") {
		return true
	}

	if isBinaryFile(path) {
		return true
	}

	if e.ignore != nil && e.ignore.ShouldIgnore(path) {
		e.filesIgnored.Add(1)
		return true
	}

	if e.config.FilePattern != "" {
		matched, err := filepath.Match(e.config.FilePattern, name)
		if err != nil || !matched {
			return true
		}
	}

	return false
}
