package gomatch

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Option represents a functional option for configuring searches.
type Option func(*searchOptions)

// searchOptions holds the configuration for a search operation.
type searchOptions struct {
	ctx           context.Context
	workers       int
	maxResults    int
	naive         bool
	ignoreCase    bool
	gitignore     bool
	hidden        bool
	recursive     bool
	filePattern   string
	encoding      string
	memoryMap     bool
	mmapThreshold int64
	timeout       time.Duration
}

// defaultOptions returns the default search options.
func defaultOptions() *searchOptions {
	return &searchOptions{
		ctx:        context.Background(),
		workers:    4,
		maxResults: 1000,
		naive:      false,
		ignoreCase: false,
		gitignore:  true,
		hidden:     false,
		recursive:  false,
		memoryMap:  true,
		timeout:    30 * time.Second,
	}
}

// Find searches for every occurrence of a fixed pattern under path, which
// may be a single file or a directory.
func Find(pattern, path string, opts ...Option) (*SearchResults, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("path error: %w", err)
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	ctx := options.ctx
	if options.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.timeout)
		defer cancel()
	}

	config := SearchConfig{
		SearchPath:    path,
		MaxWorkers:    options.workers,
		MaxResults:    options.maxResults,
		UseNaive:      options.naive,
		UseGitignore:  options.gitignore,
		IgnoreCase:    options.ignoreCase,
		IncludeHidden: options.hidden,
		Recursive:     options.recursive,
		FilePattern:   options.filePattern,
		Encoding:      options.encoding,
		UseMemoryMap:  options.memoryMap,
		MmapThreshold: options.mmapThreshold,
		Timeout:       options.timeout,
	}

	engine, err := NewSearchEngine(config, pattern)
	if err != nil {
		return nil, err
	}
	return engine.Search(ctx)
}

// FindInText searches a text buffer directly, without touching the
// filesystem, and returns the starting offsets of every occurrence.
func FindInText(pattern, text string, opts ...Option) ([]int, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	matcher, err := NewMatcher(pattern, !options.ignoreCase)
	if err != nil {
		return nil, err
	}
	return matcher.findAll(text, options.naive), nil
}

// Context and Cancellation Options

// WithContext sets the context for cancellation and timeout control.
func WithContext(ctx context.Context) Option {
	return func(opts *searchOptions) {
		opts.ctx = ctx
	}
}

// WithTimeout sets the search timeout. Zero disables the timeout.
func WithTimeout(duration time.Duration) Option {
	return func(opts *searchOptions) {
		if duration >= 0 {
			opts.timeout = duration
		}
	}
}

// Algorithm Options

// WithNaive selects the brute-force algorithm instead of Boyer-Moore. Both
// return identical results; the naive scan mostly exists as a reference and
// for very short patterns.
func WithNaive() Option {
	return func(opts *searchOptions) {
		opts.naive = true
	}
}

// WithIgnoreCase enables case-insensitive search.
func WithIgnoreCase() Option {
	return func(opts *searchOptions) {
		opts.ignoreCase = true
	}
}

// WithCaseSensitive enables case-sensitive search (default).
func WithCaseSensitive() Option {
	return func(opts *searchOptions) {
		opts.ignoreCase = false
	}
}

// Performance Options

// WithWorkers sets the number of concurrent workers.
func WithWorkers(count int) Option {
	return func(opts *searchOptions) {
		if count > 0 {
			opts.workers = count
		}
	}
}

// WithMaxResults sets the maximum number of results to return.
func WithMaxResults(max int) Option {
	return func(opts *searchOptions) {
		if max > 0 {
			opts.maxResults = max
		}
	}
}

// WithMemoryMapping enables or disables memory-mapped search for large files.
func WithMemoryMapping(enabled bool) Option {
	return func(opts *searchOptions) {
		opts.memoryMap = enabled
	}
}

// WithMmapThreshold sets the file size, in bytes, above which files are
// memory mapped instead of scanned.
func WithMmapThreshold(sizeBytes int64) Option {
	return func(opts *searchOptions) {
		if sizeBytes > 0 {
			opts.mmapThreshold = sizeBytes
		}
	}
}

// File Filtering Options

// WithFilePattern sets a file pattern filter (glob-style).
func WithFilePattern(pattern string) Option {
	return func(opts *searchOptions) {
		opts.filePattern = pattern
	}
}

// WithGitignore enables or disables gitignore filtering.
func WithGitignore(enabled bool) Option {
	return func(opts *searchOptions) {
		opts.gitignore = enabled
	}
}

// WithHidden includes hidden files in the search.
func WithHidden() Option {
	return func(opts *searchOptions) {
		opts.hidden = true
	}
}

// WithRecursive sets whether to search directories recursively.
// By default, search is non-recursive (only immediate directory).
func WithRecursive(recursive bool) Option {
	return func(opts *searchOptions) {
		opts.recursive = recursive
	}
}

// WithEncoding sets the file encoding used when reading files. Defaults to
// UTF-8; see EncodingNames for the accepted names.
func WithEncoding(name string) Option {
	return func(opts *searchOptions) {
		opts.encoding = name
	}
}
