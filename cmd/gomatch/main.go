package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/localrivet/gomatch"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	ignoreCase    bool
	useNaive      bool
	searchText    string
	fileEncoding  string
	maxResults    int
	workers       int
	timeout       time.Duration
	includeHidden bool
	useGitignore  bool
	recursive     bool
	filePattern   string
	jsonOutput    bool
	statsOnly     bool
	version       = "dev" // Will be set during build
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gomatch [flags] PATTERN [PATH...]",
	Short: "Find every occurrence of a fixed string",
	Long: `GoMatch finds all occurrences of a fixed pattern string inside a text,
a single file, or every text file in a directory. It uses the Boyer-Moore
algorithm with the bad-character and good-suffix heuristics by default;
pass --naive to use the brute-force scan instead (both always return the
same offsets).

BASIC USAGE:
  gomatch "hello" notes.txt                 # Search one file
  gomatch "hello" .                         # Search the current directory
  gomatch -r "hello" src/                   # Search recursively
  gomatch --text "he holala ho" "holala"    # Search a literal text argument

CASE SENSITIVITY:
  gomatch -i "Hello" .                      # Case-insensitive search

ALGORITHM SELECTION:
  gomatch --naive "hello" .                 # Brute-force instead of Boyer-Moore

FILE FILTERING:
  gomatch -r -g "*.go" "TODO" .             # Only Go files, recursively
  gomatch -r --hidden "config" .            # Include hidden files
  gomatch --gitignore=false "secret" .      # Do not respect .gitignore

ENCODINGS:
  gomatch --encoding latin-1 "café" legacy.txt
  gomatch --encoding utf-16 "hello" dump.txt

OUTPUT FORMATS:
  gomatch --json "error" logs/              # JSON output
  gomatch --stats "error" logs/             # Statistics only
  gomatch -m 10 "TODO" .                    # Limit to 10 results`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		if searchText != "" {
			return runTextSearch(args[0])
		}
		return runSearch(args)
	},
}

func init() {
	// Search behavior flags
	rootCmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "Case-insensitive search")
	rootCmd.Flags().BoolVar(&useNaive, "naive", false, "Use the brute-force algorithm instead of Boyer-Moore")
	rootCmd.Flags().StringVarP(&searchText, "text", "t", "", "Search this text argument instead of files")
	rootCmd.Flags().StringVar(&fileEncoding, "encoding", "", "File encoding (defaults to utf-8)")
	rootCmd.Flags().IntVarP(&maxResults, "max-count", "m", 1000, "Maximum number of results to return")
	rootCmd.Flags().IntVar(&workers, "workers", 4, "Number of concurrent workers")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Search timeout")

	// File filtering flags
	rootCmd.Flags().BoolVar(&includeHidden, "hidden", false, "Include hidden files and directories")
	rootCmd.Flags().BoolVar(&useGitignore, "gitignore", true, "Respect .gitignore files")
	rootCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Search directories recursively")
	rootCmd.Flags().StringVarP(&filePattern, "glob", "g", "", "Only search files matching this glob pattern")

	// Output format flags
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	rootCmd.Flags().BoolVar(&statsOnly, "stats", false, "Show only search statistics")

	rootCmd.AddCommand(versionCmd)
}

// runTextSearch handles --text mode: the pattern is matched against the
// given string argument and the raw offsets are printed.
func runTextSearch(pattern string) error {
	var opts []gomatch.Option
	if ignoreCase {
		opts = append(opts, gomatch.WithIgnoreCase())
	}
	if useNaive {
		opts = append(opts, gomatch.WithNaive())
	}

	offsets, err := gomatch.FindInText(pattern, searchText, opts...)
	if err != nil {
		return err
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		return encoder.Encode(map[string]interface{}{
			"query":   pattern,
			"offsets": offsets,
		})
	}

	fmt.Println(offsets)
	return nil
}

func runSearch(args []string) error {
	pattern := args[0]

	// Default to current directory if no paths specified
	paths := []string{"."}
	if len(args) > 1 {
		paths = args[1:]
	}

	opts := buildOptions()

	var allResults []*gomatch.SearchResults
	var totalStats gomatch.SearchStats

	for _, path := range paths {
		results, err := gomatch.Find(pattern, path, opts...)
		if err != nil {
			return fmt.Errorf("search failed for path %s: %w", path, err)
		}

		allResults = append(allResults, results)

		totalStats.FilesScanned += results.Stats.FilesScanned
		totalStats.FilesSkipped += results.Stats.FilesSkipped
		totalStats.FilesIgnored += results.Stats.FilesIgnored
		totalStats.BytesScanned += results.Stats.BytesScanned
		totalStats.MatchesFound += results.Stats.MatchesFound
		totalStats.Duration += results.Stats.Duration
	}

	if statsOnly {
		return outputStats(totalStats)
	}
	if jsonOutput {
		return outputJSON(pattern, allResults, totalStats)
	}
	return outputText(pattern, allResults, totalStats)
}

func buildOptions() []gomatch.Option {
	var opts []gomatch.Option

	if workers > 0 {
		opts = append(opts, gomatch.WithWorkers(workers))
	}
	if maxResults > 0 {
		opts = append(opts, gomatch.WithMaxResults(maxResults))
	}
	if ignoreCase {
		opts = append(opts, gomatch.WithIgnoreCase())
	}
	if useNaive {
		opts = append(opts, gomatch.WithNaive())
	}
	if fileEncoding != "" {
		opts = append(opts, gomatch.WithEncoding(fileEncoding))
	}
	if filePattern != "" {
		opts = append(opts, gomatch.WithFilePattern(filePattern))
	}
	if !useGitignore {
		opts = append(opts, gomatch.WithGitignore(false))
	}
	if includeHidden {
		opts = append(opts, gomatch.WithHidden())
	}
	if recursive {
		opts = append(opts, gomatch.WithRecursive(true))
	}
	opts = append(opts, gomatch.WithTimeout(timeout))

	return opts
}

var (
	fileColor  = color.New(color.FgMagenta)
	lineColor  = color.New(color.FgGreen)
	matchColor = color.New(color.FgRed, color.Bold)
)

func outputText(pattern string, results []*gomatch.SearchResults, stats gomatch.SearchStats) error {
	totalMatches := 0

	for _, result := range results {
		for _, match := range result.Matches {
			totalMatches++

			// Format: file:line:column:content, match highlighted
			fileColor.Print(match.File)
			fmt.Print(":")
			lineColor.Printf("%d", match.Line)
			fmt.Printf(":%d:", match.Column)
			printHighlighted(match, len(pattern))
		}
	}

	if len(results) > 1 || totalMatches > 10 {
		fmt.Fprintf(os.Stderr, "\nFound %d matches in %d files (searched %d files in %v)\n",
			stats.MatchesFound,
			len(getUniqueFiles(results)),
			stats.FilesScanned,
			stats.Duration)
	}

	return nil
}

// printHighlighted prints a matching line with the matched region colored.
// The highlight is best effort: in case-insensitive mode the offsets refer
// to the folded line, which for non-ASCII text can differ from the original.
func printHighlighted(match gomatch.Match, patternLen int) {
	content := match.Content
	start := match.Column - 1
	end := start + patternLen
	if start < 0 || end > len(content) {
		fmt.Println(content)
		return
	}

	fmt.Print(content[:start])
	matchColor.Print(content[start:end])
	fmt.Println(content[end:])
}

func outputJSON(pattern string, results []*gomatch.SearchResults, stats gomatch.SearchStats) error {
	output := map[string]interface{}{
		"query":   pattern,
		"matches": getAllMatches(results),
		"stats":   stats,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func outputStats(stats gomatch.SearchStats) error {
	fmt.Printf("Files scanned: %d\n", stats.FilesScanned)
	fmt.Printf("Files skipped: %d\n", stats.FilesSkipped)
	fmt.Printf("Files ignored: %d\n", stats.FilesIgnored)
	fmt.Printf("Bytes scanned: %d\n", stats.BytesScanned)
	fmt.Printf("Matches found: %d\n", stats.MatchesFound)
	fmt.Printf("Duration: %v\n", stats.Duration)
	return nil
}

func getAllMatches(results []*gomatch.SearchResults) []gomatch.Match {
	allMatches := []gomatch.Match{}
	for _, result := range results {
		allMatches = append(allMatches, result.Matches...)
	}
	return allMatches
}

func getUniqueFiles(results []*gomatch.SearchResults) []string {
	fileSet := make(map[string]bool)
	for _, result := range results {
		for _, file := range result.Files() {
			fileSet[file] = true
		}
	}

	files := make([]string, 0, len(fileSet))
	for file := range fileSet {
		files = append(files, file)
	}
	return files
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gomatch %s\n", version)
		fmt.Println("Fixed-string search with Boyer-Moore")
	},
}
