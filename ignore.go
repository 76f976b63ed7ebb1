package gomatch

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// IgnoreRules applies .gitignore-style exclusion patterns to search
// candidates. Only the common subset of gitignore syntax is supported:
// blank lines and comments, simple globs, trailing-slash directory
// patterns and leading-slash anchored patterns.
type IgnoreRules struct {
	root     string
	patterns []ignorePattern
}

type ignorePattern struct {
	glob     string
	anchored bool // leading slash: match relative to root only
	dirOnly  bool // trailing slash: match directories only
}

// LoadIgnoreRules reads the .gitignore file at the root of the search path,
// if present. The .git directory itself is always ignored. A missing or
// unreadable ignore file simply yields no extra rules.
func LoadIgnoreRules(root string) *IgnoreRules {
	rules := &IgnoreRules{root: root}
	rules.patterns = append(rules.patterns, ignorePattern{glob: ".git", dirOnly: true})

	file, err := os.Open(filepath.Join(root, ".gitignore"))
	if err != nil {
		return rules
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		pattern := ignorePattern{}
		if strings.HasSuffix(line, "/") {
			pattern.dirOnly = true
			line = strings.TrimSuffix(line, "/")
		}
		if strings.HasPrefix(line, "/") {
			pattern.anchored = true
			line = strings.TrimPrefix(line, "/")
		}
		pattern.glob = line
		rules.patterns = append(rules.patterns, pattern)
	}

	return rules
}

// ShouldIgnore reports whether the given path matches any ignore pattern.
func (r *IgnoreRules) ShouldIgnore(path string) bool {
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)

	for _, p := range r.patterns {
		if r.matches(p, rel, base) {
			return true
		}
	}
	return false
}

func (r *IgnoreRules) matches(p ignorePattern, rel, base string) bool {
	if p.anchored || strings.Contains(p.glob, "/") {
		matched, err := filepath.Match(p.glob, rel)
		return err == nil && matched
	}

	// Unanchored patterns match the basename at any depth, and any path
	// segment for directory patterns.
	if matched, err := filepath.Match(p.glob, base); err == nil && matched {
		return true
	}
	if p.dirOnly {
		for _, segment := range strings.Split(rel, "/") {
			if matched, err := filepath.Match(p.glob, segment); err == nil && matched {
				return true
			}
		}
	}
	return false
}
