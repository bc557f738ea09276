// Package catalog loads and watches the local pattern catalog. A catalog is
// a directory where each immediate subdirectory containing a system.md file
// is one pattern; the subdirectory name is the pattern's identifier.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"patternpick/internal/logging"

	"golang.org/x/sync/errgroup"
)

// PatternBodyFile is the file inside a pattern directory that holds the
// pattern's instruction body.
const PatternBodyFile = "system.md"

// Pattern is one catalog entry.
type Pattern struct {
	Name        string // directory name, the identifier used everywhere
	Description string // first heading or first non-empty line of the body
	Body        string // full system.md contents
}

// Store holds the loaded catalog. All reads are safe for concurrent use;
// Reload swaps the whole snapshot under the lock.
type Store struct {
	mu       sync.RWMutex
	root     string
	names    []string
	patterns map[string]Pattern
}

// NewStore scans root and returns a loaded store.
func NewStore(root string) (*Store, error) {
	s := &Store{root: root}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Root returns the patterns directory this store scans.
func (s *Store) Root() string { return s.root }

// Reload rescans the patterns root and replaces the snapshot. Pattern order
// is the os.ReadDir order (lexical), kept stable across reloads. Directories
// without a system.md are skipped; an unreadable body skips that pattern and
// is logged rather than failing the whole scan.
func (s *Store) Reload() error {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return fmt.Errorf("failed to read patterns dir %s: %w", s.root, err)
	}

	var candidates []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.root, e.Name(), PatternBodyFile)); err != nil {
			continue
		}
		candidates = append(candidates, e.Name())
	}

	loaded := make([]Pattern, len(candidates))
	var g errgroup.Group
	g.SetLimit(8)
	for i, name := range candidates {
		g.Go(func() error {
			body, err := os.ReadFile(filepath.Join(s.root, name, PatternBodyFile))
			if err != nil {
				logging.CatalogWarn("skipping pattern %s: %v", name, err)
				return nil
			}
			loaded[i] = Pattern{
				Name:        name,
				Description: describe(string(body)),
				Body:        string(body),
			}
			return nil
		})
	}
	// Workers only report via the loaded slice; the group is used for
	// bounded parallelism and join.
	_ = g.Wait()

	names := make([]string, 0, len(loaded))
	patterns := make(map[string]Pattern, len(loaded))
	for _, p := range loaded {
		if p.Name == "" {
			continue
		}
		names = append(names, p.Name)
		patterns[p.Name] = p
	}

	s.mu.Lock()
	s.names = names
	s.patterns = patterns
	s.mu.Unlock()

	logging.Catalog("loaded %d patterns from %s", len(names), s.root)
	return nil
}

// Names returns the ordered pattern identifiers.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Get returns a pattern by name.
func (s *Store) Get(name string) (Pattern, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patterns[name]
	return p, ok
}

// Has reports whether name is a known pattern.
func (s *Store) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.patterns[name]
	return ok
}

// Len returns the number of loaded patterns.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.names)
}

// describe extracts a one-line description from a pattern body: the first
// markdown heading if present, otherwise the first non-empty line.
func describe(body string) string {
	var fallback string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "# "))
		}
		if fallback == "" {
			fallback = line
		}
	}
	const max = 120
	if len(fallback) > max {
		fallback = fallback[:max]
	}
	return fallback
}
