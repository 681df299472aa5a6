// Package progress persists the highest unlocked stage as a single decimal
// line in a text file.
package progress

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

const (
	// Min is the value of a fresh save.
	Min = 1
	// Max is written after the final stage.
	Max = 13
)

// Counter is the unlock counter backed by a file. It is safe for
// concurrent use.
type Counter struct {
	mu    sync.Mutex
	path  string
	value int
}

// Load reads the counter from path. Anything other than a first line made
// only of digits within [Min, Max] yields Min; a missing file is not an
// error.
func Load(path string) (*Counter, error) {
	c := &Counter{path: path, value: Min}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, fmt.Errorf("progress: cannot open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return c, fmt.Errorf("progress: cannot read %s: %w", path, err)
		}
		return c, nil
	}
	c.value = parse(sc.Text())
	return c, nil
}

// New returns an in-memory counter at Min that saves to path.
func New(path string) *Counter {
	return &Counter{path: path, value: Min}
}

func parse(line string) int {
	s := strings.TrimSpace(line)
	if s == "" {
		return Min
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return Min
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < Min || v > Max {
		return Min
	}
	return v
}

// Path returns the backing file.
func (c *Counter) Path() string {
	return c.path
}

// Value returns the highest unlocked stage.
func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Raise moves the counter up to to, clamped to Max. It never lowers the
// value and reports whether anything changed.
func (c *Counter) Raise(to int) bool {
	to = min(to, Max)

	c.mu.Lock()
	defer c.mu.Unlock()
	if to <= c.value {
		return false
	}
	c.value = to
	return true
}

// Reset drops the counter back to Min without saving.
func (c *Counter) Reset() {
	c.mu.Lock()
	c.value = Min
	c.mu.Unlock()
}

// Save overwrites the file with the current value.
func (c *Counter) Save() error {
	if c.path == "" {
		return nil
	}
	v := c.Value()

	if dir := filepath.Dir(c.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("progress: cannot create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(c.path, []byte(strconv.Itoa(v)+"\n"), 0o644); err != nil {
		return fmt.Errorf("progress: cannot write %s: %w", c.path, err)
	}
	return nil
}

// DefaultPath returns ~/.sinland/save.txt, or save.txt in the working
// directory when home is unavailable.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "save.txt"
	}
	return filepath.Join(home, ".sinland", "save.txt")
}
