package debugger

import (
	"bufio"
	"os"
)

// sourceCacheEntry is one file's cached lines plus the stat fields used
// to detect that the file has changed on disk since it was cached.
type sourceCacheEntry struct {
	size  int64
	mtime int64
	lines []string
}

// sourceCache caches a source file's lines, keyed by path, so that
// repeated "list" commands during a single debugging session don't
// re-read and re-split the same file. An entry is invalidated and
// reread when the file's size or modification time no longer match
// what was cached.
type sourceCache struct {
	entries map[string]*sourceCacheEntry
}

func newSourceCache() *sourceCache {
	return &sourceCache{entries: make(map[string]*sourceCacheEntry)}
}

// Line returns line number lineno (1-based) of filename, or "" if the
// file can't be read or the line is out of range.
func (c *sourceCache) Line(filename string, lineno int) string {
	lines := c.lines(filename)
	if lineno < 1 || lineno > len(lines) {
		return ""
	}
	return lines[lineno-1]
}

func (c *sourceCache) lines(filename string) []string {
	info, err := os.Stat(filename)
	if err != nil {
		delete(c.entries, filename)
		return nil
	}

	if entry, ok := c.entries[filename]; ok {
		if entry.size == info.Size() && entry.mtime == info.ModTime().UnixNano() {
			return entry.lines
		}
	}

	lines, err := readLines(filename)
	if err != nil {
		delete(c.entries, filename)
		return nil
	}

	c.entries[filename] = &sourceCacheEntry{
		size:  info.Size(),
		mtime: info.ModTime().UnixNano(),
		lines: lines,
	}
	return lines
}

func readLines(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
