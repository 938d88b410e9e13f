package playlist

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Entry is a single stream read back from a playlist document.
type Entry struct {
	URL   string
	Title string
}

// ParsePLS reads a PLS document and returns its entries ordered by index.
// Entries without a File line are dropped.
func ParsePLS(r io.Reader) ([]Entry, error) {
	byIndex := map[int]*Entry{}
	entry := func(n int) *Entry {
		e, ok := byIndex[n]
		if !ok {
			e = &Entry{}
			byIndex[n] = e
		}
		return e
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		var field string
		switch {
		case strings.HasPrefix(key, "File"):
			field = "File"
		case strings.HasPrefix(key, "Title"):
			field = "Title"
		default:
			continue
		}

		n, err := strconv.Atoi(strings.TrimPrefix(key, field))
		if err != nil {
			return nil, fmt.Errorf("invalid playlist key %q: %w", key, err)
		}

		if field == "File" {
			entry(n).URL = value
		} else {
			entry(n).Title = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read playlist: %w", err)
	}

	indexes := make([]int, 0, len(byIndex))
	for n, e := range byIndex {
		if e.URL != "" {
			indexes = append(indexes, n)
		}
	}
	sort.Ints(indexes)

	entries := make([]Entry, 0, len(indexes))
	for _, n := range indexes {
		entries = append(entries, *byIndex[n])
	}

	return entries, nil
}

// ParseM3U reads a plain or extended M3U document. The title of an entry
// comes from the #EXTINF line right before its URL.
func ParseM3U(r io.Reader) ([]Entry, error) {
	var (
		entries []Entry
		title   string
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#EXTINF:"):
			if _, t, ok := strings.Cut(line, ","); ok {
				title = t
			}
			continue
		case strings.HasPrefix(line, "#"):
			continue
		}

		entries = append(entries, Entry{URL: line, Title: title})
		title = ""
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read playlist: %w", err)
	}

	return entries, nil
}
