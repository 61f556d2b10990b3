package logging

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// Tail returns at most n lines from the end of the file at path. A missing
// file yields no lines and no error.
func Tail(path string, n int) ([]string, error) {
	if n <= 0 || path == "" {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, n)
	next, seen := 0, 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % n
		seen++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if seen < n {
		return append([]string(nil), ring[:seen]...), nil
	}
	lines := make([]string, 0, n)
	lines = append(lines, ring[next:]...)
	lines = append(lines, ring[:next]...)
	return lines, nil
}
