package main

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// scanlines will scan in the lines from the given io.Reader, and pass each
// line it successfully scans into the given callback. Surrounding whitespace
// is trimmed, blank lines are skipped, and anything after a # is ignored as a
// comment.
func scanlines(rd io.Reader, fn func(string)) error {
	sc := bufio.NewScanner(rd)

	for sc.Scan() {
		line := sc.Text()

		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		if line = strings.TrimSpace(line); line != "" {
			fn(line)
		}
	}
	return sc.Err()
}

// readIDs returns the given IDs followed by those read from the given file,
// one per line. A file of - reads from stdin.
func readIDs(args []string, file string, stdin io.Reader) ([]string, error) {
	ids := append([]string{}, args...)

	if file == "" {
		return ids, nil
	}

	rd := stdin

	if file != "-" {
		f, err := os.Open(file)

		if err != nil {
			return nil, err
		}

		defer f.Close()
		rd = f
	}

	err := scanlines(rd, func(id string) {
		ids = append(ids, id)
	})
	return ids, err
}
