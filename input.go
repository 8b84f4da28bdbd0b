package dafsa

import (
	"bufio"
	"io"
	"strings"
)

// ReadSequences reads one sequence per line from r. When delimiter is
// non-empty and appears in any line, every line is tokenized on it;
// otherwise each rune is one element.
func ReadSequences(r io.Reader, delimiter string) ([][]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	delimited := false
	if delimiter != "" {
		for _, line := range lines {
			if strings.Contains(line, delimiter) {
				delimited = true
				break
			}
		}
	}

	seqs := make([][]string, len(lines))
	for i, line := range lines {
		if delimited {
			seqs[i] = strings.Split(line, delimiter)
		} else {
			seqs[i] = Tokenize(line)
		}
	}
	return seqs, nil
}
