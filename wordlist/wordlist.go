// Package wordlist reads and writes plain word lists in TXT and CSV form
// and provides a deduplicating word set for the compression driver.
//
// TXT holds one word per line with #-prefixed comment lines. A CSV line is
// split on ',' or '|'; every token is trimmed and treated as an independent
// word.
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Reader streams single words from a line-oriented source.
type Reader interface {
	// Next returns the next word, or io.EOF when the source is exhausted.
	Next() (string, error)
}

// TXTReader streams words from a TXT file, one per line.
type TXTReader struct {
	scanner *bufio.Scanner
}

func NewTXTReader(reader io.Reader) *TXTReader {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &TXTReader{scanner: scanner}
}

func (r *TXTReader) Next() (string, error) {
	for r.scanner.Scan() {
		word := strings.TrimSpace(r.scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		return word, nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// CSVReader streams words from comma- or pipe-separated lines.
type CSVReader struct {
	scanner *bufio.Scanner
	pending []string
}

func NewCSVReader(reader io.Reader) *CSVReader {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &CSVReader{scanner: scanner}
}

func (r *CSVReader) Next() (string, error) {
	for {
		if len(r.pending) > 0 {
			word := r.pending[0]
			r.pending = r.pending[1:]
			return word, nil
		}
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		line := r.scanner.Text()
		tokens := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == '|'
		})
		for _, tok := range tokens {
			tok = strings.TrimSpace(tok)
			if tok != "" {
				r.pending = append(r.pending, tok)
			}
		}
	}
}

// WriteTXT emits one word per line.
func WriteTXT(w io.Writer, words []string) error {
	bw := bufio.NewWriter(w)
	for _, word := range words {
		if _, err := fmt.Fprintln(bw, word); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteCSV emits one comma-separated row per record.
func WriteCSV(w io.Writer, rows [][]string) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		if _, err := fmt.Fprintln(bw, strings.Join(row, ",")); err != nil {
			return err
		}
	}
	return bw.Flush()
}
