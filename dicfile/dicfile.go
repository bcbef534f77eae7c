// Package dicfile reads and writes Hunspell .DIC files.
//
// The format is line-oriented UTF-8: the first line carries a decimal entry
// count, every following non-empty line is "stem[/flags]" optionally
// followed by whitespace-separated morphology tokens, which are discarded.
// A missing or inconsistent count warns but does not abort.
package dicfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/ssvb/hunaftool"
)

// tracer writes to trace with key 'hunaftool'
func tracer() tracing.Trace {
	return tracing.Select("hunaftool")
}

// Reader streams dictionary entries from a .DIC file.
type Reader struct {
	scanner   *bufio.Scanner
	lineno    int
	declared  int // count from the first line, -1 when absent
	seen      int
	countRead bool
	done      bool
}

func NewReader(reader io.Reader) *Reader {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{
		scanner:  scanner,
		declared: -1,
	}
}

// Next returns the next dictionary entry as (stem, flag field).
// It returns io.EOF when exhausted. Morphology tokens are dropped.
func (r *Reader) Next() (string, string, error) {
	for r.scanner.Scan() {
		r.lineno++
		line := strings.TrimRight(r.scanner.Text(), "\r")
		if !r.countRead {
			r.countRead = true
			count, err := strconv.Atoi(strings.TrimSpace(line))
			if err == nil {
				r.declared = count
				continue
			}
			tracer().Errorf("dic line 1: expected an entry count, got %q", line)
			// fall through: the first line is an entry
		}
		if strings.TrimSpace(line) == "" {
			tracer().Errorf("dic line %d is empty", r.lineno)
			continue
		}
		entry := line
		if i := strings.IndexAny(entry, " \t"); i >= 0 {
			entry = entry[:i]
		}
		stem, flags, _ := strings.Cut(entry, "/")
		r.seen++
		return stem, flags, nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", "", err
	}
	if !r.done {
		r.done = true
		if r.declared >= 0 && r.declared != r.seen {
			tracer().Errorf("dic declares %d entries but contains %d", r.declared, r.seen)
		}
	}
	return "", "", io.EOF
}

// Write emits entries in .DIC syntax: the entry count followed by one
// "stem[/flags]" line per entry, in the given order.
func Write(w io.Writer, entries []hunaftool.Entry) error {
	if _, err := fmt.Fprintf(w, "%d\n", len(entries)); err != nil {
		return err
	}
	for _, entry := range entries {
		if _, err := fmt.Fprintln(w, entry.Line()); err != nil {
			return err
		}
	}
	return nil
}
