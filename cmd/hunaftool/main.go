// Command hunaftool converts between Hunspell affix/dictionary pairs and
// plain word lists.
//
// Usage:
//
//	hunaftool [-v] [-i=<dic|txt|csv>] [-o=<dic|txt|csv>] <aff> [in] [out]
//
// Formats are inferred from file extensions when the -i/-o flags are
// absent. Producing from a DIC defaults to CSV output; producing from a
// TXT or CSV word list defaults to DIC output. Without in/out arguments
// the tool reads stdin and writes stdout.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/ssvb/hunaftool"
	"github.com/ssvb/hunaftool/dicfile"
	"github.com/ssvb/hunaftool/wordlist"
)

func main() {
	verbose := flag.Bool("v", false, "verbose diagnostics on stderr")
	inFormat := flag.String("i", "", "input format: dic, txt or csv (default: by extension)")
	outFormat := flag.String("o", "", "output format: dic, txt or csv (default: by input format)")
	flag.Usage = usage
	flag.Parse()
	if *verbose {
		tracing.Select("hunaftool").SetTraceLevel(tracing.LevelInfo)
	}
	if flag.NArg() < 1 || flag.NArg() > 3 {
		usage()
		os.Exit(1)
	}
	if err := run(flag.Args(), *inFormat, *outFormat); err != nil {
		fmt.Fprintf(os.Stderr, "hunaftool: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: hunaftool [-v] [-i=<dic|txt|csv>] [-o=<dic|txt|csv>] <aff> [in] [out]")
	flag.PrintDefaults()
}

func run(args []string, inFormat, outFormat string) error {
	affPath := args[0]
	inPath, outPath := "", ""
	if len(args) > 1 {
		inPath = args[1]
	}
	if len(args) > 2 {
		outPath = args[2]
	}

	inFormat = resolveFormat(inFormat, inPath, "txt")
	switch inFormat {
	case "dic", "txt", "csv":
	default:
		return fmt.Errorf("unknown input format %q", inFormat)
	}
	outDefault := "dic"
	if inFormat == "dic" {
		outDefault = "csv"
	}
	outFormat = resolveFormat(outFormat, outPath, outDefault)
	supported := (inFormat == "dic" && (outFormat == "txt" || outFormat == "csv")) ||
		((inFormat == "txt" || inFormat == "csv") && outFormat == "dic")
	if !supported {
		return fmt.Errorf("no conversion from %s to %s", inFormat, outFormat)
	}

	affData, err := os.ReadFile(affPath)
	if err != nil {
		return err
	}
	inData, err := readInput(inPath)
	if err != nil {
		return err
	}
	output, err := os.Stdout, error(nil)
	if outPath != "" {
		output, err = os.Create(outPath)
		if err != nil {
			return err
		}
		defer output.Close()
	}

	affName := filepath.Base(affPath)
	aff, err := hunaftool.LoadAFF(affName, bytes.NewReader(affData))
	if err != nil {
		return err
	}
	var out bytes.Buffer
	err = convert(aff, inFormat, outFormat, inData, &out)
	var unknown *hunaftool.UnknownCharacterError
	if errors.As(err, &unknown) {
		// seed the alphabet from both files and retry the whole run once
		seed, seedErr := inputText(inFormat, inData)
		if seedErr != nil {
			return seedErr
		}
		aff, err = hunaftool.LoadAFFSeeded(affName, bytes.NewReader(affData), seed)
		if err != nil {
			return err
		}
		out.Reset()
		err = convert(aff, inFormat, outFormat, inData, &out)
	}
	if err != nil {
		return err
	}
	_, err = output.Write(out.Bytes())
	return err
}

func resolveFormat(explicit, path, fallback string) string {
	if explicit != "" {
		return strings.ToLower(explicit)
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "dic", "txt", "csv":
		return ext
	}
	return fallback
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// inputText concatenates the word content of the input data, for seeding
// the affix alphabet on the unknown-character retry.
func inputText(format string, data []byte) (string, error) {
	var text strings.Builder
	if format == "dic" {
		reader := dicfile.NewReader(bytes.NewReader(data))
		for {
			stem, _, err := reader.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return "", err
			}
			text.WriteString(stem)
		}
		return text.String(), nil
	}
	words, err := readWords(format, data)
	if err != nil {
		return "", err
	}
	for _, w := range words.Words() {
		text.WriteString(w)
	}
	return text.String(), nil
}

func readWords(format string, data []byte) (*wordlist.Set, error) {
	var reader wordlist.Reader
	if format == "csv" {
		reader = wordlist.NewCSVReader(bytes.NewReader(data))
	} else {
		reader = wordlist.NewTXTReader(bytes.NewReader(data))
	}
	set := wordlist.NewSet()
	if err := set.AddAll(reader); err != nil {
		return nil, err
	}
	return set, nil
}

func convert(aff *hunaftool.AFF, inFormat, outFormat string, inData []byte, out io.Writer) error {
	if inFormat == "dic" {
		return expandDic(aff, outFormat, inData, out)
	}
	set, err := readWords(inFormat, inData)
	if err != nil {
		return err
	}
	entries, err := aff.Compress(set.Words())
	if err != nil {
		return err
	}
	return dicfile.Write(out, entries)
}

func expandDic(aff *hunaftool.AFF, outFormat string, inData []byte, out io.Writer) error {
	reader := dicfile.NewReader(bytes.NewReader(inData))
	all := wordlist.NewSet()
	var rows [][]string
	for {
		stem, flags, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		words, err := aff.Expand(stem, flags)
		if err != nil {
			return err
		}
		if outFormat == "csv" {
			row := make([]string, 0, len(words))
			seen := make(map[string]struct{}, len(words))
			for _, w := range words {
				if _, dup := seen[w]; !dup {
					seen[w] = struct{}{}
					row = append(row, w)
				}
			}
			if len(row) > 0 {
				rows = append(rows, row)
			}
			continue
		}
		for _, w := range words {
			all.Add(w)
		}
	}
	if outFormat == "csv" {
		return wordlist.WriteCSV(out, rows)
	}
	return wordlist.WriteTXT(out, all.Sorted())
}
