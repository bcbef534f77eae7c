package wordlist

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, r Reader) []string {
	t.Helper()
	var words []string
	for {
		word, err := r.Next()
		if err == io.EOF {
			return words
		}
		require.NoError(t, err)
		words = append(words, word)
	}
}

func TestTXTReader(t *testing.T) {
	words := drain(t, NewTXTReader(strings.NewReader("абв\n# comment\n\n  где  \n")))
	require.Equal(t, []string{"абв", "где"}, words)
}

func TestCSVReaderCommaAndPipe(t *testing.T) {
	words := drain(t, NewCSVReader(strings.NewReader("аб, вг|де\nё\n")))
	require.Equal(t, []string{"аб", "вг", "де", "ё"}, words)
}

func TestCSVReaderSkipsEmptyTokens(t *testing.T) {
	words := drain(t, NewCSVReader(strings.NewReader("аб,,вг,\n,\n")))
	require.Equal(t, []string{"аб", "вг"}, words)
}

func TestWriteTXT(t *testing.T) {
	var out strings.Builder
	require.NoError(t, WriteTXT(&out, []string{"аб", "вг"}))
	require.Equal(t, "аб\nвг\n", out.String())
}

func TestWriteCSV(t *testing.T) {
	var out strings.Builder
	require.NoError(t, WriteCSV(&out, [][]string{{"аб", "вг"}, {"де"}}))
	require.Equal(t, "аб,вг\nде\n", out.String())
}

func TestSetDeduplicates(t *testing.T) {
	set := NewSet()
	require.True(t, set.Add("вг"))
	require.True(t, set.Add("аб"))
	require.False(t, set.Add("вг"))
	require.Equal(t, 2, set.Len())
	require.True(t, set.Contains("аб"))
	require.False(t, set.Contains("а"))
	require.Equal(t, []string{"вг", "аб"}, set.Words())
	require.Equal(t, []string{"аб", "вг"}, set.Sorted())
}

func TestSetPrefixQueries(t *testing.T) {
	set := NewSet()
	set.Add("абв")
	require.True(t, set.HasPrefix("аб"))
	require.False(t, set.HasPrefix("вг"))
}

func TestSetAddAll(t *testing.T) {
	set := NewSet()
	require.NoError(t, set.AddAll(NewTXTReader(strings.NewReader("аб\nвг\nаб\n"))))
	require.Equal(t, []string{"аб", "вг"}, set.Words())
}
