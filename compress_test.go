package hunaftool

import (
	"testing"

	assertlib "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expandEntries(t *testing.T, aff *AFF, entries []Entry) map[string]struct{} {
	t.Helper()
	words := make(map[string]struct{})
	for _, entry := range entries {
		expanded, err := aff.Expand(entry.Stem, entry.Flags)
		require.NoError(t, err)
		for _, w := range expanded {
			words[w] = struct{}{}
		}
	}
	return words
}

func TestCompressSuffixAttribution(t *testing.T) {
	aff := loadAFF(t, basicCrossAFF)
	words := []string{"ааааа", "ааав", "бааа", "бав"}

	entries, err := aff.Compress(words)
	require.NoError(t, err)
	require.Equal(t, []Entry{
		{Stem: "ааааа", Flags: "B"},
		{Stem: "бааа", Flags: "B"},
	}, entries)
}

func TestCompressRoundTrip(t *testing.T) {
	aff := loadAFF(t, basicCrossAFF)
	words := []string{"ааааа", "ааав", "бааа", "бав"}

	entries, err := aff.Compress(words)
	require.NoError(t, err)
	expanded := expandEntries(t, aff, entries)
	require.Len(t, expanded, len(words))
	for _, w := range words {
		assertlib.Contains(t, expanded, w)
	}
}

func TestCompressIdempotence(t *testing.T) {
	aff := loadAFF(t, `SET UTF-8
SFX B Y 1
SFX B ааа ав ааа
`)
	expanded, err := aff.Expand("ааааа", "B")
	require.NoError(t, err)
	entries, err := aff.Compress(expanded)
	require.NoError(t, err)
	// recompressing an expansion must not grow the dictionary
	require.Equal(t, []Entry{{Stem: "ааааа", Flags: "B"}}, entries)
}

func TestCompressVirtualStem(t *testing.T) {
	aff := loadAFF(t, `SET UTF-8
NEEDAFFIX z
SFX S Y 2
SFX S 0 а б
SFX S 0 я б
`)
	entries, err := aff.Compress([]string{"ба", "бя"})
	require.NoError(t, err)
	require.Equal(t, []Entry{{Stem: "б", Flags: "zS"}}, entries)

	expanded := expandEntries(t, aff, entries)
	require.Len(t, expanded, 2)
	assertlib.Contains(t, expanded, "ба")
	assertlib.Contains(t, expanded, "бя")
}

func TestCompressVirtualStemNeedsTwoWords(t *testing.T) {
	aff := loadAFF(t, `SET UTF-8
NEEDAFFIX z
SFX S Y 1
SFX S 0 а б
`)
	// a virtual stem covering one word is worse than the word itself
	entries, err := aff.Compress([]string{"ба"})
	require.NoError(t, err)
	require.Equal(t, []Entry{{Stem: "ба", Flags: ""}}, entries)
}

func TestCompressPrunesOvergeneratingFlags(t *testing.T) {
	aff := loadAFF(t, `SET UTF-8
NEEDAFFIX z
SFX S Y 2
SFX S 0 а б
SFX S 0 я б
`)
	// "бя" is missing, so flag S on the virtual stem "б" would generate a
	// surplus word and must be dropped
	entries, err := aff.Compress([]string{"ба"})
	require.NoError(t, err)
	require.Equal(t, []Entry{{Stem: "ба", Flags: ""}}, entries)
}

func TestCompressWithoutVirtualStems(t *testing.T) {
	aff := loadAFF(t, `SET UTF-8
SFX S Y 2
SFX S 0 а б
SFX S 0 я б
`)
	// no NEEDAFFIX flag: "б" is not a word and cannot become a stem
	entries, err := aff.Compress([]string{"ба", "бя"})
	require.NoError(t, err)
	require.Equal(t, []Entry{
		{Stem: "ба", Flags: ""},
		{Stem: "бя", Flags: ""},
	}, entries)
}

func TestCompressUncoveredWordsFallThrough(t *testing.T) {
	aff := loadAFF(t, basicCrossAFF)
	entries, err := aff.Compress([]string{"ааааа", "ааав", "ввв"})
	require.NoError(t, err)
	require.Equal(t, []Entry{
		{Stem: "ааааа", Flags: "B"},
		{Stem: "ввв", Flags: ""},
	}, entries)
}

func TestCompressDeduplicatesInput(t *testing.T) {
	aff := loadAFF(t, basicCrossAFF)
	entries, err := aff.Compress([]string{"ааав", "ааааа", "ааав", "ааааа"})
	require.NoError(t, err)
	require.Equal(t, []Entry{{Stem: "ааааа", Flags: "B"}}, entries)
}

func TestCompressDeterminism(t *testing.T) {
	aff := loadAFF(t, basicCrossAFF)
	words := []string{"бав", "ааав", "бааа", "ааааа"}
	first, err := aff.Compress(words)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := aff.Compress(words)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestCompressUnknownCharacter(t *testing.T) {
	aff := loadAFF(t, basicCrossAFF)
	_, err := aff.Compress([]string{"hello"})
	var unknown *UnknownCharacterError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, 'h', unknown.Char)
}

func TestCompressTwoLevelSuffixCoverage(t *testing.T) {
	aff := loadAFF(t, `SET UTF-8
SFX Y Y 1
SFX Y ааа яв/Z ааа
SFX Z Y 1
SFX Z в ргер в
`)
	// flag Y only survives when the continuation words are present too
	entries, err := aff.Compress([]string{"ааааа", "ааяв"})
	require.NoError(t, err)
	require.Equal(t, []Entry{
		{Stem: "ааааа", Flags: ""},
		{Stem: "ааяв", Flags: ""},
	}, entries)

	entries, err = aff.Compress([]string{"ааааа", "ааяв", "ааяргер"})
	require.NoError(t, err)
	require.Equal(t, []Entry{{Stem: "ааааа", Flags: "Y"}}, entries)
}
