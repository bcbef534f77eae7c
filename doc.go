/*
Package hunaftool converts between Hunspell affix/dictionary file pairs and
plain word lists.

Two operations define the package:

  - Expansion: given an affix file (.AFF) and a dictionary entry carrying
    affix flags, produce every surface word Hunspell would generate from it,
    including prefix/suffix cross products and two-level suffixing.
  - Compression: given an affix file and a flat word list, choose a minimal
    set of stem+flag entries whose expansion exactly reproduces the list.

The affix file is compiled into four parallel tries ({prefix, suffix} x
{from-stem, to-stem}) over a compact alphabet of at most 256 observed
characters. Words are encoded into dense byte sequences so that a single
trie descent enumerates every applicable rule.

Several Hunspell behaviors are reproduced deliberately, quirks included:
condition fields that disagree with the strip field are heuristically
repaired, malformed cross-product markers become "N" with a warning, and unknown
flags in dictionary entries warn without aborting.

Known limitations:

  - Writing systems with more than 256 distinct code points are rejected.
  - Compounding, morphological aliases, suggestion data and ICONV/OCONV
    are not interpreted; those directives are ignored.

File format framing (DIC, TXT, CSV) lives in the subpackages dicfile and
wordlist; this package only deals in lines and words.
*/
package hunaftool

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'hunaftool'
func tracer() tracing.Trace {
	return tracing.Select("hunaftool")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
