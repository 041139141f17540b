package resource

import (
	"strings"

	"golang.org/x/text/language"
)

// LanguageTag is matched by language base rather than literally, "en" and
// "en-US" are the same language.
const LanguageTag = "language"

// score counts tags of variant equal to current ones and tags variant does
// not constrain. Conflicting values count as neither.
func score(variant, current map[string]string) (exact, passable int) {
	for k, want := range current {
		have, ok := variant[k]
		if !ok {
			passable++
			continue
		}
		if tagsEqual(k, have, want) {
			exact++
		}
	}
	return exact, passable
}

func tagsEqual(key, a, b string) bool {
	if strings.EqualFold(a, b) {
		return true
	}
	if key != LanguageTag {
		return false
	}
	ta, errA := language.Parse(a)
	tb, errB := language.Parse(b)
	if errA != nil || errB != nil {
		return false
	}
	ba, _ := ta.Base()
	bb, _ := tb.Base()
	return ba == bb
}

// BestMatch returns index of the variant maximizing exact tag matches, then
// passable ones. Variants lacking a tag stay eligible. Ties resolve to the
// first declared variant, the second value reports that a tie happened.
// Empty list gives -1.
func BestMatch(variants []map[string]string, current map[string]string) (int, bool) {
	best, bestExact, bestPassable, tied := -1, -1, -1, false
	for i, v := range variants {
		exact, passable := score(v, current)
		switch {
		case exact > bestExact || (exact == bestExact && passable > bestPassable):
			best, bestExact, bestPassable, tied = i, exact, passable, false
		case exact == bestExact && passable == bestPassable:
			tied = true
		}
	}
	return best, tied
}

// NormalizeLanguage returns canonical BCP 47 form of language tag or the
// input unchanged if it does not parse.
func NormalizeLanguage(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	return t.String()
}
