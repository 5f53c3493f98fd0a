package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removedChars are deleted from slugs without replacement.
const removedChars = "*,/?´+~.()'\"!:@"

// symbolWords spells out symbols the way slug charmaps do ("Q&A" -> "qanda").
var symbolWords = map[rune]string{
	'&': "and",
	'$': "dollar",
	'%': "percent",
	'<': "less",
	'>': "greater",
	'|': "or",
}

// ligatures covers letters NFKD does not decompose.
var ligatures = strings.NewReplacer(
	"ß", "ss",
	"æ", "ae",
	"œ", "oe",
	"ø", "o",
	"đ", "d",
	"ð", "d",
	"ł", "l",
	"þ", "th",
)

var removedReplacer = func() *strings.Replacer {
	pairs := make([]string, 0, 2*len([]rune(removedChars)))
	for _, r := range removedChars {
		pairs = append(pairs, string(r), "")
	}
	return strings.NewReplacer(pairs...)
}()

// Normalize canonicalizes text into a slug used as the equality and distance
// key for titles, names and presenter lines. Any input, including the empty
// string, yields a slug (possibly empty).
func Normalize(text string) string {
	// Only the first occurrence is rewritten; later ones lose their '+'.
	text = strings.Replace(text, "Q+A", "Q&A", 1)
	text = strings.ToLower(text)
	text = removedReplacer.Replace(text)
	text = strings.ToLower(foldASCII(text))
	// Folding can surface removed characters again (e.g. fullwidth forms).
	text = removedReplacer.Replace(text)

	var b strings.Builder
	b.Grow(len(text))
	pendingHyphen := false
	for _, r := range text {
		if isSeparator(r) {
			pendingHyphen = true
			continue
		}
		if pendingHyphen && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingHyphen = false
		if word, ok := symbolWords[r]; ok {
			b.WriteString(word)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func foldASCII(text string) string {
	text = ligatures.Replace(text)
	// Transformers carry state, so each call builds its own chain.
	chain := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(chain, text)
	if err != nil {
		return text
	}
	return folded
}

func isSeparator(r rune) bool {
	return r == '-' || unicode.IsSpace(r) || unicode.Is(unicode.Pd, r)
}

// ContainsAny reports whether slug contains any of the markers.
func ContainsAny(slug string, markers ...string) bool {
	for _, marker := range markers {
		if marker != "" && strings.Contains(slug, marker) {
			return true
		}
	}
	return false
}
