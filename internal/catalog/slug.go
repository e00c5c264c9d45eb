package catalog

import "strings"

// accent folding for category ids typed with Turkish or western European
// diacritics
var slugFold = strings.NewReplacer(
	"ç", "c", "ğ", "g", "ı", "i", "ö", "o", "ş", "s", "ü", "u",
	"Ç", "c", "Ğ", "g", "İ", "i", "Ö", "o", "Ş", "s", "Ü", "u",
	"á", "a", "à", "a", "â", "a", "ä", "a", "é", "e", "è", "e",
	"ê", "e", "ë", "e", "í", "i", "î", "i", "ï", "i", "ó", "o",
	"ô", "o", "ú", "u", "û", "u", "ñ", "n",
)

// Slugify turns a free-form label into a url-safe id: accents folded,
// lowercased, runs of non-alphanumerics collapsed into single hyphens.
func Slugify(text string) string {
	folded := strings.ToLower(slugFold.Replace(strings.TrimSpace(text)))

	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
