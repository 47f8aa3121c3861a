package knowledge

import (
	"strings"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/constants"
)

// Entry is a static, read-only reference record for a known exam name.
// The table is loaded once at startup and never mutated.
type Entry struct {
	Category    constants.Category
	Explanation string
	Analogy     string
	LowMeaning  string
	HighMeaning string
	Tips        []string
}

// Normalize lowercases, strips accents, and collapses every non-alphanumeric
// run into a single underscore, so "Colesterol (Total)" and
// "colesterol_total" key the same entry.
func Normalize(name string) string {
	var b strings.Builder
	lastUnderscore := true // trim leading separators
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		r = stripAccent(r)
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

func stripAccent(r rune) rune {
	switch r {
	case 'á', 'à', 'â', 'ã', 'ä':
		return 'a'
	case 'é', 'è', 'ê', 'ë':
		return 'e'
	case 'í', 'ì', 'î', 'ï':
		return 'i'
	case 'ó', 'ò', 'ô', 'õ', 'ö':
		return 'o'
	case 'ú', 'ù', 'û', 'ü':
		return 'u'
	case 'ç':
		return 'c'
	default:
		return r
	}
}

// Lookup resolves a printed exam name to its knowledge entry:
// exact match on the normalized key, then the alias table, then substring
// match in either direction against all known keys.
func Lookup(name string) (Entry, bool) {
	key := Normalize(name)
	if key == "" {
		return Entry{}, false
	}

	if e, ok := entries[key]; ok {
		return e, true
	}

	if canonical, ok := aliases[key]; ok {
		if e, ok := entries[canonical]; ok {
			return e, true
		}
	}

	for known, e := range entries {
		if strings.Contains(key, known) || strings.Contains(known, key) {
			return e, true
		}
	}

	return Entry{}, false
}

// CategoryFor buckets a printed exam name into a display category using
// the same normalize-then-match algorithm, independent of whether a
// knowledge entry exists.
func CategoryFor(name string) constants.Category {
	return constants.CategorizeName(Normalize(name))
}
