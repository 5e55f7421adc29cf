package comment

import "strings"

// blockedWords is intentionally short: the guestbook is for event guests, not
// the open internet, and moderation can hide anything that slips through.
var blockedWords = map[string]bool{
	"ass":     true,
	"asshole": true,
	"bastard": true,
	"bitch":   true,
	"cock":    true,
	"cunt":    true,
	"dick":    true,
	"fag":     true,
	"faggot":  true,
	"fuck":    true,
	"fucking": true,
	"nigger":  true,
	"nigga":   true,
	"piss":    true,
	"pussy":   true,
	"shit":    true,
	"slut":    true,
	"twat":    true,
	"whore":   true,
}

var leetReplacer = strings.NewReplacer(
	"0", "o",
	"1", "i",
	"3", "e",
	"4", "a",
	"5", "s",
	"7", "t",
	"@", "a",
	"$", "s",
	"!", "i",
)

// isClean reports whether the text passes the local profanity check. Tokens
// are lowercased and de-leeted before lookup so "Sh1t" does not pass.
func isClean(text string) bool {
	normalized := leetReplacer.Replace(strings.ToLower(text))

	for _, token := range strings.FieldsFunc(normalized, func(r rune) bool {
		return !('a' <= r && r <= 'z')
	}) {
		if blockedWords[token] {
			return false
		}
	}
	return true
}
