// Package aksara implements the script-text node: deterministic
// transliteration of Latin input into Javanese script (aksara Jawa) code
// points, and rendering of the resulting glyphs from built-in stroke data
// with anchored combining marks.
package aksara

import "strings"

// Javanese block code points used by the transliterator.
const (
	LetterHa  = '\uA9B2'
	LetterNa  = '\uA9A4'
	LetterCa  = '\uA995'
	LetterRa  = '\uA9AB'
	LetterKa  = '\uA98F'
	LetterDa  = '\uA99C'
	LetterTa  = '\uA99B'
	LetterSa  = '\uA9B1'
	LetterWa  = '\uA9AE'
	LetterLa  = '\uA9AD'
	LetterPa  = '\uA9A5'
	LetterDha = '\uA9A2'
	LetterJa  = '\uA997'
	LetterYa  = '\uA9AA'
	LetterNya = '\uA99A'
	LetterMa  = '\uA9A9'
	LetterGa  = '\uA992'
	LetterBa  = '\uA9A7'
	LetterTha = '\uA99F'
	LetterNga = '\uA994'

	SignWulu    = '\uA9B6' // vowel i, above
	SignSuku    = '\uA9B8' // vowel u, below
	SignTaling  = '\uA9BA' // vowel e/o, drawn before the base
	SignTarung  = '\uA9B4' // second half of o, after the base
	SignPepet   = '\uA9BC' // vowel ĕ, above
	SignPangkon = '\uA9C0' // vowel killer, after
	SignWignyan = '\uA983' // final h, after
	SignLayar   = '\uA982' // final r, above
	SignCecak   = '\uA981' // final ng, above
)

// onsets maps Latin consonant units to base letters. Digraphs are matched
// longest-first by the tokenizer.
var onsets = map[string]rune{
	"h": LetterHa, "n": LetterNa, "c": LetterCa, "r": LetterRa,
	"k": LetterKa, "d": LetterDa, "t": LetterTa, "s": LetterSa,
	"w": LetterWa, "l": LetterLa, "p": LetterPa, "dh": LetterDha,
	"j": LetterJa, "y": LetterYa, "ny": LetterNya, "m": LetterMa,
	"g": LetterGa, "b": LetterBa, "th": LetterTha, "ng": LetterNga,
	// Loanword consonants fold onto their closest native letter.
	"f": LetterPa, "v": LetterWa, "z": LetterJa, "q": LetterKa,
	"x": LetterSa,
}

var digraphs = []string{"ny", "ng", "th", "dh"}

// vowelSigns maps a vowel to its sandhangan sequence; the inherent 'a'
// needs no sign.
var vowelSigns = map[string][]rune{
	"a": nil,
	"i": {SignWulu},
	"u": {SignSuku},
	"e": {SignPepet},
	"o": {SignTaling, SignTarung},
}

// codaSigns maps the special final consonants that have their own sign
// instead of a pangkon-killed letter.
var codaSigns = map[string]rune{
	"r":  SignLayar,
	"h":  SignWignyan,
	"ng": SignCecak,
}

type unitKind int

const (
	unitOther unitKind = iota
	unitVowel
	unitConsonant
)

type unit struct {
	text string
	kind unitKind
}

// tokenize splits lowercase input into consonant units (digraph-aware),
// vowels, and passthrough runes.
func tokenize(s string) []unit {
	var units []unit
	i := 0
	for i < len(s) {
		matched := false
		for _, d := range digraphs {
			if strings.HasPrefix(s[i:], d) {
				units = append(units, unit{text: d, kind: unitConsonant})
				i += len(d)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		c := s[i]
		switch {
		case strings.ContainsRune("aiueo", rune(c)):
			units = append(units, unit{text: string(c), kind: unitVowel})
		case c >= 'a' && c <= 'z':
			units = append(units, unit{text: string(c), kind: unitConsonant})
		default:
			units = append(units, unit{text: string(c), kind: unitOther})
		}
		i++
	}
	return units
}

// Transliterate converts Latin text to a Javanese code-point sequence.
// The mapping is stateless and deterministic: identical input always
// yields the identical sequence. Characters outside the letter set pass
// through unchanged.
func Transliterate(input string) []rune {
	units := tokenize(strings.ToLower(input))
	var out []rune
	baseInWord := false

	emitKilled := func(c string) {
		out = append(out, onsets[c], SignPangkon)
		baseInWord = true
	}

	for i := 0; i < len(units); i++ {
		u := units[i]
		switch u.kind {
		case unitOther:
			out = append(out, []rune(u.text)...)
			baseInWord = false
		case unitVowel:
			// A bare vowel rides the ha carrier.
			out = append(out, LetterHa)
			out = append(out, vowelSigns[u.text]...)
			baseInWord = true
		case unitConsonant:
			if i+1 < len(units) && units[i+1].kind == unitVowel {
				out = append(out, onsets[u.text])
				out = append(out, vowelSigns[units[i+1].text]...)
				baseInWord = true
				i++
				continue
			}
			// No vowel follows: a coda. The special finals have their own
			// sign but need a base earlier in the word to attach to.
			if sign, ok := codaSigns[u.text]; ok && baseInWord {
				out = append(out, sign)
				continue
			}
			emitKilled(u.text)
		}
	}
	return out
}
