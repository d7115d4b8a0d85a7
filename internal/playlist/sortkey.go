package playlist

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

// Opening delimiters stripped before looking at the first character, so
// titles like 《夜に駆ける》 bucket under the title itself.
const openingDelimiters = "《〈【〖「『〔［｛（(['\"‘“<＜"

var pinyinArgs = pinyin.NewArgs()

// DeriveSortKey maps a song title to its alphabetical bucket: A-Z, or "#"
// for digits and anything that cannot be transliterated. It never fails;
// a valid explicit hint always wins.
func DeriveSortKey(title, hint string) string {
	if k, ok := normalizeHint(hint); ok {
		return k
	}

	t := strings.TrimLeftFunc(title, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(openingDelimiters, r)
	})
	if t == "" {
		return "#"
	}

	r := []rune(t)[0]
	switch {
	case r >= 'a' && r <= 'z':
		return string(r - 'a' + 'A')
	case r >= 'A' && r <= 'Z':
		return string(r)
	case r >= '0' && r <= '9':
		return "#"
	}

	if k, ok := kanaInitial(r); ok {
		return k
	}
	if k, ok := pinyinInitial(r); ok {
		return k
	}
	return "#"
}

func normalizeHint(hint string) (string, bool) {
	h := strings.TrimSpace(hint)
	if len(h) != 1 {
		return "", false
	}
	c := h[0]
	switch {
	case c == '#':
		return "#", true
	case c >= 'A' && c <= 'Z':
		return string(c), true
	case c >= 'a' && c <= 'z':
		return string(c - 'a' + 'A'), true
	}
	return "", false
}

func pinyinInitial(r rune) (string, bool) {
	readings := pinyin.SinglePinyin(r, pinyinArgs)
	if len(readings) == 0 || readings[0] == "" {
		return "", false
	}
	c := readings[0][0]
	if c >= 'a' && c <= 'z' {
		return string(rune(c - 'a' + 'A')), true
	}
	return "", false
}

// kanaInitial resolves hiragana and katakana to the first letter of their
// Hepburn romanization (さ -> S, ち -> C, ふ -> F).
func kanaInitial(r rune) (string, bool) {
	// Fold katakana onto hiragana.
	if r >= 'ァ' && r <= 'ヶ' {
		r -= 0x60
	}
	k, ok := kanaInitials[r]
	return k, ok
}

var kanaInitials = map[rune]string{
	'あ': "A", 'ぁ': "A", 'い': "I", 'ぃ': "I", 'う': "U", 'ぅ': "U",
	'え': "E", 'ぇ': "E", 'お': "O", 'ぉ': "O", 'ゔ': "V",

	'か': "K", 'き': "K", 'く': "K", 'け': "K", 'こ': "K", 'ゕ': "K", 'ゖ': "K",
	'が': "G", 'ぎ': "G", 'ぐ': "G", 'げ': "G", 'ご': "G",

	'さ': "S", 'し': "S", 'す': "S", 'せ': "S", 'そ': "S",
	'ざ': "Z", 'じ': "J", 'ず': "Z", 'ぜ': "Z", 'ぞ': "Z",

	'た': "T", 'ち': "C", 'つ': "T", 'っ': "T", 'て': "T", 'と': "T",
	'だ': "D", 'ぢ': "J", 'づ': "Z", 'で': "D", 'ど': "D",

	'な': "N", 'に': "N", 'ぬ': "N", 'ね': "N", 'の': "N",

	'は': "H", 'ひ': "H", 'ふ': "F", 'へ': "H", 'ほ': "H",
	'ば': "B", 'び': "B", 'ぶ': "B", 'べ': "B", 'ぼ': "B",
	'ぱ': "P", 'ぴ': "P", 'ぷ': "P", 'ぺ': "P", 'ぽ': "P",

	'ま': "M", 'み': "M", 'む': "M", 'め': "M", 'も': "M",

	'や': "Y", 'ゃ': "Y", 'ゆ': "Y", 'ゅ': "Y", 'よ': "Y", 'ょ': "Y",

	'ら': "R", 'り': "R", 'る': "R", 'れ': "R", 'ろ': "R",

	'わ': "W", 'ゎ': "W", 'ゐ': "I", 'ゑ': "E", 'を': "W", 'ん': "N",
}
