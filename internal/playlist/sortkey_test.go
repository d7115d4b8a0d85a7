package playlist

import (
	"strings"
	"testing"
)

func TestDeriveSortKey(t *testing.T) {
	tests := []struct {
		name  string
		title string
		hint  string
		want  string
	}{
		{"ascii lower", "shape of you", "", "S"},
		{"ascii upper", "Lemon", "", "L"},
		{"single character", "x", "", "X"},
		{"digit", "1925", "", "#"},
		{"empty", "", "", "#"},
		{"whitespace only", "   ", "", "#"},
		{"leading space", "  Pretender", "", "P"},
		{"leading cjk bracket", "《起风了》", "", "Q"},
		{"leading quote", "“Hello”", "", "H"},
		{"leading paren digit", "(1995)", "", "#"},
		{"punctuation only", "《《", "", "#"},
		{"chinese", "起风了", "", "Q"},
		{"chinese second", "晴天", "", "Q"},
		{"hiragana", "さくら", "", "S"},
		{"katakana", "カタオモイ", "", "K"},
		{"kana chi", "ちいさな恋のうた", "", "C"},
		{"kana fu", "ふたりごと", "", "F"},
		{"kana voiced", "ばらの花", "", "B"},
		{"hangul unmapped", "사랑", "", "#"},
		{"emoji", "🎵 melody", "", "#"},

		{"hint wins", "誰か", "Z", "Z"},
		{"hint lowercased", "Lemon", "q", "Q"},
		{"hint hash", "Lemon", "#", "#"},
		{"hint too long ignored", "Lemon", "AB", "L"},
		{"hint digit ignored", "Lemon", "1", "L"},
		{"hint empty ignored", "Lemon", "", "L"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveSortKey(tt.title, tt.hint); got != tt.want {
				t.Errorf("DeriveSortKey(%q, %q) = %q, want %q", tt.title, tt.hint, got, tt.want)
			}
		})
	}
}

// Whatever the input, the result is one of the 27 buckets and repeated calls
// agree.
func TestDeriveSortKeyTotalAndDeterministic(t *testing.T) {
	inputs := []string{
		"", " ", "#", "《", "abc", "ABC", "0start", "ñandú", "Ω",
		"起风了", "さくら", "カ", "사랑", "🎵", "《“‘【", "mixed 混合 タイトル",
		strings.Repeat("《", 100), "\t\n", "ー",
	}
	for _, in := range inputs {
		got := DeriveSortKey(in, "")
		if len(got) != 1 || !strings.Contains("ABCDEFGHIJKLMNOPQRSTUVWXYZ#", got) {
			t.Errorf("DeriveSortKey(%q) = %q, not a valid sort key", in, got)
		}
		if again := DeriveSortKey(in, ""); again != got {
			t.Errorf("DeriveSortKey(%q) not deterministic: %q then %q", in, got, again)
		}
	}
}
