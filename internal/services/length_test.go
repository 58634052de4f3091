package services

import "testing"

func TestCountSignificantStripsWhitespaceSet(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"only whitespace", " \t\r\n　 ", 0},
		{"ascii with spaces", "a b\tc\r\nd e", 5},
		{"full-width space", "ハロー　ワールド", 7},
		{"mixed prose", "私の名前はヒナタ．\n朝は 早い。", 14},
		{"no whitespace", "abcdef", 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CountSignificant(tc.in); got != tc.want {
				t.Fatalf("CountSignificant(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestCountSignificantCountsCodePoints(t *testing.T) {
	// Multi-byte characters count once each; no grapheme clustering.
	if got := CountSignificant("漢字とkanji"); got != 8 {
		t.Fatalf("got %d, want 8", got)
	}
}

func TestCountSignificantIdempotent(t *testing.T) {
	texts := []string{"a b c", "　全角　スペース　", "line\r\nbreaks\tand tabs"}
	for _, text := range texts {
		stripped := make([]rune, 0, len(text))
		for _, r := range text {
			switch r {
			case ' ', '　', '\r', '\n', '\t':
			default:
				stripped = append(stripped, r)
			}
		}
		if CountSignificant(string(stripped)) != CountSignificant(text) {
			t.Fatalf("count not stable for %q", text)
		}
	}
}
