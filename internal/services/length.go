package services

// CountSignificant returns the number of Unicode code points in text after
// removing half-width space, full-width space (U+3000), carriage return,
// line feed and horizontal tab. Answers are free-form prose in scripts
// without word segmentation, so this count is the quality proxy; the
// full-width space must count as whitespace. No other normalization is done.
func CountSignificant(text string) int {
	n := 0
	for _, r := range text {
		switch r {
		case ' ', '　', '\r', '\n', '\t':
		default:
			n++
		}
	}
	return n
}
