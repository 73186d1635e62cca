package text

// Layout maps a passage onto a single normalized reading line so gaze
// x-progress can be converted into words covered. Each word is placed
// proportionally to its rune length across [0,1], mirroring how the
// passage is rendered to the reader.
type Layout struct {
	words     []string
	endings   []float64 // right edge of each word in [0,1]
	flesch    float64
	factor    float64
}

// NewLayout builds the word layout and readability profile for a passage.
func NewLayout(passage string) *Layout {
	words := Words(passage)
	flesch := FleschReadingEase(passage)

	total := 0
	for _, w := range words {
		total += len([]rune(w)) + 1 // +1 for the trailing space
	}

	endings := make([]float64, len(words))
	cursor := 0
	for i, w := range words {
		cursor += len([]rune(w)) + 1
		endings[i] = float64(cursor) / float64(total)
	}

	return &Layout{
		words:   words,
		endings: endings,
		flesch:  flesch,
		factor:  ComplexityFactor(flesch),
	}
}

// WordCount returns the number of words in the passage.
func (l *Layout) WordCount() int {
	return len(l.words)
}

// WordsBefore returns how many words lie fully to the left of the given
// normalized x position, i.e. how many words a reader at that horizontal
// progress has covered.
func (l *Layout) WordsBefore(x float64) int {
	if x >= 1 {
		return len(l.words)
	}
	count := 0
	for _, end := range l.endings {
		if end <= x {
			count++
		} else {
			break
		}
	}
	return count
}

// Flesch returns the passage's Flesch reading-ease score.
func (l *Layout) Flesch() float64 {
	return l.flesch
}

// ComplexityFactor returns the WPM adjustment factor for this passage.
func (l *Layout) ComplexityFactor() float64 {
	return l.factor
}
