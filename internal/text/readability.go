package text

import (
	"strings"
	"unicode"
)

// FleschReadingEase computes the standard Flesch reading-ease score for a
// passage: 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words).
// Higher scores mean easier text; typical prose lands between 30 and 90.
func FleschReadingEase(passage string) float64 {
	words := Words(passage)
	if len(words) == 0 {
		return 100
	}

	sentences := countSentences(passage)
	if sentences == 0 {
		sentences = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	wordsPerSentence := float64(len(words)) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(len(words))
	return 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
}

// ComplexityFactor converts a Flesch score into a WPM adjustment factor.
// Easy text (score >= 60) reads at face value; harder text scales the
// observed speed up so slow progress on dense passages is not
// over-penalized. Capped at 1.6.
func ComplexityFactor(fleschScore float64) float64 {
	factor := 1 + (60-fleschScore)/100
	if factor < 1 {
		return 1
	}
	if factor > 1.6 {
		return 1.6
	}
	return factor
}

// Words splits a passage into its word tokens.
func Words(passage string) []string {
	return strings.FieldsFunc(passage, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\'' && r != '-'
	})
}

func countSentences(passage string) int {
	count := 0
	for _, r := range passage {
		if r == '.' || r == '!' || r == '?' {
			count++
		}
	}
	return count
}

// countSyllables estimates syllables by counting vowel groups, with the
// usual silent-e adjustment. Good enough for a readability heuristic.
func countSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}
	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}
