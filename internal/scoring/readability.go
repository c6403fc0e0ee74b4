package scoring

import (
	"strings"
	"unicode"
)

// minReadabilityRunes is the floor below which the readability formula is
// unstable; shorter text gets the fixed default instead.
const (
	minReadabilityRunes  = 100
	shortTextScore       = 0
	formulaFailbackScore = 50
)

// Readability computes the banded Flesch Reading Ease of the extracted plain
// text, normalized to 0-100 where higher reads easier. Text under the minimum
// length yields the fixed default rather than an unstable formula output.
func Readability(text string) int {
	if len([]rune(strings.TrimSpace(text))) < minReadabilityRunes {
		return shortTextScore
	}

	words := strings.Fields(text)
	sentences := countSentences(text)
	if len(words) == 0 || sentences == 0 {
		return formulaFailbackScore
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	ease := 206.835 -
		1.015*(float64(len(words))/float64(sentences)) -
		84.6*(float64(syllables)/float64(len(words)))

	// Band the raw ease value so small wording changes do not jitter scores.
	switch {
	case ease >= 90:
		return 100
	case ease >= 80:
		return 90
	case ease >= 70:
		return 80
	case ease >= 60:
		return 70
	case ease >= 50:
		return 60
	case ease >= 30:
		return 50
	default:
		return 30
	}
}

func countSentences(text string) int {
	n := 0
	inSentence := false
	for _, r := range text {
		switch {
		case r == '.' || r == '!' || r == '?':
			if inSentence {
				n++
				inSentence = false
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			inSentence = true
		}
	}
	if inSentence {
		n++
	}
	return n
}

// countSyllables estimates English syllables by counting vowel groups, with
// the usual silent-e adjustment. An estimate is enough: the ease value is
// banded before use.
func countSyllables(word string) int {
	word = strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	if word == "" {
		return 1
	}

	isVowel := func(r rune) bool {
		return strings.ContainsRune("aeiouy", r)
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}
