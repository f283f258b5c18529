package extract

import "strings"

// countSyllables estimates the syllable count of an English word by counting
// vowel groups, with the usual silent-e adjustment. Every word counts as at
// least one syllable. The estimate only feeds the Flesch reading-ease score,
// where systematic small errors wash out across a whole book.
func countSyllables(word string) int {
	word = strings.Trim(strings.ToLower(word), "'")
	if word == "" {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := isVowel(r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	// trailing silent e, but not -le as in "table"
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}

	if count < 1 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
