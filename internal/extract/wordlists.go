package extract

// Word lists used by the extractor. Nominative pronouns and conjunctions
// feed two of the per-sentence distributions; stop words are excluded from
// the legomena and richness counts.

var nominativePronouns = []string{
	"i", "you", "he", "she", "it", "we", "they",
	"who", "whoever", "thou", "ye",
}

var conjunctions = []string{
	// coordinating
	"and", "but", "or", "nor", "for", "yet", "so",
	// subordinating
	"after", "although", "as", "because", "before", "how", "if", "lest",
	"once", "since", "than", "that", "though", "till", "unless", "until",
	"when", "whenever", "where", "wherever", "whether", "while", "why",
}

// stopWords is a compact subset of the SMART stop list; enough to strip the
// high-frequency function words that would otherwise dominate the legomena
// ratios.
var stopWords = []string{
	"a", "about", "above", "across", "after", "again", "against", "all",
	"almost", "alone", "along", "already", "also", "although", "always",
	"am", "among", "an", "and", "another", "any", "anybody", "anyone",
	"anything", "anywhere", "are", "around", "as", "at", "back", "be",
	"became", "because", "become", "becomes", "been", "before", "behind",
	"being", "below", "between", "both", "but", "by", "came", "can",
	"cannot", "come", "could", "did", "do", "does", "done", "down", "during",
	"each", "either", "enough", "even", "ever", "every", "everybody",
	"everyone", "everything", "everywhere", "few", "find", "first", "for",
	"found", "from", "further", "get", "give", "go", "had", "has", "have",
	"having", "he", "her", "here", "herself", "him", "himself", "his", "how",
	"however", "i", "if", "in", "indeed", "into", "is", "it", "its",
	"itself", "just", "keep", "last", "least", "less", "let", "like",
	"likely", "long", "made", "many", "may", "me", "might", "mine", "more",
	"most", "mostly", "much", "must", "my", "myself", "never", "next", "no",
	"nobody", "none", "nor", "not", "nothing", "now", "nowhere", "of", "off",
	"often", "on", "once", "one", "only", "or", "other", "others", "our",
	"ours", "out", "over", "own", "part", "per", "perhaps", "put", "rather",
	"said", "same", "say", "see", "seem", "seemed", "seeming", "seems",
	"several", "shall", "she", "should", "since", "so", "some", "somebody",
	"someone", "something", "somewhere", "still", "such", "take", "than",
	"that", "the", "their", "theirs", "them", "themselves", "then", "there",
	"therefore", "these", "they", "this", "those", "though", "through",
	"thus", "to", "together", "too", "toward", "under", "until", "up",
	"upon", "us", "very", "was", "we", "well", "were", "what", "whatever",
	"when", "where", "whether", "which", "while", "who", "whole", "whom",
	"whose", "why", "will", "with", "within", "without", "would", "yet",
	"you", "your", "yours", "yourself",
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
