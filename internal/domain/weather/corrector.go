package weather

import fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

// Corrector maps free-text city input to a canonical region name. The
// alias table is consulted before any fuzzy scoring so that common spelling
// variants resolve deterministically.
type Corrector struct {
	aliases   map[string]string
	threshold int
}

// NewCorrector builds a corrector with the default alias table. A
// threshold <= 0 falls back to 75.
func NewCorrector(threshold int) *Corrector {
	if threshold <= 0 {
		threshold = 75
	}
	return &Corrector{aliases: defaultAliases(), threshold: threshold}
}

// Common 台/臺 spelling variants and short forms.
func defaultAliases() map[string]string {
	return map[string]string{
		"台北":  "臺北市",
		"台北市": "臺北市",
		"臺北":  "臺北市",
		"台中":  "臺中市",
		"台中市": "臺中市",
		"臺中":  "臺中市",
		"台南":  "臺南市",
		"台南市": "臺南市",
		"臺南":  "臺南市",
		"台東":  "臺東縣",
		"台東縣": "臺東縣",
		"臺東":  "臺東縣",
		"新北":  "新北市",
		"桃園":  "桃園市",
		"高雄":  "高雄市",
		"基隆":  "基隆市",
		"新竹":  "新竹市",
		"嘉義":  "嘉義市",
		"宜蘭":  "宜蘭縣",
		"花蓮":  "花蓮縣",
		"澎湖":  "澎湖縣",
		"金門":  "金門縣",
		"連江":  "連江縣",
		"馬祖":  "連江縣",
	}
}

// Correct resolves the input against the candidate list. Ordering of the
// candidates decides ties: only a strictly higher ratio replaces the
// current best, so the first candidate in slice order wins on equal
// scores. Returns ok=false when no candidate reaches the threshold.
func (c *Corrector) Correct(input string, candidates []string) (string, bool) {
	working := input
	if alias, ok := c.aliases[input]; ok {
		working = alias
	}
	for _, candidate := range candidates {
		if working == candidate {
			return candidate, true
		}
	}

	best := ""
	bestScore := -1
	for _, candidate := range candidates {
		if score := fuzzy.Ratio(working, candidate); score > bestScore {
			bestScore = score
			best = candidate
		}
	}
	if bestScore >= c.threshold {
		return best, true
	}
	return "", false
}
