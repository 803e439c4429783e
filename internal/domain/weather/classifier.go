package weather

import "strings"

type keywordRule struct {
	Keyword  string
	Category string
}

// Classifier maps a free-text weather description to one of the fixed
// categories via ordered substring rules.
type Classifier struct {
	rules []keywordRule
}

// NewClassifier builds a classifier with the default rule set. The slice
// order is the evaluation order, first hit wins.
func NewClassifier() *Classifier {
	return &Classifier{rules: defaultRules()}
}

// NewClassifierWithRules builds a classifier with an explicit ordered rule
// list, used by tests to pin evaluation order.
func NewClassifierWithRules(rules map[string]string, order []string) *Classifier {
	c := &Classifier{}
	for _, kw := range order {
		if cat, ok := rules[kw]; ok {
			c.rules = append(c.rules, keywordRule{Keyword: kw, Category: cat})
		}
	}
	return c
}

func defaultRules() []keywordRule {
	return []keywordRule{
		{"雷雨", CategoryRain},
		{"陣雨", CategoryRain},
		{"豪雨", CategoryRain},
		{"大雨", CategoryRain},
		{"雨", CategoryRain},
		{"雪", CategorySnow},
		{"多雲時晴", CategoryCloudy},
		{"晴時多雲", CategoryClear},
		{"多雲", CategoryCloudy},
		{"陰", CategoryOvercast},
		{"晴", CategoryClear},
	}
}

// Classify returns the category of the first rule whose keyword appears in
// the description, then falls back to a fixed short-keyword priority and
// finally to clear weather.
func (c *Classifier) Classify(description string) string {
	for _, rule := range c.rules {
		if strings.Contains(description, rule.Keyword) {
			return rule.Category
		}
	}
	switch {
	case strings.Contains(description, "晴"):
		return CategoryClear
	case strings.Contains(description, "雨"):
		return CategoryRain
	case strings.Contains(description, "陰"):
		return CategoryOvercast
	case strings.Contains(description, "多雲"):
		return CategoryCloudy
	case strings.Contains(description, "雪"):
		return CategorySnow
	}
	return CategoryClear
}
