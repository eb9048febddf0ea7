package lattice

import "strings"

// Signal terms are matched as case-insensitive substrings of a change
// description. Major terms are checked before minor terms.
var (
	majorSignals = []string{
		"breaking", "rewrite", "restructure", "incompatible",
		"重大", "架构", "重构", "不兼容", "破坏性", "全新",
	}
	minorSignals = []string{
		"new feature", "add", "extend", "improve",
		"新功能", "新特性", "新增", "增加", "添加", "扩展", "改进",
	}
)

// Classify picks a bump kind from a free-text change description.
// Descriptions matching no signal term are patches.
func Classify(changes string) Kind {
	lower := strings.ToLower(changes)
	if containsAny(lower, majorSignals) {
		return KindMajor
	}
	if containsAny(lower, minorSignals) {
		return KindMinor
	}
	return KindPatch
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
