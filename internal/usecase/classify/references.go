package classify

import "strings"

// referencePhrases are discourse markers pointing back at the entity of
// the previous turn, in Vietnamese and English.
var referencePhrases = []string{
	"ở đó", "chỗ đó", "quán đó", "nhà hàng đó", "bên đó", "ở đấy",
	"there", "that place", "that restaurant", "they have",
}

// ExpandReferences resolves back-references in a follow-up query against
// the previous turn's entity name. When the query points back ("what
// dishes do they have there") the entity name is appended so embedding
// and oracle both see the full referent. Returns the query unchanged when
// there is nothing to resolve.
func ExpandReferences(query, lastEntityName string) (string, bool) {
	if lastEntityName == "" {
		return query, false
	}
	lower := strings.ToLower(query)
	for _, phrase := range referencePhrases {
		if strings.Contains(lower, phrase) {
			return query + " " + lastEntityName, true
		}
	}
	return query, false
}
