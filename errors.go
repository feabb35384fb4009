package textc

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// UnknownLanguageError reports a requested language key absent from the
// strings-table header. When the key is close to one of the declared
// languages, Suggestion names it.
type UnknownLanguageError struct {
	Key        string
	Known      []string
	Suggestion string
}

func (e *UnknownLanguageError) Error() string {
	msg := fmt.Sprintf("textc: unknown language %q (have %s)",
		e.Key, strings.Join(e.Known, ", "))
	if e.Suggestion != "" {
		msg += fmt.Sprintf(", did you mean %q?", e.Suggestion)
	}
	return msg
}

// suggestLanguage matches the requested key against the declared language
// keys as BCP 47 tags. A confident match ("en-US" against "en") becomes
// the suggestion; table keys that are not valid tags simply never match.
func suggestLanguage(key string, known []string) string {
	want, err := language.Parse(key)
	if err != nil {
		return ""
	}

	var tags []language.Tag
	var names []string
	for _, k := range known {
		t, err := language.Parse(k)
		if err != nil {
			continue
		}
		tags = append(tags, t)
		names = append(names, k)
	}
	if len(tags) == 0 {
		return ""
	}

	if _, i, conf := language.NewMatcher(tags).Match(want); conf >= language.High {
		return names[i]
	}
	return ""
}
