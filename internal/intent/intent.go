package intent

import "strings"

type Intent string

const (
	List    Intent = "list"
	Book    Intent = "book"
	Exit    Intent = "exit"
	Unknown Intent = "unknown"
)

type rule struct {
	intent   Intent
	keywords []string
}

// Classifier maps an utterance to an intent by substring match against a
// prioritized rule table. Rule order matters: "schedule" appears in both the
// list and book vocabularies, and list must win.
type Classifier struct {
	rules []rule
}

func NewClassifier() *Classifier {
	return &Classifier{rules: []rule{
		{List, []string{"list", "show", "get", "view", "see", "check", "upcoming", "schedule", "appointments"}},
		{Book, []string{"book", "add", "create", "new", "schedule", "make"}},
		{Exit, []string{"exit", "quit", "stop", "bye"}},
	}}
}

func (c *Classifier) Classify(utterance string) Intent {
	q := strings.ToLower(utterance)
	for _, r := range c.rules {
		for _, kw := range r.keywords {
			if strings.Contains(q, kw) {
				return r.intent
			}
		}
	}
	return Unknown
}
