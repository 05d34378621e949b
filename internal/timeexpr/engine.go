package timeexpr

// Match is the first accepted rule output.
type Match struct {
	Rule  string
	Value string
}

// Engine applies rules in order and stops at the first one that matches.
type Engine struct {
	rules []Rule
}

// NewEngine builds an engine over rules. With no rules it uses DefaultRules.
func NewEngine(rules ...Rule) *Engine {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Engine{rules: rules}
}

// Match reports the winning rule and its canonical rendering.
func (e *Engine) Match(text string) (Match, bool) {
	if text == "" {
		return Match{}, false
	}
	for _, r := range e.rules {
		if out, ok := r.TryMatch(text); ok {
			return Match{Rule: r.Name(), Value: out}, true
		}
	}
	return Match{}, false
}

// Extract returns the canonical time string, if any.
func (e *Engine) Extract(text string) (string, bool) {
	m, ok := e.Match(text)
	return m.Value, ok
}

var defaultEngine = NewEngine()

// Extract runs the default rule set.
func Extract(text string) (string, bool) {
	return defaultEngine.Extract(text)
}

// ExtractPtr is Extract shaped for optional JSON fields.
func ExtractPtr(text string) *string {
	out, ok := Extract(text)
	if !ok {
		return nil
	}
	return &out
}
