package checklist

var defaultPrompts = []string{
	"Are market conditions (volatility, trend) right for this trade?",
	"Are there major news events that may occur during the trade?",
	"Correct entry point based on strategy?",
	"Is the stop loss reasonable for the potential reward?",
	"How am I getting out of this trade? (Describe)",
	"Is my position size correct?",
	"Am I violating any of my Trading Plan rules?",
	"Am I allowed to trade? (Not on a forced break due to recent losses)",
	"Am I placing this order in the correct hours/my established trading time?",
	"Is it within my max number of positions I can hold at one time?",
	"Is it within my leverage tolerance?",
	"Did I find this trade through the proper means? (Not a 'tip' but from my own research)",
	"What should I remember during the trade? (Key point you've struggled with recently)",
	"Am I in the right mind frame for this trade?",
	"My expectations are realistic",
	"I have a probability-tested edge",
	"Trading aligns with my 'ideal self'",
	"No one is influencing me",
	"My entry criteria is clear, now I wait",
	"I am self-aware of my impulses",
	"Sleep was great, exercise was great",
	"My brain and belly have been fed",
	"Trades must meet my criteria",
	"I completely accept my defined risk",
	"Position size is in-line with my process",
	"Good habits are forming in my trading",
	"I am calm, relaxed, and focused",
}

// DefaultPrompts returns a copy of the built-in checklist prompts used when
// no checklist file exists yet.
func DefaultPrompts() []string {
	out := make([]string, len(defaultPrompts))
	copy(out, defaultPrompts)
	return out
}

// NewDefault builds a document seeded with DefaultPrompts and nothing checked.
// A nil idFunc uses NewID.
func NewDefault(idFunc func() string) *Document {
	doc := New(idFunc)
	for _, text := range defaultPrompts {
		doc.Add(text)
	}
	return doc
}
