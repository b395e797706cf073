package agent

// DefaultGuidelines is the canonical English-writing rule set applied when a
// caller supplies none. It is injected at construction (see New) so tests
// and alternate deployments can swap in their own list.
var DefaultGuidelines = []string{
	"Use clear and concise language",
	"Avoid passive voice where possible",
	"Use proper grammar and punctuation",
	"Maintain consistent tense throughout",
	"Use active voice for direct communication",
	"Avoid jargon and complex terminology unless necessary",
	"Ensure proper sentence structure",
	"Use appropriate paragraph breaks",
	"Maintain professional tone",
	"Check for spelling errors",
}
