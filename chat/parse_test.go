package chat

import (
	"testing"

	"github.com/beogip/boredGPT/core"
	"github.com/stretchr/testify/assert"
)

func TestParseAnswerWellFormedJSON(t *testing.T) {
	answer := ParseAnswer(`{"answer": "No-code speeds iteration.", "article": "https://example.com/blog/no-code"}`)
	assert.Equal(t, "No-code speeds iteration.", answer.Text)
	assert.Equal(t, "https://example.com/blog/no-code", answer.SourceURL)
}

func TestParseAnswerStripsLeadingProse(t *testing.T) {
	answer := ParseAnswer(`Here you go: {"answer":"No-code speeds iteration.","article":"no-code-no-compromises"}`)
	assert.Equal(t, "No-code speeds iteration.", answer.Text)
	assert.Equal(t, "no-code-no-compromises", answer.SourceURL)
}

func TestParseAnswerPlainProseFallback(t *testing.T) {
	raw := "Hmm, I'm not sure."
	answer := ParseAnswer(raw)
	assert.Equal(t, raw, answer.Text)
	assert.Empty(t, answer.SourceURL)
}

func TestParseAnswerMalformedJSONFallback(t *testing.T) {
	raw := `{"answer": "truncated`
	answer := ParseAnswer(raw)
	assert.Equal(t, raw, answer.Text)
	assert.Empty(t, answer.SourceURL)
}

func TestParseAnswerSurroundingWhitespace(t *testing.T) {
	answer := ParseAnswer("\n  {\"answer\": \"Trimmed.\", \"article\": \"\"}  \n")
	assert.Equal(t, "Trimmed.", answer.Text)
}

func TestURLPolicyClearsNonURLs(t *testing.T) {
	policy := URLPolicy()

	cases := []struct {
		name   string
		source string
		want   string
	}{
		{"https url kept", "https://example.com/blog/post", "https://example.com/blog/post"},
		{"http url kept", "http://example.com/blog/post", "http://example.com/blog/post"},
		{"slug cleared", "no-code-no-compromises", ""},
		{"empty stays empty", "", ""},
		{"whitespace trimmed", "  https://example.com/p  ", "https://example.com/p"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := policy.Apply(core.Answer{Text: "x", SourceURL: tc.source})
			assert.Equal(t, tc.want, got.SourceURL)
		})
	}
}

func TestSlugPolicyResolvesKnownSlugs(t *testing.T) {
	policy := SlugPolicy(map[string]string{
		"no-code-no-compromises": "https://example.com/blog/no-code-no-compromises",
	})

	resolved := policy.Apply(core.Answer{Text: "x", SourceURL: "no-code-no-compromises"})
	assert.Equal(t, "https://example.com/blog/no-code-no-compromises", resolved.SourceURL)

	unknown := policy.Apply(core.Answer{Text: "x", SourceURL: "never-written"})
	assert.Empty(t, unknown.SourceURL)

	direct := policy.Apply(core.Answer{Text: "x", SourceURL: "https://example.com/other"})
	assert.Equal(t, "https://example.com/other", direct.SourceURL)
}
