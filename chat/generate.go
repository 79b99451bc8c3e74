package chat

import (
	"context"

	"github.com/beogip/boredGPT/ai"
	"github.com/beogip/boredGPT/core"
)

// AnswerGenerator produces the model's raw answer text from retrieved
// context and a standalone question.
type AnswerGenerator struct {
	generator ai.Generator
}

// NewAnswerGenerator creates a generator for the answering call.
func NewAnswerGenerator(generator ai.Generator) *AnswerGenerator {
	return &AnswerGenerator{generator: generator}
}

// Generate renders the answering prompt and returns the model output
// verbatim. The persona instruction and grounding context travel as the
// system message, the conversation history as chat turns, and the
// standalone question last. Parsing the output is the caller's concern.
func (g *AnswerGenerator) Generate(ctx context.Context, chunks []core.ScoredChunk, history []core.Message, question string) (string, error) {
	messages := make([]core.Message, 0, len(history)+2)
	messages = append(messages, core.Message{
		Role:    core.RoleSystem,
		Content: renderQAPrompt(chunks, question),
	})
	messages = append(messages, history...)
	messages = append(messages, core.Message{Role: core.RoleUser, Content: question})

	raw, err := g.generator.GenerateText(ctx, messages)
	if err != nil {
		return "", &UpstreamError{Stage: "generate", Err: err}
	}
	return raw, nil
}
