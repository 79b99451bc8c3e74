package chat

import (
	"context"
	"strings"

	"github.com/beogip/boredGPT/ai"
	"github.com/beogip/boredGPT/core"
)

// Condenser rewrites a follow-up question into a standalone question
// that can be embedded without the surrounding conversation.
type Condenser struct {
	generator ai.Generator
}

// NewCondenser creates a condenser backed by the given generator.
func NewCondenser(generator ai.Generator) *Condenser {
	return &Condenser{generator: generator}
}

// Condense returns the standalone form of question. With no prior history
// there is nothing to resolve and the question passes through unchanged,
// costing no model call.
func (c *Condenser) Condense(ctx context.Context, history []core.Message, question string) (string, error) {
	if len(history) == 0 {
		return question, nil
	}

	prompt := renderCondensePrompt(history, question)
	standalone, err := c.generator.GenerateText(ctx, []core.Message{
		{Role: core.RoleUser, Content: prompt},
	})
	if err != nil {
		return "", &UpstreamError{Stage: "condense", Err: err}
	}

	standalone = strings.TrimSpace(standalone)
	if standalone == "" {
		return question, nil
	}
	return standalone, nil
}
