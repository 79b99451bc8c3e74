// Copyright 2026 beogip
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package chat implements the answering pipeline: moderation, token
// budgeting, question condensing, retrieval, answer generation and
// response parsing.
package chat

import (
	"context"
	"log/slog"

	"github.com/beogip/boredGPT/ai"
	"github.com/beogip/boredGPT/convo"
	"github.com/beogip/boredGPT/core"
	"github.com/beogip/boredGPT/storage"
)

// Pipeline answers a conversation against the indexed article corpus.
type Pipeline struct {
	moderator ai.Moderator
	condenser *Condenser
	retriever *Retriever
	answerer  *AnswerGenerator
	counter   TokenCounter
	policy    *SourcePolicy
	budget    int
	logger    *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithTokenBudget overrides the prompt token budget.
func WithTokenBudget(budget int) PipelineOption {
	return func(p *Pipeline) {
		if budget > 0 {
			p.budget = budget
		}
	}
}

// WithSourcePolicy overrides how article references are validated.
func WithSourcePolicy(policy *SourcePolicy) PipelineOption {
	return func(p *Pipeline) {
		p.policy = policy
	}
}

// WithTopK overrides how many chunks the retrieval stage returns.
func WithTopK(topK int) PipelineOption {
	return func(p *Pipeline) {
		if topK > 0 {
			p.retriever.topK = topK
		}
	}
}

// WithLogger replaces the pipeline logger.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger.With("component", "chat")
	}
}

// NewPipeline wires the answering pipeline over an AI provider and a
// vector index namespace.
func NewPipeline(provider ai.Provider, index storage.VectorIndex, namespace string, opts ...PipelineOption) (*Pipeline, error) {
	if namespace == "" {
		return nil, ErrEmptyNamespace
	}

	var counter TokenCounter
	if tk, err := NewTiktokenCounter(); err != nil {
		slog.Warn("token encoding unavailable, using heuristic counter", "error", err)
		counter = HeuristicCounter{}
	} else {
		counter = tk
	}

	p := &Pipeline{
		moderator: provider.Moderator(),
		condenser: NewCondenser(provider.Generator()),
		retriever: NewRetriever(provider.Embedder(), index, namespace, DefaultTopK),
		answerer:  NewAnswerGenerator(provider.Generator()),
		counter:   counter,
		policy:    URLPolicy(),
		budget:    DefaultTokenBudget,
		logger:    slog.Default().With("component", "chat"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// UseSourcePolicy swaps the article validation policy. Call it before
// serving requests, typically right after an ingestion run that changed
// the set of known articles.
func (p *Pipeline) UseSourcePolicy(policy *SourcePolicy) {
	p.policy = policy
}

// Respond runs the full pipeline for a conversation and returns the
// parsed answer. The last message must come from the user; it is the
// question being answered, with everything before it serving as history.
func (p *Pipeline) Respond(ctx context.Context, messages []core.Message) (core.Answer, error) {
	if err := core.ValidateMessages(messages); err != nil {
		return core.Answer{}, err
	}

	question := messages[len(messages)-1].Content
	history := convo.Build(messages[:len(messages)-1])

	// First budget check: request plus static prompt scaffolding, before
	// any upstream call is paid for.
	guard := NewBudgetGuard(p.counter, p.budget)
	guard.AddMessages(messages)
	guard.Add(condenseTemplate)
	guard.Add(qaTemplate)
	if guard.Exceeded() {
		p.logger.Warn("prompt over budget before retrieval", "tokens", guard.Used(), "budget", p.budget)
		return core.Answer{}, ErrTokenBudgetExceeded
	}

	flagged, err := p.moderator.Check(ctx, question)
	if err != nil {
		return core.Answer{}, &UpstreamError{Stage: "moderation", Err: err}
	}
	if flagged {
		p.logger.Warn("question flagged by moderation")
		return core.Answer{}, ErrModerationRejected
	}

	standalone, err := p.condenser.Condense(ctx, history, question)
	if err != nil {
		return core.Answer{}, err
	}
	p.logger.Debug("condensed question", "standalone", standalone)

	chunks, err := p.retriever.Retrieve(ctx, standalone)
	if err != nil {
		return core.Answer{}, err
	}
	p.logger.Debug("retrieved context", "chunks", len(chunks))

	// Second check: the retrieved context now dominates the prompt.
	for _, sc := range chunks {
		guard.Add(sc.Chunk.Text)
	}
	if guard.Exceeded() {
		p.logger.Warn("prompt over budget after retrieval", "tokens", guard.Used(), "budget", p.budget)
		return core.Answer{}, ErrTokenBudgetExceeded
	}

	raw, err := p.answerer.Generate(ctx, chunks, history, standalone)
	if err != nil {
		return core.Answer{}, err
	}

	answer := p.policy.Apply(ParseAnswer(raw))
	p.logger.Info("answered question", "has_source", answer.SourceURL != "")
	return answer, nil
}
