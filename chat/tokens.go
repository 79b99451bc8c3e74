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

package chat

import (
	"github.com/beogip/boredGPT/core"
	"github.com/pkoukk/tiktoken-go"
)

// DefaultTokenBudget caps the total prompt size. The budget is inclusive:
// a prompt that reaches it exactly is already over.
const DefaultTokenBudget = 4000

// TokenCounter estimates how many model tokens a text costs.
type TokenCounter interface {
	Count(text string) int
}

// TiktokenCounter counts tokens with the cl100k_base encoding used by the
// chat and embedding models.
type TiktokenCounter struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktokenCounter loads the cl100k_base encoding.
func NewTiktokenCounter() (*TiktokenCounter, error) {
	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, err
	}
	return &TiktokenCounter{encoding: encoding}, nil
}

func (c *TiktokenCounter) Count(text string) int {
	return len(c.encoding.Encode(text, nil, nil))
}

// HeuristicCounter approximates one token per four characters. It backs
// the budget guard when the encoding data cannot be loaded.
type HeuristicCounter struct{}

func (HeuristicCounter) Count(text string) int {
	return (len(text) + 3) / 4
}

// BudgetGuard accumulates token counts and decides when a prompt has
// grown past its budget.
type BudgetGuard struct {
	counter TokenCounter
	budget  int
	used    int
}

// NewBudgetGuard creates a guard over the given counter. A non-positive
// budget falls back to DefaultTokenBudget.
func NewBudgetGuard(counter TokenCounter, budget int) *BudgetGuard {
	if budget <= 0 {
		budget = DefaultTokenBudget
	}
	return &BudgetGuard{counter: counter, budget: budget}
}

// Add counts the text and accumulates it.
func (g *BudgetGuard) Add(text string) {
	g.used += g.counter.Count(text)
}

// AddMessages accumulates the content of every message.
func (g *BudgetGuard) AddMessages(messages []core.Message) {
	for _, msg := range messages {
		g.Add(msg.Content)
	}
}

// Used reports the tokens accumulated so far.
func (g *BudgetGuard) Used() int {
	return g.used
}

// Exceeded reports whether the accumulated count has reached the budget.
func (g *BudgetGuard) Exceeded() bool {
	return g.used >= g.budget
}
