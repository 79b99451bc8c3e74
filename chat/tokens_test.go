package chat

import (
	"strings"
	"testing"

	"github.com/beogip/boredGPT/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedCounter charges a fixed cost per text, making boundary tests exact.
type fixedCounter struct {
	perText int
}

func (c fixedCounter) Count(string) int {
	return c.perText
}

func TestBudgetGuardInclusiveBoundary(t *testing.T) {
	guard := NewBudgetGuard(fixedCounter{perText: 3999}, 4000)
	guard.Add("almost there")
	assert.False(t, guard.Exceeded(), "3999 of 4000 must pass")

	guard.Add("")
	// fixedCounter charges even for empty text
	assert.True(t, guard.Exceeded(), "reaching the budget exactly must fail")
}

func TestBudgetGuardAccumulates(t *testing.T) {
	guard := NewBudgetGuard(fixedCounter{perText: 10}, 100)
	guard.AddMessages([]core.Message{
		{Role: core.RoleUser, Content: "a"},
		{Role: core.RoleAssistant, Content: "b"},
		{Role: core.RoleUser, Content: "c"},
	})
	assert.Equal(t, 30, guard.Used())
	assert.False(t, guard.Exceeded())
}

func TestBudgetGuardDefaultBudget(t *testing.T) {
	guard := NewBudgetGuard(fixedCounter{perText: DefaultTokenBudget - 1}, 0)
	guard.Add("x")
	assert.False(t, guard.Exceeded())
	guard.Add("")
	assert.True(t, guard.Exceeded())
}

func TestTiktokenCounter(t *testing.T) {
	counter, err := NewTiktokenCounter()
	if err != nil {
		t.Skipf("encoding unavailable: %v", err)
	}

	require.Equal(t, 0, counter.Count(""))
	short := counter.Count("hello")
	long := counter.Count(strings.Repeat("hello world, ", 50))
	assert.Greater(t, short, 0)
	assert.Greater(t, long, short)
}

func TestHeuristicCounter(t *testing.T) {
	counter := HeuristicCounter{}
	assert.Equal(t, 0, counter.Count(""))
	assert.Equal(t, 1, counter.Count("abc"))
	assert.Equal(t, 1, counter.Count("abcd"))
	assert.Equal(t, 2, counter.Count("abcde"))
}
