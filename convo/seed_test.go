package convo

import (
	"testing"

	"github.com/beogip/boredGPT/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDialogueShape(t *testing.T) {
	seed := SeedDialogue()
	require.NotEmpty(t, seed)
	assert.Equal(t, 0, len(seed)%2, "seed dialogue must alternate in pairs")

	for i, msg := range seed {
		want := core.RoleUser
		if i%2 == 1 {
			want = core.RoleAssistant
		}
		if msg.Role != want {
			t.Fatalf("message %d: role %q, want %q", i, msg.Role, want)
		}
		if msg.Content == "" {
			t.Fatalf("message %d has empty content", i)
		}
	}
}

func TestSeedDialogueReturnsCopy(t *testing.T) {
	first := SeedDialogue()
	first[0].Content = "mutated"
	assert.NotEqual(t, "mutated", SeedDialogue()[0].Content)
}

func TestBuildAppendsRequestAfterSeed(t *testing.T) {
	request := []core.Message{
		{Role: core.RoleUser, Content: "Tell me about no-code"},
	}
	history := Build(request)

	seedLen := len(SeedDialogue())
	require.Len(t, history, seedLen+1)
	assert.Equal(t, request[0], history[seedLen])
}

func TestBuildDoesNotMutateRequest(t *testing.T) {
	request := []core.Message{
		{Role: core.RoleUser, Content: "original"},
	}
	history := Build(request)
	history[len(history)-1].Content = "changed"
	assert.Equal(t, "original", request[0].Content)
}
