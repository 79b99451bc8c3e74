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
	"fmt"
	"strings"

	"github.com/beogip/boredGPT/core"
)

// condenseTemplate rewrites a follow-up question into a standalone one
// using the conversation so far.
const condenseTemplate = `Given the following conversation and a follow up question, rephrase the follow up question to be a standalone question.
You can assume the question about the Refokus' article database.

Chat History:
%s
Follow Up Input: %s
Standalone question:`

// qaTemplate is the persona prompt for the answering call. The context
// block carries the retrieved article excerpts.
const qaTemplate = `You are a librarian AI assistant built by Refokus that helps people search Refokus article database.
You are given the following extracted parts of a long list of articles and a question. Provide a conversational answer.
The provided context represents Refokus' blog articles.
Only use the data provided to answer new questions. Do not answer anything that is not related to it.
If you don't know the answer, just say "Hmm, I'm not sure."
Be assertive, do not response more than 2 sentence.
If the question is not about the articles inside Refokus database, politely inform them that you are tuned to only answer questions about Refokus' database.
Your answer must be in a valid JSON. The property "answer" must have your answer and the property "article" must have the url of the article that you are talking about

Use the following pieces of context to answer the question at the end.

=========
%s
=========

Question: %s
Helpful JSON Answer:
`

// renderCondensePrompt fills the condense template with a serialized chat
// history and the follow-up question.
func renderCondensePrompt(history []core.Message, question string) string {
	return fmt.Sprintf(condenseTemplate, serializeHistory(history), question)
}

// renderQAPrompt fills the answering template with retrieved context.
func renderQAPrompt(chunks []core.ScoredChunk, question string) string {
	return fmt.Sprintf(qaTemplate, serializeContext(chunks), question)
}

// serializeHistory renders messages one per line, prefixed by role.
func serializeHistory(history []core.Message) string {
	var sb strings.Builder
	for _, msg := range history {
		switch msg.Role {
		case core.RoleUser:
			sb.WriteString("Human: ")
		case core.RoleAssistant:
			sb.WriteString("Assistant: ")
		default:
			sb.WriteString("System: ")
		}
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// serializeContext joins chunk texts with blank lines, best match first.
func serializeContext(chunks []core.ScoredChunk) string {
	parts := make([]string, 0, len(chunks))
	for _, sc := range chunks {
		parts = append(parts, sc.Chunk.Text)
	}
	return strings.Join(parts, "\n\n")
}
