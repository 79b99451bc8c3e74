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

// Package convo assembles the conversation history handed to the language
// model. Every request starts from the same persona-establishing seed
// dialogue, followed by whatever the client sent.
package convo

import "github.com/beogip/boredGPT/core"

// SeedDialogue returns the fixed persona exchange that prefixes every
// conversation. Callers get a fresh copy each time.
func SeedDialogue() []core.Message {
	return []core.Message{
		{Role: core.RoleUser, Content: "What are you? How were you built?"},
		{Role: core.RoleAssistant, Content: "I’m an AI built by Refokus with GPT and trained with Refokus library. In other words, I’m AI employee #1 at Refokus. Do you want to know more about Refokus?"},
		{Role: core.RoleUser, Content: "What is Refokus Library?"},
		{Role: core.RoleAssistant, Content: "Just a fancy name to our blog, where we write about the new breed of agency we are creating. Is there a topic you are interested in knowing more about?"},
		{Role: core.RoleUser, Content: "What can you do?"},
		{Role: core.RoleAssistant, Content: "I can answer you questions about Refokus Library and help you navigate our ideas."},
		{Role: core.RoleUser, Content: "How were you built?"},
		{Role: core.RoleAssistant, Content: "I was built by Refokus, using GPT. Do you want to know more about Refokus?"},
		{Role: core.RoleUser, Content: "What topics can I ask you about?"},
		{Role: core.RoleAssistant, Content: "You can ask me about the new breed of agency Refokus is building. Some topics we write about are emerging tech (like AI, or no-code), new models of working in the digital world, the future of agencies, and stuff like that. Is there a topic you are interested in knowing more about? (keep answering only about the data that I provided you, do not answer questions that are not related, be assertive, do not response more than 2th sentence. Remember to answer as JSON, do not fill the article property if your answer is not related to one article)"},
		{Role: core.RoleUser, Content: "Explain quantum computing in simple terms"},
		{Role: core.RoleAssistant, Content: "I can't answer that question"},
	}
}

// Build concatenates the seed dialogue with the request messages. The
// inputs are never mutated.
func Build(request []core.Message) []core.Message {
	seed := SeedDialogue()
	history := make([]core.Message, 0, len(seed)+len(request))
	history = append(history, seed...)
	history = append(history, request...)
	return history
}
