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


package core

import "fmt"

// ValidateMessages validates an incoming request message list according to
// the chat boundary rules.
//
// Validation rules:
//   - The list must not be empty
//   - Every message must carry a recognized role and non-empty content
//   - The final message must have role user (it is the question being asked)
func ValidateMessages(messages []Message) error {
	if len(messages) == 0 {
		return ErrNoMessages
	}

	for i, msg := range messages {
		if !msg.Role.Valid() {
			return fmt.Errorf("%w: message %d has role %q", ErrInvalidRole, i, msg.Role)
		}
		if msg.Content == "" {
			return fmt.Errorf("%w: message %d", ErrEmptyContent, i)
		}
	}

	if messages[len(messages)-1].Role != RoleUser {
		return ErrLastNotUser
	}

	return nil
}

// LastUserMessage returns the content of the final message in the request.
// Callers must validate the message list first; on an empty list it returns
// the empty string.
func LastUserMessage(messages []Message) string {
	if len(messages) == 0 {
		return ""
	}
	return messages[len(messages)-1].Content
}
