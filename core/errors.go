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

import "errors"

// Domain validation errors
var (
	// ErrNoMessages indicates an empty request message list.
	ErrNoMessages = errors.New("no messages provided")

	// ErrLastNotUser indicates the final request message is not a user turn.
	ErrLastNotUser = errors.New("last message must have role user")

	// ErrInvalidRole indicates a message carries an unrecognized role.
	ErrInvalidRole = errors.New("invalid message role")

	// ErrEmptyContent indicates a message with empty content.
	ErrEmptyContent = errors.New("message content cannot be empty")
)
