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
	"encoding/json"
	"regexp"
	"strings"

	"github.com/beogip/boredGPT/core"
)

var (
	answerObjectPattern = regexp.MustCompile(`^{\s*"answer"`)
	leadingProsePattern = regexp.MustCompile(`^[^{]*`)
)

// ParseAnswer turns the model's raw output into an Answer. Models do not
// always honor the JSON instruction, so parsing degrades gracefully:
// well-formed JSON is decoded directly, JSON preceded by prose has the
// prose stripped, and anything else becomes the answer text itself with
// no article attached. ParseAnswer never fails.
func ParseAnswer(raw string) core.Answer {
	text := strings.TrimSpace(raw)

	candidate := text
	if !answerObjectPattern.MatchString(candidate) {
		candidate = leadingProsePattern.ReplaceAllString(candidate, "")
	}

	var answer core.Answer
	if err := json.Unmarshal([]byte(candidate), &answer); err != nil || answer.Text == "" {
		return core.Answer{Text: text, SourceURL: ""}
	}
	return answer
}

// SourcePolicy validates the article reference a model attaches to an
// answer. An invalid reference is cleared rather than failing the whole
// response.
type SourcePolicy struct {
	slugs map[string]string
}

// URLPolicy accepts only absolute http(s) URLs.
func URLPolicy() *SourcePolicy {
	return &SourcePolicy{}
}

// SlugPolicy additionally accepts known article slugs, resolving each to
// its full URL.
func SlugPolicy(slugToURL map[string]string) *SourcePolicy {
	slugs := make(map[string]string, len(slugToURL))
	for slug, url := range slugToURL {
		slugs[slug] = url
	}
	return &SourcePolicy{slugs: slugs}
}

// Apply validates the answer's article reference in place. References
// that are neither http(s) URLs nor known slugs are cleared.
func (p *SourcePolicy) Apply(answer core.Answer) core.Answer {
	source := strings.TrimSpace(answer.SourceURL)
	if strings.HasPrefix(source, "http") {
		answer.SourceURL = source
		return answer
	}
	if url, ok := p.slugs[source]; ok {
		answer.SourceURL = url
		return answer
	}
	answer.SourceURL = ""
	return answer
}
