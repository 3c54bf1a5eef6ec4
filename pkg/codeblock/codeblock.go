// Package codeblock pulls fenced code out of free-form model output.
package codeblock

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iamvkosarev/codeninja-telegram-bot/internal/model"
)

const Fence = "```"

const codeLikeMinLength = 800

var codeKeywords = []string{"def ", "class ", "import ", "function", "{", ";"}

var fileExtensions = map[string]string{
	"python":     ".py",
	"py":         ".py",
	"javascript": ".js",
	"js":         ".js",
	"php":        ".php",
}

// Extract returns the first fenced body found in text. A segment qualifies
// when it has non-blank content and a line break; fenced bodies are checked
// before the prose around them, and if nothing qualifies the last segment is
// used. An all-letter first line is taken as the language hint.
// ok is false when text has no fence or the chosen segment is blank.
func Extract(text string) (code model.ExtractedCode, ok bool) {
	if !strings.Contains(text, Fence) {
		return model.ExtractedCode{}, false
	}
	segment := selectSegment(strings.Split(text, Fence))
	if strings.TrimSpace(segment) == "" {
		return model.ExtractedCode{}, false
	}

	first, rest, found := strings.Cut(segment, "\n")
	if !found {
		return model.ExtractedCode{Code: segment}, true
	}
	if hint := strings.TrimSpace(first); isAlpha(hint) {
		return model.ExtractedCode{Code: rest, Language: strings.ToLower(hint)}, true
	}
	return model.ExtractedCode{Code: segment}, true
}

// IsCodeLike reports whether text should be shown as a code image: it holds a
// fence, or it is long, multi-line and mentions a source code keyword.
func IsCodeLike(text string) bool {
	if strings.Contains(text, Fence) {
		return true
	}
	if utf8.RuneCountInString(text) <= codeLikeMinLength || !strings.Contains(text, "\n") {
		return false
	}
	lower := strings.ToLower(text)
	for _, keyword := range codeKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// FileExtension maps a language hint to a file suffix, ".txt" when unknown.
func FileExtension(language string) string {
	if ext, ok := fileExtensions[strings.ToLower(language)]; ok {
		return ext
	}
	return ".txt"
}

func selectSegment(parts []string) string {
	// Odd indexes sit between an opening and a closing fence.
	for i := 1; i < len(parts); i += 2 {
		if qualifies(parts[i]) {
			return parts[i]
		}
	}
	for _, part := range parts {
		if qualifies(part) {
			return part
		}
	}
	return parts[len(parts)-1]
}

func qualifies(segment string) bool {
	return strings.TrimSpace(segment) != "" && strings.Contains(segment, "\n")
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
