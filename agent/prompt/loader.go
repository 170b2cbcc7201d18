package prompt

import (
	_ "embed"
	"strings"
)

//go:embed template/system.txt
var systemRaw string

// SystemPrompt returns the trimmed assistant system prompt. The embed is
// compile-time, so this is safe to call concurrently.
func SystemPrompt() string {
	return strings.TrimSpace(systemRaw)
}
