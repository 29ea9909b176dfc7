package reward

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/use-agent/groundtruth/models"
)

// scoreInstruction describes the -1..1 scale to the backend.
const scoreInstruction = "Think about whether the assistant's response conflicts with information in the document, " +
	"as it relates to the user query. Provide only a score from -1 to 1, where -1 indicates that the " +
	"assistant's response is definitely contradictory, 0 indicates that the assistant's response is " +
	"irrelevant, and 1 indicates that the assistant's response is definitely in accordance with the document."

// BuildPrompt renders the scoring prompt for one document.
func BuildPrompt(prompt, completion, document string) string {
	var sb strings.Builder
	sb.Grow(len(prompt) + len(completion) + len(document) + len(scoreInstruction) + 64)
	sb.WriteString("USER: ")
	sb.WriteString(prompt)
	sb.WriteString("\nASSISTANT: ")
	sb.WriteString(completion)
	sb.WriteString("\nDOCUMENT: ")
	sb.WriteString(document)
	sb.WriteString("\nSCORE REQUEST: ")
	sb.WriteString(scoreInstruction)
	sb.WriteString("\nSCORE:")
	return sb.String()
}

// decimalScore is plain decimal notation with an optional exponent. Hex
// floats, Inf, NaN and digit separators are rejected.
var decimalScore = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)

// ParseScore reads the decimal number after the last colon of reply, or the
// whole reply when it has none. The value is clamped to [-1, 1].
func ParseScore(reply string) (float64, error) {
	tail := reply
	if i := strings.LastIndexByte(reply, ':'); i >= 0 {
		tail = reply[i+1:]
	}
	tail = strings.TrimSpace(tail)
	if !decimalScore.MatchString(tail) {
		return 0, models.NewError(models.KindScoreParseFailure, fmt.Sprintf("no numeric score in reply tail %q", tail), nil)
	}

	v, err := strconv.ParseFloat(tail, 64)
	if err != nil || math.IsNaN(v) {
		return 0, models.NewError(models.KindScoreParseFailure, "no numeric score in reply", err)
	}
	switch {
	case v > 1:
		v = 1
	case v < -1:
		v = -1
	}
	return v, nil
}

// truncateRunes cuts s to at most n runes. n <= 0 disables truncation.
func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// estimateTokens is a rough token count (runes / 3) for logging.
func estimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	if est := n / 3; est > 0 {
		return est
	}
	return 1
}
