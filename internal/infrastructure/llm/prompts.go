package llm

import (
	"fmt"
	"strings"

	"techpulse/internal/domain"
)

const classifierSystemPrompt = `You are a news analyst for technology leaders.
Reply with a single JSON object and nothing else, using exactly these keys:
  "summary": a concise 2-sentence summary of the story for a busy CTO,
  "sentimentScore": an integer from 1 (very negative) through 5 (neutral) to 10 (very positive),
  "category": one of %s.`

func classifierSystem() string {
	names := make([]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		names = append(names, fmt.Sprintf("%q", string(c)))
	}
	return fmt.Sprintf(classifierSystemPrompt, strings.Join(names, ", "))
}

func classifierUser(req domain.ClassifyRequest) string {
	var b strings.Builder
	b.WriteString("Analyze this tech news article:\n")
	fmt.Fprintf(&b, "Title: %s\n", req.Title)
	fmt.Fprintf(&b, "URL: %s\n", req.URL)
	if excerpt := strings.TrimSpace(req.Excerpt); excerpt != "" {
		fmt.Fprintf(&b, "Page description: %s\n", excerpt)
	}
	b.WriteString("\nProvide a concise 2-sentence summary, a sentiment score (1-10), and categorize it.")
	return b.String()
}

// stripCodeFence removes a markdown fence some models wrap JSON answers in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
