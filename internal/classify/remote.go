package classify

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Rprog-06/Expense-Tracker/internal/model"
)

// buildPrompt constrains the completion service to reply with exactly one
// of the seven category names.
func buildPrompt(description string) string {
	names := make([]string, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		names = append(names, string(c))
	}
	return fmt.Sprintf(
		"Classify this expense description into exactly one of the following categories: %s.\n\n"+
			"Description: %q\n\n"+
			"Respond with only the category name, nothing else.",
		strings.Join(names, ", "), description)
}

// matchReply reduces a completion reply to a category: drop everything that
// is not a letter, case fold, then take the first category in canonical
// order whose name the cleaned reply contains. Completion services pad
// replies with punctuation and filler; containment tolerates that without
// trusting anything outside the closed set.
func matchReply(reply string) (model.Category, bool) {
	var b strings.Builder
	for _, r := range reply {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return "", false
	}

	for _, c := range model.Categories() {
		if strings.Contains(cleaned, strings.ToLower(string(c))) {
			return c, true
		}
	}
	return "", false
}
