package llm

import "fmt"

const (
	translateSystem = "You are a legal translator. Output only the translated English text, no commentary."
	enhanceSystem   = "You are a legal advisor for Indian SMEs. Explain contract clauses in one short, simple business sentence. No legal jargon. No statutes or case names."

	translateMaxTokens = 4000
	enhanceMaxTokens   = 150

	// Contract text sent for translation is capped to keep prompts
	// within model context limits.
	translateInputCap = 30000
	// Clause excerpts are capped before prompt assembly.
	excerptCap = 800
)

// buildTranslatePrompt asks for a structure-preserving English rendition.
func buildTranslatePrompt(text string) string {
	return "Translate the following contract text to English. Preserve structure (clause numbers, headings). " +
		"Output only the English translation.\n\n" + capRunes(text, translateInputCap)
}

// buildEnhancePrompt asks for a one-sentence business explanation of a
// clause for the given audience.
func buildEnhancePrompt(heading, excerpt, intent, role string) string {
	return fmt.Sprintf(
		"Contract clause heading: %s\nClause text (excerpt): %s\nDetected intent: %s. Audience: %s. Give one sentence plain-language explanation only.",
		heading, capRunes(excerpt, excerptCap), intent, role)
}

func capRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
