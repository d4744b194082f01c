package analysis

import "strings"

// ClassifyIntent labels one clause's legal function. Marker groups are
// tested in priority order; the first hit wins, so "shall not" lands on
// PROHIBITION before the plain "shall" check can see it.
func ClassifyIntent(text string) Intent {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "shall not", "must not", "prohibited", "no party shall"):
		return IntentProhibition
	case containsAny(lower, "shall", "must", "agrees to", "undertakes to"):
		return IntentObligation
	case containsAny(lower, "may", "entitled to", "reserves the right"):
		return IntentRight
	case containsAny(lower, "subject to", "provided that", "if ", "in the event that"):
		return IntentConditional
	}
	return IntentInformational
}

// BusinessImpact returns the fixed plain-language consequence sentence for
// an intent.
func BusinessImpact(intent Intent) string {
	switch intent {
	case IntentObligation:
		return "Specifies something a party is required to do; missing this may lead to breach."
	case IntentRight:
		return "Gives a party a choice or benefit they can exercise."
	case IntentProhibition:
		return "Restricts or stops a party from doing something; breach can trigger penalties or termination."
	case IntentConditional:
		return "Describes what happens only if certain conditions or events occur."
	}
	return "Explains background, definitions, or general information without direct action."
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
