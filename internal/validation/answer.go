// Package validation classifies free-text dialogue answers against a
// declared semantic context. All functions are pure and hold no dialogue
// state, so they can be tested in isolation.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Context declares what kind of answer a prompt expects.
type Context string

// Answer contexts
const (
	ContextGeneral Context = "general"
	ContextEmail   Context = "email"
	ContextPhone   Context = "phone"
	ContextName    Context = "name"
)

// Result is the outcome of validating one answer. When Accepted is false,
// CorrectivePrompt carries the assistant message to re-prompt with.
type Result struct {
	Accepted         bool
	CorrectivePrompt string
}

// Corrective prompts, one per rejection class.
const (
	promptTooShort     = "That looks incomplete — could you say a little more?"
	promptLowEffort    = "I may be misunderstanding you. Could you rephrase that?"
	promptInvalidEmail = "That doesn't look like an email address. Could you double-check it?"
	promptInvalidPhone = "That doesn't look like a phone number. Digits, spaces, dashes, parentheses, and a leading + are fine."
	promptShortName    = "Could you give me your full name?"
)

var emailValidator = validator.New()

// Validate classifies text against the declared context. Rules apply in
// order and the first failure wins; anything that passes every rule is
// accepted.
func Validate(text string, context Context) Result {
	trimmed := strings.TrimSpace(text)

	if len([]rune(trimmed)) < 2 {
		return reject(promptTooShort)
	}

	if isLowEffort(trimmed, context == ContextPhone) {
		return reject(promptLowEffort)
	}

	switch context {
	case ContextEmail:
		if !isEmailShaped(trimmed) {
			return reject(promptInvalidEmail)
		}
	case ContextPhone:
		if !isPhoneShaped(trimmed) {
			return reject(promptInvalidPhone)
		}
	case ContextName:
		if !isNameShaped(trimmed) {
			return reject(promptShortName)
		}
	}

	return Result{Accepted: true}
}

func reject(prompt string) Result {
	return Result{Accepted: false, CorrectivePrompt: prompt}
}

// isEmailShaped requires a local part, an @, and a dot somewhere in the
// domain, cross-checked with the validator library's email rule.
func isEmailShaped(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	dot := strings.Index(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}
	return emailValidator.Var(s, "email") == nil
}

// isNameShaped rejects answers with digits; everything else the length and
// low-effort rules already cover.
func isNameShaped(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return false
		}
	}
	return true
}

// isPhoneShaped accepts 7-20 characters drawn from digits, spaces, hyphens,
// parentheses, and plus signs, with at least one digit present.
func isPhoneShaped(s string) bool {
	if len(s) < 7 || len(s) > 20 {
		return false
	}
	hasDigit := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '+':
		default:
			return false
		}
	}
	return hasDigit
}
