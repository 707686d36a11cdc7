// Package classifier assigns a category, priority, and initial workflow status to an
// intake request using a fixed keyword rule table. Classification is pure and
// deterministic: the same service and message always produce the same Result.
package classifier

import (
	"fmt"
	"strings"
)

// Category is the kind of request a client submitted.
type Category string

const (
	CategorySales     Category = "sales"
	CategorySupport   Category = "support"
	CategoryBilling   Category = "billing"
	CategoryTechnical Category = "technical"
	CategoryGeneral   Category = "general"
)

// Priority orders requests for handling.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// SuggestedStatus is the workflow status a new request should start in.
type SuggestedStatus string

const (
	StatusPending    SuggestedStatus = "pending"
	StatusInProgress SuggestedStatus = "in_progress"
)

// Confidence levels. A rule table has no continuous score, so these are the only values produced.
const (
	ConfidenceUrgent  = 0.92
	ConfidenceMatched = 0.81
	ConfidenceGeneral = 0.64
)

// Result is the outcome of classifying one request.
type Result struct {
	Category        Category        `json:"category"`
	Priority        Priority        `json:"priority"`
	Confidence      float64         `json:"confidence"`
	SuggestedStatus SuggestedStatus `json:"suggestedStatus"`
	Summary         string          `json:"summary"`
}

// Classify evaluates service and message against the keyword rules.
//
// The evaluation text is the lower-cased concatenation of service, a single space,
// and message. Because of the separator it is never empty, so any input that matches
// no category keyword is support; general remains only as the fallback for an empty
// evaluation text.
func Classify(service, message string) Result {
	return classifyText(strings.ToLower(service + " " + message))
}

func classifyText(text string) Result {
	category := resolveCategory(text)
	urgent := urgentKeywords.matches(text)

	r := Result{
		Category:        category,
		Priority:        priorityFor(category, urgent),
		Confidence:      confidenceFor(category, urgent),
		SuggestedStatus: statusFor(urgent),
	}
	r.Summary = summarize(r.Category, r.Priority)
	return r
}

func resolveCategory(text string) Category {
	for _, rule := range categoryRules {
		if rule.keywords.matches(text) {
			return rule.category
		}
	}
	if len(text) > 0 {
		return CategorySupport
	}
	return CategoryGeneral
}

func priorityFor(c Category, urgent bool) Priority {
	switch {
	case urgent:
		return PriorityHigh
	case c == CategoryTechnical || c == CategoryBilling:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func confidenceFor(c Category, urgent bool) float64 {
	switch {
	case urgent:
		return ConfidenceUrgent
	case c == CategoryGeneral:
		return ConfidenceGeneral
	default:
		return ConfidenceMatched
	}
}

func statusFor(urgent bool) SuggestedStatus {
	if urgent {
		return StatusInProgress
	}
	return StatusPending
}

func summarize(c Category, p Priority) string {
	return fmt.Sprintf("Classification: %s with priority %s.", c, p)
}
