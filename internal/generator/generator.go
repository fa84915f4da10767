// Package generator produces marketing copy from a prompt. The default
// backend is a deterministic template engine; an OpenAI-backed
// implementation is available behind the same interface.
package generator

import (
	"context"
	"fmt"
	"strings"
)

// Request describes one generation call.
type Request struct {
	Prompt   string
	Type     string
	Tone     string
	Length   string
	Keywords []string
}

// Generator turns a request into body text.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// TemplateGenerator produces deterministic copy keyed off content type and
// tone. Same request, same output.
type TemplateGenerator struct{}

func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

const (
	lengthShort  = "short"
	lengthMedium = "medium"
	lengthLong   = "long"
)

func (g *TemplateGenerator) Generate(ctx context.Context, req Request) (string, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "", fmt.Errorf("prompt is required")
	}

	opening := openingFor(req.Type, req.Tone, prompt)
	body := bodyFor(req.Type, prompt)
	closing := closingFor(req.Tone)

	paragraphs := []string{opening}
	switch strings.ToLower(strings.TrimSpace(req.Length)) {
	case lengthShort:
		// opening only
	case lengthLong:
		paragraphs = append(paragraphs, body, keywordParagraph(req.Keywords), closing)
	case lengthMedium, "":
		paragraphs = append(paragraphs, body, closing)
	default:
		paragraphs = append(paragraphs, body, closing)
	}

	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n"), nil
}

func openingFor(contentType, tone, prompt string) string {
	lead := toneLead(tone)
	switch normalizeType(contentType) {
	case "blog-post":
		return fmt.Sprintf("%s Here's what you need to know about %s.", lead, prompt)
	case "ad-copy":
		return fmt.Sprintf("%s %s — and why you can't afford to miss it.", lead, prompt)
	case "social":
		return fmt.Sprintf("%s %s. Let's talk about it.", lead, prompt)
	case "email":
		return fmt.Sprintf("%s We wanted to reach out about %s.", lead, prompt)
	case "product-description":
		return fmt.Sprintf("%s Meet %s.", lead, prompt)
	default:
		return fmt.Sprintf("%s A few thoughts on %s.", lead, prompt)
	}
}

func bodyFor(contentType, prompt string) string {
	switch normalizeType(contentType) {
	case "blog-post":
		return fmt.Sprintf("In this post we break down %s step by step, covering the essentials your audience cares about and the details that set you apart.", prompt)
	case "ad-copy":
		return fmt.Sprintf("Thousands of customers already rely on %s. Clear value, no fine print, results you can measure.", prompt)
	case "social":
		return fmt.Sprintf("Quick take: %s is changing how teams work. Tell us what you think in the comments.", prompt)
	case "email":
		return fmt.Sprintf("We've put together everything you need to get started with %s, including a walkthrough tailored to your team.", prompt)
	case "product-description":
		return fmt.Sprintf("%s combines thoughtful design with everyday practicality, built for people who expect more from the tools they use.", prompt)
	default:
		return fmt.Sprintf("%s deserves a closer look, and this piece gives you the highlights that matter.", prompt)
	}
}

func closingFor(tone string) string {
	switch strings.ToLower(strings.TrimSpace(tone)) {
	case "professional":
		return "We look forward to working with you."
	case "casual":
		return "That's the scoop — catch you next time."
	case "playful":
		return "Go on, you know you want to."
	case "urgent":
		return "Act now. This won't wait."
	default:
		return "Thanks for reading."
	}
}

func toneLead(tone string) string {
	switch strings.ToLower(strings.TrimSpace(tone)) {
	case "professional":
		return "Consider this:"
	case "casual":
		return "So, real talk:"
	case "playful":
		return "Ready for something fun?"
	case "urgent":
		return "Stop scrolling."
	default:
		return "Here's the thing:"
	}
}

func keywordParagraph(keywords []string) string {
	trimmed := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			trimmed = append(trimmed, kw)
		}
	}
	if len(trimmed) == 0 {
		return ""
	}
	return fmt.Sprintf("Key themes: %s.", strings.Join(trimmed, ", "))
}

func normalizeType(contentType string) string {
	return strings.ToLower(strings.TrimSpace(contentType))
}
