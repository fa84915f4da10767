package generator

import (
	"context"
	"strings"
	"testing"
)

func TestTemplateGeneratorDeterministic(t *testing.T) {
	g := NewTemplateGenerator()
	req := Request{
		Prompt:   "our new analytics dashboard",
		Type:     "blog-post",
		Tone:     "professional",
		Length:   "medium",
		Keywords: []string{"analytics", "reporting"},
	}

	first, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("generate again: %v", err)
	}
	if first != second {
		t.Fatalf("same request produced different output:\n%q\n%q", first, second)
	}
	if !strings.Contains(first, "our new analytics dashboard") {
		t.Fatalf("output does not mention the prompt: %q", first)
	}
}

func TestTemplateGeneratorEmptyPrompt(t *testing.T) {
	g := NewTemplateGenerator()
	if _, err := g.Generate(context.Background(), Request{Prompt: "   "}); err == nil {
		t.Fatalf("expected error for empty prompt")
	}
}

func TestTemplateGeneratorLengths(t *testing.T) {
	g := NewTemplateGenerator()
	base := Request{Prompt: "spring sale", Type: "ad-copy", Tone: "urgent"}

	short := base
	short.Length = "short"
	long := base
	long.Length = "long"
	long.Keywords = []string{"discount", "limited"}

	shortOut, err := g.Generate(context.Background(), short)
	if err != nil {
		t.Fatalf("generate short: %v", err)
	}
	longOut, err := g.Generate(context.Background(), long)
	if err != nil {
		t.Fatalf("generate long: %v", err)
	}

	if len(longOut) <= len(shortOut) {
		t.Fatalf("long output (%d) not longer than short output (%d)", len(longOut), len(shortOut))
	}
	if !strings.Contains(longOut, "discount") {
		t.Fatalf("long output missing keyword: %q", longOut)
	}
	if strings.Contains(shortOut, "\n\n") {
		t.Fatalf("short output has more than one paragraph: %q", shortOut)
	}
}

func TestTemplateGeneratorTones(t *testing.T) {
	g := NewTemplateGenerator()
	outputs := map[string]string{}
	for _, tone := range []string{"professional", "casual", "playful", "urgent"} {
		out, err := g.Generate(context.Background(), Request{Prompt: "x", Tone: tone})
		if err != nil {
			t.Fatalf("generate %s: %v", tone, err)
		}
		outputs[tone] = out
	}
	if outputs["professional"] == outputs["casual"] {
		t.Fatalf("tones did not change the output")
	}
}

func TestTemplateGeneratorUnknownTypeFallsBack(t *testing.T) {
	g := NewTemplateGenerator()
	out, err := g.Generate(context.Background(), Request{Prompt: "x", Type: "screenplay"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out == "" {
		t.Fatalf("expected fallback output for unknown type")
	}
}
