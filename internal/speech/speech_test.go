package speech

import (
	"strings"
	"testing"
)

func TestTextFallbackListen(t *testing.T) {
	in := strings.NewReader("  Book A Dentist Visit  \n")
	var out strings.Builder
	io := NewTextFallback(in, &out)

	io.Say("Hello")
	got, err := io.Listen("Say something.")
	if err != nil {
		t.Fatalf("Listen error = %v", err)
	}
	if got != "book a dentist visit" {
		t.Fatalf("Listen = %q", got)
	}
	if !strings.Contains(out.String(), "Agent: Hello") {
		t.Fatalf("missing agent line:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Prompt: Say something.") {
		t.Fatalf("missing prompt line:\n%s", out.String())
	}
}

func TestTextFallbackEOF(t *testing.T) {
	io := NewTextFallback(strings.NewReader(""), &strings.Builder{})
	if _, err := io.Listen(""); err == nil {
		t.Fatal("expected EOF error")
	}
}

func TestDetectForceText(t *testing.T) {
	io := Detect(true, strings.NewReader(""), &strings.Builder{})
	if _, ok := io.(*TextFallback); !ok {
		t.Fatalf("expected TextFallback, got %T", io)
	}
}
