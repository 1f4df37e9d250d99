package speech

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// VoiceIO is the conversational surface. The backend is chosen once at
// startup; call sites never probe for capabilities themselves.
type VoiceIO interface {
	Say(text string)
	Listen(prompt string) (string, error)
}

// Detect picks a backend. forceText skips the probe entirely.
func Detect(forceText bool, in io.Reader, out io.Writer) VoiceIO {
	if !forceText {
		if path, err := exec.LookPath("espeak"); err == nil {
			return &NativeVoice{speakPath: path, fallback: NewTextFallback(in, out)}
		}
	}
	return NewTextFallback(in, out)
}

// TextFallback reads typed responses and prints the agent's lines.
type TextFallback struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTextFallback(in io.Reader, out io.Writer) *TextFallback {
	return &TextFallback{in: bufio.NewReader(in), out: out}
}

func (t *TextFallback) Say(text string) {
	fmt.Fprintf(t.out, "Agent: %s\n", text)
}

func (t *TextFallback) Listen(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprintf(t.out, "Prompt: %s\n", prompt)
	}
	fmt.Fprint(t.out, "> ")
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

// NativeVoice speaks through the espeak binary and falls back to text for
// input; there is no speech recognition backend.
type NativeVoice struct {
	speakPath string
	fallback  *TextFallback
}

func (v *NativeVoice) Say(text string) {
	v.fallback.Say(text)
	// Best effort; a broken audio stack must not take the assistant down.
	_ = exec.Command(v.speakPath, text).Run()
}

func (v *NativeVoice) Listen(prompt string) (string, error) {
	return v.fallback.Listen(prompt)
}
