package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// startInlineSpinner starts a simple inline spinner animation on a single line.
// It displays rotating animation frames followed by the provided text, updating
// the same line in the terminal while the cursor is hidden. The spinner runs in
// a separate goroutine; the returned function stops it, clears the line and
// restores the cursor.
func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	cursor.Hide()
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
			select {
			case <-stop:
				// Clear the spinner line completely, then return
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s", line)
				i++
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			wg.Wait()
			cursor.Show()
		})
	}
}

// withSpinner runs fn while a spinner with text is shown on w.
func withSpinner(w io.Writer, text string, fn func() error) error {
	stop := startInlineSpinner(w, text, spinnerFrames, 120*time.Millisecond)
	defer stop()
	return fn()
}

// promptText asks for a visible value unless one was already given.
func promptText(label, current string) (string, error) {
	if strings.TrimSpace(current) != "" {
		return current, nil
	}
	return pterm.DefaultInteractiveTextInput.Show(label)
}

// promptSecret asks for a masked value.
func promptSecret(label string) (string, error) {
	return pterm.DefaultInteractiveTextInput.WithMask("*").Show(label)
}

// readSecretLine reads a single line, as used by --password-stdin.
func readSecretLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("no password on standard input")
	}
	return line, nil
}
