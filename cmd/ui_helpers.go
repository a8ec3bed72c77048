// Package cmd provides CLI commands for the BeppoFit client.
// This file contains helper functions for prompting and progress display.
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"syscall"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// spinnerFrames are the animation frames used while a request is in flight.
var spinnerFrames = []string{"|", "/", "-", "\\"}

// startAreaSpinner starts a spinner line in a pterm area while a backend
// exchange is outstanding. The cursor is hidden for the duration. The
// returned function stops the spinner and restores the cursor.
func startAreaSpinner(text string) (stop func()) {
	cursor.Hide()
	area, err := pterm.DefaultArea.WithRemoveWhenDone(true).Start()
	if err != nil {
		cursor.Show()
		return func() {}
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTicker(120 * time.Millisecond)
		defer t.Stop()
		i := 0
		for {
			select {
			case <-t.C:
				i++
				area.Update(fmt.Sprintf("%s %s", spinnerFrames[i%len(spinnerFrames)], text))
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		wg.Wait()
		_ = area.Stop()
		cursor.Show()
	}
}

// promptInput reads a single line of input with the given label.
func promptInput(label string) (string, error) {
	fmt.Printf("%s: ", label)
	r := bufio.NewReader(os.Stdin)
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo when stdin is a terminal.
// In non-interactive mode it fails instead of echoing secrets.
func promptPassword(label string) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("%s is required in non-interactive mode (use the flag or environment variable)", strings.ToLower(label))
	}
	fmt.Printf("%s: ", label)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return string(b), nil
}

// confirm asks a yes/no question and reports whether the user answered yes.
func confirm(question string) bool {
	answer, err := promptInput(question + " [y/N]")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
