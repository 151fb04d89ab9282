// Package score holds score histories and their summaries.
//
// A score is the number of cheats used to complete a poem; 0 is perfect.
// Histories are kept per poem and per mode by the store.
package score

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Mode selects the game rules a score was earned under.
type Mode string

const (
	Easy Mode = "easy"
	Hard Mode = "hard"
)

// ErrUnknownMode is returned by ParseMode for anything but easy or hard.
var ErrUnknownMode = errors.New("unknown mode")

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Easy:
		return Easy, nil
	case Hard:
		return Hard, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Summarize describes a history. Perfect scores take priority over the
// best score.
func Summarize(history []int) string {
	if len(history) == 0 {
		return "No completions"
	}
	perfect := 0
	for _, s := range history {
		if s == 0 {
			perfect++
		}
	}
	if perfect > 0 {
		return fmt.Sprintf("%d perfect scores", perfect)
	}
	return fmt.Sprintf("Best score: %d", slices.Min(history))
}
