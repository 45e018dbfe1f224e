package main

import (
	"errors"
	"fmt"
	"os"

	"lyric_forge/internal/score"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.Is(err, score.ErrTooFewLines) || errors.Is(err, score.ErrMissingMood) || errors.Is(err, score.ErrMissingMotif) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
