package tui

import "errors"

// ErrAborted signals the user aborted input (e.g., Ctrl+C) or declined the
// final confirmation.
var ErrAborted = errors.New("tui: aborted")
