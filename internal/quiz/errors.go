package quiz

import "errors"

// ErrUnknownCode is returned when a code does not match any issued quiz.
// Surfaced to takers as an invalid code message, never a crash.
var ErrUnknownCode = errors.New("invalid code: no quiz with that code")

// ErrNoAnswers is returned by Grade when the taker has not recorded any
// answer yet. Grading requires an attempt in progress.
var ErrNoAnswers = errors.New("no answers recorded for this quiz")
