package practice

import (
	"github.com/abhisek/algebriz/internal/diagnosis"
	"github.com/abhisek/algebriz/internal/tutor"
)

// problemReadyMsg is sent when a new problem has been generated.
type problemReadyMsg struct {
	Problem *tutor.Problem
	Err     error
}

// reviewReadyMsg carries the LLM second opinion for one submission.
// Attempt matches the submission counter so stale reviews can be dropped.
type reviewReadyMsg struct {
	Attempt int
	Review  *diagnosis.Review
	Err     error
}
