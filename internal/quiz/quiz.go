// Package quiz implements Level 1: classify each test value in a shuffled
// question bank as valid, invalid, boundary or erroneous.
package quiz

import (
	"fmt"
	"math"
	"sync"

	"github.com/abhisek/testlab/internal/catalog"
	"github.com/abhisek/testlab/internal/classify"
)

const (
	// CorrectXP is awarded for each correct answer.
	CorrectXP = 10

	// PerfectXP is awarded for finishing with every answer correct.
	PerfectXP = 25
)

// Progress is the slice of the progress state the quiz drives.
type Progress interface {
	AwardXP(amount int, reason string)
	RegisterStreakHit()
	ResetStreak()
	Unlock(id string) bool
	Streak() int
}

// Phase is where the quiz is in its question loop.
type Phase int

const (
	// PhaseAsking waits for an answer to the current question.
	PhaseAsking Phase = iota

	// PhaseAnswered shows feedback until the pending advance runs.
	PhaseAnswered

	// PhaseComplete means every question has been answered.
	PhaseComplete
)

// Ticket identifies one scheduled advance. Only the ticket handed out by
// the latest answer moves the quiz forward.
type Ticket uint64

// AnswerResult describes the outcome of one submitted answer.
type AnswerResult struct {
	Question catalog.Question
	Chosen   classify.Kind
	Correct  bool
	Feedback string

	// Ticket must be passed to Advance once the feedback delay elapses.
	Ticket Ticket
}

// Summary is the final result of a completed quiz.
type Summary struct {
	Score   int
	Total   int
	Percent float64
	Perfect bool
}

// Message returns the completion line for the summary.
func (s Summary) Message() string {
	return fmt.Sprintf("🏁 Level 1 Complete! Final score: %d out of %d (%d%%)",
		s.Score, s.Total, int(math.Round(s.Percent)))
}

// Celebration returns the extra feedback for a perfect run, or "".
func (s Summary) Celebration() string {
	if !s.Perfect {
		return ""
	}
	return "🌟 PERFECT SCORE! You got every question right!"
}

// Engine runs the quiz over a fixed sequence of questions.
type Engine struct {
	mu        sync.Mutex
	questions []catalog.Question
	index     int
	score     int
	phase     Phase
	ticket    Ticket
	progress  Progress
}

// NewEngine creates a quiz over questions, which should already be
// shuffled for the session.
func NewEngine(questions []catalog.Question, progress Progress) *Engine {
	e := &Engine{
		questions: questions,
		progress:  progress,
	}
	if len(questions) == 0 {
		e.phase = PhaseComplete
	}
	return e
}

// Current returns the question awaiting an answer, or false when the quiz
// is complete.
func (e *Engine) Current() (catalog.Question, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.index >= len(e.questions) {
		return catalog.Question{}, false
	}
	return e.questions[e.index], true
}

// SubmitAnswer scores chosen against the current question. It returns nil
// when the quiz is complete or an earlier answer is still waiting for its
// advance.
func (e *Engine) SubmitAnswer(chosen classify.Kind) *AnswerResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseAsking {
		return nil
	}

	q := e.questions[e.index]
	res := &AnswerResult{Question: q, Chosen: chosen}

	if chosen == q.Type {
		e.score++
		res.Correct = true
		res.Feedback = fmt.Sprintf("🎉 Correct! That is %s test data.", q.Type)

		e.progress.AwardXP(CorrectXP, "Correct!")
		e.progress.RegisterStreakHit()
		if e.score == 1 {
			e.progress.Unlock(catalog.FirstCorrect)
		}
		if e.progress.Streak() == 3 {
			e.progress.Unlock(catalog.Streak3)
		}
	} else {
		res.Feedback = fmt.Sprintf("❌ Not quite. That is actually %s test data.", q.Type)
		e.progress.ResetStreak()
	}

	e.ticket++
	e.phase = PhaseAnswered
	res.Ticket = e.ticket
	return res
}

// Pending returns the ticket of an answer still waiting to be advanced.
func (e *Engine) Pending() (Ticket, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ticket, e.phase == PhaseAnswered
}

// Advance moves to the next question for the outstanding ticket. Stale or
// repeated tickets are ignored. When the last question is passed it
// unlocks the completion achievements and returns the summary.
func (e *Engine) Advance(t Ticket) (bool, *Summary) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseAnswered || t != e.ticket {
		return false, nil
	}

	e.index++
	if e.index < len(e.questions) {
		e.phase = PhaseAsking
		return true, nil
	}

	e.phase = PhaseComplete
	sum := e.summaryLocked()

	e.progress.Unlock(catalog.Level1Complete)
	if sum.Perfect {
		e.progress.AwardXP(PerfectXP, "Perfect Score!")
		e.progress.Unlock(catalog.PerfectLevel1)
	}
	return true, &sum
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Complete reports whether every question has been answered and advanced.
func (e *Engine) Complete() bool {
	return e.Phase() == PhaseComplete
}

// Score returns the number of correct answers so far.
func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

// Total returns the number of questions.
func (e *Engine) Total() int {
	return len(e.questions)
}

// Percent returns the score as a percentage of all questions.
func (e *Engine) Percent() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.percentLocked()
}

// Summary returns the current tally.
func (e *Engine) Summary() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.summaryLocked()
}

// ProgressText is the status line shown under the current question.
func (e *Engine) ProgressText() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := e.index + 1
	if n > len(e.questions) {
		n = len(e.questions)
	}
	return fmt.Sprintf("Question %d of %d • Score: %d • Streak: %d",
		n, len(e.questions), e.score, e.progress.Streak())
}

func (e *Engine) percentLocked() float64 {
	if len(e.questions) == 0 {
		return 0
	}
	return float64(e.score) / float64(len(e.questions)) * 100
}

func (e *Engine) summaryLocked() Summary {
	p := e.percentLocked()
	return Summary{
		Score:   e.score,
		Total:   len(e.questions),
		Percent: p,
		Perfect: len(e.questions) > 0 && e.score == len(e.questions),
	}
}
