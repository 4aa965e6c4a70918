// Package lab wires the progress state, the three level engines and the
// rating into one session, and journals what happens to the event log.
package lab

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/testlab/internal/catalog"
	"github.com/abhisek/testlab/internal/classify"
	"github.com/abhisek/testlab/internal/coach"
	"github.com/abhisek/testlab/internal/progress"
	"github.com/abhisek/testlab/internal/quiz"
	"github.com/abhisek/testlab/internal/rating"
	"github.com/abhisek/testlab/internal/store"
	"github.com/abhisek/testlab/internal/testplan"
	"github.com/abhisek/testlab/internal/testset"
)

// Options configures a Lab. Every field is optional.
type Options struct {
	// Questions defaults to the catalog's Level 1 questions.
	Questions []catalog.Question

	// Seed fixes the question order. Zero seeds from the clock.
	Seed int64

	Store    progress.Store
	Notifier progress.Notifier

	// Events receives XP, achievement and attempt events when set.
	Events store.EventRepo

	Coach  *coach.Coach
	Logger *zap.Logger

	// SessionID defaults to a new random UUID.
	SessionID string

	// TestSetRows is the number of Level 2 rows offered. Default 6.
	TestSetRows int
}

// Lab is one learner session. It is safe for concurrent use, but
// notifiers must not call back into the Lab.
type Lab struct {
	mu sync.Mutex

	sessionID string
	questions []catalog.Question
	rng       *rand.Rand
	rows      int

	tracker *progress.Tracker
	quiz    *quiz.Engine
	tests   *testset.Checker
	plans   *testplan.Checker
	agg     *rating.Aggregator
	coach   *coach.Coach
	events  store.EventRepo
	logger  *zap.Logger

	level1Best float64
	level2     testset.Tier
	level3     testplan.Tier
	rating     rating.Rating
}

// New creates a Lab, loading persisted progress from opts.Store.
func New(opts Options) *Lab {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	questions := opts.Questions
	if questions == nil {
		questions = catalog.Questions()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rows := opts.TestSetRows
	if rows <= 0 {
		rows = testset.DefaultRows
	}

	l := &Lab{
		sessionID: sessionID,
		questions: questions,
		rng:       rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1)),
		rows:      rows,
		coach:     opts.Coach,
		events:    opts.Events,
		logger:    logger.Named("lab").With(zap.String("session", sessionID)),
	}

	notifier := opts.Notifier
	if opts.Events != nil {
		j := &journal{
			events:    opts.Events,
			sessionID: sessionID,
			totals:    func() (int, int) { return l.tracker.XP(), l.tracker.Level() },
			logger:    l.logger,
		}
		if notifier == nil {
			notifier = j
		} else {
			notifier = progress.MultiNotifier{j, notifier}
		}
	}

	l.tracker = progress.NewTracker(opts.Store, notifier, logger)
	l.quiz = quiz.NewEngine(catalog.Shuffle(questions, l.rng), l.tracker)
	l.tests = testset.NewChecker(l.tracker)
	l.plans = testplan.NewChecker(l.tracker)
	l.agg = rating.NewAggregator(l.tracker)
	l.rating = rating.Compute(rating.Inputs{})
	return l
}

// SessionID identifies this session in the event log.
func (l *Lab) SessionID() string {
	return l.sessionID
}

// Progress returns the learner's progress state.
func (l *Lab) Progress() *progress.Tracker {
	return l.tracker
}

// Quiz returns the current Level 1 engine.
func (l *Lab) Quiz() *quiz.Engine {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.quiz
}

// Answer submits a Level 1 answer. See quiz.Engine.SubmitAnswer.
func (l *Lab) Answer(chosen classify.Kind) *quiz.AnswerResult {
	return l.Quiz().SubmitAnswer(chosen)
}

// Advance moves Level 1 forward for ticket. Finishing the quiz records the
// attempt and recomputes the rating.
func (l *Lab) Advance(ticket quiz.Ticket) (bool, *quiz.Summary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	moved, sum := l.quiz.Advance(ticket)
	if sum == nil {
		return moved, nil
	}

	outcome := "complete"
	if sum.Perfect {
		outcome = "perfect"
	}
	l.recordAttempt(store.AttemptEventData{
		Level:    1,
		Outcome:  outcome,
		Score:    sum.Score,
		Total:    sum.Total,
		Accuracy: int(sum.Percent + 0.5),
		Detail:   sum.Message(),
	})
	l.level1Best = max(l.level1Best, sum.Percent)
	l.recomputeLocked()
	return moved, sum
}

// RestartLevel1 starts a fresh, reshuffled quiz. Progress and the best
// finished score are kept.
func (l *Lab) RestartLevel1() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.quiz = quiz.NewEngine(catalog.Shuffle(l.questions, l.rng), l.tracker)
}

// TestSetRule is the rule Level 2 rows are checked against.
func (l *Lab) TestSetRule() classify.Rule {
	return l.tests.Rule()
}

// TestSetRows is the number of Level 2 rows to offer.
func (l *Lab) TestSetRows() int {
	return l.rows
}

// CheckTestSet grades a Level 2 test set. An empty set only clears the
// Level 2 result; anything else is recorded and recomputes the rating.
func (l *Lab) CheckTestSet(rows []testset.Row) testset.Report {
	l.mu.Lock()
	defer l.mu.Unlock()

	rep := l.tests.Check(rows)
	l.level2 = rep.Tier
	if rep.Empty() {
		return rep
	}

	l.recordAttempt(store.AttemptEventData{
		Level:    2,
		Outcome:  rep.Tier.String(),
		Score:    rep.Correct,
		Total:    rep.Filled,
		Accuracy: rep.Accuracy,
		Detail:   strings.Join(rep.Mismatches, "\n"),
	})
	l.recomputeLocked()
	return rep
}

// CheckTestPlan grades a Level 3 test plan entry, records it and
// recomputes the rating.
func (l *Lab) CheckTestPlan(e testplan.Entry) testplan.Report {
	l.mu.Lock()
	defer l.mu.Unlock()

	rep := l.plans.Check(e)
	l.level3 = rep.Tier

	detail := ""
	if len(rep.Missing) > 0 {
		detail = "missing: " + strings.Join(rep.Missing, ", ")
	}
	l.recordAttempt(store.AttemptEventData{
		Level:   3,
		Outcome: rep.Tier.String(),
		Score:   rep.Quality,
		Total:   len(testplan.Fields),
		Detail:  detail,
	})
	l.recomputeLocked()
	return rep
}

// Level2Tier returns the result of the last Level 2 check.
func (l *Lab) Level2Tier() testset.Tier {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level2
}

// Level3Tier returns the result of the last Level 3 check.
func (l *Lab) Level3Tier() testplan.Tier {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level3
}

// Rating returns the rating as of the last recompute.
func (l *Lab) Rating() rating.Rating {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rating
}

// Explain asks the coach about a misclassified value. Without a coach the
// rule-based explanation is returned.
func (l *Lab) Explain(ctx context.Context, in coach.Input) coach.Feedback {
	if l.coach == nil {
		return coach.Explain(in)
	}
	return l.coach.Explain(ctx, in)
}

// CoachEnabled reports whether LLM coaching is available.
func (l *Lab) CoachEnabled() bool {
	return l.coach.Enabled()
}

func (l *Lab) inputsLocked() rating.Inputs {
	// Level 1 counts the running score or the best finished run, whichever
	// is higher, so a restart never costs a star.
	return rating.Inputs{
		Level1Percent:  max(l.level1Best, l.quiz.Percent()),
		Level2Complete: l.level2.Complete(),
		Level3Complete: l.level3.Complete(),
	}
}

func (l *Lab) recomputeLocked() {
	prev := l.rating
	l.rating = l.agg.Recompute(l.inputsLocked())
	if l.rating.Stars != prev.Stars || l.rating.Certified != prev.Certified {
		l.logger.Info("rating changed",
			zap.Int("stars", l.rating.Stars),
			zap.Bool("certified", l.rating.Certified))
	}
}

func (l *Lab) recordAttempt(data store.AttemptEventData) {
	l.logger.Info("level attempt",
		zap.Int("level", data.Level),
		zap.String("outcome", data.Outcome),
		zap.Int("score", data.Score),
		zap.Int("total", data.Total))

	if l.events == nil {
		return
	}
	data.SessionID = l.sessionID
	if err := l.events.AppendAttempt(context.Background(), data); err != nil {
		l.logger.Warn("record attempt failed", zap.Int("level", data.Level), zap.Error(err))
	}
}
