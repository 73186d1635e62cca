package session

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mahekpandey/DyslexiaDetection/internal/config"
	"github.com/Mahekpandey/DyslexiaDetection/internal/gaze"
	"github.com/Mahekpandey/DyslexiaDetection/internal/models"
	"github.com/Mahekpandey/DyslexiaDetection/internal/text"
)

// CalibrationGrid is the 3x3 target grid shown during calibration, in
// normalized screen coordinates.
var CalibrationGrid = []models.Point{
	{X: 0.2, Y: 0.2}, {X: 0.5, Y: 0.2}, {X: 0.8, Y: 0.2},
	{X: 0.2, Y: 0.5}, {X: 0.5, Y: 0.5}, {X: 0.8, Y: 0.5},
	{X: 0.2, Y: 0.8}, {X: 0.5, Y: 0.8}, {X: 0.8, Y: 0.8},
}

// calibrationOffsetScale is the mean gaze offset (normalized units) at
// which calibration quality bottoms out at zero.
const calibrationOffsetScale = 0.2

// TickPoint is one probability observation in the session's in-memory
// history, kept for the session report.
type TickPoint struct {
	Elapsed     float64 `json:"elapsed"`
	Probability float64 `json:"probability"`
}

// Session owns one screening run: lifecycle state, the analyzer pipeline,
// a bounded inbound frame queue with a single consumer goroutine, and an
// outbound event channel. All raw data dies with the session.
type Session struct {
	ID  uuid.UUID
	log *zap.Logger
	cfg config.SessionConfig

	mu           sync.Mutex
	state        State
	analyzer     *gaze.Analyzer
	passage      models.Passage
	layout       *text.Layout
	testPending  bool
	calIndex     int
	calOffsets   []float64
	calQuality   float64
	calGaze      []models.Point
	lastFrameT   float64
	testStart    float64
	history      []TickPoint
	lastActivity time.Time
	startedAt    time.Time

	frames    chan models.RawFrame
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a session in the idle state and starts its consumer
// goroutine.
func New(log *zap.Logger, cfg config.SessionConfig) *Session {
	id := uuid.New()
	s := &Session{
		ID:           id,
		log:          log.With(zap.String("session_id", id.String())),
		cfg:          cfg,
		state:        StateIdle,
		analyzer:     gaze.NewAnalyzer(log, cfg.BaselineWindow, cfg.WarmupSamples),
		frames:       make(chan models.RawFrame, cfg.QueueSize),
		events:       make(chan Event, 32),
		done:         make(chan struct{}),
		lastActivity: time.Now(),
		startedAt:    time.Now(),
	}
	go s.run()
	return s
}

// Offer enqueues a frame without blocking the ingestion path. When the
// queue is full the oldest unprocessed frame is dropped.
func (s *Session) Offer(f models.RawFrame) {
	select {
	case s.frames <- f:
		return
	default:
	}
	select {
	case <-s.frames:
	default:
	}
	select {
	case s.frames <- f:
	default:
	}
}

// Events exposes the outbound event stream.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Done is closed when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// LastActivity returns the time of the last command or frame.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// StartCalibration moves the session into calibrating and presents the
// first grid target. Valid from idle and ready.
func (s *Session) StartCalibration() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = time.Now()

	if !s.state.CanTransition(StateCalibrating) {
		return models.NewAnalysisError(models.ErrInvalidTransition,
			"calibration_start not valid in state %q", s.state)
	}
	s.state = StateCalibrating
	s.calIndex = 0
	s.calOffsets = s.calOffsets[:0]
	s.calGaze = s.calGaze[:0]
	s.emitStatusLocked()
	return nil
}

// NextCalibrationPoint finalizes the current target and advances the
// grid. Completing the final target computes calibration quality and
// moves the session to ready.
func (s *Session) NextCalibrationPoint() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = time.Now()

	if s.state != StateCalibrating {
		return false, models.NewAnalysisError(models.ErrInvalidTransition,
			"calibration_next_point not valid in state %q", s.state)
	}

	target := CalibrationGrid[s.calIndex]
	s.calOffsets = append(s.calOffsets, meanOffset(s.calGaze, target))
	s.calGaze = s.calGaze[:0]
	s.calIndex++

	if s.calIndex < len(CalibrationGrid) {
		s.emitStatusLocked()
		return false, nil
	}

	var sum float64
	for _, off := range s.calOffsets {
		sum += off
	}
	mean := sum / float64(len(s.calOffsets))
	s.calQuality = math.Max(0, 1-mean/calibrationOffsetScale)
	s.analyzer.SetCalibrationQuality(s.calQuality)
	s.state = StateReady
	s.emitStatusLocked()
	s.log.Info("Calibration complete",
		zap.Float64("mean_offset", mean),
		zap.Float64("quality", s.calQuality))
	return true, nil
}

// StartReading begins a reading test over the given passage. Valid only
// from ready, and requires passage text.
func (s *Session) StartReading(p models.Passage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = time.Now()

	if !s.state.CanTransition(StateReadingTest) {
		return models.NewAnalysisError(models.ErrInvalidTransition,
			"reading_test_start not valid in state %q", s.state)
	}
	if p.Text == "" {
		return models.NewAnalysisError(models.ErrInvalidTransition,
			"reading test requires passage text")
	}

	s.passage = p
	s.layout = text.NewLayout(p.Text)
	s.testPending = true
	s.history = s.history[:0]
	s.state = StateReadingTest
	s.emitStatusLocked()
	s.log.Info("Reading test started",
		zap.String("passage_id", p.ID),
		zap.Int("words", s.layout.WordCount()),
		zap.Float64("flesch", s.layout.Flesch()))
	return nil
}

// End terminates the session from any state, drains its queue, and
// returns the final summary for persistence (nil when no reading test
// ran). After End the session accepts no further work.
func (s *Session) End() *models.SessionResult {
	s.mu.Lock()
	var result *models.SessionResult
	if s.state == StateReadingTest || s.state == StateCompleted {
		s.analyzer.FinishTest()
		result = s.buildResultLocked()
	}
	s.state = StateIdle
	s.emitStatusLocked()
	s.mu.Unlock()

	s.closeOnce.Do(func() { close(s.done) })
	for {
		select {
		case <-s.frames:
		default:
			return result
		}
	}
}

// Status returns a snapshot status event.
func (s *Session) Status() StatusEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// History returns a copy of the per-tick probability history.
func (s *Session) History() []TickPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]TickPoint(nil), s.history...)
}

// run is the session's single consumer: it serializes frame processing
// and evaluation ticks so nothing else touches the baseline or segment
// history.
func (s *Session) run() {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case f := <-s.frames:
			s.handleFrame(f)
		case <-ticker.C:
			s.evaluate()
		}
	}
}

func (s *Session) handleFrame(f models.RawFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = time.Now()
	s.lastFrameT = f.Timestamp

	switch s.state {
	case StateReadingTest:
		if s.testPending {
			s.analyzer.StartTest(s.layout, f.Timestamp)
			s.testStart = f.Timestamp
			s.testPending = false
		}
		if err := s.analyzer.Process(f); err != nil {
			// Malformed frames surface to the client; degenerate
			// timestamps are dropped silently.
			if models.KindOf(err) == models.ErrMalformedSample {
				s.emitLocked(Event{Type: EventError, Data: err})
			}
		}
	case StateCalibrating:
		if !f.Blink {
			s.calGaze = append(s.calGaze, models.Point{
				X: (f.LeftX + f.RightX) / 2,
				Y: (f.LeftY + f.RightY) / 2,
			})
		}
	default:
		// Accepted but not scored.
	}
}

func (s *Session) evaluate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReadingTest || s.testPending {
		return
	}

	ev := s.analyzer.Evaluate()
	s.history = append(s.history, TickPoint{
		Elapsed:     ev.Metrics.ElapsedSeconds,
		Probability: ev.DyslexiaProbability,
	})
	s.emitLocked(Event{Type: EventMetrics, Data: ev})

	if s.analyzer.Covered() {
		s.analyzer.FinishTest()
		s.state = StateCompleted
		s.emitStatusLocked()
		s.log.Info("Reading test completed",
			zap.Float64("probability", ev.DyslexiaProbability),
			zap.String("severity", string(ev.Severity)))
	}
}

func (s *Session) buildResultLocked() *models.SessionResult {
	ev := s.analyzer.Evaluate()
	drops := s.analyzer.Dropped()
	return &models.SessionResult{
		SessionID:           s.ID.String(),
		PassageID:           s.passage.ID,
		WordsPerMinute:      ev.ReadingSpeed,
		FixationCount:       ev.Fixations,
		RegressionCount:     ev.Regressions,
		BlinkRate:           ev.Metrics.BlinkRate,
		GazeStability:       ev.Metrics.GazeStability,
		PupilVariability:    ev.Metrics.PupilVariability,
		DyslexiaProbability: ev.DyslexiaProbability,
		Severity:            string(ev.Severity),
		Confidence:          ev.Confidence,
		CalibrationOffsets:  append([]float64(nil), s.calOffsets...),
		CalibrationQuality:  s.calQuality,
		SampleCount:         ev.Metrics.SampleCount,
		DroppedMalformed:    drops.Malformed,
		DroppedFrames:       drops.Degenerate,
		StartedAt:           s.startedAt,
	}
}

func (s *Session) statusLocked() StatusEvent {
	ev := StatusEvent{
		SessionID: s.ID.String(),
		State:     s.state,
		PassageID: s.passage.ID,
	}
	if s.state == StateCalibrating {
		ev.CalibrationIndex = s.calIndex
		ev.CalibrationTotal = len(CalibrationGrid)
		point := CalibrationGrid[s.calIndex]
		ev.CalibrationPoint = &point
	}
	if s.state == StateReady {
		ev.CalibrationQuality = s.calQuality
	}
	return ev
}

func (s *Session) emitStatusLocked() {
	s.emitLocked(Event{Type: EventStatus, Data: s.statusLocked()})
}

// emitLocked pushes an event without blocking; a slow subscriber loses
// events rather than stalling the pipeline.
func (s *Session) emitLocked(e Event) {
	select {
	case s.events <- e:
	default:
	}
}

func meanOffset(gaze []models.Point, target models.Point) float64 {
	if len(gaze) == 0 {
		return calibrationOffsetScale // no signal counts as a full miss
	}
	var sum float64
	for _, p := range gaze {
		dx := p.X - target.X
		dy := p.Y - target.Y
		sum += math.Sqrt(dx*dx + dy*dy)
	}
	return sum / float64(len(gaze))
}
