package cycle

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceSequence(t *testing.T) {
	c := NewController()
	want := []Kind{Work, ShortBreak, Work, ShortBreak, Work, ShortBreak, Work, LongBreak}

	for i, k := range want {
		got, _ := c.Advance()
		assert.Equal(t, k, got, "count %d", i+1)
		assert.Equal(t, i+1, c.State().Reps)
	}
}

func TestAdvanceFromAnyCount(t *testing.T) {
	for start := 0; start < 40; start++ {
		c := &Controller{state: State{Reps: start}}
		kind, _ := c.Advance()
		n := start + 1

		switch {
		case n%8 == 0:
			assert.Equal(t, LongBreak, kind, "count %d", n)
		case n%2 == 0:
			assert.Equal(t, ShortBreak, kind, "count %d", n)
		default:
			assert.Equal(t, Work, kind, "count %d", n)
		}
	}
}

func TestAdvanceSetsRemaining(t *testing.T) {
	c := NewController()
	allowed := map[int]bool{25 * 60: true, 5 * 60: true, 15 * 60: true}

	for i := 0; i < 16; i++ {
		kind, secs := c.Advance()
		st := c.State()
		assert.Equal(t, secs, st.Remaining)
		assert.Equal(t, kind, st.Kind)
		assert.True(t, allowed[secs], "unexpected duration %d", secs)
	}
}

func TestFirstAdvanceIsWork(t *testing.T) {
	c := NewController()
	kind, secs := c.Advance()
	assert.Equal(t, Work, kind)
	assert.Equal(t, 1500, secs)
}

func TestTickCountsDownToCompletion(t *testing.T) {
	c := &Controller{state: State{Reps: 1, Kind: Work, Remaining: 3}}

	r, done := c.Tick()
	assert.Equal(t, 2, r)
	assert.False(t, done)

	r, done = c.Tick()
	assert.Equal(t, 1, r)
	assert.False(t, done)

	r, done = c.Tick()
	assert.Equal(t, 0, r)
	assert.True(t, done)

	// Already at zero: still completed, never negative.
	r, done = c.Tick()
	assert.Equal(t, 0, r)
	assert.True(t, done)
	assert.Equal(t, 0, c.State().Remaining)
}

func TestResetIdempotent(t *testing.T) {
	c := NewController()
	c.Advance()
	c.Advance()

	c.Reset()
	once := c.State()
	c.Reset()
	twice := c.State()

	assert.Equal(t, State{Reps: 0, Kind: Idle, Remaining: 0}, once)
	assert.Equal(t, once, twice)
}

func TestKindLabels(t *testing.T) {
	tests := []struct {
		kind  Kind
		str   string
		label string
	}{
		{Idle, "IDLE", "IDLE"},
		{Work, "WORK", "WORK"},
		{ShortBreak, "SHORT BREAK", "BREAK"},
		{LongBreak, "LONG BREAK", "BREAK"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.str, tt.kind.String())
		assert.Equal(t, tt.label, tt.kind.Label())
	}
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestFormatClock(t *testing.T) {
	tests := map[int]string{
		0:    "00:00",
		5:    "00:05",
		60:   "01:00",
		1500: "25:00",
		1499: "24:59",
		-3:   "00:00",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatClock(in), "FormatClock(%d)", in)
	}
}

// ============================================================
// Session
// ============================================================

type fakeScheduler struct {
	next      Handle
	active    map[Handle]bool
	scheduled int
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{active: make(map[Handle]bool)}
}

func (f *fakeScheduler) ScheduleRepeating(time.Duration) Handle {
	f.next++
	f.scheduled++
	f.active[f.next] = true
	return f.next
}

func (f *fakeScheduler) Cancel(h Handle) {
	delete(f.active, h)
}

type fakeRecorder struct {
	dates   []string
	minutes []int
	err     error
}

func (f *fakeRecorder) Append(date string, minutes int) error {
	if f.err != nil {
		return f.err
	}
	f.dates = append(f.dates, date)
	f.minutes = append(f.minutes, minutes)
	return nil
}

func fixedClock() time.Time {
	return time.Date(2024, 1, 1, 9, 30, 0, 0, time.Local)
}

func TestSessionStartCancelsPrevious(t *testing.T) {
	sched := newFakeScheduler()
	s := NewSession(nil, sched, &fakeRecorder{})

	s.Start()
	first := s.live
	s.Start()

	assert.Len(t, sched.active, 1, "only one countdown may be live")
	assert.False(t, s.Live(first))
	assert.True(t, s.Live(s.live))
	assert.Equal(t, 2, s.State().Reps)
}

func TestSessionReset(t *testing.T) {
	sched := newFakeScheduler()
	s := NewSession(nil, sched, &fakeRecorder{})

	s.Start()
	s.Reset()
	s.Reset()

	assert.Empty(t, sched.active)
	assert.False(t, s.Running())
	assert.Equal(t, State{Kind: Idle}, s.State())
}

func TestSessionWorkCompletionRecordsAndChains(t *testing.T) {
	sched := newFakeScheduler()
	rec := &fakeRecorder{}
	ctrl := NewController()
	s := NewSession(ctrl, sched, rec, WithClock(fixedClock))

	s.Start()
	ctrl.state.Remaining = 1

	res, err := s.Tick()
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.True(t, res.Recorded)
	assert.Equal(t, Work, res.Finished)
	assert.Equal(t, ShortBreak, res.Next)
	assert.Equal(t, 300, res.NextSeconds)

	assert.Equal(t, []string{"2024-01-01"}, rec.dates)
	assert.Equal(t, []int{WorkMinutes}, rec.minutes)
	assert.Len(t, sched.active, 1)
	assert.Equal(t, 2, sched.scheduled)
}

func TestSessionBreakCompletionDoesNotRecord(t *testing.T) {
	rec := &fakeRecorder{}
	ctrl := &Controller{state: State{Reps: 1, Kind: Work}}
	s := NewSession(ctrl, newFakeScheduler(), rec)

	s.Start() // count 2: short break
	ctrl.state.Remaining = 1

	res, err := s.Tick()
	require.NoError(t, err)
	assert.Equal(t, ShortBreak, res.Finished)
	assert.False(t, res.Recorded)
	assert.Equal(t, Work, res.Next)
	assert.Empty(t, rec.dates)
}

func TestSessionRecordErrorStillChains(t *testing.T) {
	boom := errors.New("disk full")
	ctrl := NewController()
	s := NewSession(ctrl, newFakeScheduler(), &fakeRecorder{err: boom})

	s.Start()
	ctrl.state.Remaining = 1

	res, err := s.Tick()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.True(t, res.Completed)
	assert.False(t, res.Recorded)
	assert.Equal(t, ShortBreak, s.State().Kind)
	assert.True(t, s.Running())
}

func TestSessionFullCycle(t *testing.T) {
	rec := &fakeRecorder{}
	ctrl := NewController()
	s := NewSession(ctrl, newFakeScheduler(), rec, WithClock(fixedClock))

	s.Start()
	var finished []Kind
	for i := 0; i < 8; i++ {
		ctrl.state.Remaining = 1
		res, err := s.Tick()
		require.NoError(t, err)
		finished = append(finished, res.Finished)
	}

	assert.Equal(t, []Kind{Work, ShortBreak, Work, ShortBreak, Work, ShortBreak, Work, LongBreak}, finished)
	assert.Len(t, rec.dates, 4)
	assert.Equal(t, 9, s.State().Reps)
	assert.Equal(t, Work, s.State().Kind)
}
