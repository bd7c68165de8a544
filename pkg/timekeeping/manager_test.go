package timekeeping

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/orbitforge/astrosim/internal/types"
)

func TestJulianDateJ2000(t *testing.T) {
	epoch := time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)
	jd := JulianDateFromTime(epoch)
	if math.Abs(jd-J2000) > 1e-9 {
		t.Fatalf("J2000 epoch: got JD %.9f, want %.1f", jd, J2000)
	}
}

func TestJulianDateRoundTrip(t *testing.T) {
	dates := []time.Time{
		time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC),
		time.Date(1969, time.July, 20, 20, 17, 40, 0, time.UTC),
		time.Date(2026, time.August, 26, 3, 14, 15, 0, time.UTC),
		time.Date(2100, time.February, 28, 23, 59, 59, 0, time.UTC),
	}

	for _, want := range dates {
		got := TimeFromJulianDate(JulianDateFromTime(want))
		if diff := got.Sub(want); diff > time.Second || diff < -time.Second {
			t.Errorf("%v round-tripped to %v (off by %v)", want, got, diff)
		}
	}
}

func TestUpdateScalesTime(t *testing.T) {
	m := NewManager(J2000)
	if err := m.SetTimeScale(86400); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One real second at a day-per-second scale advances one day.
	m.Update(1.0)
	if math.Abs(m.JulianDate()-(J2000+1)) > 1e-9 {
		t.Errorf("got JD %f, want %f", m.JulianDate(), J2000+1)
	}
}

func TestPauseBlocksAllAdvancement(t *testing.T) {
	m := NewManager(J2000)
	m.Pause()

	m.Update(100)
	if m.JulianDate() != J2000 {
		t.Errorf("paused clock advanced to %f", m.JulianDate())
	}

	m.AdvanceByDays(2)
	if m.JulianDate() != J2000 {
		t.Errorf("AdvanceByDays while paused moved the clock to %f", m.JulianDate())
	}

	m.AdvanceBySeconds(86400)
	if m.JulianDate() != J2000 {
		t.Errorf("AdvanceBySeconds while paused moved the clock to %f", m.JulianDate())
	}

	if m.TogglePause() {
		t.Error("toggle should have resumed the clock")
	}

	m.AdvanceByDays(2)
	if math.Abs(m.JulianDate()-(J2000+2)) > 1e-9 {
		t.Errorf("advance after resume: got %f, want %f", m.JulianDate(), J2000+2)
	}
}

func TestZeroScaleUpdateStillNotifies(t *testing.T) {
	m := NewManager(J2000)
	if err := m.SetTimeScale(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := 0
	m.AddTimeChangeCallback(func(float64) { calls++ })

	m.Update(1.0)
	if m.JulianDate() != J2000 {
		t.Errorf("zero scale moved the clock to %f", m.JulianDate())
	}
	if calls != 1 {
		t.Errorf("unpaused update must notify even at zero scale, got %d calls", calls)
	}

	m.Pause()
	m.Update(1.0)
	if calls != 1 {
		t.Errorf("paused update must not notify, got %d calls", calls)
	}
}

func TestNegativeTimeScaleRejected(t *testing.T) {
	m := NewManager(J2000)
	if err := m.SetTimeScale(-1); !errors.Is(err, types.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if m.TimeScale() != 1.0 {
		t.Errorf("rejected scale must leave the old value, got %g", m.TimeScale())
	}
}

func TestTimeScalePresets(t *testing.T) {
	m := NewManager(J2000)
	if err := m.SetTimeScalePreset("week"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.TimeScale() != 604800 {
		t.Errorf("week preset: got %g", m.TimeScale())
	}
	if err := m.SetTimeScalePreset("fortnight"); !errors.Is(err, types.ErrConfiguration) {
		t.Errorf("expected configuration error for unknown preset, got %v", err)
	}
}

func TestAdvanceBySeconds(t *testing.T) {
	m := NewManager(J2000)
	m.AdvanceBySeconds(86400)
	if math.Abs(m.JulianDate()-(J2000+1)) > 1e-9 {
		t.Errorf("86400 s should advance one day, got %f", m.JulianDate())
	}
}

func TestCallbackOrderAndRemoval(t *testing.T) {
	m := NewManager(J2000)

	var order []int
	m.AddTimeChangeCallback(func(float64) { order = append(order, 1) })
	id2 := m.AddTimeChangeCallback(func(float64) { order = append(order, 2) })
	m.AddTimeChangeCallback(func(float64) { order = append(order, 3) })

	m.AdvanceByDays(1)
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("callbacks ran out of order: %v", order)
	}

	m.RemoveTimeChangeCallback(id2)
	order = order[:0]
	m.AdvanceByDays(1)
	if len(order) != 2 || order[0] != 1 || order[1] != 3 {
		t.Errorf("after removal: %v", order)
	}
}

func TestCallbackPanicIsIsolated(t *testing.T) {
	m := NewManager(J2000)

	ran := false
	m.AddTimeChangeCallback(func(float64) { panic("boom") })
	m.AddTimeChangeCallback(func(float64) { ran = true })

	m.AdvanceByDays(1)

	if !ran {
		t.Error("a panicking callback must not block later callbacks")
	}
	if m.CallbackFailures() != 1 {
		t.Errorf("failure count: got %d, want 1", m.CallbackFailures())
	}
	if math.Abs(m.JulianDate()-(J2000+1)) > 1e-9 {
		t.Errorf("clock state corrupted by callback panic: %f", m.JulianDate())
	}
}

func TestSiderealTimeGreenwich(t *testing.T) {
	m := NewManager(J2000)

	gst := m.SiderealTimeGreenwich()
	if gst < 0 || gst >= 360 {
		t.Fatalf("GST %g outside [0, 360)", gst)
	}
	// At J2000.0 the GST is the polynomial's leading coefficient.
	if math.Abs(gst-280.46061837) > 1e-6 {
		t.Errorf("GST at J2000: got %.8f, want 280.46061837", gst)
	}

	// One sidereal rotation later the angle nearly repeats.
	m.AdvanceByDays(0.9972695663)
	diff := math.Abs(m.SiderealTimeGreenwich() - gst)
	if diff > 0.01 && math.Abs(diff-360) > 0.01 {
		t.Errorf("GST after one sidereal day drifted by %g degrees", diff)
	}
}
