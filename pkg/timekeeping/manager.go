// Package timekeeping converts between calendar dates and Julian dates and
// drives the simulation clock, including pause, time-scale presets and
// change notification.
package timekeeping

import (
	"log"
	"math"
	"sort"
	"time"

	"cosmossdk.io/errors"

	"github.com/orbitforge/astrosim/internal/types"
)

// J2000 is the Julian date of the J2000.0 reference epoch
// (2000-01-01 12:00:00 UTC).
const J2000 = 2451545.0

// Named time-scale presets in simulated seconds per real second.
var timeScalePresets = map[string]float64{
	"real":   1.0,
	"minute": 60.0,
	"hour":   3600.0,
	"day":    86400.0,
	"week":   604800.0,
	"month":  2592000.0,
	"year":   31536000.0,
}

// TimeChangeCallback observes every change of the current Julian date.
type TimeChangeCallback func(julianDate float64)

// Manager owns the simulation clock. The clock is a Julian date advanced
// by scaled wall time or by explicit offsets. Not safe for concurrent use.
type Manager struct {
	julianDate float64
	timeScale  float64
	paused     bool

	callbacks        map[int]TimeChangeCallback
	nextCallbackID   int
	callbackFailures int
}

// NewManager returns a manager starting at the given Julian date with a
// real-time scale.
func NewManager(julianDate float64) *Manager {
	return &Manager{
		julianDate: julianDate,
		timeScale:  1.0,
		callbacks:  make(map[int]TimeChangeCallback),
	}
}

// NewManagerAt returns a manager starting at the given calendar instant.
func NewManagerAt(t time.Time) *Manager {
	return NewManager(JulianDateFromTime(t))
}

// JulianDate returns the current simulation Julian date.
func (m *Manager) JulianDate() float64 { return m.julianDate }

// CurrentTime returns the current simulation instant as a calendar date.
func (m *Manager) CurrentTime() time.Time { return TimeFromJulianDate(m.julianDate) }

// TimeScale returns the current scale in simulated seconds per real second.
func (m *Manager) TimeScale() float64 { return m.timeScale }

// IsPaused reports whether the clock is paused.
func (m *Manager) IsPaused() bool { return m.paused }

// SetTimeScale sets the scale in simulated seconds per real second. Zero
// freezes advancement; negative values are rejected since the propagators
// assume monotonically increasing dates.
func (m *Manager) SetTimeScale(scale float64) error {
	if scale < 0 {
		return errors.Wrapf(types.ErrValidation, "time scale must be >= 0, got %g", scale)
	}
	m.timeScale = scale
	return nil
}

// SetTimeScalePreset applies a named preset (real, minute, hour, day,
// week, month, year).
func (m *Manager) SetTimeScalePreset(name string) error {
	scale, ok := timeScalePresets[name]
	if !ok {
		return errors.Wrapf(types.ErrConfiguration, "unknown time scale preset %q", name)
	}
	m.timeScale = scale
	return nil
}

// TimeScalePresets returns the preset names in sorted order.
func TimeScalePresets() []string {
	names := make([]string, 0, len(timeScalePresets))
	for name := range timeScalePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pause stops the clock. Update and the explicit advance methods are
// no-ops while paused.
func (m *Manager) Pause() { m.paused = true }

// Resume restarts the clock.
func (m *Manager) Resume() { m.paused = false }

// TogglePause flips the pause state and returns the new state.
func (m *Manager) TogglePause() bool {
	m.paused = !m.paused
	return m.paused
}

// Update advances the clock by realSeconds of wall time, scaled by the
// current time scale, and notifies callbacks. A zero time scale still
// notifies so observers see every unpaused tick. No-op while paused.
func (m *Manager) Update(realSeconds float64) {
	if m.paused {
		return
	}
	m.setJulianDate(m.julianDate + realSeconds*m.timeScale/86400.0)
}

// AdvanceByDays moves the clock by the given number of days. No-op while
// paused.
func (m *Manager) AdvanceByDays(days float64) {
	if m.paused {
		return
	}
	m.setJulianDate(m.julianDate + days)
}

// AdvanceBySeconds moves the clock by the given number of simulated
// seconds. No-op while paused.
func (m *Manager) AdvanceBySeconds(seconds float64) {
	m.AdvanceByDays(seconds / 86400.0)
}

// SetJulianDate jumps the clock to an absolute Julian date.
func (m *Manager) SetJulianDate(jd float64) {
	if jd == m.julianDate {
		return
	}
	m.setJulianDate(jd)
}

func (m *Manager) setJulianDate(jd float64) {
	m.julianDate = jd
	m.notify()
}

// AddTimeChangeCallback registers a callback invoked after every clock
// change and returns an id for later removal. Callbacks run in
// registration order.
func (m *Manager) AddTimeChangeCallback(cb TimeChangeCallback) int {
	id := m.nextCallbackID
	m.nextCallbackID++
	m.callbacks[id] = cb
	return id
}

// RemoveTimeChangeCallback unregisters a callback by id.
func (m *Manager) RemoveTimeChangeCallback(id int) {
	delete(m.callbacks, id)
}

// CallbackFailures returns the number of callback invocations that
// panicked since the manager was created.
func (m *Manager) CallbackFailures() int { return m.callbackFailures }

// notify invokes the callbacks in registration order. A panicking callback
// is logged and counted; it never interrupts the clock or its peers.
func (m *Manager) notify() {
	ids := make([]int, 0, len(m.callbacks))
	for id := range m.callbacks {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		m.invoke(id)
	}
}

func (m *Manager) invoke(id int) {
	defer func() {
		if r := recover(); r != nil {
			m.callbackFailures++
			log.Printf("time change callback %d panicked: %v", id, r)
		}
	}()
	m.callbacks[id](m.julianDate)
}

// J2000Days returns days elapsed since the J2000.0 epoch.
func (m *Manager) J2000Days() float64 { return m.julianDate - J2000 }

// J2000Centuries returns Julian centuries elapsed since J2000.0.
func (m *Manager) J2000Centuries() float64 { return m.J2000Days() / 36525.0 }

// SiderealTimeGreenwich returns Greenwich mean sidereal time in degrees,
// normalized to [0, 360), using the IAU 1982 polynomial.
func (m *Manager) SiderealTimeGreenwich() float64 {
	d := m.J2000Days()
	t := m.J2000Centuries()

	gst := 280.46061837 + 360.98564736629*d + 0.000387933*t*t - t*t*t/38710000.0
	gst = math.Mod(gst, 360)
	if gst < 0 {
		gst += 360
	}
	return gst
}

// JulianDateFromTime converts a calendar instant (treated as UTC, proleptic
// Gregorian) to a Julian date.
func JulianDateFromTime(t time.Time) float64 {
	t = t.UTC()
	year := t.Year()
	month := int(t.Month())
	day := t.Day()

	if month <= 2 {
		year--
		month += 12
	}

	a := year / 100
	b := 2 - a + a/4

	jdn := math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		float64(day) + float64(b) - 1524.5

	dayFraction := (float64(t.Hour()) +
		float64(t.Minute())/60.0 +
		(float64(t.Second())+float64(t.Nanosecond())/1e9)/3600.0) / 24.0

	return jdn + dayFraction
}

// TimeFromJulianDate converts a Julian date back to a UTC calendar
// instant. Inverse of JulianDateFromTime to sub-second precision.
func TimeFromJulianDate(jd float64) time.Time {
	jd += 0.5
	z := math.Floor(jd)
	f := jd - z

	a := z
	if z >= 2299161 {
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a = z + 1 + alpha - math.Floor(alpha/4)
	}

	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	dayWithFraction := b - d - math.Floor(30.6001*e) + f
	day := int(math.Floor(dayWithFraction))

	month := int(e - 1)
	if e >= 14 {
		month = int(e - 13)
	}

	year := int(c - 4716)
	if month <= 2 {
		year = int(c - 4715)
	}

	fraction := dayWithFraction - float64(day)
	totalSeconds := fraction * 86400.0
	hours := int(totalSeconds / 3600)
	minutes := int(math.Mod(totalSeconds, 3600) / 60)
	seconds := math.Mod(totalSeconds, 60)
	wholeSeconds := int(seconds)
	nanos := int(math.Round((seconds - float64(wholeSeconds)) * 1e9))

	return time.Date(year, time.Month(month), day, hours, minutes, wholeSeconds, nanos, time.UTC)
}
