package timeline

import (
	"math"
	"time"

	"golang.org/x/exp/slices"
)

type (
	// Alerts is the view of the model containing the transient messages shown
	// to the user.
	Alerts Model

	Alert struct {
		Name      string // alerts with the same non-empty name replace each other
		Priority  AlertPriority
		Message   string
		Duration  time.Duration
		FadeLevel float64 // 0 = hidden, 1 = fully visible
	}

	AlertPriority int
)

const (
	None AlertPriority = iota
	Info
	Warning
	Error
)

const (
	defaultAlertDuration = 3 * time.Second
	alertFadeTime        = 150 * time.Millisecond
)

func (m *Model) Alerts() *Alerts { return (*Alerts)(m) }

// Iterate yields the alerts, highest priority last. It can be used with
// range-over-func.
func (m *Alerts) Iterate(yield func(index int, alert Alert) bool) {
	for i, a := range m.alerts {
		if !yield(i, a) {
			break
		}
	}
}

// Len returns the number of alerts still visible or fading.
func (m *Alerts) Len() int { return len(m.alerts) }

// Update advances the alert timers by d. It returns true if any alert is
// still animating, i.e. the caller should update again soon.
func (m *Alerts) Update(d time.Duration) (animating bool) {
	step := float64(d) / float64(alertFadeTime)
	for i := len(m.alerts) - 1; i >= 0; i-- {
		a := &m.alerts[i]
		if a.Duration >= d {
			a.Duration -= d
			if a.FadeLevel < 1 {
				animating = true
				a.FadeLevel = math.Min(a.FadeLevel+step, 1)
			}
			continue
		}
		a.Duration = 0
		a.FadeLevel = math.Max(a.FadeLevel-step, 0)
		if a.FadeLevel > 0 {
			animating = true
			continue
		}
		m.alerts = slices.Delete(m.alerts, i, i+1)
	}
	return
}

func (m *Alerts) Add(message string, priority AlertPriority) {
	m.AddAlert(Alert{
		Priority: priority,
		Message:  message,
		Duration: defaultAlertDuration,
	})
}

func (m *Alerts) AddNamed(name, message string, priority AlertPriority) {
	m.AddAlert(Alert{
		Name:     name,
		Priority: priority,
		Message:  message,
		Duration: defaultAlertDuration,
	})
}

// ClearNamed removes the named alert immediately.
func (m *Alerts) ClearNamed(name string) {
	m.alerts = slices.DeleteFunc(m.alerts, func(a Alert) bool { return a.Name == name })
}

func (m *Alerts) AddAlert(a Alert) {
	if a.Name != "" {
		for i := range m.alerts {
			if m.alerts[i].Name == a.Name {
				a.FadeLevel = m.alerts[i].FadeLevel
				m.alerts[i] = a
				m.sortAlerts()
				return
			}
		}
	}
	m.alerts = append(m.alerts, a)
	m.sortAlerts()
}

func (m *Alerts) sortAlerts() {
	slices.SortStableFunc(m.alerts, func(a, b Alert) int { return int(a.Priority) - int(b.Priority) })
}
