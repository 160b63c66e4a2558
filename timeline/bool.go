package timeline

type (
	Bool struct {
		value BoolValue
	}

	BoolValue interface {
		Value() bool
		SetValue(bool)
	}

	simpleBool bool
)

func MakeBool(value BoolValue) Bool {
	return Bool{value: value}
}

func MakeBoolFromPtr(value *bool) Bool {
	return Bool{value: (*simpleBool)(value)}
}

func (v Bool) Toggle() {
	v.SetValue(!v.Value())
}

func (v Bool) SetValue(value bool) {
	if v.Enabled() && v.Value() != value {
		v.value.SetValue(value)
	}
}

func (v Bool) Value() bool {
	if v.value == nil {
		return false
	}
	return v.value.Value()
}

func (v Bool) Enabled() bool {
	if v.value == nil {
		return false
	}
	e, ok := v.value.(Enabler)
	if !ok {
		return true
	}
	return e.Enabled()
}

func (v *simpleBool) Value() bool         { return bool(*v) }
func (v *simpleBool) SetValue(value bool) { *v = simpleBool(value) }

// ShowRows returns a Bool toggling the pitch row overlay.
func (m *Model) ShowRows() Bool { return MakeBoolFromPtr(&m.showRows) }

// Detune returns a Bool toggling the second, slightly detuned oscillator.
// Changing it affects the next playback.
func (m *Model) Detune() Bool { return MakeBool((*detune)(m)) }

type detune Model

func (m *detune) Value() bool         { return m.params.Detune }
func (m *detune) SetValue(value bool) { m.params.Detune = value }
