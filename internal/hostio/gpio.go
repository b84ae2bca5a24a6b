package hostio

// ManualResetButton is a reference machine.ResetButton driven by an
// explicit host call (e.g. a bound key or UI button) rather than a real
// GPIO line.
type ManualResetButton struct {
	pressed bool
}

// SetPressed is called by the host when the bound reset key/button
// changes state.
func (r *ManualResetButton) SetPressed(pressed bool) { r.pressed = pressed }

// Pressed satisfies machine.ResetButton.
func (r *ManualResetButton) Pressed() bool { return r.pressed }

// NullJoystick reports no button and a comparator that always reads 0, standing in
// for the ADC comparator loop when no physical joystick is wired to the
// host.
type NullJoystick struct{}

func (NullJoystick) Button() byte     { return 0 }
func (NullJoystick) Comparator() byte { return 0 }
