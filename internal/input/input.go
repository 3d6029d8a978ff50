// Package input provides the 16 key hexadecimal keypad capability.
package input

// KeyCount is the number of logical keys, 0x0 to 0xF.
const KeyCount = 16

// KeyState is the per tick state of a logical key.
type KeyState uint8

// Key states.
const (
	None     KeyState = iota // not held
	Pressed                  // held now, was not held on the previous update
	Down                     // held now and on the previous update
	Released                 // not held now, was held on the previous update
)

func (s KeyState) String() string {
	switch s {
	case None:
		return "none"
	case Pressed:
		return "pressed"
	case Down:
		return "down"
	case Released:
		return "released"
	default:
		return "unknown"
	}
}

// IsHeld returns whether the state means the key is currently held.
func (s KeyState) IsHeld() bool {
	return s == Pressed || s == Down
}

// Input exposes the state of the logical keys.
type Input interface {
	// KeyState returns the state of the given key, keys above 0xF report None.
	KeyState(key uint8) KeyState
}

// Compile-time check to ensure Keypad implements Input.
var _ Input = (*Keypad)(nil)

// Keypad tracks the state machine of all 16 keys. Update is called
// once per frame with the keys currently held by the host.
type Keypad struct {
	states [KeyCount]KeyState
}

// NewKeypad returns a keypad with all keys in the None state.
func NewKeypad() *Keypad {
	return &Keypad{}
}

// KeyState returns the state of the given key.
func (k *Keypad) KeyState(key uint8) KeyState {
	if int(key) >= KeyCount {
		return None
	}
	return k.states[key]
}

// Update advances the state machine of every key. Pressed and Released
// last exactly one update before becoming Down and None.
func (k *Keypad) Update(held [KeyCount]bool) {
	for i, isHeld := range held {
		k.states[i] = nextState(k.states[i], isHeld)
	}
}

// Reset puts all keys back into the None state.
func (k *Keypad) Reset() {
	k.states = [KeyCount]KeyState{}
}

func nextState(current KeyState, held bool) KeyState {
	if held {
		if current.IsHeld() {
			return Down
		}
		return Pressed
	}
	if current.IsHeld() {
		return Released
	}
	return None
}
