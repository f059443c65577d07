package backend

import "fmt"

// Key is a keyboard key the viewer reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyF
	KeyF11
	KeyL
	KeyR
	KeyM
	KeyQ
	Key0
	KeyMinus
	KeyEqual
	KeySpace
	KeyEscape
	KeyReturn
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyKP0
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP6
	KeyKP8
	KeyKP9
	KeyKPMinus
	KeyKPPlus
	KeyKPEnter
)

var keyNames = map[Key]string{
	KeyUnknown:  "Unknown",
	KeyF:        "F",
	KeyF11:      "F11",
	KeyL:        "L",
	KeyR:        "R",
	KeyM:        "M",
	KeyQ:        "Q",
	Key0:        "0",
	KeyMinus:    "-",
	KeyEqual:    "=",
	KeySpace:    "Space",
	KeyEscape:   "Escape",
	KeyReturn:   "Return",
	KeyLeft:     "Left",
	KeyRight:    "Right",
	KeyUp:       "Up",
	KeyDown:     "Down",
	KeyPageUp:   "PageUp",
	KeyPageDown: "PageDown",
	KeyKP0:      "Keypad 0",
	KeyKP2:      "Keypad 2",
	KeyKP3:      "Keypad 3",
	KeyKP4:      "Keypad 4",
	KeyKP6:      "Keypad 6",
	KeyKP8:      "Keypad 8",
	KeyKP9:      "Keypad 9",
	KeyKPMinus:  "Keypad -",
	KeyKPPlus:   "Keypad +",
	KeyKPEnter:  "Keypad Enter",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int(k))
}
