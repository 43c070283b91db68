package engine

import (
	"fmt"
	"strings"
)

// Key is a pre-classified keypad event.
type Key int

const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyDot
	KeyEquals
	KeyAdd
	KeySubtract
	KeyMultiply
	KeyDivide
	KeyPercent
	KeyNegate
	KeyClear
)

var keyLabels = [...]string{
	Key0: "0", Key1: "1", Key2: "2", Key3: "3", Key4: "4",
	Key5: "5", Key6: "6", Key7: "7", Key8: "8", Key9: "9",
	KeyDot:      ".",
	KeyEquals:   "=",
	KeyAdd:      "+",
	KeySubtract: "-",
	KeyMultiply: "*",
	KeyDivide:   "/",
	KeyPercent:  "%",
	KeyNegate:   "+/-",
	KeyClear:    "C",
}

// String returns the canonical keypad label, which ParseKey accepts back.
func (k Key) String() string {
	if k < 0 || int(k) >= len(keyLabels) {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyLabels[k]
}

// IsDigit reports whether k is one of 0-9.
func (k Key) IsDigit() bool { return k >= Key0 && k <= Key9 }

// Operator maps an operator key to its Operator, or OpNone.
func (k Key) Operator() Operator {
	switch k {
	case KeyAdd:
		return OpAdd
	case KeySubtract:
		return OpSubtract
	case KeyMultiply:
		return OpMultiply
	case KeyDivide:
		return OpDivide
	case KeyPercent:
		return OpPercent
	case KeyNegate:
		return OpNegate
	}
	return OpNone
}

var keyAliases = map[string]Key{
	".":        KeyDot,
	",":        KeyDot,
	"dot":      KeyDot,
	"=":        KeyEquals,
	"equals":   KeyEquals,
	"+":        KeyAdd,
	"add":      KeyAdd,
	"-":        KeySubtract,
	"subtract": KeySubtract,
	"*":        KeyMultiply,
	"x":        KeyMultiply,
	"×":        KeyMultiply,
	"multiply": KeyMultiply,
	"/":        KeyDivide,
	"÷":        KeyDivide,
	"divide":   KeyDivide,
	"%":        KeyPercent,
	"percent":  KeyPercent,
	"+/-":      KeyNegate,
	"±":        KeyNegate,
	"neg":      KeyNegate,
	"negate":   KeyNegate,
	"c":        KeyClear,
	"ac":       KeyClear,
	"clear":    KeyClear,
}

// ParseKey classifies a single textual token.
func ParseKey(s string) (Key, error) {
	tok := strings.ToLower(strings.TrimSpace(s))
	if len(tok) == 1 && tok[0] >= '0' && tok[0] <= '9' {
		return Key(tok[0] - '0'), nil
	}
	if k, ok := keyAliases[tok]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// ParseKeys splits a whitespace separated key script. Tokens made only of
// digits and dots are expanded into one key per character, so "12.5 + 3 ="
// is equivalent to "1 2 . 5 + 3 =".
func ParseKeys(script string) ([]Key, error) {
	var keys []Key
	for _, tok := range strings.Fields(script) {
		if isNumeral(tok) {
			for _, r := range tok {
				k, err := ParseKey(string(r))
				if err != nil {
					return nil, err
				}
				keys = append(keys, k)
			}
			continue
		}
		k, err := ParseKey(tok)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// ParseKeyList classifies each element of tokens; an element may itself be a
// multi-digit numeral.
func ParseKeyList(tokens []string) ([]Key, error) {
	return ParseKeys(strings.Join(tokens, " "))
}

func isNumeral(tok string) bool {
	if len(tok) < 2 {
		return false
	}
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if (c < '0' || c > '9') && c != '.' {
			return false
		}
	}
	return true
}
