package shortcut

import "strings"

// registrationKeys maps editor key names to the literal character a hotkey
// library expects. Names without an entry pass through unchanged.
var registrationKeys = map[string]string{
	"Exclamation":       "!",
	"At":                "@",
	"Hash":              "#",
	"Dollar":            "$",
	"Percent":           "%",
	"Caret":             "^",
	"Ampersand":         "&",
	"Asterisk":          "*",
	"LeftParen":         "(",
	"RightParen":        ")",
	"Underscore":        "_",
	"LeftCurlyBracket":  "{",
	"RightCurlyBracket": "}",
	"Pipe":              "|",
	"Colon":             ":",
	"DoubleQuote":       "\"",
	"LeftAngleBracket":  "<",
	"RightAngleBracket": ">",
	"Question":          "?",
	"Tilde":             "~",
	"Backtick":          "`",
}

func init() {
	for punct, name := range Aliases {
		registrationKeys[name] = punct
	}
	for d := '0'; d <= '9'; d++ {
		registrationKeys["Digit"+string(d)] = string(d)
	}
}

// TranslateKey returns the registration form of an editor key name, e.g.
// "BracketLeft" -> "[". Unknown names are returned as given.
func TranslateKey(name string) string {
	if v, ok := registrationKeys[name]; ok {
		return v
	}
	return name
}

// Translate converts an editor shortcut such as "Control+Alt+BracketLeft"
// into registration form: modifiers lower-cased in their original order and
// the key passed through TranslateKey.
func Translate(s string) string {
	parts := strings.Split(s, Separator)
	if len(parts) <= 1 {
		return TranslateKey(s)
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts[:len(parts)-1] {
		out = append(out, strings.ToLower(p))
	}
	out = append(out, TranslateKey(parts[len(parts)-1]))
	return strings.Join(out, Separator)
}
