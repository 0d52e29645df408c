// Package sanitizer rewrites message text so that one log event always
// renders as one printable line. Rules combine bitwise filter flags with a
// transform; the first matching rule wins for each rune.
package sanitizer

import (
	"encoding/hex"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Filter flags for character matching
const (
	FilterNonPrintable uint64 = 1 << iota // Matches runes not classified as printable by strconv.IsPrint
	FilterControl                         // Matches control characters (unicode.IsControl)
	FilterLineBreak                       // Matches '\n', '\r', U+0085, U+2028 and U+2029
	FilterShellSpecial                    // Matches common shell metacharacters: '`', '$', ';', '|', '&', '>', '<', '(', ')', '#'
)

// Transform flags for character transformation
const (
	TransformStrip     uint64 = 1 << iota // Removes the character
	TransformHexEncode                    // Encodes the character's UTF-8 bytes as "<XXYY>"
	TransformSpace                        // Replaces the character with a single space
)

// PolicyPreset defines pre-configured sanitization policies
type PolicyPreset string

const (
	PolicyRaw   PolicyPreset = "raw"   // No-op passthrough
	PolicyTxt   PolicyPreset = "txt"   // Hex-encodes every non-printable rune
	PolicyLine  PolicyPreset = "line"  // Folds line breaks into spaces, hex-encodes other non-printables
	PolicyShell PolicyPreset = "shell" // Strips shell metacharacters and control characters
)

// rule represents a single sanitization rule
type rule struct {
	filter    uint64
	transform uint64
}

// policyRules contains pre-configured rules for each policy
var policyRules = map[PolicyPreset][]rule{
	PolicyRaw: {},
	PolicyTxt: {{filter: FilterNonPrintable, transform: TransformHexEncode}},
	PolicyLine: {
		{filter: FilterLineBreak, transform: TransformSpace},
		{filter: FilterNonPrintable, transform: TransformHexEncode},
	},
	PolicyShell: {{filter: FilterShellSpecial | FilterControl, transform: TransformStrip}},
}

// filterOrder fixes the evaluation order of individual filter flags
var filterOrder = []uint64{FilterNonPrintable, FilterControl, FilterLineBreak, FilterShellSpecial}

// filterCheckers maps individual filter flags to their check functions
var filterCheckers = map[uint64]func(rune) bool{
	FilterNonPrintable: func(r rune) bool { return !strconv.IsPrint(r) },
	FilterControl:      unicode.IsControl,
	FilterLineBreak: func(r rune) bool {
		switch r {
		case '\n', '\r', '\u0085', '\u2028', '\u2029':
			return true
		}
		return false
	},
	FilterShellSpecial: func(r rune) bool {
		switch r {
		case '`', '$', ';', '|', '&', '>', '<', '(', ')', '#':
			return true
		}
		return false
	},
}

// Sanitizer applies an ordered rule list to strings.
// A configured Sanitizer is safe for concurrent use by multiple goroutines.
type Sanitizer struct {
	rules []rule
}

// New creates a new Sanitizer instance without rules
func New() *Sanitizer {
	return &Sanitizer{}
}

// ForPolicy creates a Sanitizer preloaded with a preset
func ForPolicy(preset PolicyPreset) *Sanitizer {
	return New().Policy(preset)
}

// Rule adds a custom rule to the sanitizer (appended, earliest rule applies first).
// Rules must be added before the Sanitizer is shared.
func (s *Sanitizer) Rule(filter uint64, transform uint64) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy applies a pre-configured policy to the sanitizer (appended)
func (s *Sanitizer) Policy(preset PolicyPreset) *Sanitizer {
	if rules, ok := policyRules[preset]; ok {
		s.rules = append(s.rules, rules...)
	}
	return s
}

// Sanitize applies all configured rules to the input string.
// Input without any matching rune is returned unchanged without allocating.
func (s *Sanitizer) Sanitize(data string) string {
	if len(s.rules) == 0 {
		return data
	}

	clean := true
	for _, r := range data {
		if s.match(r) >= 0 {
			clean = false
			break
		}
	}
	if clean {
		return data
	}

	buf := make([]byte, 0, len(data)+16)
	for _, r := range data {
		if i := s.match(r); i >= 0 {
			buf = applyTransform(buf, r, s.rules[i].transform)
			continue
		}
		buf = utf8.AppendRune(buf, r)
	}
	return string(buf)
}

// match returns the index of the first rule matching r, or -1
func (s *Sanitizer) match(r rune) int {
	for i, rl := range s.rules {
		if matchesFilter(r, rl.filter) {
			return i
		}
	}
	return -1
}

// matchesFilter checks if a rune matches any filter in the mask
func matchesFilter(r rune, filterMask uint64) bool {
	for _, flag := range filterOrder {
		if (filterMask&flag) != 0 && filterCheckers[flag](r) {
			return true
		}
	}
	return false
}

// applyTransform applies the specified transform to the buffer
func applyTransform(buf []byte, r rune, transformMask uint64) []byte {
	switch {
	case (transformMask & TransformStrip) != 0:
		// Do nothing (strip)
		return buf

	case (transformMask & TransformSpace) != 0:
		return append(buf, ' ')

	case (transformMask & TransformHexEncode) != 0:
		var runeBytes [utf8.UTFMax]byte
		n := utf8.EncodeRune(runeBytes[:], r)
		buf = append(buf, '<')
		buf = hex.AppendEncode(buf, runeBytes[:n])
		return append(buf, '>')

	default:
		return utf8.AppendRune(buf, r)
	}
}
