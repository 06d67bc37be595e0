package cracker

import (
	"fmt"
	"strings"
)

// ParseRules builds a candidate transform from rule tokens:
//
//	+u  upper case      +l  lower case      +c  capitalize
//	+d1 append 0-9      +d2 append 00-99
//
// The original word is always the first candidate. No tokens means no
// transform.
func ParseRules(tokens []string) (func(string) []string, error) {
	var rules []string
	for _, r := range tokens {
		r = strings.TrimSpace(r)
		switch r {
		case "":
			continue
		case "+u", "+l", "+c", "+d1", "+d2":
			rules = append(rules, r)
		default:
			return nil, fmt.Errorf("%w: unknown rule %q", ErrConfiguration, r)
		}
	}
	if len(rules) == 0 {
		return nil, nil
	}
	return func(s string) []string {
		out := []string{s}
		for _, r := range rules {
			switch r {
			case "+u":
				out = append(out, strings.ToUpper(s))
			case "+l":
				out = append(out, strings.ToLower(s))
			case "+c":
				if len(s) > 0 {
					out = append(out, strings.ToUpper(s[:1])+s[1:])
				}
			case "+d1":
				for i := 0; i < 10; i++ {
					out = append(out, s+string(rune('0'+i)))
				}
			case "+d2":
				for i := 0; i < 100; i++ {
					out = append(out, s+fmt.Sprintf("%02d", i))
				}
			}
		}
		return out
	}, nil
}
