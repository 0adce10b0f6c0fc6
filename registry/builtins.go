/*
File    : rant/registry/builtins.go
Package : registry

Built-in function catalog: the grounding set named in SPEC_FULL.md §4.J so
an engine is runnably complete without an external host registering
anything. Each file section registers its overloads via an init()-style
call from NewDefault, matching the teacher's std package convention of one
file per functional area appending to a shared catalog.
*/
package registry

import (
	"strconv"
	"strings"
)

// NewDefault builds a Registry pre-populated with the built-in catalog.
func NewDefault() *Registry {
	r := NewRegistry()
	registerRandom(r)
	registerNumber(r)
	registerBlockPosition(r)
	registerTextShaping(r)
	return r
}

func registerRandom(r *Registry) {
	r.Register("rand", nil, Overload{
		Arity: 1,
		Modes: []ParamMode{Cooked},
		Handler: func(rt Runtime, args []string) (string, error) {
			n := atoiOr(args[0], 0)
			if n <= 0 {
				return "0", nil
			}
			return strconv.Itoa(rt.RandIntn(n)), nil
		},
	}, "rand:n -- uniform integer in [0,n)")

	r.Register("rand", nil, Overload{
		Arity: 2,
		Modes: []ParamMode{Cooked, Cooked},
		Handler: func(rt Runtime, args []string) (string, error) {
			min := atoiOr(args[0], 0)
			max := atoiOr(args[1], min)
			if max < min {
				min, max = max, min
			}
			span := max - min + 1
			return strconv.Itoa(min + rt.RandIntn(span)), nil
		},
	}, "rand:min;max -- uniform integer in [min,max]")
}

func registerNumber(r *Registry) {
	r.Register("numfmt", nil, Overload{
		Arity: 1,
		Modes: []ParamMode{Raw},
		Handler: func(rt Runtime, args []string) (string, error) {
			rt.PushFormat("number", strings.TrimSpace(args[0]))
			return "", nil
		},
	}, "numfmt:format -- sets the active number format (e.g. verbal-en)")

	r.Register("num", nil, Overload{
		Arity: 2,
		Modes: []ParamMode{Cooked, Cooked},
		Handler: func(rt Runtime, args []string) (string, error) {
			n := atoiOr(args[0], 0)
			format, _ := rt.GetFormat("number")
			return formatNumber(n, format), nil
		},
	}, "num:value;precision -- formats value under the active number format")
}

func formatNumber(n int, format string) string {
	if format == "verbal-en" {
		if word, ok := verbalEnglish(n); ok {
			return word
		}
	}
	return strconv.Itoa(n)
}

var verbalOnes = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight",
	"nine", "ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
	"sixteen", "seventeen", "eighteen", "nineteen",
}

func verbalEnglish(n int) (string, bool) {
	if n < 0 || n >= len(verbalOnes) {
		return "", false
	}
	return verbalOnes[n], true
}

func registerBlockPosition(r *Registry) {
	r.Register("first", nil, Overload{
		Arity: 0,
		Handler: func(rt Runtime, args []string) (string, error) {
			return boolTag(rt, func(b BlockState) bool { return b.Index == 0 }), nil
		},
	}, "first -- non-empty iff the current block iteration is the first")

	r.Register("last", nil, Overload{
		Arity: 0,
		Handler: func(rt Runtime, args []string) (string, error) {
			return boolTag(rt, func(b BlockState) bool { return b.Total >= 0 && b.Index == b.Total-1 }), nil
		},
	}, "last -- non-empty iff the current block iteration is the last")

	r.Register("notlast", nil, Overload{
		Arity: 0,
		Handler: func(rt Runtime, args []string) (string, error) {
			return boolTag(rt, func(b BlockState) bool { return !(b.Total >= 0 && b.Index == b.Total-1) }), nil
		},
	}, "notlast -- non-empty unless the current block iteration is the last")

	r.Register("even", nil, Overload{
		Arity: 0,
		Handler: func(rt Runtime, args []string) (string, error) {
			return boolTag(rt, func(b BlockState) bool { return b.Index%2 == 0 }), nil
		},
	}, "even -- non-empty iff the current iteration index is even")

	r.Register("odd", nil, Overload{
		Arity: 0,
		Handler: func(rt Runtime, args []string) (string, error) {
			return boolTag(rt, func(b BlockState) bool { return b.Index%2 == 1 }), nil
		},
	}, "odd -- non-empty iff the current iteration index is odd")

	r.Register("nth", nil, Overload{
		Arity: 2,
		Modes: []ParamMode{Cooked, Cooked},
		Handler: func(rt Runtime, args []string) (string, error) {
			n := atoiOr(args[0], 1)
			offset := atoiOr(args[1], 0)
			return boolTag(rt, func(b BlockState) bool {
				if n <= 0 {
					return false
				}
				return (b.Index-offset)%n == 0
			}), nil
		},
	}, "nth:n;offset -- non-empty every n-th iteration starting at offset")
}

func boolTag(rt Runtime, pred func(BlockState) bool) string {
	b, ok := rt.CurrentBlock()
	if !ok {
		return ""
	}
	if pred(b) {
		return "true"
	}
	return ""
}

func registerTextShaping(r *Registry) {
	r.Register("case", nil, Overload{
		Arity: 2,
		Modes: []ParamMode{Raw, Cooked},
		Handler: func(rt Runtime, args []string) (string, error) {
			return applyCase(strings.TrimSpace(args[0]), args[1]), nil
		},
	}, "case:mode;text -- applies a capitalization mode to text")

	r.Register("a", []string{"an"}, Overload{
		Arity: 1,
		Modes: []ParamMode{Cooked},
		Handler: func(rt Runtime, args []string) (string, error) {
			return withIndefiniteArticle(args[0]), nil
		},
	}, "a:text -- prefixes text with \"a\" or \"an\"")
}

func applyCase(mode, text string) string {
	switch mode {
	case "upper":
		return strings.ToUpper(text)
	case "lower":
		return strings.ToLower(text)
	case "title":
		return strings.Title(strings.ToLower(text))
	case "sentence":
		if text == "" {
			return text
		}
		r := []rune(text)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		return string(r)
	default:
		return text
	}
}

func withIndefiniteArticle(text string) string {
	if text == "" {
		return text
	}
	lower := strings.ToLower(text)
	if strings.ContainsRune("aeiou", rune(lower[0])) {
		return "an " + text
	}
	return "a " + text
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}
