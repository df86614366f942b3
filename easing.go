package wisp

import (
	"strconv"
	"strings"

	"github.com/tanema/gween/ease"
)

// Default curve ids. Enter decelerates; exit snaps back with a slight
// overshoot.
const (
	DefaultEnterEase = "power2.out"
	DefaultExitEase  = "back.out(1.7)"
)

// easeFamily holds the in/out/inOut variants of a curve.
type easeFamily struct {
	in, out, inOut ease.TweenFunc
}

var easeFamilies = map[string]easeFamily{
	"power1":  {ease.InQuad, ease.OutQuad, ease.InOutQuad},
	"power2":  {ease.InCubic, ease.OutCubic, ease.InOutCubic},
	"power3":  {ease.InQuart, ease.OutQuart, ease.InOutQuart},
	"power4":  {ease.InQuint, ease.OutQuint, ease.InOutQuint},
	"quad":    {ease.InQuad, ease.OutQuad, ease.InOutQuad},
	"cubic":   {ease.InCubic, ease.OutCubic, ease.InOutCubic},
	"quart":   {ease.InQuart, ease.OutQuart, ease.InOutQuart},
	"quint":   {ease.InQuint, ease.OutQuint, ease.InOutQuint},
	"sine":    {ease.InSine, ease.OutSine, ease.InOutSine},
	"expo":    {ease.InExpo, ease.OutExpo, ease.InOutExpo},
	"circ":    {ease.InCirc, ease.OutCirc, ease.InOutCirc},
	"back":    {ease.InBack, ease.OutBack, ease.InOutBack},
	"elastic": {ease.InElastic, ease.OutElastic, ease.InOutElastic},
	"bounce":  {ease.InBounce, ease.OutBounce, ease.InOutBounce},
}

// ParseEase resolves a curve id such as "power2.out", "sine.inOut",
// "back.out(1.7)" or "none" to a gween easing function. A family without a
// direction defaults to its out variant.
func ParseEase(id string) (ease.TweenFunc, error) {
	switch id {
	case "", "none", "linear", "power0":
		return ease.Linear, nil
	}

	name, param, hasParam, err := splitEaseParam(id)
	if err != nil {
		return nil, err
	}
	family, dir, _ := strings.Cut(name, ".")
	fam, ok := easeFamilies[family]
	if !ok {
		return nil, &ConfigError{Field: "easing", Reason: "unknown curve " + quote(id)}
	}
	if hasParam && family != "back" {
		return nil, &ConfigError{Field: "easing", Reason: "curve " + quote(family) + " takes no parameter"}
	}

	switch dir {
	case "in":
		if hasParam {
			return backIn(param), nil
		}
		return fam.in, nil
	case "", "out":
		if hasParam {
			return backOut(param), nil
		}
		return fam.out, nil
	case "inOut":
		if hasParam {
			return backInOut(param), nil
		}
		return fam.inOut, nil
	}
	return nil, &ConfigError{Field: "easing", Reason: "unknown direction in " + quote(id)}
}

// MustEase is ParseEase for ids known at compile time.
func MustEase(id string) ease.TweenFunc {
	fn, err := ParseEase(id)
	if err != nil {
		panic(err)
	}
	return fn
}

func splitEaseParam(id string) (name string, param float32, ok bool, err error) {
	open := strings.IndexByte(id, '(')
	if open < 0 {
		return id, 0, false, nil
	}
	if !strings.HasSuffix(id, ")") {
		return "", 0, false, &ConfigError{Field: "easing", Reason: "unterminated parameter in " + quote(id)}
	}
	v, perr := strconv.ParseFloat(id[open+1:len(id)-1], 32)
	if perr != nil || v < 0 {
		return "", 0, false, &ConfigError{Field: "easing", Reason: "bad parameter in " + quote(id)}
	}
	return id[:open], float32(v), true, nil
}

// backIn, backOut and backInOut are the overshoot curves with a caller-chosen
// overshoot amount; gween fixes it at 1.70158.

func backIn(s float32) ease.TweenFunc {
	return func(t, b, c, d float32) float32 {
		t /= d
		return c*t*t*((s+1)*t-s) + b
	}
}

func backOut(s float32) ease.TweenFunc {
	return func(t, b, c, d float32) float32 {
		t = t/d - 1
		return c*(t*t*((s+1)*t+s)+1) + b
	}
}

func backInOut(s float32) ease.TweenFunc {
	s *= 1.525
	return func(t, b, c, d float32) float32 {
		t = t / d * 2
		if t < 1 {
			return c/2*(t*t*((s+1)*t-s)) + b
		}
		t -= 2
		return c/2*(t*t*((s+1)*t+s)+2) + b
	}
}
