package positions

import (
	"fmt"
	"strings"
)

type OptionKind int

const (
	Call OptionKind = iota
	Put
)

func (k OptionKind) String() string {
	switch k {
	case Call:
		return "call"
	case Put:
		return "put"
	default:
		return fmt.Sprintf("OptionKind(%d)", int(k))
	}
}

func ParseOptionKind(s string) (OptionKind, error) {
	switch strings.ToLower(s) {
	case "call":
		return Call, nil
	case "put":
		return Put, nil
	}
	return 0, fmt.Errorf("unknown option kind %q", s)
}

// BlackResult is the output of one evaluation of the Black formula.
type BlackResult struct {
	Forward   float64 `json:"forward"`
	D1        float64 `json:"d1"`
	D2        float64 `json:"d2"`
	CallPrice float64 `json:"call_price"`
	PutPrice  float64 `json:"put_price"`
}

func (r BlackResult) Price(kind OptionKind) float64 {
	if kind == Put {
		return r.PutPrice
	}
	return r.CallPrice
}

// BlackGreeks are sensitivities of the undiscounted Black price.
type BlackGreeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
	Theta float64 `json:"theta"`
}
