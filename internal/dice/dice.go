// Package dice parses and evaluates dice expressions of the form
// "NdS+K" ("2d6", "d20", "3d8-1"). Rolling is deterministic for a given
// rand source, which keeps results reproducible in tests.
package dice

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

const (
	maxCount = 100
	maxSides = 1000
)

var (
	ErrBadExpr  = fmt.Errorf("invalid dice expression")
	ErrTooLarge = fmt.Errorf("dice expression out of range")

	exprRe = regexp.MustCompile(`^(\d*)[dD](\d+)([+-]\d+)?$`)
)

type Request struct {
	Count int
	Sides int
	Bonus int
}

type Result struct {
	Expr   string `json:"expr"`
	Values []int  `json:"values"`
	Bonus  int    `json:"bonus,omitempty"`
	Total  int    `json:"total"`
}

// Parse parses a dice expression. Whitespace is ignored, a missing
// count means one die.
func Parse(expr string) (Request, error) {
	s := strings.ReplaceAll(strings.TrimSpace(expr), " ", "")

	m := exprRe.FindStringSubmatch(s)
	if m == nil {
		return Request{}, fmt.Errorf("%w: %q", ErrBadExpr, expr)
	}

	req := Request{Count: 1}

	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return Request{}, fmt.Errorf("%w: %q", ErrBadExpr, expr)
		}

		req.Count = n
	}

	sides, err := strconv.Atoi(m[2])
	if err != nil || sides < 2 {
		return Request{}, fmt.Errorf("%w: %q", ErrBadExpr, expr)
	}

	req.Sides = sides

	if m[3] != "" {
		// the sign is part of the capture
		b, err := strconv.Atoi(m[3])
		if err != nil {
			return Request{}, fmt.Errorf("%w: %q", ErrBadExpr, expr)
		}

		req.Bonus = b
	}

	if req.Count > maxCount || req.Sides > maxSides {
		return Request{}, fmt.Errorf("%w: %q", ErrTooLarge, expr)
	}

	return req, nil
}

func (r Request) String() string {
	s := fmt.Sprintf("%dd%d", r.Count, r.Sides)

	switch {
	case r.Bonus > 0:
		s += fmt.Sprintf("+%d", r.Bonus)
	case r.Bonus < 0:
		s += strconv.Itoa(r.Bonus)
	}

	return s
}

// Roll evaluates the request with the given source. A nil source rolls
// with the shared default source.
func (r Request) Roll(rnd *rand.Rand) Result {
	res := Result{
		Expr:   r.String(),
		Values: make([]int, r.Count),
		Bonus:  r.Bonus,
		Total:  r.Bonus,
	}

	for i := 0; i < r.Count; i++ {
		var v int

		if rnd != nil {
			v = rnd.Intn(r.Sides) + 1
		} else {
			v = rand.Intn(r.Sides) + 1
		}

		res.Values[i] = v
		res.Total += v
	}

	return res
}

// RollExpr parses and rolls in one step.
func RollExpr(expr string, rnd *rand.Rand) (Result, error) {
	req, err := Parse(expr)
	if err != nil {
		return Result{}, err
	}

	return req.Roll(rnd), nil
}

// String renders the result the way it is shown in chat, e.g.
// "2d6+1: [3 5] + 1 = 9".
func (r Result) String() string {
	sb := new(strings.Builder)

	fmt.Fprintf(sb, "%s: %v", r.Expr, r.Values)

	switch {
	case r.Bonus > 0:
		fmt.Fprintf(sb, " + %d", r.Bonus)
	case r.Bonus < 0:
		fmt.Fprintf(sb, " - %d", -r.Bonus)
	}

	fmt.Fprintf(sb, " = %d", r.Total)

	return sb.String()
}
