// SPDX-License-Identifier: MIT

package circuit

import (
	"fmt"
	"strconv"
	"strings"
)

func (c *SLH) String() string {
	return "(" + c.s.String() + ", " + c.l.String() + ", " + c.h.String() + ")"
}

func (c *Symbol) String() string { return c.name }
func (cidentity) String() string { return "cid(1)" }
func (czero) String() string     { return "cid(0)" }

func (c *SeriesProduct) String() string {
	parts := make([]string, len(c.ops))
	for i, o := range c.ops {
		parts[i] = operand(o, KindConcatenation)
	}
	return strings.Join(parts, " << ")
}

// String renders runs of CIdentity as a single cid(k).
func (c *Concatenation) String() string {
	var parts []string
	run := 0
	flush := func() {
		if run > 0 {
			parts = append(parts, "cid("+strconv.Itoa(run)+")")
			run = 0
		}
	}
	for _, o := range c.ops {
		if o.Kind() == KindIdentity {
			run++
			continue
		}
		flush()
		parts = append(parts, operand(o, KindSeries))
	}
	flush()

	return strings.Join(parts, " + ")
}

func (c *CPermutation) String() string {
	parts := make([]string, len(c.perm))
	for i, p := range c.perm {
		parts[i] = strconv.Itoa(p)
	}
	return "P_sigma(" + strings.Join(parts, ", ") + ")"
}

func (c *Feedback) String() string {
	last := c.op.CDim() - 1
	if c.out == last && c.in == last {
		return "FB(" + c.op.String() + ")"
	}
	return fmt.Sprintf("FB(%s, %d, %d)", c.op, c.out, c.in)
}

func (c *SeriesInverse) String() string { return "[" + c.op.String() + "]^(-1)" }

// operand parenthesizes o when it is of the weaker-binding kind.
func operand(o Circuit, paren Kind) string {
	if o.Kind() == paren {
		return "(" + o.String() + ")"
	}
	return o.String()
}
