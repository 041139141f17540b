package player

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Command is a single script step.
type Command struct {
	Verb string
	Args []string
	// Line is 1-based script line command came from.
	Line int
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Verb
	}
	return c.Verb + " " + strings.Join(c.Args, " ")
}

type arity struct{ min, max int }

var verbs = map[string]arity{
	"next":    {0, 0},
	"prev":    {0, 0},
	"first":   {0, 0},
	"last":    {0, 0},
	"go":      {1, 1}, // way
	"page":    {1, 2}, // index [progress]
	"link":    {1, 1},
	"href":    {1, 1},
	"drag":    {3, 3}, // dx dy viewport-percent
	"wheel":   {2, 2}, // dx dy
	"release": {0, 2}, // [vx vy]
	"zoom":    {0, 2}, // [x y]
	"pinch":   {3, 3}, // x y multiplier
	"percent": {1, 1},
	"mode":    {1, 1},
	"tags":    {0, 1}, // k=v,k=v
	"resize":  {1, 1}, // WxH
	"wait":    {1, 1}, // duration
	"tree":    {0, 0},
}

// Parse reads script: one command per line or several separated by
// semicolons, '#' starts a comment.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	for ln := 1; sc.Scan(); ln++ {
		text, _, _ := strings.Cut(sc.Text(), "#")
		for part := range strings.SplitSeq(text, ";") {
			fields := strings.Fields(part)
			if len(fields) == 0 {
				continue
			}
			cmd := Command{Verb: strings.ToLower(fields[0]), Args: fields[1:], Line: ln}
			a, ok := verbs[cmd.Verb]
			if !ok {
				return nil, fmt.Errorf("line %d: unknown command %q", ln, fields[0])
			}
			if len(cmd.Args) < a.min || len(cmd.Args) > a.max {
				return nil, fmt.Errorf("line %d: %s expects %d to %d arguments, got %d", ln, cmd.Verb, a.min, a.max, len(cmd.Args))
			}
			cmds = append(cmds, cmd)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("unable to read script: %w", err)
	}
	return cmds, nil
}

// ParseString is Parse for inline scripts.
func ParseString(s string) ([]Command, error) {
	return Parse(strings.NewReader(s))
}
