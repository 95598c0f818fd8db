package selection

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"previewgen/internal/catalog"
)

// ErrNoInput indicates the interactive prompt source was exhausted before a
// recognizable choice arrived.
var ErrNoInput = errors.New("selection: input closed before a choice was made")

// Chooser drives the interactive selection menu. The prompt source is
// injectable so the loop is testable without a terminal. The menu is printed
// at most once per Chooser, which is run-scoped state rather than a process
// global.
type Chooser struct {
	in          *bufio.Reader
	out         io.Writer
	menuPrinted bool
}

// NewChooser builds a Chooser reading choices from in and writing prompts to out.
func NewChooser(in io.Reader, out io.Writer) *Chooser {
	return &Chooser{in: bufio.NewReader(in), out: out}
}

// Choose prompts until a recognized mode is entered and resolves it against
// the catalog. Unrecognized input re-prompts; a closed input stream returns
// ErrNoInput.
func (c *Chooser) Choose(cat *catalog.Catalog) (Mode, []int, error) {
	for {
		if !c.menuPrinted {
			fmt.Fprintln(c.out, "\nChoices:")
			fmt.Fprintln(c.out, " 1) all     - regenerate for every screw")
			fmt.Fprintln(c.out, " 2) missing - only screws where preview is empty")
			fmt.Fprintln(c.out, " 3) ids     - comma list like 1,5,12")
			c.menuPrinted = true
		}
		fmt.Fprint(c.out, "Enter choice (all/missing/ids): ")
		line, err := c.readLine()
		if err != nil {
			return "", nil, err
		}
		mode, ok := ParseMode(line)
		if !ok {
			fmt.Fprintln(c.out, "Unknown choice")
			continue
		}
		if mode != ModeIDs {
			ids, err := Resolve(cat, mode, "")
			return mode, ids, err
		}
		fmt.Fprint(c.out, "Enter comma-separated ids: ")
		raw, err := c.readLine()
		if err != nil {
			return "", nil, err
		}
		return ModeIDs, ParseIDList(raw), nil
	}
}

func (c *Chooser) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		return "", ErrNoInput
	}
	return strings.TrimSpace(line), nil
}
