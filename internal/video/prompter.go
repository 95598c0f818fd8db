package video

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ConsolePrompter answers acquisition decisions from an interactive stream.
// With AssumeYes set, confirmation and retry questions answer themselves so
// unattended runs never block on the terminal.
type ConsolePrompter struct {
	in        *bufio.Reader
	out       io.Writer
	AssumeYes bool
}

// NewConsolePrompter builds a prompter reading from in and writing to out.
func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{in: bufio.NewReader(in), out: out}
}

func (p *ConsolePrompter) ConfirmDownload(videoID string) (bool, error) {
	if p.AssumeYes {
		fmt.Fprintf(p.out, "Video %s not found in cache, downloading (--yes).\n", videoID)
		return true, nil
	}
	fmt.Fprintf(p.out, "Video %s not found in cache. Download now? (y/n): ", videoID)
	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	return isYes(answer), nil
}

func (p *ConsolePrompter) AskFormatCode() (string, error) {
	fmt.Fprint(p.out, "\nEnter a format code to try (or press Enter to abort): ")
	return p.readLine()
}

func (p *ConsolePrompter) AskRetry(lastErr error) (bool, error) {
	if p.AssumeYes {
		// One automatic pass already ran; do not loop forever unattended.
		return false, nil
	}
	fmt.Fprintf(p.out, "Video download failed: %v\n", lastErr)
	fmt.Fprint(p.out, "Download failed. Retry? (y/n): ")
	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	return isYes(answer), nil
}

func (p *ConsolePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && strings.TrimSpace(line) == "" {
		if err == io.EOF {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func isYes(answer string) bool {
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}
