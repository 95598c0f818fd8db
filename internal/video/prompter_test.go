package video

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsolePrompterConfirmDownload(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false}, // closed stream counts as decline
	}
	for _, tc := range cases {
		p := NewConsolePrompter(strings.NewReader(tc.input), &bytes.Buffer{})
		got, err := p.ConfirmDownload("abc")
		if err != nil {
			t.Fatalf("ConfirmDownload(%q) returned error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("ConfirmDownload(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestConsolePrompterAssumeYes(t *testing.T) {
	var out bytes.Buffer
	p := NewConsolePrompter(strings.NewReader(""), &out)
	p.AssumeYes = true

	ok, err := p.ConfirmDownload("abc")
	if err != nil || !ok {
		t.Fatalf("expected auto-confirm, got %v, %v", ok, err)
	}
	retry, err := p.AskRetry(nil)
	if err != nil || retry {
		t.Fatalf("expected no unattended retry, got %v, %v", retry, err)
	}
}

func TestConsolePrompterAskFormatCodeTrims(t *testing.T) {
	p := NewConsolePrompter(strings.NewReader("  137 \n"), &bytes.Buffer{})
	code, err := p.AskFormatCode()
	if err != nil {
		t.Fatal(err)
	}
	if code != "137" {
		t.Fatalf("code = %q", code)
	}
}
