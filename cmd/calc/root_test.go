package main

import (
	"bytes"
	"strings"
	"testing"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestEvalPrintsFinalDisplay(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"eval", "3", "+", "4", "x", "2", "="}, "11\n"},
		{[]string{"eval", "100 + 10 % ="}, "110\n"},
		{[]string{"eval", "5", "/", "0", "="}, "Error\n"},
		{[]string{"eval", "--max-length", "3", "123456"}, "123\n"},
		{[]string{"eval", "--wide", "12345678901234567890"}, "12345678901234567\n"},
	}

	for _, tc := range tests {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			out, _, err := run(t, "", tc.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, out)
			}
		})
	}
}

func TestEvalTrace(t *testing.T) {
	out, _, err := run(t, "", "eval", "--trace", "2 + 3 =")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 trace lines, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[3], "5") || !strings.Contains(lines[3], "EqualJustExecuted") {
		t.Fatalf("unexpected final trace line %q", lines[3])
	}
}

func TestEvalRejectsUnknownKey(t *testing.T) {
	if _, _, err := run(t, "", "eval", "2", "^", "3"); err == nil {
		t.Fatal("expected an error for an unknown key")
	}
	if _, _, err := run(t, "", "eval", "--max-length", "0", "1"); err == nil {
		t.Fatal("expected an error for a zero max length")
	}
}

func TestReplKeepsSessionAcrossLines(t *testing.T) {
	stdin := "5 +\n3 =\n\n=\nsqrt\nquit\n9\n"
	out, errOut, err := run(t, stdin, "repl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := "5\n8\n11\n"; out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
	if !strings.Contains(errOut, "unknown key") {
		t.Fatalf("expected unknown key error on stderr, got %q", errOut)
	}
}
