package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codehunt/internal/validator"
	"codehunt/internal/validator/cli"
)

func fakeSuite(seen *[]string) *validator.Suite {
	challenge := func(n string) validator.Challenge {
		return validator.Challenge{Number: n, Validate: func(ctx context.Context, s *validator.Session) error {
			*seen = append(*seen, n+"@"+s.BaseURL())
			return s.Complete(ctx, true, 10)
		}}
	}
	return validator.NewSuite("cch99", "BANNER\n", challenge("-1"), challenge("2"), challenge("5"))
}

func execute(t *testing.T, seen *[]string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := cli.Execute(context.Background(), "cch99-validator", "1.2.3", fakeSuite(seen), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExecuteKeepsNegativeNumbersInOrder(t *testing.T) {
	var seen []string
	code, out, errOut := execute(t, &seen, "5", "-1", "--url", "http://localhost:9/", "2")
	if code != 0 {
		t.Fatalf("unexpected exit code %d: %s", code, errOut)
	}
	want := []string{"5@http://localhost:9", "-1@http://localhost:9", "2@http://localhost:9"}
	if strings.Join(seen, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected order: %v", seen)
	}
	if !strings.HasPrefix(out, "BANNER\n\n\nValidating Challenge 5...\n") {
		t.Fatalf("unexpected output start: %q", out)
	}
	if !strings.HasSuffix(out, "Completed 3 challenges and gathered a total of 30 bonus points.\n") {
		t.Fatalf("unexpected summary: %q", out)
	}
}

func TestExecuteAllRunsSupportedList(t *testing.T) {
	var seen []string
	code, _, errOut := execute(t, &seen, "--all")
	if code != 0 {
		t.Fatalf("unexpected exit code %d: %s", code, errOut)
	}
	if len(seen) != 3 || !strings.HasPrefix(seen[0], "-1@http://127.0.0.1:8000") {
		t.Fatalf("unexpected runs: %v", seen)
	}
}

func TestExecuteRejectsBadSelections(t *testing.T) {
	cases := [][]string{
		{},
		{"--all", "2"},
		{"-u", "not a url", "2"},
		{"--url", "ftp://example.com", "2"},
	}
	for _, args := range cases {
		var seen []string
		code, _, errOut := execute(t, &seen, args...)
		if code == 0 {
			t.Fatalf("expected failure for %v", args)
		}
		if !strings.HasPrefix(errOut, "error: ") {
			t.Fatalf("unexpected stderr for %v: %q", args, errOut)
		}
		if len(seen) != 0 {
			t.Fatalf("nothing should run for %v", args)
		}
	}
}

func TestExecutePrintsVersion(t *testing.T) {
	var seen []string
	code, out, _ := execute(t, &seen, "-V")
	if code != 0 || out != "cch99-validator 1.2.3\n" {
		t.Fatalf("unexpected version output %d %q", code, out)
	}
}

func TestExecuteReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "validator.yaml")
	data := "url: http://config.example:8000/\ntimeout: 5s\nlogger:\n  level: error\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	var seen []string
	code, _, errOut := execute(t, &seen, "--config", path, "2")
	if code != 0 {
		t.Fatalf("unexpected exit code %d: %s", code, errOut)
	}
	if len(seen) != 1 || seen[0] != "2@http://config.example:8000" {
		t.Fatalf("config url not used: %v", seen)
	}

	seen = nil
	code, _, errOut = execute(t, &seen, "--config", path, "-u", "http://flag.example", "2")
	if code != 0 {
		t.Fatalf("unexpected exit code %d: %s", code, errOut)
	}
	if len(seen) != 1 || seen[0] != "2@http://flag.example" {
		t.Fatalf("flag should override config: %v", seen)
	}
}
