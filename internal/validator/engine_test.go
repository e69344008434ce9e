package validator_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"codehunt/internal/validator"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func collect(t *testing.T, fn func(chan<- validator.Update)) []validator.Update {
	t.Helper()
	updates := make(chan validator.Update, 64)
	go func() {
		defer close(updates)
		fn(updates)
	}()
	var out []validator.Update
	for u := range updates {
		out = append(out, u)
	}
	return out
}

func testSuite() *validator.Suite {
	return validator.NewSuite("test", "BANNER\n",
		validator.Challenge{Number: "-1", Validate: func(ctx context.Context, s *validator.Session) error {
			s.Test(1, 1)
			if err := s.Complete(ctx, true, 0); err != nil {
				return err
			}
			s.Test(2, 1)
			return s.Complete(ctx, false, 50)
		}},
		validator.Challenge{Number: "3", Validate: func(ctx context.Context, s *validator.Session) error {
			s.Test(1, 1)
			if err := s.Complete(ctx, false, 0); err != nil {
				return err
			}
			s.Test(2, 3)
			return s.Fail(ctx, errors.New("boom"))
		}},
		validator.Challenge{Number: "4", Validate: func(ctx context.Context, s *validator.Session) error {
			s.Test(1, 2)
			return errors.New("plain error")
		}},
		validator.Challenge{Number: "9", Validate: func(ctx context.Context, s *validator.Session) error {
			s.Test(1, 1)
			return s.Sleep(ctx, time.Hour)
		}},
	)
}

func TestRunReportsCompletedTasks(t *testing.T) {
	defer goleak.VerifyNone(t)

	got := collect(t, func(ch chan<- validator.Update) {
		validator.Run(context.Background(), validator.Config{BaseURL: "http://x"}, testSuite(), "-1", ch)
	})
	want := []validator.Update{
		validator.StateUpdate(validator.StateRunning),
		validator.Save(),
		validator.TaskCompleted(true, 0),
		validator.Save(),
		validator.TaskCompleted(false, 50),
		validator.Save(),
		validator.StateUpdate(validator.StateDone),
		validator.Save(),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected updates (-want +got):\n%s", diff)
	}
}

func TestRunReportsFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	got := collect(t, func(ch chan<- validator.Update) {
		validator.Run(context.Background(), validator.Config{}, testSuite(), "3", ch)
	})
	want := []validator.Update{
		validator.StateUpdate(validator.StateRunning),
		validator.Save(),
		validator.TaskCompleted(false, 0),
		validator.Save(),
		validator.LogLine("Task 2: test #3 failed 🟥"),
		validator.StateUpdate(validator.StateDone),
		validator.Save(),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected updates (-want +got):\n%s", diff)
	}
}

func TestRunMapsPlainErrorsToCurrentTest(t *testing.T) {
	defer goleak.VerifyNone(t)

	got := collect(t, func(ch chan<- validator.Update) {
		validator.Run(context.Background(), validator.Config{}, testSuite(), "4", ch)
	})
	if len(got) != 5 {
		t.Fatalf("unexpected updates: %v", got)
	}
	if got[2] != validator.LogLine("Task 1: test #2 failed 🟥") {
		t.Fatalf("unexpected failure line: %v", got[2])
	}
}

func TestRunTimesOut(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := validator.Config{Timeout: 20 * time.Millisecond}
	got := collect(t, func(ch chan<- validator.Update) {
		validator.Run(context.Background(), cfg, testSuite(), "9", ch)
	})
	want := []validator.Update{
		validator.StateUpdate(validator.StateRunning),
		validator.Save(),
		validator.LogLine("Timed out"),
		validator.StateUpdate(validator.StateDone),
		validator.Save(),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected updates (-want +got):\n%s", diff)
	}
}

func TestValidateUnsupportedNumber(t *testing.T) {
	defer goleak.VerifyNone(t)

	var err error
	got := collect(t, func(ch chan<- validator.Update) {
		err = validator.Validate(context.Background(), validator.Config{}, testSuite(), "42", ch)
	})
	want := []validator.Update{
		validator.LogLine("Validating Challenge 42 is not supported yet! Check for updates."),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected updates (-want +got):\n%s", diff)
	}
	if err == nil {
		t.Fatalf("expected error for unsupported challenge")
	}
}

func TestSuiteSupportedKeepsOrder(t *testing.T) {
	got := testSuite().Supported()
	want := []string{"-1", "3", "4", "9"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestRunAllPrintsSummary(t *testing.T) {
	defer goleak.VerifyNone(t)

	var buf bytes.Buffer
	printer := validator.NewPrinter(&buf)
	validator.RunAll(context.Background(), validator.Config{}, testSuite(), []string{"-1", "3", "42"}, printer)

	want := "\nValidating Challenge -1...\n\n" +
		"Task 1: completed 🎉\n" +
		"Core tasks completed ✅\n" +
		"Task 2: completed 🎉\n" +
		"Bonus points: 50 ✨\n" +
		"\nValidating Challenge 3...\n\n" +
		"Task 1: completed 🎉\n" +
		"Task 2: test #3 failed 🟥\n" +
		"\nValidating Challenge 42...\n\n" +
		"Validating Challenge 42 is not supported yet! Check for updates.\n" +
		"\n\nCompleted 1 challenges and gathered a total of 50 bonus points.\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}
	days, bonus := printer.Totals()
	if days != 1 || bonus != 50 {
		t.Fatalf("unexpected totals: %d %d", days, bonus)
	}
}

func TestRunAllSingleChallengeHasNoSummary(t *testing.T) {
	var buf bytes.Buffer
	validator.RunAll(context.Background(), validator.Config{}, testSuite(), []string{"-1"}, validator.NewPrinter(&buf))
	if bytes.Contains(buf.Bytes(), []byte("Completed")) {
		t.Fatalf("unexpected summary in %q", buf.String())
	}
}

func TestTaskTestMessage(t *testing.T) {
	err := error(validator.TaskTest{Task: 4, Test: 2})
	if err.Error() != "Task 4: test #2 failed 🟥" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}
