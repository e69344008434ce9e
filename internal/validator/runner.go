package validator

import (
	"context"

	"github.com/google/uuid"
)

const updateBuffer = 32

// RunAll validates numbers one after another, printing every update. The
// summary is printed only when more than one challenge was requested.
func RunAll(ctx context.Context, cfg Config, suite *Suite, numbers []string, printer *Printer) {
	for _, number := range numbers {
		if ctx.Err() != nil {
			return
		}
		printer.Start(number)

		runCfg := cfg
		if runCfg.SubmissionID == "" {
			runCfg.SubmissionID = uuid.NewString()
		}
		updates := make(chan Update, updateBuffer)
		go func() {
			defer close(updates)
			Run(ctx, runCfg, suite, number, updates)
		}()
		printer.Consume(updates)
	}
	if len(numbers) > 1 {
		printer.Summary()
	}
}
