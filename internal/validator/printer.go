package validator

import (
	"fmt"
	"io"
)

// Printer renders submission updates for a terminal.
type Printer struct {
	out   io.Writer
	tasks int
	days  int
	bonus int
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Banner prints the event banner.
func (p *Printer) Banner(banner string) {
	fmt.Fprintln(p.out, banner)
}

// Start announces the challenge about to be validated.
func (p *Printer) Start(number string) {
	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "Validating Challenge %s...\n", number)
	fmt.Fprintln(p.out)
}

// Handle prints one update.
func (p *Printer) Handle(u Update) {
	switch u.Kind {
	case UpdateState:
		if u.State == StateDone {
			p.tasks = 0
		}
	case UpdateTaskCompleted:
		p.tasks++
		fmt.Fprintf(p.out, "Task %d: completed 🎉\n", p.tasks)
		if u.Bonus > 0 {
			p.bonus += u.Bonus
			fmt.Fprintf(p.out, "Bonus points: %d ✨\n", u.Bonus)
		}
		if u.LastCoreTask {
			p.days++
			fmt.Fprintln(p.out, "Core tasks completed ✅")
		}
	case UpdateLogLine:
		fmt.Fprintln(p.out, u.Line)
	}
}

// Consume prints updates until the channel is closed.
func (p *Printer) Consume(updates <-chan Update) {
	for u := range updates {
		p.Handle(u)
	}
}

// Summary prints the totals.
func (p *Printer) Summary() {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "Completed %d challenges and gathered a total of %d bonus points.\n", p.days, p.bonus)
}

// Totals returns completed challenges and gathered bonus points.
func (p *Printer) Totals() (days, bonus int) {
	return p.days, p.bonus
}
