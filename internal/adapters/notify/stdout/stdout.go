// Package stdout imprime una línea por alerta.
package stdout

import (
	"context"
	"fmt"
	"io"
	"os"

	"economic-calendar/internal/ports/notify"
)

type Notifier struct {
	out io.Writer
}

// New usa os.Stdout si out es nil.
func New(out io.Writer) *Notifier {
	if out == nil {
		out = os.Stdout
	}
	return &Notifier{out: out}
}

func (n *Notifier) Name() string { return "stdout" }

func (n *Notifier) Notify(ctx context.Context, alerts []notify.Alert) error {
	for _, a := range alerts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(n.out, a.Line); err != nil {
			return fmt.Errorf("stdout notifier: %w", err)
		}
	}
	return nil
}
