package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const shellHelp = `commands:
  list                              show expenses
  filter <category|all>             change the filter and reload
  add <amount> <category> <title>   add an expense
  delete <id>                       delete an expense
  totals                            show totals
  quit                              leave the shell`

// Shell is a line oriented front end for one Controller.
type Shell struct {
	ctrl *Controller
	in   io.Reader
	out  io.Writer
}

func NewShell(ctrl *Controller, in io.Reader, out io.Writer) *Shell {
	return &Shell{ctrl: ctrl, in: in, out: out}
}

// Run loads the collection and processes commands until quit, EOF or ctx
// is cancelled. Failed commands are already reported as notifications and
// do not end the loop.
func (s *Shell) Run(ctx context.Context) error {
	_ = s.ctrl.Load(ctx)

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if quit := s.exec(ctx, scanner.Text()); quit {
			return nil
		}
	}
}

func (s *Shell) exec(ctx context.Context, line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(s.out, shellHelp)
	case "list":
		_ = s.ctrl.Render()
	case "filter":
		filter := "all"
		if len(fields) > 1 {
			filter = fields[1]
		}
		_ = s.ctrl.SetFilter(ctx, filter)
	case "add":
		if len(fields) < 4 {
			fmt.Fprintln(s.out, "usage: add <amount> <category> <title>")
			return false
		}
		_, _ = s.ctrl.Submit(ctx, strings.Join(fields[3:], " "), fields[1], fields[2])
	case "delete", "rm":
		if len(fields) != 2 {
			fmt.Fprintln(s.out, "usage: delete <id>")
			return false
		}
		_ = s.ctrl.Delete(ctx, fields[1])
	case "totals":
		_ = s.ctrl.RefreshTotals(ctx)
	default:
		fmt.Fprintf(s.out, "unknown command %q, type help\n", fields[0])
	}
	return false
}
