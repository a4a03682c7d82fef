package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/signup"
)

func newScriptCmd(a *app) *cobra.Command {
	var settleTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "script [file]",
		Short: "Replay form commands from a file or stdin",
		Long: `Replay form commands, one per line, from a file or stdin.

Commands:
  set <field> [value]   set a field; booleans take true or false
  show                  print every field with its status and messages
  settle                wait for outstanding checks, then print the form status
  submit                submit whatever the status and print the payload
  submit-valid          submit only a valid form
  reset                 restore initial values

Blank lines and lines starting with # are ignored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				file, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer file.Close()
				in = file
			}

			f, err := a.newForm()
			if err != nil {
				return err
			}
			defer f.Close()

			s := &scriptRunner{
				form:    f,
				out:     a.renderer(cmd.OutOrStdout()),
				timeout: settleTimeout,
			}
			if err := s.run(cmd.Context(), in); err != nil {
				a.log.Error("script failed", logger.Component("cli"), logger.Error(err))
				return err
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&settleTimeout, "settle-timeout", 5*time.Second, "maximum wait for outstanding checks")
	return cmd
}

type scriptRunner struct {
	form    *signup.Form
	out     renderer
	timeout time.Duration
}

func (s *scriptRunner) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := s.exec(ctx, line); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return scanner.Err()
}

func (s *scriptRunner) exec(ctx context.Context, line string) error {
	command, rest, _ := strings.Cut(line, " ")
	switch command {
	case "set":
		name, value, _ := strings.Cut(strings.TrimSpace(rest), " ")
		return s.set(name, value)
	case "show":
		return s.out.snapshot(s.form.Snapshot())
	case "settle":
		snap, err := s.settle(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(s.out.w, "settled: %s\n", s.out.status(snap.Status))
		return err
	case "submit":
		values, err := s.form.Submit(ctx)
		if err != nil {
			return err
		}
		return s.out.payload(values)
	case "submit-valid":
		return s.submitValid(ctx)
	case "reset":
		if err := s.form.Reset(); err != nil {
			return err
		}
		_, err := fmt.Fprintln(s.out.w, "reset")
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
}

func (s *scriptRunner) set(name, value string) error {
	if name == "" {
		return fmt.Errorf("%w: set needs a field name", ErrInvalidArgument)
	}
	if name == signup.FieldOccupation {
		return s.form.SetOccupation(value)
	}

	current, err := s.form.Value(name)
	if err != nil {
		return err
	}
	if _, isBool := current.(bool); isBool {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects true or false, got %q", ErrInvalidArgument, name, value)
		}
		return s.form.SetValue(name, b)
	}
	return s.form.SetValue(name, value)
}

func (s *scriptRunner) settle(ctx context.Context) (form.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.form.Settle(ctx)
}

func (s *scriptRunner) submitValid(ctx context.Context) error {
	values, err := s.form.SubmitValid(ctx)
	switch {
	case errors.Is(err, form.ErrFormInvalid), errors.Is(err, form.ErrFormPending):
		status := form.StatusInvalid
		if errors.Is(err, form.ErrFormPending) {
			status = form.StatusPending
		}
		fmt.Fprintf(s.out.w, "refused: %s\n", s.out.status(status))
		return s.out.snapshot(s.form.Snapshot())
	case err != nil:
		return err
	}
	return s.out.payload(values)
}
