package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/signup"
)

func newFillCmd(a *app) *cobra.Command {
	var settleTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill in the sign-up form interactively",
		Long: `Prompt for every sign-up field in order. Each answer is validated as
it is entered, including the known-user check for the name, and rejected
answers are asked again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := a.newForm()
			if err != nil {
				return err
			}
			defer f.Close()

			fl := &filler{
				form:    f,
				driver:  surveyDriver{},
				out:     a.renderer(cmd.OutOrStdout()),
				timeout: settleTimeout,
			}
			return fl.run(cmd.Context())
		},
	}

	cmd.Flags().DurationVar(&settleTimeout, "settle-timeout", 5*time.Second, "maximum wait for the name check")
	return cmd
}

type filler struct {
	form    *signup.Form
	driver  PromptDriver
	out     renderer
	timeout time.Duration
}

func (fl *filler) run(ctx context.Context) error {
	text := []struct {
		name   string
		secret bool
	}{
		{signup.FieldName, false},
		{signup.FieldEmail, false},
		{signup.FieldPassword, true},
		{signup.FieldConfirmPassword, true},
	}
	for _, t := range text {
		cfg := InputConfig{
			Message:   fl.out.tr.Label(fl.out.lang, t.name),
			Validator: fl.validate(ctx, t.name),
		}
		ask := fl.driver.Input
		if t.secret {
			ask = fl.driver.Password
		}
		if _, err := ask(ctx, cfg); err != nil {
			return err
		}
	}

	coupon, err := fl.driver.Confirm(ctx, ConfirmConfig{Message: fl.out.tr.Label(fl.out.lang, signup.FieldCoupon)})
	if err != nil {
		return err
	}
	if err := fl.form.SetValue(signup.FieldCoupon, coupon); err != nil {
		return err
	}

	occupations := fl.form.Occupations()
	idx, err := fl.driver.Select(ctx, SelectConfig{
		Message: fl.out.tr.Label(fl.out.lang, signup.FieldOccupation),
		Options: occupations,
	})
	if err != nil {
		return err
	}
	if idx >= 0 && idx < len(occupations) {
		if err := fl.form.SetOccupation(occupations[idx]); err != nil {
			return err
		}
	}

	terms, err := fl.driver.Confirm(ctx, ConfirmConfig{Message: fl.out.tr.Label(fl.out.lang, signup.FieldTermsAndServices)})
	if err != nil {
		return err
	}
	if err := fl.form.SetValue(signup.FieldTermsAndServices, terms); err != nil {
		return err
	}

	return fl.submit(ctx)
}

// validate stores the answer and reports the field's errors once its
// checks have settled, so the prompt repeats until the field is valid.
func (fl *filler) validate(ctx context.Context, name string) func(string) error {
	return func(answer string) error {
		if err := fl.form.SetValue(name, answer); err != nil {
			return err
		}
		snap, err := fl.settle(ctx)
		if err != nil {
			return err
		}
		fs, _ := snap.Field(name)
		return fl.out.fieldErr(fs)
	}
}

func (fl *filler) settle(ctx context.Context) (form.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, fl.timeout)
	defer cancel()
	return fl.form.Settle(ctx)
}

func (fl *filler) submit(ctx context.Context) error {
	if _, err := fl.settle(ctx); err != nil {
		return err
	}
	values, err := fl.form.SubmitValid(ctx)
	if errors.Is(err, form.ErrFormInvalid) {
		if rerr := fl.out.snapshot(fl.form.Snapshot()); rerr != nil {
			return rerr
		}
		return err
	}
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(fl.out.w, "submitted:"); err != nil {
		return err
	}
	return fl.out.payload(values)
}
