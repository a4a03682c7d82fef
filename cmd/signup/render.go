package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/signup"
)

type renderer struct {
	w    io.Writer
	tr   *i18n.Translator
	lang string
}

func (r renderer) status(s form.Status) string {
	return r.tr.Td(r.lang, "status."+s.String(), s.String())
}

// snapshot prints one line per field followed by its messages.
func (r renderer) snapshot(s form.Snapshot) error {
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "form\t%s\t\n", r.status(s.Status))
	for _, fs := range s.Fields {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.tr.Label(r.lang, fs.Name), r.status(fs.Status), displayValue(fs))
		for _, msg := range r.tr.Failures(r.lang, fs.Errors) {
			fmt.Fprintf(tw, "\t- %s\t\n", msg)
		}
	}
	return tw.Flush()
}

// fieldErr turns a field's failures into one error, or nil.
func (r renderer) fieldErr(fs form.FieldState) error {
	msgs := r.tr.Failures(r.lang, fs.Errors)
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

func (r renderer) payload(values form.Values) error {
	p, err := signup.Decode(values)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(p.Redacted()); err != nil {
		return err
	}
	return enc.Close()
}

func displayValue(fs form.FieldState) string {
	switch v := fs.Value.(type) {
	case nil:
		return ""
	case string:
		if v != "" && (fs.Name == signup.FieldPassword || fs.Name == signup.FieldConfirmPassword) {
			return "******"
		}
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprint(v)
	}
}
