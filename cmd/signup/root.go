package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/signup"
)

// appConfig holds process-wide settings.
type appConfig struct {
	Env       string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT"`
}

type app struct {
	envFiles []string
	lang     string

	cfg    appConfig
	signup signup.Config
	log    *slog.Logger
	tr     *i18n.Translator
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Validate a sign-up form from the terminal",
		Long: `signup runs the sign-up form validation pipeline outside a browser.

Fields are validated as they are set; the name is checked against the
known users after a short delay, and the password confirmation must match
the password.

Examples:
  signup fill                         # answer prompts interactively
  signup script session.txt           # replay a command script
  echo "set name Thomas" | signup script --lang es`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.lang, "lang", "", "message language, e.g. en or es-MX (default SIGNUP_LANG)")
	cmd.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "dotenv files to load before reading the environment")

	cmd.AddCommand(newScriptCmd(a), newFillCmd(a))
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	if err := config.Load(&a.cfg, config.WithEnvFiles(a.envFiles...)); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg, err := signup.LoadConfig()
	if err != nil {
		return fmt.Errorf("load signup config: %w", err)
	}
	a.signup = cfg

	opts := []logger.Option{
		logger.WithEnvironment(a.cfg.Env, "signup"),
		logger.WithLevelName(a.cfg.LogLevel),
		logger.WithOutput(cmd.ErrOrStderr()),
	}
	switch f := logger.Format(a.cfg.LogFormat); f {
	case logger.FormatJSON, logger.FormatText:
		opts = append(opts, logger.WithFormat(f))
	case "":
	default:
		return fmt.Errorf("LOG_FORMAT: unsupported format %q", f)
	}
	a.log = logger.New(opts...)

	a.tr, err = i18n.NewCatalog(cmd.Context(), i18n.WithLogger(a.log))
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}

	pref := a.lang
	if pref == "" {
		pref = a.signup.Lang
	}
	a.lang = a.tr.Match(pref)

	a.log.Debug("signup ready",
		logger.Component("cli"),
		slog.String("lang", a.lang),
		logger.Duration(a.signup.CheckLatency),
	)
	return nil
}

func (a *app) newForm() (*signup.Form, error) {
	return signup.New(a.signup, form.WithLogger(a.log))
}

func (a *app) renderer(w io.Writer) renderer {
	return renderer{w: w, tr: a.tr, lang: a.lang}
}
