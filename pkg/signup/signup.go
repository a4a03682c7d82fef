package signup

import (
	"fmt"
	"slices"
	"time"

	"github.com/dmitrymomot/formkit/pkg/cache"
	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/existence"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Field names, in display order.
const (
	FieldName             = "name"
	FieldEmail            = "email"
	FieldPassword         = "password"
	FieldConfirmPassword  = "confirmPassword"
	FieldCoupon           = "coupon"
	FieldOccupation       = "occupation"
	FieldTermsAndServices = "termsAndServices"
)

// EnvPrefix prefixes every variable read by LoadConfig.
const EnvPrefix = "SIGNUP_"

// Config tunes the sign-up form.
type Config struct {
	KnownUsers    []string      `env:"KNOWN_USERS" envSeparator:"," envDefault:"Thomas,Jacob,Donald,Kim"`
	Occupations   []string      `env:"OCCUPATIONS" envSeparator:"," envDefault:"Engineer,Marketing,Human Resources,Sales Representative"`
	CheckLatency  time.Duration `env:"CHECK_LATENCY" envDefault:"750ms"`
	CheckDebounce time.Duration `env:"CHECK_DEBOUNCE" envDefault:"0s"`
	CacheSize     int           `env:"CHECK_CACHE_SIZE" envDefault:"0"`
	CacheTTL      time.Duration `env:"CHECK_CACHE_TTL" envDefault:"0s"`
	Lang          string        `env:"LANG" envDefault:"en"`
}

// DefaultConfig returns the configuration used when no variables are set.
func DefaultConfig() Config {
	return Config{
		KnownUsers:   []string{"Thomas", "Jacob", "Donald", "Kim"},
		Occupations:  []string{"Engineer", "Marketing", "Human Resources", "Sales Representative"},
		CheckLatency: existence.DefaultLatency,
		Lang:         "en",
	}
}

// LoadConfig reads Config from SIGNUP_* environment variables.
func LoadConfig(opts ...config.Option) (Config, error) {
	var cfg Config
	opts = append([]config.Option{config.WithPrefix(EnvPrefix)}, opts...)
	if err := config.Load(&cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Specs declares the sign-up fields. The name field is checked against
// checker once its synchronous rules pass.
func Specs(checker existence.Checker) []form.FieldSpec {
	return []form.FieldSpec{
		form.Text(FieldName, validator.Required(), validator.AlphanumericWithSpaces()).
			WithAsync(existence.Rule(checker)),
		form.Text(FieldEmail, validator.Required(), validator.Email(), validator.EmailPattern()),
		form.Text(FieldPassword, validator.Required(), validator.MinLength(4), validator.MaxLength(12)).
			AsSensitive(),
		// min(4) compares numerically: it only rejects input whose leading
		// number is below 4 and leaves other strings alone.
		form.Text(FieldConfirmPassword, validator.Required(), validator.Min(4)).
			AsSensitive(),
		form.Bool(FieldCoupon),
		form.Text(FieldOccupation),
		form.Bool(FieldTermsAndServices, validator.RequiredTrue()),
	}
}

// CrossFieldRules returns the form-level rules.
func CrossFieldRules() []form.CrossFieldRule {
	return []form.CrossFieldRule{form.Match(FieldPassword, FieldConfirmPassword)}
}

// Form is the sign-up form. It embeds the generic form and adds the
// occupation choice list.
type Form struct {
	*form.Form
	occupations []string
}

// New builds the sign-up form with a StaticChecker over cfg.KnownUsers.
// A positive cfg.CacheSize puts an answer cache in front of it.
func New(cfg Config, opts ...form.Option) (*Form, error) {
	return NewWithChecker(cfg, Checker(cfg), opts...)
}

// Checker returns the name checker described by cfg.
func Checker(cfg Config) existence.Checker {
	var checker existence.Checker = existence.NewStaticChecker(cfg.KnownUsers, existence.WithLatency(cfg.CheckLatency))
	if cfg.CacheSize > 0 {
		checker = existence.NewCachedChecker(checker, cfg.CacheSize, cache.WithTTL(cfg.CacheTTL))
	}
	return checker
}

// NewWithChecker builds the sign-up form around an arbitrary checker.
func NewWithChecker(cfg Config, checker existence.Checker, opts ...form.Option) (*Form, error) {
	opts = append([]form.Option{
		form.WithCrossFieldRules(CrossFieldRules()...),
		form.WithDebounce(cfg.CheckDebounce),
	}, opts...)

	f, err := form.New(Specs(checker), opts...)
	if err != nil {
		return nil, fmt.Errorf("signup: build form: %w", err)
	}
	return &Form{Form: f, occupations: slices.Clone(cfg.Occupations)}, nil
}

// Occupations returns the selectable occupations.
func (f *Form) Occupations() []string {
	return slices.Clone(f.occupations)
}

// SetOccupation selects an occupation. The empty string clears the
// selection; anything not in the list is rejected.
func (f *Form) SetOccupation(occupation string) error {
	if occupation != "" && !slices.Contains(f.occupations, occupation) {
		return fmt.Errorf("%w: %q", ErrUnknownOccupation, occupation)
	}
	return f.SetValue(FieldOccupation, occupation)
}
