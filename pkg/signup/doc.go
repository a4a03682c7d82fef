// Package signup assembles the sign-up form: name, email, password and
// confirmation, coupon, occupation and terms acceptance.
//
// The name is checked against a user directory after it passes its
// synchronous rules; the confirmation must match the password.
//
//	cfg, err := signup.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	f, err := signup.New(cfg, form.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
// Configuration is read from SIGNUP_KNOWN_USERS, SIGNUP_OCCUPATIONS,
// SIGNUP_CHECK_LATENCY, SIGNUP_CHECK_DEBOUNCE and SIGNUP_LANG.
package signup
