package services

import "errors"

var ErrInvalidVerifyCode = errors.New("invalid verification code")

// CodeVerifier checks a login verification code for a phone number. The real
// implementation fronts an SMS provider; the static one backs development and
// tests.
type CodeVerifier interface {
	Verify(phone, code string) error
}

// StaticCodeVerifier accepts a single fixed code for every phone number.
type StaticCodeVerifier struct {
	Code string
}

func (v StaticCodeVerifier) Verify(_, code string) error {
	if code != v.Code {
		return ErrInvalidVerifyCode
	}
	return nil
}
