package utils

import "testing"

func TestIsValidEmail(t *testing.T) {
	cases := map[string]bool{
		"ada@club.dev":          true,
		"grace.hopper@navy.mil": true,
		"first-last@uni.ac.uk":  true,
		"no-at-sign.dev":        false,
		"ada@club":              false,
		"":                      false,
		"ada@@club.dev":         false,
	}
	for email, want := range cases {
		if got := IsValidEmail(email); got != want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", email, got, want)
		}
	}
}

func TestIsValidPassword(t *testing.T) {
	cases := map[string]bool{
		"abc123":   true,
		"Passw0rd": true,
		"abcdef":   false,
		"123456":   false,
		"ab12":     false,
		"abc 123":  false,
		"abc123!":  false,
	}
	for password, want := range cases {
		if got := IsValidPassword(password); got != want {
			t.Errorf("IsValidPassword(%q) = %v, want %v", password, got, want)
		}
	}
}

func TestIsValidURL(t *testing.T) {
	cases := map[string]bool{
		"https://github.com/club/proj": true,
		"http://localhost:3000":        true,
		"ftp://files.example/x":        false,
		"github.com/club/proj":         false,
		"https://":                     false,
		"   ":                          false,
	}
	for raw, want := range cases {
		if got := IsValidURL(raw); got != want {
			t.Errorf("IsValidURL(%q) = %v, want %v", raw, got, want)
		}
	}
}
