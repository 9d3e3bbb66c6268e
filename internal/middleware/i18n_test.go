package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDetectLocaleFromHeaders(t *testing.T) {
	cases := []struct {
		name   string
		locale string
		accept string
		want   string
	}{
		{name: "x-locale hindi", locale: "hi-IN", want: "hi"},
		{name: "x-locale english", locale: "en-US", want: "en"},
		{name: "accept-language hindi", accept: "hi-IN,hi;q=0.9,en;q=0.8", want: "hi"},
		{name: "accept-language english", accept: "en-GB,en;q=0.9", want: "en"},
		{name: "no headers", want: "en"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.locale != "" {
				r.Header.Set("X-Locale", tc.locale)
			}
			if tc.accept != "" {
				r.Header.Set("Accept-Language", tc.accept)
			}
			if got := detectLocale(r, "en"); got != tc.want {
				t.Fatalf("detectLocale = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveCountryHeaderWinsOverLookup(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("CF-IPCountry", "in")

	lookup := func(ip string) (string, error) {
		t.Fatal("lookup called despite header hint")
		return "", nil
	}
	if got := ResolveCountry(r, lookup); got != "IN" {
		t.Fatalf("ResolveCountry = %q, want %q", got, "IN")
	}
}

func TestResolveCountryFallsBackToLookup(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "49.37.0.10:4312"

	lookup := func(ip string) (string, error) {
		if ip != "49.37.0.10" {
			t.Fatalf("lookup ip = %q", ip)
		}
		return "IN", nil
	}
	if got := ResolveCountry(r, lookup); got != "IN" {
		t.Fatalf("ResolveCountry = %q, want %q", got, "IN")
	}
}

func TestI18NStampsContext(t *testing.T) {
	var locale, country string
	handler := I18N("en", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale = LocaleFromContext(r.Context())
		country = CountryFromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Language", "hi-IN")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	if locale != "hi" {
		t.Fatalf("locale = %q, want %q", locale, "hi")
	}
	if country != "IN" {
		t.Fatalf("country = %q, want %q", country, "IN")
	}
}
