package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type localeContextKey struct{}
type countryContextKey struct{}

var (
	LocaleKey  = localeContextKey{}
	CountryKey = countryContextKey{}
)

// SupportedLocales lists the locales the page catalog is translated into.
var SupportedLocales = []language.Tag{
	language.English,
	language.BrazilianPortuguese,
}

var localeMatcher = language.NewMatcher(SupportedLocales)

// Countries whose visitors get the Portuguese page when the browser sends
// no usable language preference.
var portugueseCountries = map[string]bool{"BR": true, "PT": true, "AO": true, "MZ": true}

// CountryLookup resolves ISO country codes for an IP address.
type CountryLookup func(ip string) (string, error)

// I18N stores the negotiated locale and the best-effort country code in the
// request context.
func I18N(defaultLocale string, lookup CountryLookup) func(http.Handler) http.Handler {
	fallback := matchLocale(defaultLocale)
	if fallback == language.Und {
		fallback = language.English
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			country := ResolveCountry(r, lookup)
			locale := detectLocale(r, fallback, country)
			ctx := context.WithValue(r.Context(), LocaleKey, locale)
			if country != "" {
				ctx = context.WithValue(ctx, CountryKey, country)
			}
			w.Header().Set("Content-Language", locale.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLocale(r *http.Request, fallback language.Tag, country string) language.Tag {
	if tag := matchLocale(r.Header.Get("X-Locale")); tag != language.Und {
		return tag
	}
	if tag := matchLocale(r.Header.Get("Accept-Language")); tag != language.Und {
		return tag
	}
	if portugueseCountries[country] {
		return language.BrazilianPortuguese
	}
	if country != "" {
		return language.English
	}
	return fallback
}

// matchLocale maps an Accept-Language style value onto a supported locale,
// returning language.Und when nothing matches.
func matchLocale(value string) language.Tag {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und
	}
	tags, _, err := language.ParseAcceptLanguage(value)
	if err != nil || len(tags) == 0 {
		return language.Und
	}
	_, idx, conf := localeMatcher.Match(tags...)
	if conf == language.No {
		return language.Und
	}
	return SupportedLocales[idx]
}

// ClientIP returns the host part of the connection address.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func LocaleFromContext(ctx context.Context) language.Tag {
	if v, ok := ctx.Value(LocaleKey).(language.Tag); ok {
		return v
	}
	return language.English
}

// CountryFromContext returns the ISO country code stored in the request context.
func CountryFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CountryKey).(string); ok {
		return v
	}
	return ""
}

// ResolveCountry resolves a best-effort ISO country code for the given request.
func ResolveCountry(r *http.Request, lookup CountryLookup) string {
	if r == nil {
		return ""
	}
	headerHints := []string{"X-Country-Code", "X-IP-Country", "CF-IPCountry", "X-Appengine-Country"}
	for _, key := range headerHints {
		if val := strings.TrimSpace(r.Header.Get(key)); val != "" {
			return strings.ToUpper(val)
		}
	}
	if region := localeRegion(r.Header.Get("X-Locale")); region != "" {
		return region
	}
	if region := localeRegion(r.Header.Get("Accept-Language")); region != "" {
		return region
	}
	if lookup != nil {
		if ip := ClientIP(r); ip != "" {
			if country, err := lookup(ip); err == nil && country != "" {
				return strings.ToUpper(country)
			}
		}
	}
	return ""
}

// localeRegion returns the explicit region subtag of the first language
// in an Accept-Language value.
func localeRegion(accept string) string {
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return ""
	}
	region, conf := tags[0].Region()
	if conf != language.Exact {
		return ""
	}
	return region.String()
}
