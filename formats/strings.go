package formats

import (
	"net/mail"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"golang.org/x/net/idna"

	"github.com/erraggy/oasguard/validation"
)

// RFC 5321 section 4.5.3.1 size limits.
const (
	maxLocalPartLength = 64
	maxAddressLength   = 254
)

// strfmtNames are the formats delegated to the go-openapi/strfmt default
// registry. A name is only registered when strfmt knows it.
var strfmtNames = []string{
	"uri",
	"hostname",
	"ipv4",
	"ipv6",
	"cidr",
	"mac",
	"uuid",
	"uuid3",
	"uuid4",
	"uuid5",
	"byte",
	"password",
	"duration",
	"isbn",
	"isbn10",
	"isbn13",
	"creditcard",
	"ssn",
	"hexcolor",
	"rgbcolor",
	"bsonobjectid",
	"ulid",
}

func strfmtFunc(name string) (Func, bool) {
	if !strfmt.Default.ContainsName(name) {
		return nil, false
	}
	msg := "value is not a valid " + name
	return func(value string) validation.Result {
		if !strfmt.Default.Validates(name, value) {
			return validation.InvalidValue{Message: msg}
		}
		return validation.Success{}
	}, true
}

// Email validates an email address.
func Email(value string) validation.Result {
	if !IsEmail(value) {
		return validation.InvalidValue{Message: "value is not a valid email address"}
	}
	return validation.Success{}
}

// IsEmail reports whether s is a bare RFC 5322 addr-spec whose domain is a
// fully qualified hostname. Display names, comments and surrounding
// whitespace are rejected, as are addresses over the RFC 5321 size limits.
// Internationalized domains are checked in their IDNA ASCII form.
func IsEmail(s string) bool {
	if s == "" || len(s) > maxAddressLength {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if len(local) > maxLocalPartLength {
		return false
	}

	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return false
	}

	ascii, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return false
	}
	return isQualifiedHostname(ascii)
}

func isQualifiedHostname(domain string) bool {
	if strings.HasSuffix(domain, ".") || !strfmt.IsHostname(domain) {
		return false
	}
	dot := strings.LastIndexByte(domain, '.')
	if dot < 0 {
		return false
	}
	tld := domain[dot+1:]
	if len(tld) < 2 {
		return false
	}
	// A numeric top-level label means a bare IPv4 address, not a hostname.
	return strings.IndexFunc(tld, func(r rune) bool { return r < '0' || r > '9' }) >= 0
}

// Date validates an RFC 3339 full-date.
func Date(value string) validation.Result {
	if !strfmt.IsDate(value) {
		return validation.InvalidValue{Message: "value is not a valid date (expected YYYY-MM-DD)"}
	}
	return validation.Success{}
}

// DateTime validates an RFC 3339 date-time.
func DateTime(value string) validation.Result {
	if !strfmt.IsDateTime(value) || !isRFC3339(value) {
		return validation.InvalidValue{Message: "value is not a valid date-time (expected RFC 3339)"}
	}
	return validation.Success{}
}

// isRFC3339 narrows strfmt's date-time, which also accepts layouts without a
// time zone offset.
func isRFC3339(value string) bool {
	_, err := time.Parse(time.RFC3339Nano, value)
	return err == nil
}
