// Package formats provides the string-format validators invoked for
// `format`-qualified string schemas, such as
//
//	email:
//	  type: string
//	  format: email
//
// A Registry maps a format name to a Func. NewDefault returns a registry
// holding the built-in formats; Register adds custom ones. Looking up a name
// that was never registered is a configuration error (ErrUnknownFormat),
// distinct from a value failing validation: it means the schema asks for a
// check this process cannot perform.
//
// Built-in formats:
//
//   - email: RFC 5321/5322 addr-spec without display name or comments
//   - date: RFC 3339 full-date (2006-01-02)
//   - date-time: RFC 3339 date-time
//   - uri, hostname, ipv4, ipv6, uuid, byte, password and the other
//     formats known to github.com/go-openapi/strfmt
package formats
