package schema

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const delimiter = "_"

// TypeName converts a database identifier to an upper-camel name:
// "user_account" -> "UserAccount".
//
// Each "_"-separated segment is lower-cased and then capitalised, so a run of
// delimiters yields empty segments and never a separator in the output.
// Input that is already camel case loses its inner capitals ("userName" ->
// "Username").
func TypeName(identifier string) string {
	// A Caser keeps state between calls and must not be shared across goroutines.
	title := cases.Title(language.Und)

	var sb strings.Builder
	sb.Grow(len(identifier))
	for _, segment := range strings.Split(identifier, delimiter) {
		if segment == "" {
			continue
		}
		sb.WriteString(title.String(segment))
	}
	return sb.String()
}

// PropertyName converts a database identifier to a lower-camel name:
// "USER_NAME" -> "userName".
func PropertyName(identifier string) string {
	name := TypeName(identifier)
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToLower(r)) + name[size:]
}
