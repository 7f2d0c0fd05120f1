// Package render produces the HTML results container for an Outcome.
//
// Every piece of server-supplied text passes through Escape before it is
// interpolated, so a message such as "<script>" is displayed literally.
package render

import "html"

// Escape converts text to its HTML-safe form. It escapes <, >, &, ' and ".
func Escape(text string) string {
	return html.EscapeString(text)
}
