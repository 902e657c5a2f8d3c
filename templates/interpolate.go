// Package templates fills {{variable}} placeholders in bot response texts.
package templates

import "strings"

// Context contains the data available for variable substitution.
type Context struct {
	Task string
	Time string
}

// Interpolate replaces {{task}} and {{time}} in template in a single pass.
// Substituted values are never rescanned, so placeholders inside a task are
// kept verbatim. Unknown placeholders are left untouched.
func Interpolate(template string, ctx *Context) string {
	if !strings.Contains(template, "{{") {
		return template
	}
	return strings.NewReplacer(
		"{{task}}", ctx.Task,
		"{{time}}", ctx.Time,
	).Replace(template)
}
