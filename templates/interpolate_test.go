package templates

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInterpolateReminderVariables(t *testing.T) {
	out := Interpolate(`Got it! I'll remind you to "{{task}}" at {{time}}.`, &Context{Task: "call mom", Time: "9:30"})
	require.Equal(t, `Got it! I'll remind you to "call mom" at 9:30.`, out)
}

func TestInterpolateKeepsPlaceholdersInValues(t *testing.T) {
	ctx := &Context{Task: "say {{time}} and {{date}}", Time: "9:30"}
	require.Equal(t, `remind you to "say {{time}} and {{date}}" at 9:30`,
		Interpolate(`remind you to "{{task}}" at {{time}}`, ctx))
	require.Equal(t, "Reminder: check {{task}}", Interpolate("Reminder: {{task}}", &Context{Task: "check {{task}}"}))
}

func TestInterpolateWithoutPlaceholders(t *testing.T) {
	require.Equal(t, "plain {text}", Interpolate("plain {text}", &Context{}))
	require.Equal(t, "{{unknown}}", Interpolate("{{unknown}}", &Context{}))
}
