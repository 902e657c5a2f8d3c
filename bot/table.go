package bot

import "regexp"

const (
	ReminderConfirm = `Got it! I'll remind you to "{{task}}" at {{time}}. 📝`
	ReminderHint    = `Please format your reminder like "Remind me to [task] at [HH:MM]". ⏰`
)

var reminderPattern = regexp.MustCompile(`(?i)remind me to (.+?) at (\d+:\d+)`)

// DefaultTable is Sylvester's stock set of replies.
func DefaultTable() *Table {
	return MustTable(
		&ReminderRule{
			Name:    "reminder",
			Trigger: "remind me",
			Pattern: reminderPattern,
			Confirm: ReminderConfirm,
			Hint:    ReminderHint,
		},
		&KeywordRule{
			Name:      "greeting",
			Keywords:  []string{"hi", "hello", "hey"},
			Mode:      Any,
			Responses: []string{"Hey there! 👋 How can I help you today?"},
		},
		&KeywordRule{
			Name:      "how_are_you",
			Keywords:  []string{"how", "are", "you"},
			Mode:      All,
			Responses: []string{"I'm doing great! Thanks for asking. How about you?"},
		},
		&KeywordRule{
			Name:      "tired",
			Keywords:  []string{"tired", "exhausted", "sleepy"},
			Mode:      Any,
			Responses: []string{"Don't push yourself too hard. 💤 Make sure to get some rest!"},
		},
		&KeywordRule{
			Name:      "happy",
			Keywords:  []string{"happy"},
			Mode:      Any,
			Responses: []string{"That's awesome! 🌞 Keep spreading positivity."},
		},
		&KeywordRule{
			Name:      "good_day",
			Keywords:  []string{"good", "day"},
			Mode:      All,
			Responses: []string{"That's awesome! 🌞 Keep spreading positivity."},
		},
		&KeywordRule{
			Name:      "sad",
			Keywords:  []string{"sad", "depressed", "unhappy"},
			Mode:      Any,
			Responses: []string{"I'm here for you. Remember, even the darkest nights end in sunrise. 🌅"},
		},
		&KeywordRule{
			Name:     "joke",
			Keywords: []string{"joke", "jokes"},
			Mode:     Any,
			Responses: []string{
				"Why don't skeletons fight each other? They don't have the guts! 💀",
				"What do you call fake spaghetti? An impasta! 🍝",
				"Why was the math book sad? It had too many problems. 📖",
			},
			Selection: Random,
		},
		&KeywordRule{
			Name:      "advice",
			Keywords:  []string{"advice"},
			Mode:      Any,
			Responses: []string{"Trust yourself. You've survived a lot, and you'll survive whatever is coming. 💬"},
		},
		&KeywordRule{
			Name:      "thanks",
			Keywords:  []string{"thank", "thanks"},
			Mode:      Any,
			Responses: []string{"You're welcome! 😊 I'm always here to help."},
		},
		&KeywordRule{
			Name:      "who_are_you",
			Keywords:  []string{"who", "are", "you"},
			Mode:      All,
			Responses: []string{"I'm Sylvester 🐾, your friendly assistant!"},
		},
	)
}
