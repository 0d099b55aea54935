// Package catalog holds the closing messages spoken at the end of each
// day's exercise.
package catalog

import "fmt"

// closingMessages maps challenge day to the congratulatory line tied to
// that day's exercise theme.
var closingMessages = map[int]string{
	1: "Day one complete. You showed up, and that is the hardest part. See you tomorrow.",
	2: "Day two done. Your breath is becoming a place you can return to. Well done.",
	3: "Three days in. Notice how the body settles a little faster each time. Beautiful work.",
	4: "Day four complete. Halfway through, and the calm is starting to follow you off the mat.",
	5: "Five days of practice. Today's focus carries into everything you do next. Well done.",
	6: "Day six finished. One more day, and this is already yours. Rest well tonight.",
	7: "Seven days to calm, complete. You built a practice. Carry it with you.",
}

// MessageFor returns the closing message for a challenge day. Days
// outside 1..7 get a generic message containing the literal day number.
func MessageFor(day int) string {
	if msg, ok := closingMessages[day]; ok {
		return msg
	}
	return fmt.Sprintf("Day %d complete. Well done.", day)
}
