// Package session decides which exercise script a voice session should
// run, from either an explicit challenge day or a free-form utterance.
package session

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/darnellt0/7-days-to-calm/pkg/models"
)

var (
	sleepRe   = regexp.MustCompile(`sleep|bed|night`)
	meetingRe = regexp.MustCompile(`meeting|presentation|interview`)
	twoRe     = regexp.MustCompile(`(^|\s)2($|\s)`)
	fiveRe    = regexp.MustCompile(`(^|\s)5($|\s)`)
	eightRe   = regexp.MustCompile(`(^|\s)8($|\s)`)
)

// DecideRoute picks a session route. A challenge day in 1..7 always wins;
// otherwise keyword heuristics on the utterance choose a breathing
// session, defaulting to the two-minute break.
func DecideRoute(utterance string, challengeDay int) models.Route {
	if challengeDay >= 1 && challengeDay <= 7 {
		return models.Route{
			ID:            fmt.Sprintf("challenge_day_%d", challengeDay),
			IsChallenge:   true,
			ReminderLabel: "7 Days to Calm",
		}
	}

	u := strings.ToLower(utterance)
	switch {
	case sleepRe.MatchString(u):
		return models.Route{ID: "sleep", ReminderLabel: "Sleep Wind-Down"}
	case meetingRe.MatchString(u):
		return models.Route{ID: "pre_meeting", ReminderLabel: "Pre-Meeting Focus"}
	case twoRe.MatchString(u):
		return models.Route{ID: "2min", ReminderLabel: "Breath Break"}
	case fiveRe.MatchString(u):
		return models.Route{ID: "5min", ReminderLabel: "Breath Break"}
	case eightRe.MatchString(u):
		return models.Route{ID: "8min", ReminderLabel: "Breath Break"}
	}
	return models.Route{ID: "2min", ReminderLabel: "Breath Break"}
}
