package models

import "github.com/google/uuid"

// ScheduleResult is the state of an item handed to the social-media
// or republishing schedulers.
type ScheduleResult string

const (
	ScheduleScheduled ScheduleResult = "scheduled"
	SchedulePaused    ScheduleResult = "paused"
	ScheduleSent      ScheduleResult = "sent"
	ScheduleFailed    ScheduleResult = "failed"
)

// ScheduleResults is the ordered choice list shown in the admin.
var ScheduleResults = []ScheduleResult{
	ScheduleScheduled,
	SchedulePaused,
	ScheduleSent,
	ScheduleFailed,
}

func (s ScheduleResult) Valid() bool {
	for _, r := range ScheduleResults {
		if r == s {
			return true
		}
	}
	return false
}

// Tweet is edited inline on the article form.
type Tweet struct {
	ID          uuid.UUID      `json:"id"`
	ArticleID   uuid.UUID      `json:"article_id"`
	WaitTime    int            `json:"wait_time"`
	Status      ScheduleResult `json:"status"`
	TweetText   string         `json:"tweet_text"`
	TagAccounts []string       `json:"tag_accounts"`
	Position    int            `json:"position"`
}
