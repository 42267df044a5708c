package api

import (
	"time"

	"github.com/WeltonSantosFr/guitaa-api/internal/domain"
)

// UserView is the external user representation. The password hash has no
// field here, so no read path can leak it.
type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ExerciseView exposes an exercise with its recorded history, newest first.
type ExerciseView struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	DurationMinutes  int           `json:"durationMinutes"`
	CurrentBpmRecord int           `json:"currentBpmRecord"`
	UserID           string        `json:"userId"`
	History          []HistoryView `json:"history"`
}

// HistoryView exposes a single BPM reading.
type HistoryView struct {
	ID         string    `json:"id"`
	Bpm        int       `json:"bpm"`
	Date       time.Time `json:"date"`
	ExerciseID string    `json:"exerciseId"`
}

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	User        UserView `json:"user"`
}

func toUserView(user domain.User) UserView {
	return UserView{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

func toExerciseView(detail domain.ExerciseDetail) ExerciseView {
	history := make([]HistoryView, 0, len(detail.History))
	for _, entry := range detail.History {
		history = append(history, toHistoryView(entry))
	}
	return ExerciseView{
		ID:               detail.ID,
		Name:             detail.Name,
		DurationMinutes:  detail.DurationMinutes,
		CurrentBpmRecord: detail.CurrentBpmRecord,
		UserID:           detail.UserID,
		History:          history,
	}
}

func toHistoryView(entry domain.History) HistoryView {
	return HistoryView{
		ID:         entry.ID,
		Bpm:        entry.Bpm,
		Date:       entry.Date,
		ExerciseID: entry.ExerciseID,
	}
}
