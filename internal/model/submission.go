package model

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

// UserInput carries the reporting user fields of a submission payload.
// Field names follow the mobile application wire contract: fam is the
// family name, otc the patronymic.
type UserInput struct {
	Email string `json:"email"`
	Fam   string `json:"fam"`
	Name  string `json:"name"`
	Otc   string `json:"otc"`
	Phone string `json:"phone"`
}

// CoordsInput carries the pass location of a submission payload.
type CoordsInput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Height    int     `json:"height"`
}

// LevelInput carries the four seasonal difficulty categories.  The
// values are free-form strings (e.g. "1A", "2Б*"); an empty string
// means the pass is not passable in that season.
type LevelInput struct {
	Winter string `json:"winter"`
	Summer string `json:"summer"`
	Autumn string `json:"autumn"`
	Spring string `json:"spring"`
}

// ImageInput is one image attached to a submission: an opaque encoded
// payload plus a display name.
type ImageInput struct {
	Data string `json:"data"`
	Name string `json:"name"`
}

// SubmitRequest is the full payload of POST /SubmitData and
// PATCH /SubmitData.  It must pass Validate before being handed to the
// submission workflow.
type SubmitRequest struct {
	BeautyTitle string       `json:"beauty_title"`
	Title       string       `json:"title"`
	OtherTitles *string      `json:"other_titles,omitempty"`
	Connect     *string      `json:"connect,omitempty"`
	User        UserInput    `json:"user"`
	Coords      CoordsInput  `json:"coords"`
	Level       LevelInput   `json:"level"`
	Images      []ImageInput `json:"images"`
}

// Validate performs the schema-validation step that runs before the
// workflow: required fields, email shape and coordinate ranges.  It
// also normalizes the payload, trimming the email and defaulting an
// empty phone to the "Unknown" sentinel.  All problems are collected
// into a single error so the client sees the complete list at once.
func (r *SubmitRequest) Validate() error {
	var problems []string

	if strings.TrimSpace(r.BeautyTitle) == "" {
		problems = append(problems, "beauty_title is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		problems = append(problems, "title is required")
	}

	r.User.Email = strings.TrimSpace(r.User.Email)
	if r.User.Email == "" {
		problems = append(problems, "user.email is required")
	} else if _, err := mail.ParseAddress(r.User.Email); err != nil {
		problems = append(problems, "user.email is not a valid email address")
	}
	if strings.TrimSpace(r.User.Fam) == "" {
		problems = append(problems, "user.fam is required")
	}
	if strings.TrimSpace(r.User.Name) == "" {
		problems = append(problems, "user.name is required")
	}
	if strings.TrimSpace(r.User.Otc) == "" {
		problems = append(problems, "user.otc is required")
	}
	if strings.TrimSpace(r.User.Phone) == "" {
		r.User.Phone = PhoneUnknown
	}

	if r.Coords.Latitude < -90 || r.Coords.Latitude > 90 {
		problems = append(problems, "coords.latitude must be within [-90, 90]")
	}
	if r.Coords.Longitude < -180 || r.Coords.Longitude > 180 {
		problems = append(problems, "coords.longitude must be within [-180, 180]")
	}

	for i, img := range r.Images {
		if img.Data == "" {
			problems = append(problems, fmt.Sprintf("images[%d].data is required", i))
		}
		if strings.TrimSpace(img.Name) == "" {
			problems = append(problems, fmt.Sprintf("images[%d].name is required", i))
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// SubmitResult is the outcome of the create workflow.  Status mirrors
// an HTTP code (200 on success, 500 on failure) and ID carries the new
// pass identifier when the submission was stored.
type SubmitResult struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}

// PatchResult is the outcome of the patch workflow.  State is 1 when
// the pass was updated and 0 when the edit was rejected or failed;
// Message explains the rejection.
type PatchResult struct {
	State   int    `json:"state"`
	Message string `json:"message"`
}

// SubmissionView is the assembled read model of a pass: the stored row
// with its user, coords, level and images reconstructed as nested
// objects.  AddTime is formatted as RFC3339 in UTC.
type SubmissionView struct {
	ID          int64        `json:"id"`
	Status      string       `json:"status"`
	BeautyTitle string       `json:"beauty_title"`
	Title       string       `json:"title"`
	OtherTitles *string      `json:"other_titles,omitempty"`
	Connect     *string      `json:"connect,omitempty"`
	AddTime     string       `json:"add_time"`
	User        UserInput    `json:"user"`
	Coords      CoordsInput  `json:"coords"`
	Level       LevelInput   `json:"level"`
	Images      []ImageInput `json:"images"`
}
