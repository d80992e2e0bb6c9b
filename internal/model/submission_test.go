package model

import (
	"strings"
	"testing"
)

func validRequest() SubmitRequest {
	return SubmitRequest{
		BeautyTitle: "пер. ",
		Title:       "Pkhiya",
		User: UserInput{
			Email: "qwerty@mail.ru",
			Fam:   "Pupkin",
			Name:  "Vasily",
			Otc:   "Ivanovich",
			Phone: "+7 555 55 55",
		},
		Coords: CoordsInput{Latitude: 45.3842, Longitude: 7.1525, Height: 1200},
		Level:  LevelInput{Winter: "", Summer: "1A", Autumn: "1A", Spring: ""},
		Images: []ImageInput{{Data: "base64payload", Name: "Summit"}},
	}
}

func TestValidateAcceptsWellFormedRequest(t *testing.T) {
	req := validRequest()
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateDefaultsPhone(t *testing.T) {
	req := validRequest()
	req.User.Phone = ""
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.User.Phone != PhoneUnknown {
		t.Fatalf("expected phone %q, got %q", PhoneUnknown, req.User.Phone)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SubmitRequest)
		want   string
	}{
		{"missing beauty_title", func(r *SubmitRequest) { r.BeautyTitle = " " }, "beauty_title is required"},
		{"missing title", func(r *SubmitRequest) { r.Title = "" }, "title is required"},
		{"missing email", func(r *SubmitRequest) { r.User.Email = "" }, "user.email is required"},
		{"malformed email", func(r *SubmitRequest) { r.User.Email = "not-an-email" }, "user.email is not a valid email address"},
		{"missing fam", func(r *SubmitRequest) { r.User.Fam = "" }, "user.fam is required"},
		{"missing name", func(r *SubmitRequest) { r.User.Name = "" }, "user.name is required"},
		{"missing otc", func(r *SubmitRequest) { r.User.Otc = "" }, "user.otc is required"},
		{"latitude too low", func(r *SubmitRequest) { r.Coords.Latitude = -90.1 }, "coords.latitude must be within [-90, 90]"},
		{"latitude too high", func(r *SubmitRequest) { r.Coords.Latitude = 91 }, "coords.latitude must be within [-90, 90]"},
		{"longitude out of range", func(r *SubmitRequest) { r.Coords.Longitude = 180.5 }, "coords.longitude must be within [-180, 180]"},
		{"image without data", func(r *SubmitRequest) { r.Images[0].Data = "" }, "images[0].data is required"},
		{"image without name", func(r *SubmitRequest) { r.Images[0].Name = "" }, "images[0].name is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			err := req.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %q", tc.want, err.Error())
			}
		})
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	req := validRequest()
	req.Title = ""
	req.User.Email = "broken"
	req.Coords.Longitude = 999
	err := req.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, want := range []string{"title is required", "user.email", "coords.longitude"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to mention %q, got %q", want, err.Error())
		}
	}
}

func TestValidateBoundaryCoordinates(t *testing.T) {
	req := validRequest()
	req.Coords.Latitude = -90
	req.Coords.Longitude = 180
	if err := req.Validate(); err != nil {
		t.Fatalf("boundary coordinates must be accepted: %v", err)
	}
}
