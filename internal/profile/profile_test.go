package profile

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/StangherlinEnrico/SociusFit.Backend-sub000/internal/common/utils"
)

func validRequest() *UpsertProfileRequest {
	return &UpsertProfileRequest{
		FirstName:     "Anna",
		Age:           28,
		Gender:        "female",
		City:          "Milan",
		Latitude:      45.4642,
		Longitude:     9.1900,
		Bio:           "Looking for a tennis partner",
		MaxDistanceKm: 25,
		Sports: []SportEntry{
			{SportID: 1, Level: "intermediate"},
		},
	}
}

func TestUpsertProfileRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*UpsertProfileRequest)
		wantErr bool
	}{
		{"valid", func(r *UpsertProfileRequest) {}, false},
		{"no sports is allowed", func(r *UpsertProfileRequest) { r.Sports = nil }, false},
		{"missing first name", func(r *UpsertProfileRequest) { r.FirstName = "" }, true},
		{"under age", func(r *UpsertProfileRequest) { r.Age = 15 }, true},
		{"unknown gender", func(r *UpsertProfileRequest) { r.Gender = "robot" }, true},
		{"latitude out of range", func(r *UpsertProfileRequest) { r.Latitude = 123 }, true},
		{"longitude out of range", func(r *UpsertProfileRequest) { r.Longitude = -200 }, true},
		{"zero max distance", func(r *UpsertProfileRequest) { r.MaxDistanceKm = 0 }, true},
		{"max distance too large", func(r *UpsertProfileRequest) { r.MaxDistanceKm = 1000 }, true},
		{"unknown skill level", func(r *UpsertProfileRequest) { r.Sports[0].Level = "pro" }, true},
		{"zero sport id", func(r *UpsertProfileRequest) { r.Sports[0].SportID = 0 }, true},
		{"bio too long", func(r *UpsertProfileRequest) { r.Bio = strings.Repeat("x", 501) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			err := utils.ValidateStruct(req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUniqueFilename(t *testing.T) {
	a := uniqueFilename("photo.jpg")
	b := uniqueFilename("photo.jpg")

	if a == b {
		t.Error("filenames should not collide")
	}
	if filepath.Ext(a) != ".jpg" {
		t.Errorf("extension not preserved: %s", a)
	}

	if ext := filepath.Ext(uniqueFilename("archive.tar.gz")); ext != ".gz" {
		t.Errorf("unexpected extension %s", ext)
	}
	if ext := filepath.Ext(uniqueFilename("noext")); ext != "" {
		t.Errorf("expected no extension, got %s", ext)
	}
}
