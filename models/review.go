package models

import (
	"fmt"
	"strings"
)

type ReviewUser struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// ReviewCategories are the per-aspect sub ratings of a review.
type ReviewCategories struct {
	Comfort   int `json:"comfort"`
	Noise     int `json:"noise"`
	Amenities int `json:"amenities"`
}

type Review struct {
	ID         string           `json:"id"`
	SpotID     string           `json:"spot_id"`
	User       ReviewUser       `json:"user"`
	Date       string           `json:"date"`
	Time       string           `json:"time"`
	Rating     int              `json:"rating"`
	Content    string           `json:"content"`
	Helpful    int              `json:"helpful"`
	Categories ReviewCategories `json:"categories"`
}

// ReviewRatings are the star values picked when writing a review. Zero means
// the reviewer has not picked a value yet.
type ReviewRatings struct {
	Overall   int `json:"overall"`
	Comfort   int `json:"comfort"`
	Noise     int `json:"noise"`
	Amenities int `json:"amenities"`
}

// ReviewSubmission is the body of a new review.
type ReviewSubmission struct {
	SpotID  string        `json:"spot_id"`
	Ratings ReviewRatings `json:"ratings"`
	Comment string        `json:"comment"`
}

// ValidationError carries a message meant to be shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the submission field by field and stops at the first problem.
func (s ReviewSubmission) Validate() error {
	checks := []struct {
		field string
		label string
		value int
	}{
		{"overall", "an overall", s.Ratings.Overall},
		{"comfort", "a comfort", s.Ratings.Comfort},
		{"noise", "a noise", s.Ratings.Noise},
		{"amenities", "an amenities", s.Ratings.Amenities},
	}
	for _, c := range checks {
		if c.value == 0 {
			return &ValidationError{Field: c.field, Message: fmt.Sprintf("Please provide %s rating", c.label)}
		}
		if c.value < MinLevel || c.value > MaxLevel {
			return &ValidationError{
				Field:   c.field,
				Message: fmt.Sprintf("The %s rating must be between %d and %d", c.field, MinLevel, MaxLevel),
			}
		}
	}
	if strings.TrimSpace(s.Comment) == "" {
		return &ValidationError{Field: "comment", Message: "Please provide a comment"}
	}
	return nil
}
