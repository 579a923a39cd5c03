package reservation

import (
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
)

type Title struct {
	text string
}

func NewTitle(s string) (Title, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Title{}, ErrEmptyTitle
	}
	if utf8.RuneCountInString(t) > MaxTitleLength {
		return Title{}, ErrTitleTooLong
	}
	return Title{text: t}, nil
}

func (t Title) String() string { return t.text }

type Description struct {
	text string
}

func NewDescription(s *string) (Description, error) {
	if s == nil {
		return Description{}, nil
	}
	t := strings.TrimSpace(*s)
	if utf8.RuneCountInString(t) > MaxDescriptionLength {
		return Description{}, ErrDescriptionTooLong
	}
	return Description{text: t}, nil
}

func (d Description) String() string { return d.text }

func (d Description) IsEmpty() bool { return d.text == "" }

// Ptr returns nil for an empty description.
func (d Description) Ptr() *string {
	if d.text == "" {
		return nil
	}
	s := d.text
	return &s
}
