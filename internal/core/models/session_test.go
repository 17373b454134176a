package models

import (
	"testing"
)

func TestSessionValidation(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		wantErr bool
	}{
		{
			name: "valid session",
			session: Session{
				ID:        "2f1c7a52-5f0e-4d52-9a0e-0c1f6e1c9b11",
				Timestamp: 1730000000000,
				Title:     "Launch plan",
			},
			wantErr: false,
		},
		{
			name: "missing id",
			session: Session{
				Timestamp: 1730000000000,
				Title:     "Launch plan",
			},
			wantErr: true,
		},
		{
			name: "zero timestamp",
			session: Session{
				ID:    "abc",
				Title: "Launch plan",
			},
			wantErr: true,
		},
		{
			name: "missing title",
			session: Session{
				ID:        "abc",
				Timestamp: 1730000000000,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.session.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTitleFor(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
		want string
	}{
		{"nil document", nil, DefaultTitle},
		{"empty title", &Document{}, DefaultTitle},
		{"whitespace title", &Document{ThemeMap: ThemeMap{Title: "   "}}, DefaultTitle},
		{"title", &Document{ThemeMap: ThemeMap{Title: "Ship v2"}}, "Ship v2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleFor(tt.doc); got != tt.want {
				t.Errorf("TitleFor() = %q, want %q", got, tt.want)
			}
		})
	}
}
