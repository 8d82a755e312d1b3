package commands

import (
	"testing"

	"ramws/internal/testutil"
)

func TestConfirmDestructive(t *testing.T) {
	tests := []struct {
		name           string
		answer         bool
		noninteractive bool
		want           bool
		wantAsked      bool
	}{
		{name: "noninteractive skips prompt", answer: false, noninteractive: true, want: true},
		{name: "interactive yes", answer: true, want: true, wantAsked: true},
		{name: "interactive no", answer: false, want: false, wantAsked: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &testutil.FixedConfirmer{Answer: tt.answer}
			got, err := ConfirmDestructive(c, "Proceed?", tt.noninteractive)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if (len(c.Questions) > 0) != tt.wantAsked {
				t.Errorf("asked = %v, want %v", len(c.Questions) > 0, tt.wantAsked)
			}
		})
	}
}
