package services

import (
	"testing"

	"github.com/taskhive/taskhive/internal/models"
)

func TestDedupeTagInputs(t *testing.T) {
	tests := []struct {
		name   string
		inputs []TagInput
		want   []TagInput
	}{
		{
			name:   "empty list",
			inputs: nil,
			want:   []TagInput{},
		},
		{
			name: "case-insensitive first occurrence wins",
			inputs: []TagInput{
				{Name: "Work", Color: "#111111"},
				{Name: "work", Color: "#222222"},
				{Name: "WORK", Color: "#333333"},
			},
			want: []TagInput{
				{Name: "Work", Color: "#111111"},
			},
		},
		{
			name: "names are trimmed before deduplication",
			inputs: []TagInput{
				{Name: "  errand  ", Color: "#111111"},
				{Name: "Errand", Color: "#222222"},
			},
			want: []TagInput{
				{Name: "errand", Color: "#111111"},
			},
		},
		{
			name: "blank names are dropped",
			inputs: []TagInput{
				{Name: "   ", Color: "#111111"},
				{Name: "", Color: "#222222"},
				{Name: "home", Color: "#333333"},
			},
			want: []TagInput{
				{Name: "home", Color: "#333333"},
			},
		},
		{
			name: "missing color falls back to default",
			inputs: []TagInput{
				{Name: "urgent"},
				{Name: "later", Color: "  "},
			},
			want: []TagInput{
				{Name: "urgent", Color: models.DefaultTagColor},
				{Name: "later", Color: models.DefaultTagColor},
			},
		},
		{
			name: "distinct names are all kept in order",
			inputs: []TagInput{
				{Name: "a", Color: "#111111"},
				{Name: "b", Color: "#222222"},
				{Name: "c", Color: "#333333"},
			},
			want: []TagInput{
				{Name: "a", Color: "#111111"},
				{Name: "b", Color: "#222222"},
				{Name: "c", Color: "#333333"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dedupeTagInputs(tt.inputs)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tags, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("tag %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTrimDescription(t *testing.T) {
	if got := trimDescription(nil); got != nil {
		t.Errorf("nil description: got %q, want nil", *got)
	}

	blank := "   "
	if got := trimDescription(&blank); got != nil {
		t.Errorf("blank description: got %q, want nil", *got)
	}

	padded := "  buy milk  "
	got := trimDescription(&padded)
	if got == nil || *got != "buy milk" {
		t.Errorf("padded description: got %v, want %q", got, "buy milk")
	}
}
