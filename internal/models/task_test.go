package models

import "testing"

func TestIsValidStatus(t *testing.T) {
	for _, status := range []string{StatusPending, StatusInProgress, StatusCompleted} {
		if !IsValidStatus(status) {
			t.Errorf("IsValidStatus(%q) = false, want true", status)
		}
	}
	for _, status := range []string{"", "archived", "Pending", "in_progress", "done"} {
		if IsValidStatus(status) {
			t.Errorf("IsValidStatus(%q) = true, want false", status)
		}
	}
}
