package models_test

import (
	"testing"

	"github.com/rish2311/BookStore-Assignment/internal/models"
)

func TestIsValidTransactionStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		isValid bool
	}{
		{"Valid Issued Status", string(models.StatusIssued), true},
		{"Valid Returned Status", string(models.StatusReturned), true},
		{"Invalid Status", "pending", false},
		{"Empty Status", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := models.IsValidTransactionStatus(tt.status); got != tt.isValid {
				t.Errorf("IsValidTransactionStatus() = %v, want %v", got, tt.isValid)
			}
		})
	}
}

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		isValid bool
	}{
		{"Valid Admin Role", string(models.RoleAdmin), true},
		{"Valid Member Role", string(models.RoleMember), true},
		{"Invalid Role", "librarian", false},
		{"Empty Role", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := models.IsValidRole(tt.role); got != tt.isValid {
				t.Errorf("IsValidRole() = %v, want %v", got, tt.isValid)
			}
		})
	}
}
