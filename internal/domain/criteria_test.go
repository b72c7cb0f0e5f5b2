package domain

import (
	"errors"
	"testing"
)

func TestCriteriaValidate(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		wantMsgs int
	}{
		{name: "all empty", criteria: Criteria{}, wantMsgs: 1},
		{name: "whitespace only", criteria: Criteria{Name: "  ", Glass: "\t"}, wantMsgs: 1},
		{name: "name too short", criteria: Criteria{Name: "a"}, wantMsgs: 1},
		{name: "name padded too short", criteria: Criteria{Name: " a "}, wantMsgs: 1},
		{name: "name and ingredient too short", criteria: Criteria{Name: "a", Ingredient: "b"}, wantMsgs: 2},
		{name: "valid name", criteria: Criteria{Name: "mojito"}, wantMsgs: 0},
		{name: "category only", criteria: Criteria{Category: "Shot"}, wantMsgs: 0},
		{name: "single char category is fine", criteria: Criteria{Category: "S"}, wantMsgs: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.criteria.Validate()
			if tt.wantMsgs == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if len(verr.Messages) != tt.wantMsgs {
				t.Errorf("Validate() messages = %v, want %d", verr.Messages, tt.wantMsgs)
			}
		})
	}
}

func TestCriteriaValidateMessages(t *testing.T) {
	err := Criteria{Name: "a"}.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Messages[0] != msgNameTooShort {
		t.Errorf("message = %q, want %q", verr.Messages[0], msgNameTooShort)
	}
}

func TestCriteriaTrimmed(t *testing.T) {
	c := Criteria{Name: " Mojito ", Category: " Cocktail", Ingredient: "rum ", Glass: "  "}.Trimmed()
	if c.Name != "Mojito" || c.Category != "Cocktail" || c.Ingredient != "rum" || c.Glass != "" {
		t.Errorf("Trimmed() = %+v", c)
	}
}
