package validation

import "testing"

type registrationInput struct {
	Name     string `validate:"required,min=2,max=50,person_name"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=10,password_strength"`
}

func validInput() registrationInput {
	return registrationInput{
		Name:     "Alice Smith",
		Email:    "alice@x.com",
		Password: "Sup3rSecret123",
	}
}

func TestRegistrationValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(in *registrationInput)
		wantMsg string
	}{
		{
			name:   "valid input",
			mutate: func(in *registrationInput) {},
		},
		{
			name:   "accented letters are letters",
			mutate: func(in *registrationInput) { in.Name = "José Núñez" },
		},
		{
			name:    "single character name",
			mutate:  func(in *registrationInput) { in.Name = "A" },
			wantMsg: "Name must be at least 2 characters",
		},
		{
			name:    "name with punctuation",
			mutate:  func(in *registrationInput) { in.Name = "Alice-Smith" },
			wantMsg: "Name can only contain letters and spaces",
		},
		{
			name:    "name with digits",
			mutate:  func(in *registrationInput) { in.Name = "Alice2" },
			wantMsg: "Name can only contain letters and spaces",
		},
		{
			name:    "malformed email",
			mutate:  func(in *registrationInput) { in.Email = "alice" },
			wantMsg: "Invalid email address",
		},
		{
			name:    "nine character password",
			mutate:  func(in *registrationInput) { in.Password = "Abcdefgh1" },
			wantMsg: "Password must be at least 10 characters",
		},
		{
			name:    "password without uppercase",
			mutate:  func(in *registrationInput) { in.Password = "abcdefghij1" },
			wantMsg: "Password must contain at least one uppercase letter and one number",
		},
		{
			name:    "password without digit",
			mutate:  func(in *registrationInput) { in.Password = "Abcdefghijk" },
			wantMsg: "Password must contain at least one uppercase letter and one number",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := validInput()
			tt.mutate(&in)

			err := Validate.Struct(in)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("expected valid input, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if got := ValidationMessage(err); got != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, got)
			}
		})
	}
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  hello  ", "hello"},
		{"strips control characters", "hel\x00lo", "hello"},
		{"keeps newlines and tabs", "line1\n\tline2", "line1\n\tline2"},
		{"empty input", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeText(tt.input); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
