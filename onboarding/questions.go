package onboarding

// Question defines one step of the DM flow: the field key the answer is
// stored under, the prompt sent to the member, the validator applied to the
// sanitized answer, and the fixed error text on validation failure.
type Question struct {
	Field     string
	Prompt    string
	Validate  func(string) bool
	ErrorText string
}

// Questions is the fixed, ordered onboarding question sequence. The order
// (name, email, phone) is a build-time decision, not runtime configuration.
var Questions = []Question{
	{
		Field:     "name",
		Prompt:    "First up — what's your full name?",
		Validate:  IsValidName,
		ErrorText: "That doesn't look like a name. Please enter your full name (at least 2 characters).",
	},
	{
		Field:     "email",
		Prompt:    "Great! What's the email address you enrolled with?",
		Validate:  IsValidEmail,
		ErrorText: "That doesn't look like a valid email address. Please try again (e.g. you@example.com).",
	},
	{
		Field:     "phone",
		Prompt:    "Last one — what's your phone number?",
		Validate:  IsValidPhone,
		ErrorText: "That doesn't look like a valid phone number. Please enter a number with 10 to 15 digits.",
	},
}
