package entities

// ContactSubmission is built from the contact form, posted once and discarded.
type ContactSubmission struct {
	Name    string `json:"name" form:"name" validate:"required"`
	Email   string `json:"email" form:"email" validate:"required,sitemail"`
	Message string `json:"message" form:"message" validate:"required"`
}
