package entities

import "time"

type JobApplication struct {
	ID           string    `gorm:"primaryKey" form:"-"`
	JobID        string    `gorm:"index" form:"-"`
	JobTitle     string    `form:"-"`
	FullName     string    `form:"full_name" validate:"required"`
	Email        string    `form:"email" validate:"required,sitemail"`
	Phone        string    `form:"phone"`
	LinkedIn     string    `form:"linkedin" validate:"omitempty,url"`
	PortfolioURL string    `form:"portfolio_url" validate:"omitempty,url"`
	CoverLetter  string    `form:"cover_letter" validate:"required"`
	CreatedAt    time.Time `form:"-"`
}
