package entities

import (
	"strings"
	"unicode/utf8"
)

type StaffRole struct {
	Name string `json:"name"`
}

type Social struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type Skill struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type StaffMember struct {
	ID       string    `json:"id"`
	Slug     string    `json:"slug"`
	FullName string    `json:"full_name"`
	Role     StaffRole `json:"role"`
	Bio      string    `json:"bio"`
	Avatar   string    `json:"avatar"`
	Email    string    `json:"email,omitempty"`
	Socials  []Social  `json:"socials,omitempty"`
	Skills   []Skill   `json:"skills,omitempty"`
}

// PathSlug is the key used in /staff/{slug} links.
func (m StaffMember) PathSlug() string {
	if m.Slug != "" {
		return m.Slug
	}
	return m.ID
}

func (m StaffMember) Initials() string {
	var b strings.Builder
	for _, part := range strings.Fields(m.FullName) {
		r, _ := utf8.DecodeRuneInString(part)
		b.WriteRune(r)
	}
	return b.String()
}

func (m StaffMember) FirstName() string {
	if parts := strings.Fields(m.FullName); len(parts) > 0 {
		return parts[0]
	}
	return ""
}
