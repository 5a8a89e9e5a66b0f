package entities

type ProjectStatus string

const (
	StatusLive        ProjectStatus = "live"
	StatusDevelopment ProjectStatus = "development"
	StatusManaging    ProjectStatus = "managing"
)

var statusLabels = map[ProjectStatus]string{
	StatusLive:        "Live",
	StatusDevelopment: "In Development",
	StatusManaging:    "Managing",
}

func (s ProjectStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

type ProjectCategory string

const (
	CategoryWeb        ProjectCategory = "web"
	CategoryMobile     ProjectCategory = "mobile"
	CategoryAI         ProjectCategory = "ai"
	CategoryEnterprise ProjectCategory = "enterprise"
)

type PortfolioProject struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	LongDescription string          `json:"long_description"`
	Image           string          `json:"image"`
	Tags            []string        `json:"tags"`
	Category        ProjectCategory `json:"category"`
	LiveURL         string          `json:"live_url,omitempty"`
	GithubURL       string          `json:"github_url,omitempty"`
	Status          ProjectStatus   `json:"status"`
	Client          string          `json:"client,omitempty"`
	Pinned          bool            `json:"pinned"`
}

const visibleTags = 3

// VisibleTags returns the tags shown on a card and how many were left out.
func (p PortfolioProject) VisibleTags() ([]string, int) {
	if len(p.Tags) <= visibleTags {
		return p.Tags, 0
	}
	return p.Tags[:visibleTags], len(p.Tags) - visibleTags
}
