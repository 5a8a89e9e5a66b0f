package web

import (
	"github.com/gin-gonic/gin"
	"github.com/quantumstack/site/internal/entities"
	"github.com/quantumstack/site/internal/services"
	"github.com/quantumstack/site/internal/ui"
	"github.com/samber/lo"
	"html/template"
	"net/url"
	"time"
)

const excerptLength = 160

var templateFuncs = template.FuncMap{
	"year": func() int { return time.Now().Year() },
}

type navLink struct {
	Title string
	Path  string
}

var navigation = []navLink{
	{"Home", "/"},
	{"About", "/about"},
	{"Services", "/services"},
	{"Portfolio", "/portfolio"},
	{"Staff", "/staff"},
	{"Careers", "/careers"},
	{"Contact", "/contact"},
}

// refresh is rendered as a meta refresh in the page head.
type refresh struct {
	Seconds int
	URL     string
}

type jobCardView struct {
	Job         entities.JobOpening
	Anchor      string
	Description template.HTML
	Excerpt     string
	Salary      string
	HasSalary   bool
	State       ui.JobCardState
	TypeClass   string
	ToggleURL   string
	ApplyURL    string
	CloseURL    string
	SubmitURL   string
	Form        entities.JobApplication
	FieldErrors map[string]string
	FormError   string
}

type projectCardView struct {
	Project  entities.PortfolioProject
	Tags     []string
	MoreTags int
}

// cardQuery is the per-card state of the careers page carried in the URL.
type cardQuery struct {
	expanded map[string]bool
	apply    string
}

func parseCardQuery(c *gin.Context) cardQuery {
	q := cardQuery{expanded: map[string]bool{}, apply: c.Query("apply")}
	for _, id := range c.QueryArray("expanded") {
		if id != "" {
			q.expanded[id] = true
		}
	}
	return q
}

func (q cardQuery) values(jobs []entities.JobOpening) url.Values {
	values := url.Values{}
	for _, job := range jobs {
		if q.expanded[job.ID] {
			values.Add("expanded", job.ID)
		}
	}
	if q.apply != "" {
		values.Set("apply", q.apply)
	}
	return values
}

// url renders the query in the order of jobs so links are stable. The open form
// survives collapsing its card and shows again once the card is expanded.
func (q cardQuery) url(jobs []entities.JobOpening, anchor string) string {
	return withQuery("/careers", q.values(jobs), anchor)
}

func withQuery(path string, values url.Values, anchor string) string {
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}
	if anchor != "" {
		path += "#" + anchor
	}
	return path
}

func (q cardQuery) with(id string, expanded bool, apply string) cardQuery {
	next := cardQuery{expanded: make(map[string]bool, len(q.expanded)+1), apply: apply}
	for k, v := range q.expanded {
		next.expanded[k] = v
	}
	if expanded {
		next.expanded[id] = true
	} else {
		delete(next.expanded, id)
	}
	return next
}

func jobAnchor(id string) string {
	return "job-" + id
}

// jobCards builds one independent card per job and replays the URL state onto it.
func jobCards(jobs []entities.JobOpening, q cardQuery) []jobCardView {
	return lo.Map(jobs, func(job entities.JobOpening, _ int) jobCardView {
		card := ui.NewJobCard()
		card.Toggle()
		if q.apply == job.ID {
			card.OpenForm()
		}
		if !q.expanded[job.ID] {
			card.Toggle()
		}
		return newJobCardView(jobs, job, card.State(), q)
	})
}

func newJobCardView(jobs []entities.JobOpening, job entities.JobOpening, state ui.JobCardState, q cardQuery) jobCardView {
	anchor := jobAnchor(job.ID)
	salary, hasSalary := job.Salary()

	closeApply := q.apply
	if closeApply == job.ID {
		closeApply = ""
	}
	submit := q.with(job.ID, true, "").values(jobs)

	return jobCardView{
		Job:         job,
		Anchor:      anchor,
		Description: template.HTML(job.Description),
		Excerpt:     services.Excerpt(job.Description, excerptLength),
		Salary:      salary,
		HasSalary:   hasSalary,
		State:       state,
		TypeClass:   job.JobType.StyleClass(),
		ToggleURL:   q.with(job.ID, !state.Expanded, q.apply).url(jobs, anchor),
		ApplyURL:    q.with(job.ID, true, job.ID).url(jobs, anchor),
		CloseURL:    q.with(job.ID, true, closeApply).url(jobs, anchor),
		SubmitURL:   withQuery("/careers/"+url.PathEscape(job.ID)+"/apply", submit, ""),
	}
}

func projectCards(projects []entities.PortfolioProject) []projectCardView {
	return lo.Map(projects, func(p entities.PortfolioProject, _ int) projectCardView {
		tags, more := p.VisibleTags()
		return projectCardView{Project: p, Tags: tags, MoreTags: more}
	})
}
