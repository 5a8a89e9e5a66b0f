package entities

import (
	"github.com/dustin/go-humanize"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

type Site string

const (
	Onsite Site = "onsite"
	Remote Site = "remote"
	Hybrid Site = "hybrid"
)

var siteLabels = map[Site]string{
	Onsite: "On-site",
	Remote: "Remote",
	Hybrid: "Hybrid",
}

func (s Site) Label() string {
	if label, ok := siteLabels[s]; ok {
		return label
	}
	return string(s)
}

type JobType string

const (
	FullTime   JobType = "full-time"
	PartTime   JobType = "part-time"
	Contract   JobType = "contract"
	Internship JobType = "internship"
)

// Label renders "full-time" as "Full Time".
func (t JobType) Label() string {
	words := strings.Fields(strings.Replace(string(t), "-", " ", 1))
	for i, word := range words {
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + word[size:]
	}
	return strings.Join(words, " ")
}

func (t JobType) Known() bool {
	switch t {
	case FullTime, PartTime, Contract, Internship:
		return true
	default:
		return false
	}
}

// StyleClass is the badge modifier class; unknown types are styled as full-time.
func (t JobType) StyleClass() string {
	if !t.Known() {
		t = FullTime
	}
	return "job-type--" + string(t)
}

type ListItem struct {
	Description string `json:"description"`
}

type SalaryRange struct {
	MinSalary string `json:"min_salary"`
	MaxSalary string `json:"max_salary"`
}

func (r SalaryRange) String() string {
	return "₦" + formatAmount(r.MinSalary) + " - ₦" + formatAmount(r.MaxSalary)
}

func formatAmount(raw string) string {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return raw
	}
	return humanize.Commaf(math.Round(value*1000) / 1000)
}

type JobOpening struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Department       string       `json:"department"`
	Location         string       `json:"location"`
	Company          string       `json:"company"`
	Site             Site         `json:"site"`
	JobType          JobType      `json:"job_type"`
	Experience       string       `json:"experience"`
	Description      string       `json:"description"`
	Responsibilities []ListItem   `json:"responsibilities"`
	Requirements     []ListItem   `json:"requirements"`
	Benefits         []ListItem   `json:"benefits"`
	SalaryRange      *SalaryRange `json:"salary_range,omitempty"`
	PostedAt         time.Time    `json:"posted_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// Salary returns the formatted salary line and false when the opening has no salary range.
func (j JobOpening) Salary() (string, bool) {
	if j.SalaryRange == nil {
		return "", false
	}
	return j.SalaryRange.String(), true
}

func (j JobOpening) PostedLabel() string {
	if j.PostedAt.IsZero() {
		return ""
	}
	return j.PostedAt.Format("Jan 2")
}
