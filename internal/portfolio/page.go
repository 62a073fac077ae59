// Package portfolio assembles the static content of the portfolio page.
package portfolio

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/lo"
)

// SectionID names a page section.
type SectionID string

const (
	SectionHero           SectionID = "hero"
	SectionEducation      SectionID = "education"
	SectionCertifications SectionID = "certifications"
	SectionProjects       SectionID = "projects"
	SectionContact        SectionID = "contact"
)

// Order is the fixed top-to-bottom order of the page.
var Order = []SectionID{
	SectionHero,
	SectionEducation,
	SectionCertifications,
	SectionProjects,
	SectionContact,
}

type Link struct {
	Label string
	URL   string
	Icon  string
}

type Skill struct {
	Icon        string
	Title       string
	Description string
}

type Education struct {
	Degree      string
	Institution string
	Period      string
	Result      string
}

// Summary is the "period | result" line under a degree.
func (e Education) Summary() string {
	if e.Result == "" {
		return e.Period
	}
	return e.Period + " | " + e.Result
}

type Certification struct {
	Name   string
	Issuer string
	Year   string
	URL    string
}

type Project struct {
	Title        string
	Description  string
	Tech         []string
	URL          string
	Achievements []string
}

type ContactDetails struct {
	Email    string
	Location string
}

// MailTo is the mailto: link for the contact email.
func (c ContactDetails) MailTo() string {
	return "mailto:" + c.Email
}

type Profile struct {
	Name     string
	Headline string
	Image    string
	About    template.HTML
}

// Reveal is the staggered entrance timing shared by all sections.
type Reveal struct {
	DelayChildren   float64
	StaggerChildren float64
	Damping         float64
	Stiffness       float64
	OffsetY         float64
}

// DefaultReveal matches the page's original entrance animation.
var DefaultReveal = Reveal{
	DelayChildren:   0.3,
	StaggerChildren: 0.2,
	Damping:         12,
	Stiffness:       100,
	OffsetY:         20,
}

// Delay returns the entrance delay in seconds of the child at index i.
func (r Reveal) Delay(i int) float64 {
	if i < 0 {
		i = 0
	}
	return r.DelayChildren + float64(i)*r.StaggerChildren
}

// Section is one rendered block of the page.
type Section struct {
	ID    SectionID
	Index int
	Delay float64
}

// Style is the inline CSS that schedules the section's entrance.
func (s Section) Style() template.CSS {
	return template.CSS(fmt.Sprintf("animation-delay: %.2fs", s.Delay))
}

// Page is everything the index template renders.
type Page struct {
	Title          string
	Description    string
	Profile        Profile
	Social         []Link
	Skills         []Skill
	Education      []Education
	Certifications []Certification
	Projects       []Project
	Contact        ContactDetails
	Reveal         Reveal
	Sections       []Section
}

// Section returns the section with id, or false when the page has none.
func (p Page) Section(id SectionID) (Section, bool) {
	return lo.Find(p.Sections, func(s Section) bool { return s.ID == id })
}

var aboutPolicy = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AllowElements("span", "strong", "em")
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("span")
	return p
}()

// SanitizeAbout strips everything from markup except inline emphasis.
func SanitizeAbout(markup string) template.HTML {
	clean := aboutPolicy.Sanitize(strings.Join(strings.Fields(markup), " "))
	return template.HTML(clean)
}

// Build assembles the page from the static content.
func Build() Page {
	return Page{
		Title:       pageTitle,
		Description: pageSummary,
		Profile: Profile{
			Name:     ownerName,
			Headline: ownerHeadline,
			Image:    profileImage,
			About:    SanitizeAbout(aboutMarkup),
		},
		Social:         socialLinks,
		Skills:         skills,
		Education:      education,
		Certifications: certifications,
		Projects:       projects,
		Contact:        contactDetails,
		Reveal:         DefaultReveal,
		Sections: lo.Map(Order, func(id SectionID, i int) Section {
			return Section{ID: id, Index: i, Delay: DefaultReveal.Delay(i)}
		}),
	}
}
