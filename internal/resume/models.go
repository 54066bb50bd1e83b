// Package resume holds the resume data model and the loader that assembles a
// profile's resume from the common data directory and per-profile overrides.
package resume

// ContactInfo is the candidate's contact block.
type ContactInfo struct {
	Email    string `yaml:"email" json:"email"`
	Phone    string `yaml:"phone,omitempty" json:"phone,omitempty"`
	LinkedIn string `yaml:"linkedin,omitempty" json:"linkedin,omitempty"`
	GitHub   string `yaml:"github,omitempty" json:"github,omitempty"`
	Website  string `yaml:"website,omitempty" json:"website,omitempty"`
	Location string `yaml:"location,omitempty" json:"location,omitempty"`
}

type Header struct {
	Name    string      `yaml:"name" json:"name"`
	Title   string      `yaml:"title" json:"title"`
	Contact ContactInfo `yaml:"contact" json:"contact"`
}

type Summary struct {
	Content string `yaml:"content" json:"content"`
}

// Experience is a single work history entry.
type Experience struct {
	Company      string   `yaml:"company" json:"company"`
	Title        string   `yaml:"title" json:"title"`
	Location     string   `yaml:"location,omitempty" json:"location,omitempty"`
	StartDate    Date     `yaml:"start_date" json:"start_date"`
	EndDate      *Date    `yaml:"end_date,omitempty" json:"end_date,omitempty"`
	Current      bool     `yaml:"current" json:"current"`
	Achievements []string `yaml:"achievements" json:"achievements"`
	Technologies []string `yaml:"technologies" json:"technologies"`
}

// IsCurrent reports whether the position is ongoing. An entry without an end
// date counts as current even when the flag is unset.
func (e Experience) IsCurrent() bool {
	return e.Current || e.EndDate == nil
}

type ProfessionalExperience struct {
	Experiences []Experience `yaml:"experiences" json:"experiences"`
}

type Skill struct {
	Name        string `yaml:"name" json:"name"`
	Category    string `yaml:"category,omitempty" json:"category,omitempty"`
	Proficiency string `yaml:"proficiency,omitempty" json:"proficiency,omitempty"`
}

type Skills struct {
	Skills []Skill `yaml:"skills" json:"skills"`
}

// ByCategory returns the skills tagged with category, in file order.
func (s Skills) ByCategory(category string) []Skill {
	var out []Skill
	for _, sk := range s.Skills {
		if sk.Category == category {
			out = append(out, sk)
		}
	}
	return out
}

// Names returns every skill name in file order.
func (s Skills) Names() []string {
	names := make([]string, 0, len(s.Skills))
	for _, sk := range s.Skills {
		names = append(names, sk.Name)
	}
	return names
}

// Categories returns the distinct categories in first-seen order. Skills
// without a category are grouped under "Other".
func (s Skills) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, sk := range s.Skills {
		c := sk.Category
		if c == "" {
			c = OtherCategory
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// OtherCategory groups uncategorized skills.
const OtherCategory = "Other"

type Footer struct {
	Text     string `yaml:"text" json:"text"`
	Link     string `yaml:"link,omitempty" json:"link,omitempty"`
	LinkText string `yaml:"link_text,omitempty" json:"link_text,omitempty"`
}

// Resume is a fully assembled resume for one profile.
type Resume struct {
	Header     Header                 `json:"header"`
	Summary    Summary                `json:"summary"`
	Experience ProfessionalExperience `json:"experience"`
	Skills     Skills                 `json:"skills"`
	Footer     *Footer                `json:"footer,omitempty"`
}

