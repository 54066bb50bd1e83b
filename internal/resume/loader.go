package resume

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrJobNotFound     = errors.New("no job description found")
	ErrFileNotFound    = errors.New("file not found")
)

const (
	CommonDir   = "common"
	ProfilesDir = "profiles"
)

// JobFiles lists the job description file names looked up in a profile
// directory, in priority order.
var JobFiles = []string{"job.txt", "job.md", "job.html"}

// Loader assembles a profile's resume. Profile files take precedence over the
// files under common/.
type Loader struct {
	Profile    string
	DataDir    string
	commonDir  string
	profileDir string
}

// NewLoader returns a loader for profile under dataDir.
func NewLoader(dataDir, profile string) (*Loader, error) {
	profileDir := filepath.Join(dataDir, ProfilesDir, profile)
	info, err := os.Stat(profileDir)
	if err != nil || !info.IsDir() {
		return nil, errors.Wrapf(ErrProfileNotFound, "%s", profile)
	}
	return &Loader{
		Profile:    profile,
		DataDir:    dataDir,
		commonDir:  filepath.Join(dataDir, CommonDir),
		profileDir: profileDir,
	}, nil
}

// ProfileDir is the directory holding this profile's files.
func (l *Loader) ProfileDir() string { return l.profileDir }

// LoadHeader merges the profile's header.yml over the common one. Top-level
// keys from the profile win; contact is replaced as a whole when present.
func (l *Loader) LoadHeader() (Header, error) {
	merged := map[string]any{}
	if err := LoadYAML(filepath.Join(l.commonDir, "header.yml"), &merged); err != nil {
		return Header{}, err
	}

	profileHeader := filepath.Join(l.profileDir, "header.yml")
	if exists(profileHeader) {
		override := map[string]any{}
		if err := LoadYAML(profileHeader, &override); err != nil {
			return Header{}, err
		}
		for k, v := range override {
			merged[k] = v
		}
	}

	if _, ok := merged["contact"]; !ok {
		return Header{}, errors.New("header: contact is required")
	}

	raw, err := yaml.Marshal(merged)
	if err != nil {
		return Header{}, errors.Wrap(err, "failed to merge header")
	}
	var h Header
	if err := yaml.Unmarshal(raw, &h); err != nil {
		return Header{}, errors.Wrap(err, "failed to decode header")
	}
	return h, nil
}

func (l *Loader) LoadSummary() (Summary, error) {
	var s Summary
	if err := LoadYAML(filepath.Join(l.profileDir, "summary.yml"), &s); err != nil {
		return Summary{}, err
	}
	return s, nil
}

// LoadExperience reads the profile's experience.yml, falling back to common.
func (l *Loader) LoadExperience() (ProfessionalExperience, error) {
	var pe ProfessionalExperience
	if err := LoadYAML(l.pick("experience.yml"), &pe); err != nil {
		return ProfessionalExperience{}, err
	}
	pe.normalize()
	return pe, nil
}

// LoadSkills reads the profile's skills.yml, falling back to common.
func (l *Loader) LoadSkills() (Skills, error) {
	var s Skills
	if err := LoadYAML(l.pick("skills.yml"), &s); err != nil {
		return Skills{}, err
	}
	return s, nil
}

// LoadFooter returns nil when common/footer.yml does not exist.
func (l *Loader) LoadFooter() (*Footer, error) {
	path := filepath.Join(l.commonDir, "footer.yml")
	if !exists(path) {
		return nil, nil
	}
	var f Footer
	if err := LoadYAML(path, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadResume loads and validates the complete resume.
func (l *Loader) LoadResume() (*Resume, error) {
	header, err := l.LoadHeader()
	if err != nil {
		return nil, err
	}
	summary, err := l.LoadSummary()
	if err != nil {
		return nil, err
	}
	experience, err := l.LoadExperience()
	if err != nil {
		return nil, err
	}
	skills, err := l.LoadSkills()
	if err != nil {
		return nil, err
	}
	footer, err := l.LoadFooter()
	if err != nil {
		return nil, err
	}

	r := &Resume{
		Header:     header,
		Summary:    summary,
		Experience: experience,
		Skills:     skills,
		Footer:     footer,
	}
	if err := r.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid resume data for profile %s", l.Profile)
	}
	return r, nil
}

// LoadJobDescription returns the profile's job description text. HTML
// postings are converted to markdown.
func (l *Loader) LoadJobDescription() (string, error) {
	for _, name := range JobFiles {
		path := filepath.Join(l.profileDir, name)
		if !exists(path) {
			continue
		}
		text, err := ReadText(path)
		if err != nil {
			return "", err
		}
		if strings.HasSuffix(name, ".html") {
			return HTMLToText(text)
		}
		return text, nil
	}
	return "", errors.Wrapf(ErrJobNotFound, "profile %s", l.Profile)
}

func (l *Loader) pick(name string) string {
	if p := filepath.Join(l.profileDir, name); exists(p) {
		return p
	}
	return filepath.Join(l.commonDir, name)
}

func (pe *ProfessionalExperience) normalize() {
	for i := range pe.Experiences {
		e := &pe.Experiences[i]
		if e.EndDate != nil && e.EndDate.IsZero() {
			e.EndDate = nil
		}
		if e.Achievements == nil {
			e.Achievements = []string{}
		}
		if e.Technologies == nil {
			e.Technologies = []string{}
		}
	}
}

// ListProfiles returns the sorted profile names under dataDir.
func ListProfiles(dataDir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(dataDir, ProfilesDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.Wrap(err, "failed to list profiles")
	}
	profiles := []string{}
	for _, e := range entries {
		if e.IsDir() {
			profiles = append(profiles, e.Name())
		}
	}
	sort.Strings(profiles)
	return profiles, nil
}
