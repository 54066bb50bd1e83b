package resume

import (
	"net/mail"
	"net/url"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Validate checks required fields and field formats, reporting every problem
// found rather than stopping at the first.
func (r *Resume) Validate() error {
	var result *multierror.Error

	if r.Header.Name == "" {
		result = multierror.Append(result, errors.New("header: name is required"))
	}
	if r.Header.Title == "" {
		result = multierror.Append(result, errors.New("header: title is required"))
	}
	if r.Header.Contact.Email == "" {
		result = multierror.Append(result, errors.New("contact: email is required"))
	} else if _, err := mail.ParseAddress(r.Header.Contact.Email); err != nil {
		result = multierror.Append(result, errors.Errorf("contact: invalid email %q", r.Header.Contact.Email))
	}
	links := []struct{ field, value string }{
		{"linkedin", r.Header.Contact.LinkedIn},
		{"github", r.Header.Contact.GitHub},
		{"website", r.Header.Contact.Website},
	}
	for _, l := range links {
		if l.value != "" && !isHTTPURL(l.value) {
			result = multierror.Append(result, errors.Errorf("contact: %s must be an http(s) URL, got %q", l.field, l.value))
		}
	}

	if r.Summary.Content == "" {
		result = multierror.Append(result, errors.New("summary: content is required"))
	}

	for i, exp := range r.Experience.Experiences {
		if exp.Company == "" {
			result = multierror.Append(result, errors.Errorf("experience[%d]: company is required", i))
		}
		if exp.Title == "" {
			result = multierror.Append(result, errors.Errorf("experience[%d]: title is required", i))
		}
		if exp.StartDate.IsZero() {
			result = multierror.Append(result, errors.Errorf("experience[%d]: start_date is required", i))
		}
		if exp.EndDate != nil && exp.EndDate.Before(exp.StartDate.Time) {
			result = multierror.Append(result, errors.Errorf("experience[%d]: end_date is before start_date", i))
		}
	}

	for i, sk := range r.Skills.Skills {
		if sk.Name == "" {
			result = multierror.Append(result, errors.Errorf("skills[%d]: name is required", i))
		}
	}

	if r.Footer != nil {
		if r.Footer.Text == "" {
			result = multierror.Append(result, errors.New("footer: text is required"))
		}
		if r.Footer.Link != "" && !isHTTPURL(r.Footer.Link) {
			result = multierror.Append(result, errors.Errorf("footer: link must be an http(s) URL, got %q", r.Footer.Link))
		}
	}

	return result.ErrorOrNil()
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
