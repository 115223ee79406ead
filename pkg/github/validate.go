package github

import (
	"regexp"

	"github.com/matzehuels/gitego/pkg/errors"
)

var (
	// GitHub usernames/orgs: 1-39 alphanumeric or hyphen, not starting with hyphen
	validLogin = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	// GitHub repo names: 1-100 alphanumeric, hyphen, underscore, or dot
	validRepo = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)
)

// ValidateLogin validates a GitHub username or organization name.
func ValidateLogin(login string) error {
	if login == "" {
		return errors.New(errors.ErrCodeInvalidUsername, "username is required")
	}
	if !validLogin.MatchString(login) {
		return errors.New(errors.ErrCodeInvalidUsername,
			"invalid username %q: must be 1-39 alphanumeric characters or hyphens, cannot start with hyphen", login)
	}
	return nil
}

// ValidateRepo validates a GitHub repository name.
func ValidateRepo(name string) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidRepo, "repository name is required")
	}
	if !validRepo.MatchString(name) || name == "." || name == ".." {
		return errors.New(errors.ErrCodeInvalidRepo,
			"invalid repository name %q: must be 1-100 alphanumeric characters, hyphens, underscores, or dots", name)
	}
	return nil
}
