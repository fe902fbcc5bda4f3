package helm

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrReleaseNameInUse        = errors.New("release name is already in use")
	ErrResourceAlreadyExists   = errors.New("resource already exists")
	ErrNamespaceNotFound       = errors.New("namespace not found")
	ErrManifestValidation      = errors.New("manifest validation failed")
	ErrRepositoryNotFound      = errors.New("repository not found")
	ErrRepositoryAlreadyExists = errors.New("repository already exists")
	ErrClusterUnreachable      = errors.New("kubernetes cluster unreachable")
	ErrDependenciesMissing     = errors.New("chart dependencies missing")
	ErrKubeVersionIncompatible = errors.New("kubernetes version incompatible")
	ErrNoDeployedReleases      = errors.New("release has no deployed revisions")
	ErrTimedOut                = errors.New("timed out waiting for the condition")
)

// ClassifiedError is a tool failure matched to a known reason. It unwraps to
// the reason so callers can test it with errors.Is.
type ClassifiedError struct {
	Reason error
	Output string
}

func (e *ClassifiedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason.Error(), strings.TrimSpace(e.Output))
}

func (e *ClassifiedError) Unwrap() error {
	return e.Reason
}

// FailureError is a tool failure that matched no known reason.
type FailureError struct {
	Output string
}

func (e *FailureError) Error() string {
	return fmt.Sprintf("helm command failed: %s", strings.TrimSpace(e.Output))
}

type ErrorPattern struct {
	Pattern *regexp.Regexp
	Reason  error
}

var DefaultErrorPatterns = []ErrorPattern{
	{regexp.MustCompile(`cannot re-use a name that is still in use`), ErrReleaseNameInUse},
	{regexp.MustCompile(`rendered manifests contain a resource that already exists`), ErrResourceAlreadyExists},
	{regexp.MustCompile(`namespaces? "[^"]*" not found`), ErrNamespaceNotFound},
	{regexp.MustCompile(`unable to build kubernetes objects from release manifest|error validating data`), ErrManifestValidation},
	{regexp.MustCompile(`repository name \([^)]*\) already exists`), ErrRepositoryAlreadyExists},
	{regexp.MustCompile(`no repo named|no cached repo found|repo .* not found|is not a valid chart repository`), ErrRepositoryNotFound},
	{regexp.MustCompile(`Kubernetes cluster unreachable`), ErrClusterUnreachable},
	{regexp.MustCompile(`found in Chart\.yaml, but missing in charts/ directory`), ErrDependenciesMissing},
	{regexp.MustCompile(`chart requires kubeVersion`), ErrKubeVersionIncompatible},
	{regexp.MustCompile(`has no deployed releases`), ErrNoDeployedReleases},
	{regexp.MustCompile(`timed out waiting for the condition`), ErrTimedOut},
}

// ErrorFactory maps raw tool output to errors. Patterns are tried in order
// and the first match wins.
type ErrorFactory struct {
	patterns []ErrorPattern
}

func NewErrorFactory(patterns []ErrorPattern) *ErrorFactory {
	if patterns == nil {
		patterns = DefaultErrorPatterns
	}
	return &ErrorFactory{patterns: patterns}
}

// Classify returns the matching ClassifiedError, or nil.
func (f *ErrorFactory) Classify(output string) error {
	for _, p := range f.patterns {
		if p.Pattern.MatchString(output) {
			return &ClassifiedError{Reason: p.Reason, Output: output}
		}
	}
	return nil
}

// GetError returns the classified error for output or a FailureError.
func (f *ErrorFactory) GetError(output string) error {
	if err := f.Classify(output); err != nil {
		return err
	}
	return &FailureError{Output: output}
}
