package model

import "fmt"

// ArtifactLoadError means the model artifact could not be read or is not a
// usable bundle. No assessment can run without it.
type ArtifactLoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *ArtifactLoadError) Error() string {
	msg := fmt.Sprintf("load model artifact %s: %s", e.Source, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ArtifactLoadError) Unwrap() error {
	return e.Err
}

func loadErr(source, reason string, err error) *ArtifactLoadError {
	return &ArtifactLoadError{Source: source, Reason: reason, Err: err}
}
