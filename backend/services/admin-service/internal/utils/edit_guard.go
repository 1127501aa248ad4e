package utils

import (
	"fmt"

	"github.com/newsroom/mono-repo/backend/shared/go-models"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

// UnknownHolder names the holder of a newer version when the record carries
// no last editor.
const UnknownHolder = "another editor"

// EditDecision is the outcome of CheckEditConflict: either Accepted, or a
// conflict naming Holder as the editor who saved the newer version.
type EditDecision struct {
	Accepted         bool
	Holder           string
	SubmittedVersion int64
	PersistedVersion int64
}

// CheckEditConflict decides whether an edit that started from
// submittedVersion may be saved over persistedVersion. New records are
// always accepted. A submitted version ahead of the persisted one cannot
// happen with a well-behaved client and is accepted; the versioned write
// still compares against the persisted value.
//
// The guard only reads. Bumping the version is the caller's job.
func CheckEditConflict(isNew bool, submittedVersion, persistedVersion int64, holder string) EditDecision {
	d := EditDecision{
		SubmittedVersion: submittedVersion,
		PersistedVersion: persistedVersion,
	}
	if isNew || persistedVersion <= submittedVersion {
		d.Accepted = true
		return d
	}
	d.Holder = utils.FirstNonEmpty(holder, UnknownHolder)
	return d
}

// Err returns nil for an accepted edit and an *EditConflictError otherwise.
func (d EditDecision) Err() error {
	if d.Accepted {
		return nil
	}
	return &EditConflictError{
		Holder:           d.Holder,
		SubmittedVersion: d.SubmittedVersion,
		PersistedVersion: d.PersistedVersion,
	}
}

// EditConflictError rejects a save because Holder saved a newer version
// first. Current, when set, is the latest persisted article so the client
// can reload without another round trip.
type EditConflictError struct {
	Holder           string
	SubmittedVersion int64
	PersistedVersion int64
	Current          *models.Article
}

func (e *EditConflictError) Error() string {
	return fmt.Sprintf(
		"This article was changed by %s while you were editing it (your version %d, current version %d). "+
			"Copy your changes, reload the article and apply them again.",
		e.Holder, e.SubmittedVersion, e.PersistedVersion,
	)
}

func (e *EditConflictError) Unwrap() error { return utils.ErrRowVersionConflict }
