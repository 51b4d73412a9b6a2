package subm

import (
	"fmt"
	"net/http"

	"github.com/algotide/backend/srvcerror"
)

const ErrCodeSubmissionNotFound = "submission_not_found"

func newErrSubmissionNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeSubmissionNotFound,
		"submission was not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeEmptySubmission = "empty_submission"

func newErrEmptySubmission() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEmptySubmission,
		"submission source code is empty",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeSubmissionTooLong = "submission_too_long"

func newErrSubmissionTooLong(maxBytes int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeSubmissionTooLong,
		fmt.Sprintf("submission source code exceeds %d bytes", maxBytes),
	).SetHttpStatusCode(http.StatusBadRequest)
}

func newErrInternalSE() *srvcerror.Error {
	return srvcerror.ErrInternalSE()
}
