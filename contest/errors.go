package contest

import (
	"net/http"

	"github.com/algotide/backend/srvcerror"
)

const ErrCodeContestNotFound = "contest_not_found"

func newErrContestNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeContestNotFound,
		"contest was not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeContestWindowClosed = "contest_window_closed"

func newErrContestWindowClosed() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeContestWindowClosed,
		"the contest is not accepting submissions at this time",
	).SetHttpStatusCode(http.StatusForbidden)
}

const ErrCodeProblemNotInContest = "problem_not_in_contest"

func newErrProblemNotInContest() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeProblemNotInContest,
		"the problem is not part of this contest",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidContest = "invalid_contest"

func newErrInvalidContest(reason string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidContest,
		reason,
	).SetHttpStatusCode(http.StatusBadRequest)
}

func newErrInternalSE() *srvcerror.Error {
	return srvcerror.ErrInternalSE()
}
