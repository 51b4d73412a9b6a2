package problem

import (
	"fmt"
	"net/http"

	"github.com/algotide/backend/srvcerror"
)

const ErrCodeProblemNotFound = "problem_not_found"

func ErrProblemNotFound(shortID string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeProblemNotFound,
		fmt.Sprintf("problem %q was not found", shortID),
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeInvalidProblem = "invalid_problem"

func ErrInvalidProblem(reason string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidProblem,
		fmt.Sprintf("invalid problem: %s", reason),
	).SetHttpStatusCode(http.StatusBadRequest)
}
