package judge

import (
	"fmt"
	"net/http"

	"github.com/algotide/backend/srvcerror"
)

const ErrCodeUnsupportedLanguage = "unsupported_language"

func ErrUnsupportedLanguage(name string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUnsupportedLanguage,
		fmt.Sprintf("programming language %q is not supported", name),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeJudgeUnavailable = "judge_unavailable"

func ErrJudgeUnavailable() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeJudgeUnavailable,
		"code execution service is unavailable, please try again later",
	).SetHttpStatusCode(http.StatusServiceUnavailable)
}

const ErrCodeJudgeTimeout = "judge_timeout"

func ErrJudgeTimeout() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeJudgeTimeout,
		"code execution did not finish in time",
	).SetHttpStatusCode(http.StatusGatewayTimeout)
}
