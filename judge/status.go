package judge

// Status is the judge's status id for a single test-case run.
// 1 and 2 are non-terminal; everything above 2 is terminal.
type Status int

const (
	StatusInQueue           Status = 1
	StatusProcessing        Status = 2
	StatusAccepted          Status = 3
	StatusWrongAnswer       Status = 4
	StatusTimeLimitExceeded Status = 5
	StatusCompilationError  Status = 6
	StatusRuntimeErrSIGSEGV Status = 7
	StatusRuntimeErrSIGXFSZ Status = 8
	StatusRuntimeErrSIGFPE  Status = 9
	StatusRuntimeErrSIGABRT Status = 10
	StatusRuntimeErrNZEC    Status = 11
	StatusRuntimeErrOther   Status = 12
	StatusInternalError     Status = 13
	StatusExecFormatError   Status = 14
)

// IsTerminal reports whether the run has finished, successfully or not.
func (s Status) IsTerminal() bool {
	return s > StatusProcessing
}

// String returns the judge's human-readable label for the status.
func (s Status) String() string {
	switch s {
	case StatusInQueue:
		return "In Queue"
	case StatusProcessing:
		return "Processing"
	case StatusAccepted:
		return "Accepted"
	case StatusWrongAnswer:
		return "Wrong Answer"
	case StatusTimeLimitExceeded:
		return "Time Limit Exceeded"
	case StatusCompilationError:
		return "Compilation Error"
	case StatusRuntimeErrSIGSEGV:
		return "Runtime Error (SIGSEGV)"
	case StatusRuntimeErrSIGXFSZ:
		return "Runtime Error (SIGXFSZ)"
	case StatusRuntimeErrSIGFPE:
		return "Runtime Error (SIGFPE)"
	case StatusRuntimeErrSIGABRT:
		return "Runtime Error (SIGABRT)"
	case StatusRuntimeErrNZEC:
		return "Runtime Error (NZEC)"
	case StatusRuntimeErrOther:
		return "Runtime Error (Other)"
	case StatusInternalError:
		return "Internal Error"
	case StatusExecFormatError:
		return "Exec Format Error"
	}
	return "Unknown"
}
