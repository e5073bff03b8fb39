package domain

var (
	ErrNotFound            = errString("not found")
	ErrInvalidInput        = errString("invalid input")
	ErrInvalidPhone        = errString("invalid phone number")
	ErrExperimentFinalized = errString("experiment already finalized")
	ErrExperimentInactive  = errString("experiment outside its time window")
	ErrBatchNotPending     = errString("batch is not pending approval")
	ErrSequenceActive      = errString("follow-up sequence already active")
	ErrRunInProgress       = errString("daily run already in progress")
)

type errString string

func (e errString) Error() string { return string(e) }
