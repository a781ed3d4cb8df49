package remote

import "fmt"

// Stage names the step of a remote analysis that failed.
type Stage string

const (
	StageTransport Stage = "transport" // provider call failed or timed out
	StageEmpty     Stage = "empty"     // provider returned no content
	StageDecode    Stage = "decode"    // content is not the expected JSON
	StageSchema    Stage = "schema"    // JSON violates the result contract
)

// ErrRemote is the single error kind Analyze returns for a failed call.
type ErrRemote struct {
	Stage Stage
	Err   error
}

func (e *ErrRemote) Error() string {
	return fmt.Sprintf("remote analysis failed (%s): %v", e.Stage, e.Err)
}

func (e *ErrRemote) Unwrap() error { return e.Err }

// ErrConfiguration means the analyzer cannot run at all, for example
// because no provider credential was found.
type ErrConfiguration struct {
	Err error
}

func (e *ErrConfiguration) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote analysis not configured: %v", e.Err)
	}
	return "remote analysis not configured"
}

func (e *ErrConfiguration) Unwrap() error { return e.Err }
