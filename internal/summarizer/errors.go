package summarizer

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// KindNotReady means the uploaded file is still being processed remotely.
	KindNotReady Kind = "not_ready"
	// KindQuota means the API key hit its rate limit or quota.
	KindQuota    Kind = "quota"
	KindTerminal Kind = "terminal"
)

var errEmptyResponse = errors.New("empty response from Gemini")

type RemoteError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *RemoteError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *RemoteError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func KindOf(err error) Kind {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindTerminal
}

func IsNotReady(err error) bool {
	return err != nil && KindOf(err) == KindNotReady
}

func IsQuota(err error) bool {
	return err != nil && KindOf(err) == KindQuota
}
