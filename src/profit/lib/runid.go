package profit

import (
	"strings"

	"github.com/google/uuid"
)

const SHORT_RUN_ID_LEN = 8

// RunId tags one calculation pass in logs and reports.
type RunId struct {
	Full  string
	Short string
}

func NewRunId() RunId {
	id := uuid.New().String()

	return RunId{
		Full:  id,
		Short: shortenRunId(id),
	}
}

func shortenRunId(id string) string {
	noDash := strings.ReplaceAll(id, "-", "")
	if len(noDash) < SHORT_RUN_ID_LEN {
		return noDash
	}
	return noDash[:SHORT_RUN_ID_LEN]
}
