package mongo

import (
	"errors"
	"strings"

	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/topology"

	"github.com/xraph/stepflow/store"
	"github.com/xraph/stepflow/workflow"
)

const backend = "mongo"

// codeDuplicateKey is the server code for a unique index violation.
const codeDuplicateKey = 11000

var _ workflow.Classifier = Classifier{}

// WriteFailure is one failed write of a write or bulk write exception.
type WriteFailure struct {
	Index   int
	Code    int
	Message string
}

// Classifier maps mongo-driver errors to classifications. The zero value
// is ready to use.
type Classifier struct{}

// Classify implements workflow.Classifier.
func (Classifier) Classify(err error) (workflow.Classification, bool) {
	if errors.Is(err, mongod.ErrNoDocuments) {
		nf := store.NotFound{Backend: backend, Detail: "no matching document"}
		return workflow.Classification{Message: nf.Message(), Subject: nf}, true
	}

	var we mongod.WriteException
	if errors.As(err, &we) && len(we.WriteErrors) > 0 {
		failures := make([]WriteFailure, 0, len(we.WriteErrors))
		for _, e := range we.WriteErrors {
			failures = append(failures, WriteFailure{Index: e.Index, Code: e.Code, Message: e.Message})
		}
		return workflow.Classification{Message: summarize(failures), Subject: failures}, true
	}

	var bwe mongod.BulkWriteException
	if errors.As(err, &bwe) && len(bwe.WriteErrors) > 0 {
		failures := make([]WriteFailure, 0, len(bwe.WriteErrors))
		for _, e := range bwe.WriteErrors {
			failures = append(failures, WriteFailure{Index: e.Index, Code: e.Code, Message: e.Message})
		}
		return workflow.Classification{Message: summarize(failures), Subject: failures}, true
	}

	if !fromDriver(err) {
		return workflow.Classification{}, false
	}
	if mongod.IsTimeout(err) {
		u := store.Unavailable{Backend: backend, Timeout: true, Err: err}
		return workflow.Classification{Message: u.Message(), Subject: u}, true
	}
	if mongod.IsNetworkError(err) || disconnected(err) {
		u := store.Unavailable{Backend: backend, Err: err}
		return workflow.Classification{Message: u.Message(), Subject: u}, true
	}

	return workflow.Classification{}, false
}

// fromDriver reports whether err carries a mongo server, connection or
// topology error. Timeouts and network errors from other packages are left
// to the next classifier.
func fromDriver(err error) bool {
	if disconnected(err) {
		return true
	}
	var se mongod.ServerError
	if errors.As(err, &se) {
		return true
	}
	return errors.As(err, &topology.ServerSelectionError{}) ||
		errors.As(err, &topology.WaitQueueTimeoutError{})
}

func disconnected(err error) bool {
	return errors.Is(err, mongod.ErrClientDisconnected) ||
		errors.Is(err, topology.ErrTopologyClosed) ||
		errors.As(err, &topology.ConnectionError{})
}

func summarize(failures []WriteFailure) string {
	dup := true
	for _, f := range failures {
		if f.Code != codeDuplicateKey {
			dup = false
			break
		}
	}
	if dup {
		return "already exists"
	}
	msgs := make([]string, 0, len(failures))
	for _, f := range failures {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}
