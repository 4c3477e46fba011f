package redis

import (
	"errors"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/xraph/stepflow/store"
	"github.com/xraph/stepflow/workflow"
)

const backend = "redis"

var _ workflow.Classifier = Classifier{}

// Reply is the subject recorded for a Redis error reply such as
// "WRONGTYPE Operation against a key holding the wrong kind of value".
type Reply struct {
	Prefix  string
	Message string
}

// replyMessages maps reply prefixes to failure messages.
var replyMessages = map[string]string{
	"WRONGTYPE": "key holds the wrong kind of value",
	"OOM":       "redis is out of memory",
	"READONLY":  "redis replica is read-only",
	"LOADING":   "redis is loading its dataset",
	"BUSY":      "redis is busy running a script",
	"NOSCRIPT":  "script is not loaded",
}

// Classifier maps go-redis errors to classifications. The zero value is
// ready to use.
type Classifier struct{}

// Classify implements workflow.Classifier.
func (Classifier) Classify(err error) (workflow.Classification, bool) {
	switch {
	case errors.Is(err, goredis.Nil):
		nf := store.NotFound{Backend: backend, Detail: "key does not exist"}
		return workflow.Classification{Message: nf.Message(), Subject: nf}, true
	case errors.Is(err, goredis.TxFailedErr):
		return workflow.Classification{Message: "conflicting concurrent update", Subject: Reply{Message: err.Error()}}, true
	case errors.Is(err, goredis.ErrClosed):
		u := store.Unavailable{Backend: backend, Err: err}
		return workflow.Classification{Message: u.Message(), Subject: u}, true
	}

	var rerr goredis.Error
	if errors.As(err, &rerr) {
		reply := parseReply(rerr.Error())
		msg, ok := replyMessages[reply.Prefix]
		if !ok {
			msg = reply.Message
		}
		return workflow.Classification{Message: msg, Subject: reply}, true
	}

	return workflow.Classification{}, false
}

// parseReply splits an error reply at its first space. Replies without an
// upper-case prefix are kept whole.
func parseReply(s string) Reply {
	prefix, rest, ok := strings.Cut(s, " ")
	if !ok || prefix == "" || strings.ToUpper(prefix) != prefix {
		return Reply{Message: s}
	}
	return Reply{Prefix: prefix, Message: rest}
}
