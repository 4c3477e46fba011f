// Package mongo classifies errors raised by steps that use the MongoDB Go
// driver v2.
//
//	eng := engine.New(engine.WithClassifier(mongo.Classifier{}))
//
// Write and bulk write exceptions become a slice of [WriteFailure]
// subjects. mongo.ErrNoDocuments becomes a store.NotFound subject, and
// network errors and timeouts raised by the driver a store.Unavailable
// subject. A bare context.DeadlineExceeded or net.Error is not claimed.
package mongo
