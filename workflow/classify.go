package workflow

// Classification is what the rescue boundary records for a runtime error
// alongside the error itself.
type Classification struct {
	Message string
	Subject any
}

// Classifier maps a runtime error raised by a step to a Classification.
// It returns false when it does not recognise the error.
type Classifier interface {
	Classify(err error) (Classification, bool)
}

// ClassifierFunc is an adapter to use a plain function as a Classifier.
type ClassifierFunc func(err error) (Classification, bool)

// Classify implements Classifier.
func (f ClassifierFunc) Classify(err error) (Classification, bool) {
	return f(err)
}

// Classifiers tries each classifier in order and uses the first match.
type Classifiers []Classifier

// Classify implements Classifier.
func (cs Classifiers) Classify(err error) (Classification, bool) {
	for _, c := range cs {
		if c == nil {
			continue
		}
		if cl, ok := c.Classify(err); ok {
			return cl, true
		}
	}
	return Classification{}, false
}

// Generic is the default classification: the error message with the error
// itself as subject.
func Generic(err error) Classification {
	return Classification{Message: err.Error(), Subject: err}
}

func classify(c Classifier, err error) Classification {
	if c != nil {
		if cl, ok := c.Classify(err); ok {
			return cl
		}
	}
	return Generic(err)
}
