// Package spam holds the classifiers consulted before a snippet is admitted.
package spam

import "context"

// Metadata accompanies the content sent to a classifier.
type Metadata struct {
	Title     string `json:"title,omitempty"`
	FileName  string `json:"file_name,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	IP        string `json:"ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

type Classifier interface {
	IsSpam(ctx context.Context, content string, meta Metadata) (bool, error)
}

type ClassifierFunc func(ctx context.Context, content string, meta Metadata) (bool, error)

func (f ClassifierFunc) IsSpam(ctx context.Context, content string, meta Metadata) (bool, error) {
	return f(ctx, content, meta)
}

// Never is used when no classifier is configured.
var Never Classifier = ClassifierFunc(func(context.Context, string, Metadata) (bool, error) {
	return false, nil
})
