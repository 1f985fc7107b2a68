package snippets

import (
	"context"
	"strings"

	"github.com/PabloPavan/sniply_projects/internal/apperrors"
	"github.com/PabloPavan/sniply_projects/internal/identity"
	"github.com/PabloPavan/sniply_projects/internal/projects"
	"github.com/PabloPavan/sniply_projects/internal/spam"
	"github.com/PabloPavan/sniply_projects/internal/telemetry"
	"github.com/PabloPavan/sniply_projects/internal/visibility"
)

type Reason string

const (
	ReasonValidation Reason = "validation_error"
	ReasonSpam       Reason = "spam_rejected"
)

// Decision is the outcome of one admission pass.
type Decision struct {
	Accepted bool
	Reason   Reason
	Message  string
	// SpamFlagged is set whenever the classifier said spam, including
	// drafts accepted because of their restrictive visibility.
	SpamFlagged bool
}

func accepted(flagged bool) Decision {
	return Decision{Accepted: true, SpamFlagged: flagged}
}

func rejected(reason Reason, msg string) Decision {
	return Decision{Reason: reason, Message: msg, SpamFlagged: reason == ReasonSpam}
}

// Err converts a rejection into the error handed back to the caller.
func (d Decision) Err() error {
	switch {
	case d.Accepted:
		return nil
	case d.Reason == ReasonSpam:
		return apperrors.New(apperrors.KindSpam, d.Message)
	default:
		return apperrors.New(apperrors.KindInvalidInput, d.Message)
	}
}

// SpamAttempt is what the sink receives for a rejected draft.
type SpamAttempt struct {
	UserID    string
	ProjectID string
	IP        string
	UserAgent string
	Draft     Draft
}

// SpamSink is called synchronously, once per rejected draft.
type SpamSink func(ctx context.Context, attempt SpamAttempt) error

type Admission struct {
	Classifier spam.Classifier
	OnSpam     SpamSink
}

// Admit runs a single pass: required fields, classifier, visibility gate.
// A spam verdict only rejects drafts whose effective visibility is public.
func (a *Admission) Admit(ctx context.Context, draft Draft, project *projects.Project, p Principal) (Decision, error) {
	if d, ok := validateDraft(draft); !ok {
		telemetry.RecordAdmission(ctx, string(d.Reason))
		return d, nil
	}

	classifier := a.Classifier
	if classifier == nil {
		classifier = spam.Never
	}

	client := identity.ClientInfo(ctx)
	isSpam, err := classifier.IsSpam(ctx, draft.Content, spam.Metadata{
		Title:     draft.Title,
		FileName:  draft.FileName,
		UserID:    p.UserID,
		IP:        client.IP,
		UserAgent: client.UserAgent,
	})
	if err != nil {
		telemetry.RecordSpamCheck(ctx, "error")
		return Decision{}, apperrors.Wrap(apperrors.KindInternal, "spam check failed", err)
	}
	telemetry.RecordSpamCheck(ctx, spamLabel(isSpam))

	if !isSpam {
		telemetry.RecordAdmission(ctx, "accepted")
		return accepted(false), nil
	}

	if visibility.Min(draft.Visibility, project.Visibility) != visibility.Public {
		telemetry.RecordAdmission(ctx, "accepted_restricted")
		return accepted(true), nil
	}

	d := rejected(ReasonSpam, "Spam detected")
	telemetry.RecordAdmission(ctx, string(d.Reason))
	telemetry.LogWarn(ctx, "snippet rejected as spam",
		telemetry.LogString("event", "snippet.spam_rejected"),
		telemetry.LogString("user.id", p.UserID),
		telemetry.LogString("project.id", project.ID),
	)

	if a.OnSpam != nil {
		err := a.OnSpam(ctx, SpamAttempt{
			UserID:    p.UserID,
			ProjectID: project.ID,
			IP:        client.IP,
			UserAgent: client.UserAgent,
			Draft:     draft,
		})
		if err != nil {
			telemetry.LogError(ctx, "spam log write failed",
				telemetry.LogString("event", "spam_log.failed"),
				telemetry.LogErr(err),
			)
		}
	}
	return d, nil
}

func validateDraft(d Draft) (Decision, bool) {
	switch {
	case strings.TrimSpace(d.Title) == "":
		return rejected(ReasonValidation, "title is missing"), false
	case strings.TrimSpace(d.FileName) == "":
		return rejected(ReasonValidation, "file_name is missing"), false
	case strings.TrimSpace(d.Content) == "":
		return rejected(ReasonValidation, "content is missing"), false
	case !d.Visibility.Valid():
		return rejected(ReasonValidation, "visibility is invalid"), false
	}
	return Decision{}, true
}

func spamLabel(isSpam bool) string {
	if isSpam {
		return "spam"
	}
	return "ham"
}
