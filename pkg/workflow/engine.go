// Package workflow implements the document approval state machine: a
// role-sequenced sign-off over head -> deputy -> director with per-stage
// delegate selection, append-only signed history and rejection
// short-circuit. Both operations are pure: they take an immutable document
// value plus an action, and either return the fully transitioned next value
// or fail before anything is touched. Persistence belongs to the caller.
package workflow

import (
	"strings"

	"github.com/google/uuid"

	"github.com/anuban-lab/sarabun/dao/model"
	"github.com/anuban-lab/sarabun/pkg/utils"
)

// DefaultStepComment is recorded when a signer leaves the comment blank.
const DefaultStepComment = "เห็นชอบตามเสนอ"

// SubmitRequest carries everything needed to open a new document.
type SubmitRequest struct {
	Title       string
	Group       string
	Category    string
	Description string
	Files       []string

	SubmitterID   uint
	SubmitterName string

	// ApproverID is the chosen initial (head-stage) approver.
	ApproverID uint
}

// Action is one review decision by the current approver.
type Action struct {
	ActorID       uint
	ActorName     string
	ActorPosition string

	Comment   string
	Signature string // opaque encoded image, may be empty
	Outcome   model.StepOutcome

	// NextApproverID hands the obligation off after an approval at a
	// non-terminal stage. Ignored on rejection and at the director stage.
	NextApproverID uint

	// ExpectedVersion is the document version the actor last read. The
	// transition only applies if it is still current.
	ExpectedVersion uint
}

// Submit constructs a new pending document at the head stage with an empty
// history. It does not persist anything.
func Submit(req *SubmitRequest) (*model.WorkflowDocument, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, &ValidationError{Reason: "title is required"}
	}
	if req.ApproverID == 0 {
		return nil, &ValidationError{Reason: "no approver selected"}
	}
	if req.SubmitterID == 0 {
		return nil, &ValidationError{Reason: "submitter is required"}
	}

	doc := &model.WorkflowDocument{
		DocNo:       uuid.New().String(),
		Title:       req.Title,
		Group:       req.Group,
		Category:    req.Category,
		Description: req.Description,
		Files:       append([]string(nil), req.Files...),
		RecordDate:  utils.TodayThai(),

		SubmitterID:   req.SubmitterID,
		SubmitterName: req.SubmitterName,

		CurrentStage:      model.StageHead,
		CurrentApproverID: req.ApproverID,
		Status:            model.WorkflowStatusPending,
		Version:           1,
	}
	return doc, nil
}

// RecordStep applies one review decision and returns the next document
// value with exactly one step appended. The input document is never
// mutated; a precondition failure aborts before any state is built.
func RecordStep(doc *model.WorkflowDocument, act *Action) (*model.WorkflowDocument, error) {
	if doc.Status != model.WorkflowStatusPending {
		return nil, &InvalidTransitionError{Reason: "document has already been processed"}
	}
	if doc.CurrentStage == model.StageCompleted {
		return nil, &InvalidTransitionError{Reason: "document has already been processed"}
	}
	if act.ActorID != doc.CurrentApproverID {
		return nil, &InvalidTransitionError{Reason: "actor does not hold the approval obligation"}
	}
	if act.ExpectedVersion != doc.Version {
		return nil, &InvalidTransitionError{Reason: "document changed since it was read"}
	}

	if act.Outcome != model.OutcomeApproved && act.Outcome != model.OutcomeRejected {
		return nil, &ValidationError{Reason: "unknown outcome"}
	}

	advancing := act.Outcome == model.OutcomeApproved && doc.CurrentStage != model.StageDirector
	if advancing {
		if act.NextApproverID == 0 {
			return nil, &ValidationError{Reason: "next approver required"}
		}
		if act.NextApproverID == act.ActorID {
			return nil, &ValidationError{Reason: "cannot select yourself as next approver"}
		}
	}

	comment := act.Comment
	if strings.TrimSpace(comment) == "" {
		comment = DefaultStepComment
	}

	next := *doc
	next.Steps = make([]model.WorkflowStep, len(doc.Steps), len(doc.Steps)+1)
	copy(next.Steps, doc.Steps)
	next.Steps = append(next.Steps, model.WorkflowStep{
		DocumentID:     doc.ID,
		Seq:            len(doc.Steps) + 1,
		Role:           doc.CurrentStage,
		SignerID:       act.ActorID,
		SignerName:     act.ActorName,
		SignerPosition: act.ActorPosition,
		Comment:        comment,
		Signature:      act.Signature,
		SignedDate:     utils.TodayThai(),
		Status:         act.Outcome,
	})

	switch {
	case act.Outcome == model.OutcomeRejected:
		next.CurrentStage = model.StageCompleted
		next.CurrentApproverID = 0
		next.Status = model.WorkflowStatusRejected
	case advancing:
		next.CurrentStage = model.NextStage(doc.CurrentStage)
		next.CurrentApproverID = act.NextApproverID
		next.Status = model.WorkflowStatusPending
	default: // director approval, terminal
		next.CurrentStage = model.StageCompleted
		next.CurrentApproverID = 0
		next.Status = model.WorkflowStatusApproved
	}
	next.Version = doc.Version + 1

	return &next, nil
}
