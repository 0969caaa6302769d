package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WorkflowStage is the review level currently responsible for a document.
// A document travels head -> deputy -> director -> completed; completed is
// terminal and no further transitions are permitted.
type WorkflowStage string

const (
	StageHead      WorkflowStage = "head"
	StageDeputy    WorkflowStage = "deputy"
	StageDirector  WorkflowStage = "director"
	StageCompleted WorkflowStage = "completed"
)

// RankForStage maps an active review stage to the roster rank whose members
// are eligible to hold the approval obligation at that stage.
func RankForStage(stage WorkflowStage) (ApproverRank, bool) {
	switch stage {
	case StageHead:
		return RankHead, true
	case StageDeputy:
		return RankDeputy, true
	case StageDirector:
		return RankDirector, true
	default:
		return "", false
	}
}

// NextStage returns the stage that follows an approval at the given stage.
func NextStage(stage WorkflowStage) WorkflowStage {
	switch stage {
	case StageHead:
		return StageDeputy
	case StageDeputy:
		return StageDirector
	default:
		return StageCompleted
	}
}

// WorkflowStatus is the overall outcome of a document.
// Invariant: status != Pending exactly when currentStage == completed.
type WorkflowStatus string

const (
	WorkflowStatusPending  WorkflowStatus = "Pending"
	WorkflowStatusApproved WorkflowStatus = "Approved"
	WorkflowStatusRejected WorkflowStatus = "Rejected"
)

// StepOutcome is the result of a single review action.
type StepOutcome string

const (
	OutcomeApproved StepOutcome = "Approved"
	OutcomeRejected StepOutcome = "Rejected"
)

// WorkflowDocument is a single proposal moving through approval.
// Steps are owned exclusively by the document, appended by the workflow
// engine in chronological order and never edited or deleted individually.
type WorkflowDocument struct {
	gorm.Model
	DocNo       string                       `gorm:"uniqueIndex;type:varchar(36);not null;comment:external document number"`
	Title       string                       `gorm:"type:varchar(256);not null;comment:document title"`
	Group       string                       `gorm:"type:varchar(128);comment:school work group"`
	Category    string                       `gorm:"type:varchar(128);comment:document category"`
	Description string                       `gorm:"type:text;comment:free-form detail"`
	Files       datatypes.JSONSlice[string]  `gorm:"comment:attachment references"`
	RecordDate  string                       `gorm:"type:varchar(16);comment:creation date stamp (Buddhist era)"`

	SubmitterID   uint   `gorm:"not null;comment:creator id"`
	SubmitterName string `gorm:"type:varchar(128);comment:creator name snapshot"`

	CurrentStage      WorkflowStage  `gorm:"type:varchar(16);not null;default:head;comment:active review stage"`
	CurrentApproverID uint           `gorm:"comment:holder of the approval obligation"`
	Status            WorkflowStatus `gorm:"type:varchar(16);not null;default:Pending;comment:overall outcome"`

	// Version guards concurrent approvals: the store only persists a
	// transition when the version it read is still current.
	Version uint `gorm:"not null;default:1;comment:optimistic lock"`

	Steps []WorkflowStep `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE"`
}

// WorkflowStep is one completed review action, immutable once created.
// Signer fields are snapshots taken at signing time, not live references,
// so history stays accurate even if the signer's position later changes.
type WorkflowStep struct {
	gorm.Model
	DocumentID uint `gorm:"index;not null;comment:owning document"`
	Seq        int  `gorm:"not null;comment:position in history, 1-based"`

	Role           WorkflowStage `gorm:"type:varchar(16);not null;comment:stage at action time"`
	SignerID       uint          `gorm:"not null;comment:actor id"`
	SignerName     string        `gorm:"type:varchar(128);comment:actor name snapshot"`
	SignerPosition string        `gorm:"type:varchar(128);comment:actor position snapshot"`

	Comment    string      `gorm:"type:text;comment:review rationale"`
	Signature  string      `gorm:"type:text;comment:encoded signature image, may be empty"`
	SignedDate string      `gorm:"type:varchar(16);comment:date stamp (Buddhist era)"`
	Status     StepOutcome `gorm:"type:varchar(16);not null;comment:outcome of this step"`
}
