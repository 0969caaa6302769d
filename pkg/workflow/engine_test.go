package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anuban-lab/sarabun/dao/model"
)

func newSubmitRequest() *SubmitRequest {
	return &SubmitRequest{
		Title:         "ขออนุมัติจัดซื้อครุภัณฑ์",
		Group:         "งานบริหารทั่วไป",
		Category:      "จัดซื้อจัดจ้าง",
		Description:   "จัดซื้อครุภัณฑ์ห้องวิทยาศาสตร์",
		Files:         []string{"blob:doc-001"},
		SubmitterID:   99,
		SubmitterName: "สมชาย ใจดี",
		ApproverID:    7,
	}
}

func approveAction(doc *model.WorkflowDocument, next uint) *Action {
	return &Action{
		ActorID:         doc.CurrentApproverID,
		ActorName:       "ผู้ลงนาม",
		ActorPosition:   "ตำแหน่งทดสอบ",
		Outcome:         model.OutcomeApproved,
		NextApproverID:  next,
		ExpectedVersion: doc.Version,
	}
}

func rejectAction(doc *model.WorkflowDocument) *Action {
	return &Action{
		ActorID:         doc.CurrentApproverID,
		Comment:         "เอกสารไม่ครบถ้วน",
		Outcome:         model.OutcomeRejected,
		ExpectedVersion: doc.Version,
	}
}

func TestSubmit(t *testing.T) {
	doc, err := Submit(newSubmitRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, doc.DocNo)
	assert.Equal(t, model.StageHead, doc.CurrentStage)
	assert.Equal(t, model.WorkflowStatusPending, doc.Status)
	assert.Equal(t, uint(7), doc.CurrentApproverID)
	assert.Empty(t, doc.Steps)
	assert.Equal(t, uint(1), doc.Version)
	assert.NotEmpty(t, doc.RecordDate)

	other, err := Submit(newSubmitRequest())
	require.NoError(t, err)
	assert.NotEqual(t, doc.DocNo, other.DocNo)
}

func TestSubmitValidation(t *testing.T) {
	req := newSubmitRequest()
	req.ApproverID = 0
	_, err := Submit(req)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "no approver selected")

	req = newSubmitRequest()
	req.Title = "   "
	_, err = Submit(req)
	assert.True(t, IsValidation(err))

	req = newSubmitRequest()
	req.SubmitterID = 0
	_, err = Submit(req)
	assert.True(t, IsValidation(err))
}

func TestApproveAdvancesOneStage(t *testing.T) {
	tests := []struct {
		stage     model.WorkflowStage
		wantStage model.WorkflowStage
	}{
		{model.StageHead, model.StageDeputy},
		{model.StageDeputy, model.StageDirector},
	}
	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			doc, err := Submit(newSubmitRequest())
			require.NoError(t, err)
			doc.CurrentStage = tt.stage

			updated, err := RecordStep(doc, approveAction(doc, 42))
			require.NoError(t, err)

			assert.Equal(t, tt.wantStage, updated.CurrentStage)
			assert.Equal(t, model.WorkflowStatusPending, updated.Status)
			assert.Equal(t, uint(42), updated.CurrentApproverID)
			require.Len(t, updated.Steps, 1)
			assert.Equal(t, tt.stage, updated.Steps[0].Role)
			assert.Equal(t, model.OutcomeApproved, updated.Steps[0].Status)
			assert.Equal(t, doc.Version+1, updated.Version)
		})
	}
}

func TestDirectorApprovalIsTerminal(t *testing.T) {
	doc, err := Submit(newSubmitRequest())
	require.NoError(t, err)
	doc.CurrentStage = model.StageDirector

	// a supplied next approver is ignored at the terminal stage
	act := approveAction(doc, 1234)
	updated, err := RecordStep(doc, act)
	require.NoError(t, err)

	assert.Equal(t, model.StageCompleted, updated.CurrentStage)
	assert.Equal(t, model.WorkflowStatusApproved, updated.Status)
	assert.Zero(t, updated.CurrentApproverID)
	require.Len(t, updated.Steps, 1)
	assert.Equal(t, model.StageDirector, updated.Steps[0].Role)
}

func TestRejectionTerminatesAtAnyStage(t *testing.T) {
	for _, stage := range []model.WorkflowStage{model.StageHead, model.StageDeputy, model.StageDirector} {
		t.Run(string(stage), func(t *testing.T) {
			doc, err := Submit(newSubmitRequest())
			require.NoError(t, err)
			doc.CurrentStage = stage

			updated, err := RecordStep(doc, rejectAction(doc))
			require.NoError(t, err)

			assert.Equal(t, model.StageCompleted, updated.CurrentStage)
			assert.Equal(t, model.WorkflowStatusRejected, updated.Status)
			assert.Zero(t, updated.CurrentApproverID)
			require.Len(t, updated.Steps, 1)
			assert.Equal(t, model.OutcomeRejected, updated.Steps[0].Status)
			assert.Equal(t, stage, updated.Steps[0].Role)
		})
	}
}

func TestRecordStepPreconditions(t *testing.T) {
	doc, err := Submit(newSubmitRequest())
	require.NoError(t, err)

	t.Run("wrong actor", func(t *testing.T) {
		act := approveAction(doc, 42)
		act.ActorID = 1000
		_, err := RecordStep(doc, act)
		assert.True(t, IsInvalidTransition(err))
	})

	t.Run("stale version", func(t *testing.T) {
		act := approveAction(doc, 42)
		act.ExpectedVersion = doc.Version - 1
		_, err := RecordStep(doc, act)
		assert.True(t, IsInvalidTransition(err))
	})

	t.Run("missing next approver", func(t *testing.T) {
		act := approveAction(doc, 0)
		_, err := RecordStep(doc, act)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Contains(t, err.Error(), "next approver required")
	})

	t.Run("self approval", func(t *testing.T) {
		act := approveAction(doc, doc.CurrentApproverID)
		_, err := RecordStep(doc, act)
		assert.True(t, IsValidation(err))
	})

	t.Run("unknown outcome", func(t *testing.T) {
		act := approveAction(doc, 42)
		act.Outcome = model.StepOutcome("Transferred")
		_, err := RecordStep(doc, act)
		assert.True(t, IsValidation(err))
	})

	t.Run("finalized document", func(t *testing.T) {
		done := *doc
		done.Status = model.WorkflowStatusApproved
		done.CurrentStage = model.StageCompleted
		_, err := RecordStep(&done, approveAction(&done, 42))
		assert.True(t, IsInvalidTransition(err))
	})
}

func TestRecordStepDoesNotMutateInput(t *testing.T) {
	doc, err := Submit(newSubmitRequest())
	require.NoError(t, err)

	_, err = RecordStep(doc, approveAction(doc, 42))
	require.NoError(t, err)

	assert.Equal(t, model.StageHead, doc.CurrentStage)
	assert.Equal(t, uint(7), doc.CurrentApproverID)
	assert.Empty(t, doc.Steps)
	assert.Equal(t, uint(1), doc.Version)
}

func TestDefaultComment(t *testing.T) {
	doc, err := Submit(newSubmitRequest())
	require.NoError(t, err)

	act := approveAction(doc, 42)
	act.Comment = "  "
	updated, err := RecordStep(doc, act)
	require.NoError(t, err)
	assert.Equal(t, DefaultStepComment, updated.Steps[0].Comment)

	act = approveAction(updated, 43)
	act.Comment = "เห็นควรพิจารณาเร่งด่วน"
	updated, err = RecordStep(updated, act)
	require.NoError(t, err)
	assert.Equal(t, "เห็นควรพิจารณาเร่งด่วน", updated.Steps[1].Comment)
}

// Submit with approver 7, actor 7 approves handing off to 42, actor 42
// rejects. The document terminates rejected with two history entries and
// refuses any further action.
func TestRejectionScenario(t *testing.T) {
	doc, err := Submit(newSubmitRequest())
	require.NoError(t, err)

	doc, err = RecordStep(doc, approveAction(doc, 42))
	require.NoError(t, err)
	assert.Equal(t, model.StageDeputy, doc.CurrentStage)
	assert.Equal(t, uint(42), doc.CurrentApproverID)
	require.Len(t, doc.Steps, 1)
	assert.Equal(t, model.StageHead, doc.Steps[0].Role)
	assert.Equal(t, model.OutcomeApproved, doc.Steps[0].Status)

	doc, err = RecordStep(doc, rejectAction(doc))
	require.NoError(t, err)
	assert.Equal(t, model.StageCompleted, doc.CurrentStage)
	assert.Equal(t, model.WorkflowStatusRejected, doc.Status)
	require.Len(t, doc.Steps, 2)
	assert.Equal(t, model.StageDeputy, doc.Steps[1].Role)
	assert.Equal(t, model.OutcomeRejected, doc.Steps[1].Status)

	_, err = RecordStep(doc, rejectAction(doc))
	assert.True(t, IsInvalidTransition(err))
}

// Full approval chain: each history entry records the stage it was signed
// at, in insertion order.
func TestFullApprovalChain(t *testing.T) {
	doc, err := Submit(newSubmitRequest())
	require.NoError(t, err)

	doc, err = RecordStep(doc, approveAction(doc, 42))
	require.NoError(t, err)
	doc, err = RecordStep(doc, approveAction(doc, 43))
	require.NoError(t, err)
	doc, err = RecordStep(doc, approveAction(doc, 0)) // ignored at director stage
	require.NoError(t, err)

	assert.Equal(t, model.WorkflowStatusApproved, doc.Status)
	assert.Equal(t, model.StageCompleted, doc.CurrentStage)
	require.Len(t, doc.Steps, 3)

	wantRoles := []model.WorkflowStage{model.StageHead, model.StageDeputy, model.StageDirector}
	for i, step := range doc.Steps {
		assert.Equal(t, wantRoles[i], step.Role)
		assert.Equal(t, i+1, step.Seq)
		assert.Equal(t, model.OutcomeApproved, step.Status)
	}
	assert.Equal(t, uint(4), doc.Version)
}
