package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/anuban-lab/sarabun/dao/model"
)

var (
	// SubmissionsTotal counts documents opened for approval.
	SubmissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sarabun_documents_submitted_total",
		Help: "Number of workflow documents submitted.",
	})

	// transitionsTotal counts recorded steps by the stage they were signed
	// at and their outcome.
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sarabun_workflow_transitions_total",
		Help: "Number of recorded approval steps.",
	}, []string{"stage", "outcome"})

	// VersionConflictsTotal counts transitions lost to the optimistic
	// version check, i.e. concurrent approvals on the same document.
	VersionConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sarabun_workflow_version_conflicts_total",
		Help: "Number of approval attempts rejected by the version check.",
	})
)

func ObserveTransition(stage model.WorkflowStage, outcome model.StepOutcome) {
	transitionsTotal.WithLabelValues(string(stage), string(outcome)).Inc()
}
