package alert

import (
	"context"

	"github.com/anuban-lab/sarabun/dao/model"
)

// AlertInterface is the notification component for the approval workflow:
//  1. แจ้งผู้อนุมัติเมื่อมีเอกสารรอการพิจารณา (handoff notice)
//  2. แจ้งผู้เสนอเมื่อเอกสารถึงสถานะสุดท้าย (finalization notice)
//  3. แจ้งเตือนเอกสารที่ค้างการพิจารณา (stale-pending reminder)
type AlertInterface interface {
	DocumentPendingAlert(ctx context.Context, doc *model.WorkflowDocument) error
	DocumentFinalizedAlert(ctx context.Context, doc *model.WorkflowDocument) error
	PendingReminder(ctx context.Context, doc *model.WorkflowDocument) error
}

// alertHandlerInterface is what a concrete transport (SMTP today, a chat
// robot later) has to provide.
type alertHandlerInterface interface {
	SendMessageTo(ctx context.Context, receiver, subject, body string) error
}
