package alert

import (
	"context"
	"fmt"
	"sync"

	"github.com/anuban-lab/sarabun/dao/model"
	"github.com/anuban-lab/sarabun/dao/query"
	"github.com/anuban-lab/sarabun/pkg/logutils"
)

type alertMgr struct {
	handler alertHandlerInterface
}

var (
	once    sync.Once
	alerter *alertMgr
)

func GetAlertMgr() AlertInterface {
	once.Do(func() {
		alerter = &alertMgr{handler: newSMTPAlerter()}
	})
	return alerter
}

func (a *alertMgr) approverEmail(ctx context.Context, approverID uint) (string, bool, error) {
	var p model.Personnel
	if err := query.GetDB().WithContext(ctx).First(&p, approverID).Error; err != nil {
		return "", false, err
	}
	if p.Email == nil || *p.Email == "" {
		logutils.Log.Warnf("%s does not have an email address", p.Name)
		return "", false, nil
	}
	return *p.Email, true, nil
}

func (a *alertMgr) DocumentPendingAlert(ctx context.Context, doc *model.WorkflowDocument) error {
	if doc.CurrentApproverID == 0 {
		return nil
	}
	email, ok, err := a.approverEmail(ctx, doc.CurrentApproverID)
	if err != nil || !ok {
		return err
	}
	subject := "มีเอกสารรอการพิจารณา: " + doc.Title
	body := fmt.Sprintf("เอกสารเลขที่ %s เรื่อง %s จาก %s รอการพิจารณาของท่าน",
		doc.DocNo, doc.Title, doc.SubmitterName)
	return a.handler.SendMessageTo(ctx, email, subject, body)
}

func (a *alertMgr) DocumentFinalizedAlert(ctx context.Context, doc *model.WorkflowDocument) error {
	var user model.User
	if err := query.GetDB().WithContext(ctx).First(&user, doc.SubmitterID).Error; err != nil {
		return err
	}
	if user.Email == nil || *user.Email == "" {
		logutils.Log.Warnf("%s does not have an email address", user.Name)
		return nil
	}
	var result string
	if doc.Status == model.WorkflowStatusApproved {
		result = "ได้รับการอนุมัติ"
	} else {
		result = "ไม่ได้รับการอนุมัติ"
	}
	subject := fmt.Sprintf("ผลการพิจารณาเอกสาร: %s", doc.Title)
	body := fmt.Sprintf("เอกสารเลขที่ %s เรื่อง %s %s", doc.DocNo, doc.Title, result)
	return a.handler.SendMessageTo(ctx, *user.Email, subject, body)
}

func (a *alertMgr) PendingReminder(ctx context.Context, doc *model.WorkflowDocument) error {
	if doc.CurrentApproverID == 0 {
		return nil
	}
	email, ok, err := a.approverEmail(ctx, doc.CurrentApproverID)
	if err != nil || !ok {
		return err
	}
	subject := "เตือน: เอกสารค้างการพิจารณา"
	body := fmt.Sprintf("เอกสารเลขที่ %s เรื่อง %s ยังคงรอการพิจารณาของท่านตั้งแต่วันที่ %s",
		doc.DocNo, doc.Title, doc.RecordDate)
	return a.handler.SendMessageTo(ctx, email, subject, body)
}
