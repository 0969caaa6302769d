package cronjob

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"k8s.io/klog/v2"

	"github.com/anuban-lab/sarabun/dao/model"
	"github.com/anuban-lab/sarabun/dao/query"
	"github.com/anuban-lab/sarabun/pkg/alert"
)

type CronJobManager struct {
	alerter alert.AlertInterface
	cron    *cron.Cron
}

func NewCronJobManager(alerter alert.AlertInterface) *CronJobManager {
	return &CronJobManager{
		alerter: alerter,
		cron:    cron.New(cron.WithLocation(time.Local)),
	}
}

func (cm *CronJobManager) Start() {
	cm.cron.Start()
}

func (cm *CronJobManager) Stop() {
	cm.cron.Stop()
}

// AddPendingReminder schedules a sweep that nags the current approver of
// every document that has been sitting pending for more than pendingDays.
func (cm *CronJobManager) AddPendingReminder(spec string, pendingDays int) (cron.EntryID, error) {
	entryID, err := cm.cron.AddFunc(spec, func() {
		cm.remindStalePending(pendingDays)
	})
	if err != nil {
		klog.Error(err)
		return -1, err
	}
	return entryID, nil
}

func (cm *CronJobManager) remindStalePending(pendingDays int) {
	ctx := context.Background()
	cutoff := time.Now().AddDate(0, 0, -pendingDays)

	var stale []*model.WorkflowDocument
	err := query.GetDB().WithContext(ctx).
		Where("status = ?", model.WorkflowStatusPending).
		Where("updated_at < ?", cutoff).
		Find(&stale).Error
	if err != nil {
		klog.Errorf("failed to query stale pending documents: %v", err)
		return
	}

	for _, doc := range stale {
		if err := cm.alerter.PendingReminder(ctx, doc); err != nil {
			klog.Errorf("failed to remind approver %d for document %s: %v",
				doc.CurrentApproverID, doc.DocNo, err)
		}
	}
	klog.Infof("pending reminder sweep done, %d stale documents", len(stale))
}
