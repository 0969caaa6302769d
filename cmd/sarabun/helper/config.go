package helper

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/anuban-lab/sarabun/dao/query"
	"github.com/anuban-lab/sarabun/internal/handler"
	"github.com/anuban-lab/sarabun/pkg/alert"
	"github.com/anuban-lab/sarabun/pkg/attachment"
	"github.com/anuban-lab/sarabun/pkg/config"
	"github.com/anuban-lab/sarabun/pkg/cronjob"
)

// ConfigInitializer wires up configuration, storage and the shared
// handler dependencies before the server starts.
type ConfigInitializer struct {
	backendConfig *config.Config
}

func NewConfigInitializer() *ConfigInitializer {
	return &ConfigInitializer{
		backendConfig: config.GetConfig(),
	}
}

func (ci *ConfigInitializer) GetBackendConfig() *config.Config {
	return ci.backendConfig
}

// LoadDebugEnvironment loads the local .debug.env overrides in debug mode.
func (ci *ConfigInitializer) LoadDebugEnvironment() error {
	if gin.Mode() != gin.DebugMode {
		return nil
	}

	err := godotenv.Load(".debug.env")
	if err != nil {
		return err
	}

	be := os.Getenv("SARABUN_BE_PORT")
	if be == "" {
		panic("SARABUN_BE_PORT is not set")
	}

	ci.backendConfig.ServerAddr = ":" + be

	return nil
}

// InitializeRegisterConfig opens the database, runs migrations and builds
// the dependencies shared by the handler managers.
func (ci *ConfigInitializer) InitializeRegisterConfig() (*handler.RegisterConfig, error) {
	registerConfig := &handler.RegisterConfig{}

	// init db
	db := query.GetDB()
	if err := query.Migrate(db); err != nil {
		return nil, err
	}

	// init attachment resolver
	timeout := time.Duration(ci.backendConfig.Attachment.Timeout) * time.Second
	registerConfig.AttachmentResolver = attachment.NewResolver(ci.backendConfig.Attachment.Host, timeout)

	// init alerter
	registerConfig.Alerter = alert.GetAlertMgr()

	return registerConfig, nil
}

// StartCronJobs schedules the stale-pending reminder and starts the cron loop.
func (ci *ConfigInitializer) StartCronJobs(registerConfig *handler.RegisterConfig) (*cronjob.CronJobManager, error) {
	cronMgr := cronjob.NewCronJobManager(registerConfig.Alerter)
	reminder := ci.backendConfig.Reminder
	if reminder.Spec != "" {
		if _, err := cronMgr.AddPendingReminder(reminder.Spec, reminder.PendingDays); err != nil {
			return nil, err
		}
	}
	cronMgr.Start()
	return cronMgr, nil
}
