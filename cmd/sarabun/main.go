package main

import (
	"k8s.io/klog/v2"

	"github.com/anuban-lab/sarabun/cmd/sarabun/helper"
)

// @title						Sarabun API
// @version						1.0.0
// @description					This is the API server for Sarabun, a document approval workflow system for school administration.
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
// @description					เข้าสู่ระบบที่ /login เพื่อรับ TOKEN แล้วกรอก 'Bearer ${TOKEN}' เพื่อเรียกใช้งาน API ที่ต้องยืนยันตัวตน
func main() {
	// Initialize configuration
	configInit := helper.NewConfigInitializer()
	backendConfig := configInit.GetBackendConfig()

	// Load debug environment if needed
	if err := configInit.LoadDebugEnvironment(); err != nil {
		klog.Fatalf("Failed to load env: %s", err)
	}

	// Initialize register config and dependencies
	registerConfig, err := configInit.InitializeRegisterConfig()
	if err != nil {
		klog.Fatalf("Failed to register config: %s\n", err)
	}

	// Schedule the pending-document reminder sweep
	cronMgr, err := configInit.StartCronJobs(registerConfig)
	if err != nil {
		klog.Fatalf("Failed to start cron jobs: %s", err)
	}
	defer cronMgr.Stop()

	// Setup server runner and logger
	serverRunner := helper.NewServerRunner(backendConfig)
	serverRunner.SetupLogger()

	// Start HTTP server
	serverRunner.StartServer(registerConfig)
}
