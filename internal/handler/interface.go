package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/anuban-lab/sarabun/pkg/alert"
	"github.com/anuban-lab/sarabun/pkg/attachment"
)

type Manager interface {
	GetName() string
	RegisterPublic(group *gin.RouterGroup)
	RegisterProtected(group *gin.RouterGroup)
	RegisterAdmin(group *gin.RouterGroup)
}

// RegisterConfig carries the shared dependencies handed to every manager.
type RegisterConfig struct {
	AttachmentResolver *attachment.Resolver
	Alerter            alert.AlertInterface
}

// Registers collects the manager constructors; each handler file appends
// its own in init().
var Registers []func(*RegisterConfig) Manager
