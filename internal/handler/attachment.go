package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/anuban-lab/sarabun/internal/resputil"
	"github.com/anuban-lab/sarabun/pkg/attachment"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewAttachmentMgr)
}

// AttachmentMgr turns stored file references into displayable URLs on the
// external document-hosting service. References stay opaque server-side.
type AttachmentMgr struct {
	name     string
	resolver *attachment.Resolver
}

func NewAttachmentMgr(conf *RegisterConfig) Manager {
	return &AttachmentMgr{
		name:     "attachments",
		resolver: conf.AttachmentResolver,
	}
}

func (mgr *AttachmentMgr) GetName() string { return mgr.name }

func (mgr *AttachmentMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *AttachmentMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("/resolve", mgr.ResolveAttachment)
}

func (mgr *AttachmentMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type ResolveAttachmentReq struct {
	Ref   string `form:"ref" binding:"required"`
	Check bool   `form:"check"` // also verify the blob is reachable
}

type ResolveAttachmentResp struct {
	URL string `json:"url"`
}

// ResolveAttachment godoc
// @Summary Resolve an attachment reference to a displayable URL
// @Tags Attachments
// @Produce json
// @Security Bearer
// @Param ref query string true "attachment reference"
// @Param check query bool false "verify the blob is reachable"
// @Success 200 {object} resputil.Response[ResolveAttachmentResp] "resolved URL"
// @Failure 400 {object} resputil.Response[any] "invalid reference"
// @Router /v1/attachments/resolve [get]
func (mgr *AttachmentMgr) ResolveAttachment(c *gin.Context) {
	var req ResolveAttachmentReq
	if err := c.ShouldBindQuery(&req); err != nil {
		resputil.BadRequestError(c, "invalid request parameters")
		return
	}

	url, err := mgr.resolver.Resolve(req.Ref)
	if err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	if req.Check {
		if err := mgr.resolver.Check(c, req.Ref); err != nil {
			resputil.Error(c, err.Error(), resputil.NotSpecified)
			return
		}
	}

	resputil.Success(c, ResolveAttachmentResp{URL: url})
}
