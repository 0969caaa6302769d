package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/anuban-lab/sarabun/dao/model"
	"github.com/anuban-lab/sarabun/dao/query"
	"github.com/anuban-lab/sarabun/internal/payload"
	"github.com/anuban-lab/sarabun/internal/resputil"
	"github.com/anuban-lab/sarabun/internal/util"
	"github.com/anuban-lab/sarabun/pkg/alert"
	"github.com/anuban-lab/sarabun/pkg/attachment"
	"github.com/anuban-lab/sarabun/pkg/monitor"
	"github.com/anuban-lab/sarabun/pkg/workflow"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewDocumentMgr)
}

type DocumentMgr struct {
	name     string
	resolver *attachment.Resolver
	alerter  alert.AlertInterface
}

func NewDocumentMgr(conf *RegisterConfig) Manager {
	return &DocumentMgr{
		name:     "documents",
		resolver: conf.AttachmentResolver,
		alerter:  conf.Alerter,
	}
}

func (mgr *DocumentMgr) GetName() string { return mgr.name }

func (mgr *DocumentMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *DocumentMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("", mgr.ListMyDocuments)
	g.GET("/inbox", mgr.ListInbox)
	g.GET("/:id", mgr.GetDocument)
	g.POST("", mgr.SubmitDocument)
	g.POST("/:id/steps", mgr.RecordStep)
	g.DELETE("/:id", mgr.DeleteDocument)
}

func (mgr *DocumentMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.GET("", mgr.ListAllDocuments)
	g.GET("/:id", mgr.GetDocumentAdmin)
}

type (
	WorkflowStepResp struct {
		Seq            int                 `json:"seq"`
		Role           model.WorkflowStage `json:"role"`
		SignerID       uint                `json:"signerID"`
		SignerName     string              `json:"signerName"`
		SignerPosition string              `json:"signerPosition"`
		Comment        string              `json:"comment"`
		Signature      string              `json:"signature"`
		Date           string              `json:"date"`
		Status         model.StepOutcome   `json:"status"`
	}

	WorkflowDocumentResp struct {
		ID          uint     `json:"id"`
		DocNo       string   `json:"docNo"`
		Title       string   `json:"title"`
		Group       string   `json:"group"`
		Category    string   `json:"category"`
		Description string   `json:"description"`
		Files       []string `json:"files"`
		FileURLs    []string `json:"fileURLs"`
		RecordDate  string   `json:"recordDate"`

		SubmitterID   uint   `json:"submitterID"`
		SubmitterName string `json:"submitterName"`

		CurrentStage      model.WorkflowStage  `json:"currentStage"`
		CurrentApproverID uint                 `json:"currentApproverID"`
		Status            model.WorkflowStatus `json:"status"`
		Version           uint                 `json:"version"`
		CreatedAt         time.Time            `json:"createdAt"`

		Steps []WorkflowStepResp `json:"steps"`
	}
)

func (mgr *DocumentMgr) convertToDocumentResp(doc *model.WorkflowDocument) WorkflowDocumentResp {
	fileURLs := make([]string, 0, len(doc.Files))
	for _, ref := range doc.Files {
		u, err := mgr.resolver.Resolve(ref)
		if err != nil {
			klog.Warningf("failed to resolve attachment %q of document %s: %v", ref, doc.DocNo, err)
			continue
		}
		fileURLs = append(fileURLs, u)
	}

	return WorkflowDocumentResp{
		ID:          doc.ID,
		DocNo:       doc.DocNo,
		Title:       doc.Title,
		Group:       doc.Group,
		Category:    doc.Category,
		Description: doc.Description,
		Files:       doc.Files,
		FileURLs:    fileURLs,
		RecordDate:  doc.RecordDate,

		SubmitterID:   doc.SubmitterID,
		SubmitterName: doc.SubmitterName,

		CurrentStage:      doc.CurrentStage,
		CurrentApproverID: doc.CurrentApproverID,
		Status:            doc.Status,
		Version:           doc.Version,
		CreatedAt:         doc.CreatedAt,

		Steps: lo.Map(doc.Steps, func(step model.WorkflowStep, _ int) WorkflowStepResp {
			return WorkflowStepResp{
				Seq:            step.Seq,
				Role:           step.Role,
				SignerID:       step.SignerID,
				SignerName:     step.SignerName,
				SignerPosition: step.SignerPosition,
				Comment:        step.Comment,
				Signature:      step.Signature,
				Date:           step.SignedDate,
				Status:         step.Status,
			}
		}),
	}
}

func (mgr *DocumentMgr) convertToDocumentResps(docs []*model.WorkflowDocument) []WorkflowDocumentResp {
	return lo.Map(docs, func(doc *model.WorkflowDocument, _ int) WorkflowDocumentResp {
		return mgr.convertToDocumentResp(doc)
	})
}

type DocumentIDReq struct {
	ID uint `uri:"id" binding:"required"`
}

func preloadSteps(db *gorm.DB) *gorm.DB {
	return db.Order("seq ASC")
}

// personnelForUser resolves the roster entry linked to the logged-in user.
// Approval obligations are held by personnel ids, not account ids.
func personnelForUser(c *gin.Context, userID uint) (*model.Personnel, error) {
	var p model.Personnel
	err := query.GetDB().WithContext(c).Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListMyDocuments godoc
// @Summary List documents submitted by the current user
// @Tags Documents
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[[]WorkflowDocumentResp] "documents"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/documents [get]
func (mgr *DocumentMgr) ListMyDocuments(c *gin.Context) {
	token := util.GetToken(c)
	if token.UserID == 0 {
		resputil.Error(c, "cannot get user id", resputil.NotSpecified)
		return
	}

	var docs []*model.WorkflowDocument
	err := query.GetDB().WithContext(c).
		Preload("Steps", preloadSteps).
		Where("submitter_id = ?", token.UserID).
		Order("created_at DESC").
		Find(&docs).Error
	if err != nil {
		klog.Errorf("failed to query documents, userID: %d, err: %v", token.UserID, err)
		resputil.Error(c, "failed to list documents", resputil.NotSpecified)
		return
	}

	resputil.Success(c, mgr.convertToDocumentResps(docs))
}

// ListInbox godoc
// @Summary List pending documents awaiting the current user's review
// @Tags Documents
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[[]WorkflowDocumentResp] "documents awaiting review"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/documents/inbox [get]
func (mgr *DocumentMgr) ListInbox(c *gin.Context) {
	token := util.GetToken(c)

	p, err := personnelForUser(c, token.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// not on the roster, nothing can be waiting
			resputil.Success(c, []WorkflowDocumentResp{})
			return
		}
		klog.Errorf("failed to resolve personnel for user %d: %v", token.UserID, err)
		resputil.Error(c, "failed to list inbox", resputil.NotSpecified)
		return
	}

	var docs []*model.WorkflowDocument
	err = query.GetDB().WithContext(c).
		Preload("Steps", preloadSteps).
		Where("current_approver_id = ?", p.ID).
		Where("status = ?", model.WorkflowStatusPending).
		Order("created_at ASC").
		Find(&docs).Error
	if err != nil {
		klog.Errorf("failed to query inbox, personnelID: %d, err: %v", p.ID, err)
		resputil.Error(c, "failed to list inbox", resputil.NotSpecified)
		return
	}

	resputil.Success(c, mgr.convertToDocumentResps(docs))
}

// GetDocument godoc
// @Summary Get a document with its approval history
// @Tags Documents
// @Produce json
// @Security Bearer
// @Param id path int true "document id"
// @Success 200 {object} resputil.Response[WorkflowDocumentResp] "document detail"
// @Failure 404 {object} resputil.Response[any] "document not found"
// @Router /v1/documents/{id} [get]
func (mgr *DocumentMgr) GetDocument(c *gin.Context) {
	token := util.GetToken(c)

	var docID DocumentIDReq
	if err := c.ShouldBindUri(&docID); err != nil {
		resputil.BadRequestError(c, "invalid request parameters")
		return
	}

	var doc model.WorkflowDocument
	err := query.GetDB().WithContext(c).
		Preload("Steps", preloadSteps).
		First(&doc, docID.ID).Error
	if err != nil {
		resputil.HTTPError(c, http.StatusNotFound, "document not found", resputil.DocumentNotFound)
		return
	}

	// visible to the submitter, the current approver and anyone who signed
	if !mgr.canView(c, &doc, token.UserID) {
		klog.Warningf("user %d attempted to view document %d without involvement", token.UserID, doc.ID)
		resputil.HTTPError(c, http.StatusForbidden, "permission denied to view this document", resputil.UserNotAllowed)
		return
	}

	resputil.Success(c, mgr.convertToDocumentResp(&doc))
}

func (mgr *DocumentMgr) canView(c *gin.Context, doc *model.WorkflowDocument, userID uint) bool {
	if doc.SubmitterID == userID {
		return true
	}
	p, err := personnelForUser(c, userID)
	if err != nil {
		return false
	}
	if doc.CurrentApproverID == p.ID {
		return true
	}
	return lo.SomeBy(doc.Steps, func(step model.WorkflowStep) bool {
		return step.SignerID == p.ID
	})
}

type SubmitDocumentReq struct {
	Title       string   `json:"title" binding:"required"`
	Group       string   `json:"group"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Files       []string `json:"files"`
	ApproverID  uint     `json:"approverID" binding:"required"` // initial head-stage approver
}

// SubmitDocument godoc
// @Summary Submit a new document for approval
// @Description Opens a pending document at the head stage, naming the initial approver
// @Tags Documents
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body SubmitDocumentReq true "document draft"
// @Success 200 {object} resputil.Response[WorkflowDocumentResp] "created document"
// @Failure 400 {object} resputil.Response[any] "invalid draft"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/documents [post]
func (mgr *DocumentMgr) SubmitDocument(c *gin.Context) {
	var req SubmitDocumentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		klog.Errorf("failed to bind request parameters: %v", err)
		resputil.BadRequestError(c, "invalid request parameters")
		return
	}

	token := util.GetToken(c)
	if token.UserID == 0 {
		resputil.Error(c, "cannot get user id", resputil.NotSpecified)
		return
	}

	submitterName := token.Nickname
	if submitterName == "" {
		submitterName = token.Username
	}

	doc, err := workflow.Submit(&workflow.SubmitRequest{
		Title:         req.Title,
		Group:         req.Group,
		Category:      req.Category,
		Description:   req.Description,
		Files:         req.Files,
		SubmitterID:   token.UserID,
		SubmitterName: submitterName,
		ApproverID:    req.ApproverID,
	})
	if err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	if err := query.GetDB().WithContext(c).Create(doc).Error; err != nil {
		klog.Errorf("failed to create document, userID: %d, err: %v", token.UserID, err)
		resputil.Error(c, "failed to create document", resputil.NotSpecified)
		return
	}

	monitor.SubmissionsTotal.Inc()
	if err := mgr.alerter.DocumentPendingAlert(c, doc); err != nil {
		klog.Warningf("failed to notify approver %d of document %s: %v", doc.CurrentApproverID, doc.DocNo, err)
	}

	resputil.Success(c, mgr.convertToDocumentResp(doc))
}

type RecordStepReq struct {
	Outcome        model.StepOutcome `json:"outcome" binding:"required"`
	Comment        string            `json:"comment"`
	Signature      string            `json:"signature"`      // encoded image from the capture surface, may be empty
	NextApproverID uint              `json:"nextApproverID"` // required when approving below the director stage
	Version        uint              `json:"version" binding:"required"` // document version the actor last read
}

// RecordStep godoc
// @Summary Record an approval or rejection on a pending document
// @Description Applies one review decision. Approval below the director stage hands the
// @Description document to the chosen next approver; rejection terminates it at any stage.
// @Tags Documents
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "document id"
// @Param body body RecordStepReq true "review decision"
// @Success 200 {object} resputil.Response[WorkflowDocumentResp] "document after the transition"
// @Failure 400 {object} resputil.Response[any] "invalid decision"
// @Failure 409 {object} resputil.Response[any] "document already processed"
// @Router /v1/documents/{id}/steps [post]
func (mgr *DocumentMgr) RecordStep(c *gin.Context) {
	var req RecordStepReq
	var docID DocumentIDReq
	if err := c.ShouldBindJSON(&req); err != nil {
		klog.Errorf("failed to bind request parameters: %v", err)
		resputil.BadRequestError(c, "invalid request parameters")
		return
	}
	if err := c.ShouldBindUri(&docID); err != nil {
		resputil.BadRequestError(c, "invalid request parameters")
		return
	}

	token := util.GetToken(c)

	actor, err := personnelForUser(c, token.UserID)
	if err != nil {
		klog.Warningf("user %d attempted to sign but is not on the roster: %v", token.UserID, err)
		resputil.HTTPError(c, http.StatusForbidden, "not on the approver roster", resputil.UserNotAllowed)
		return
	}

	var doc model.WorkflowDocument
	err = query.GetDB().WithContext(c).
		Preload("Steps", preloadSteps).
		First(&doc, docID.ID).Error
	if err != nil {
		resputil.HTTPError(c, http.StatusNotFound, "document not found", resputil.DocumentNotFound)
		return
	}

	updated, err := workflow.RecordStep(&doc, &workflow.Action{
		ActorID:         actor.ID,
		ActorName:       actor.Name,
		ActorPosition:   actor.Position,
		Comment:         req.Comment,
		Signature:       req.Signature,
		Outcome:         req.Outcome,
		NextApproverID:  req.NextApproverID,
		ExpectedVersion: req.Version,
	})
	if err != nil {
		switch {
		case workflow.IsValidation(err):
			resputil.BadRequestError(c, err.Error())
		case workflow.IsInvalidTransition(err):
			resputil.HTTPError(c, http.StatusConflict,
				"this document has already been processed", resputil.DocumentProcessed)
		default:
			klog.Errorf("failed to record step on document %d: %v", doc.ID, err)
			resputil.Error(c, "failed to record step", resputil.NotSpecified)
		}
		return
	}

	if err := mgr.persistTransition(c, &doc, updated); err != nil {
		if workflow.IsInvalidTransition(err) {
			monitor.VersionConflictsTotal.Inc()
			resputil.HTTPError(c, http.StatusConflict,
				"this document has already been processed", resputil.DocumentProcessed)
			return
		}
		klog.Errorf("failed to persist step on document %d: %v", doc.ID, err)
		resputil.Error(c, "failed to record step", resputil.NotSpecified)
		return
	}

	monitor.ObserveTransition(doc.CurrentStage, req.Outcome)
	mgr.notifyTransition(c, updated)

	resputil.Success(c, mgr.convertToDocumentResp(updated))
}

// persistTransition writes the transition atomically: the document row is
// updated only if its version is unchanged since the engine read it, and
// the new step is inserted in the same transaction. A lost race surfaces
// as an InvalidTransitionError so the caller sees "already processed"
// instead of silently overwriting the winner's step.
func (mgr *DocumentMgr) persistTransition(c *gin.Context, old, updated *model.WorkflowDocument) error {
	newStep := updated.Steps[len(updated.Steps)-1]

	return query.GetDB().WithContext(c).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.WorkflowDocument{}).
			Where("id = ? AND version = ?", old.ID, old.Version).
			Updates(map[string]any{
				"current_stage":       updated.CurrentStage,
				"current_approver_id": updated.CurrentApproverID,
				"status":              updated.Status,
				"version":             updated.Version,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &workflow.InvalidTransitionError{Reason: "document changed since it was read"}
		}
		return tx.Create(&newStep).Error
	})
}

func (mgr *DocumentMgr) notifyTransition(c *gin.Context, doc *model.WorkflowDocument) {
	var err error
	if doc.Status == model.WorkflowStatusPending {
		err = mgr.alerter.DocumentPendingAlert(c, doc)
	} else {
		err = mgr.alerter.DocumentFinalizedAlert(c, doc)
	}
	if err != nil {
		klog.Warningf("failed to send workflow notice for document %s: %v", doc.DocNo, err)
	}
}

// DeleteDocument godoc
// @Summary Delete a document
// @Description Only the submitter may delete, and only while the document is pending
// @Tags Documents
// @Produce json
// @Security Bearer
// @Param id path int true "document id"
// @Success 200 {object} resputil.Response[string] "deleted"
// @Failure 403 {object} resputil.Response[any] "permission denied"
// @Failure 404 {object} resputil.Response[any] "document not found"
// @Router /v1/documents/{id} [delete]
func (mgr *DocumentMgr) DeleteDocument(c *gin.Context) {
	token := util.GetToken(c)

	var docID DocumentIDReq
	if err := c.ShouldBindUri(&docID); err != nil {
		resputil.BadRequestError(c, "invalid request parameters")
		return
	}

	var doc model.WorkflowDocument
	if err := query.GetDB().WithContext(c).First(&doc, docID.ID).Error; err != nil {
		resputil.HTTPError(c, http.StatusNotFound, "document not found", resputil.DocumentNotFound)
		return
	}

	if doc.SubmitterID != token.UserID {
		klog.Warningf("user %d attempted to delete document %d owned by %d",
			token.UserID, doc.ID, doc.SubmitterID)
		resputil.HTTPError(c, http.StatusForbidden, "permission denied to delete this document", resputil.UserNotAllowed)
		return
	}
	if doc.Status != model.WorkflowStatusPending {
		resputil.HTTPError(c, http.StatusConflict,
			"this document has already been processed", resputil.DocumentProcessed)
		return
	}

	// steps go with the document (cascade)
	if err := query.GetDB().WithContext(c).Select("Steps").Delete(&doc).Error; err != nil {
		klog.Errorf("failed to delete document %d: %v", doc.ID, err)
		resputil.Error(c, "failed to delete document", resputil.NotSpecified)
		return
	}

	klog.Infof("deleted document %s, userID: %d", doc.DocNo, token.UserID)
	resputil.Success(c, "delete document successfully")
}

// ListAllDocuments godoc
// @Summary List all documents (admin)
// @Tags Documents
// @Produce json
// @Security Bearer
// @Param page_index query int true "page index"
// @Param page_size query int true "page size"
// @Success 200 {object} resputil.Response[payload.ListResp[WorkflowDocumentResp]] "paged documents"
// @Failure 400 {object} resputil.Response[any] "invalid paging"
// @Router /v1/admin/documents [get]
func (mgr *DocumentMgr) ListAllDocuments(c *gin.Context) {
	var page payload.ListReqQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		resputil.BadRequestError(c, "invalid paging parameters")
		return
	}

	db := query.GetDB().WithContext(c)

	var count int64
	if err := db.Model(&model.WorkflowDocument{}).Count(&count).Error; err != nil {
		klog.Errorf("failed to count documents: %v", err)
		resputil.Error(c, "failed to list documents", resputil.NotSpecified)
		return
	}

	var docs []*model.WorkflowDocument
	err := db.
		Preload("Steps", preloadSteps).
		Order("created_at DESC").
		Offset((*page.PageIndex) * (*page.PageSize)).
		Limit(*page.PageSize).
		Find(&docs).Error
	if err != nil {
		klog.Errorf("failed to query documents: %v", err)
		resputil.Error(c, "failed to list documents", resputil.NotSpecified)
		return
	}

	resputil.Success(c, payload.ListResp[WorkflowDocumentResp]{
		Rows:  mgr.convertToDocumentResps(docs),
		Count: count,
	})
}

// GetDocumentAdmin godoc
// @Summary Get any document by id (admin)
// @Tags Documents
// @Produce json
// @Security Bearer
// @Param id path int true "document id"
// @Success 200 {object} resputil.Response[WorkflowDocumentResp] "document detail"
// @Failure 404 {object} resputil.Response[any] "document not found"
// @Router /v1/admin/documents/{id} [get]
func (mgr *DocumentMgr) GetDocumentAdmin(c *gin.Context) {
	var docID DocumentIDReq
	if err := c.ShouldBindUri(&docID); err != nil {
		resputil.BadRequestError(c, "invalid request parameters")
		return
	}

	var doc model.WorkflowDocument
	err := query.GetDB().WithContext(c).
		Preload("Steps", preloadSteps).
		First(&doc, docID.ID).Error
	if err != nil {
		resputil.HTTPError(c, http.StatusNotFound, "document not found", resputil.DocumentNotFound)
		return
	}

	resputil.Success(c, mgr.convertToDocumentResp(&doc))
}
