package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"k8s.io/klog/v2"

	"github.com/anuban-lab/sarabun/dao/model"
	"github.com/anuban-lab/sarabun/dao/query"
	"github.com/anuban-lab/sarabun/internal/resputil"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewRosterMgr)
}

// RosterMgr serves the personnel directory used to pick the next approver
// for a stage. Entries are administrative data; the workflow engine only
// holds ids into this table.
type RosterMgr struct {
	name string
}

func NewRosterMgr(_ *RegisterConfig) Manager {
	return &RosterMgr{
		name: "roster",
	}
}

func (mgr *RosterMgr) GetName() string { return mgr.name }

func (mgr *RosterMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *RosterMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("", mgr.ListByRank)
}

func (mgr *RosterMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.GET("", mgr.ListAll)
	g.POST("", mgr.CreatePersonnel)
	g.PUT("/:id", mgr.UpdatePersonnel)
	g.DELETE("/:id", mgr.DeletePersonnel)
}

type ListByRankReq struct {
	Rank model.ApproverRank `form:"rank" binding:"required,oneof=head deputy director"`
}

func convertToPersonnelInfos(people []*model.Personnel) []model.PersonnelInfo {
	return lo.Map(people, func(p *model.Personnel, _ int) model.PersonnelInfo {
		return model.PersonnelInfo{
			ID:       p.ID,
			Name:     p.Name,
			Title:    p.Title,
			Position: p.Position,
			Rank:     p.Rank,
		}
	})
}

// ListByRank godoc
// @Summary List personnel eligible to approve at a rank
// @Description An empty roster for the requested rank is a configuration error,
// @Description not an invitation to pick anyone.
// @Tags Roster
// @Produce json
// @Security Bearer
// @Param rank query string true "rank" Enums(head, deputy, director)
// @Success 200 {object} resputil.Response[[]model.PersonnelInfo] "eligible approvers"
// @Failure 422 {object} resputil.Response[any] "no eligible approver configured"
// @Router /v1/roster [get]
func (mgr *RosterMgr) ListByRank(c *gin.Context) {
	var req ListByRankReq
	if err := c.ShouldBindQuery(&req); err != nil {
		resputil.BadRequestError(c, "invalid rank")
		return
	}

	var people []*model.Personnel
	err := query.GetDB().WithContext(c).
		Where("rank = ?", req.Rank).
		Order("name ASC").
		Find(&people).Error
	if err != nil {
		klog.Errorf("failed to query roster, rank: %s, err: %v", req.Rank, err)
		resputil.Error(c, "failed to list roster", resputil.NotSpecified)
		return
	}

	if len(people) == 0 {
		resputil.HTTPError(c, http.StatusUnprocessableEntity,
			fmt.Sprintf("no eligible approver for rank %s", req.Rank), resputil.NoEligibleApprover)
		return
	}

	resputil.Success(c, convertToPersonnelInfos(people))
}

// ListAll returns the whole roster for administration.
func (mgr *RosterMgr) ListAll(c *gin.Context) {
	var people []*model.Personnel
	err := query.GetDB().WithContext(c).Order("rank ASC, name ASC").Find(&people).Error
	if err != nil {
		klog.Errorf("failed to query roster: %v", err)
		resputil.Error(c, "failed to list roster", resputil.NotSpecified)
		return
	}
	resputil.Success(c, convertToPersonnelInfos(people))
}

type PersonnelReq struct {
	Name     string             `json:"name" binding:"required"`
	Title    string             `json:"title"`
	Position string             `json:"position"`
	Rank     model.ApproverRank `json:"rank" binding:"required,oneof=head deputy director"`
	Email    *string            `json:"email"`
	UserID   *uint              `json:"userID"`
}

type PersonnelIDReq struct {
	ID uint `uri:"id" binding:"required"`
}

// CreatePersonnel godoc
// @Summary Add a roster entry (admin)
// @Tags Roster
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body PersonnelReq true "roster entry"
// @Success 200 {object} resputil.Response[model.PersonnelInfo] "created entry"
// @Failure 400 {object} resputil.Response[any] "invalid entry"
// @Router /v1/admin/roster [post]
func (mgr *RosterMgr) CreatePersonnel(c *gin.Context) {
	var req PersonnelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, "invalid request parameters")
		return
	}

	p := model.Personnel{
		Name:     req.Name,
		Title:    req.Title,
		Position: req.Position,
		Rank:     req.Rank,
		Email:    req.Email,
		UserID:   req.UserID,
	}
	if err := query.GetDB().WithContext(c).Create(&p).Error; err != nil {
		klog.Errorf("failed to create personnel: %v", err)
		resputil.Error(c, "failed to create personnel", resputil.NotSpecified)
		return
	}

	resputil.Success(c, model.PersonnelInfo{
		ID:       p.ID,
		Name:     p.Name,
		Title:    p.Title,
		Position: p.Position,
		Rank:     p.Rank,
	})
}

// UpdatePersonnel replaces a roster entry. History is unaffected: steps
// keep the signer snapshot taken at signing time.
func (mgr *RosterMgr) UpdatePersonnel(c *gin.Context) {
	var req PersonnelReq
	var pID PersonnelIDReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, "invalid request parameters")
		return
	}
	if err := c.ShouldBindUri(&pID); err != nil {
		resputil.BadRequestError(c, "invalid request parameters")
		return
	}

	updates := model.Personnel{
		Name:     req.Name,
		Title:    req.Title,
		Position: req.Position,
		Rank:     req.Rank,
		Email:    req.Email,
		UserID:   req.UserID,
	}
	res := query.GetDB().WithContext(c).
		Model(&model.Personnel{}).
		Where("id = ?", pID.ID).
		Updates(&updates)
	if res.Error != nil {
		klog.Errorf("failed to update personnel %d: %v", pID.ID, res.Error)
		resputil.Error(c, "failed to update personnel", resputil.NotSpecified)
		return
	}
	if res.RowsAffected == 0 {
		resputil.HTTPError(c, http.StatusNotFound, "personnel not found", resputil.NotSpecified)
		return
	}

	resputil.Success(c, "update personnel successfully")
}

// DeletePersonnel removes a roster entry. Pending documents pointing at it
// keep their approver id; the obligation has to be reassigned by an admin.
func (mgr *RosterMgr) DeletePersonnel(c *gin.Context) {
	var pID PersonnelIDReq
	if err := c.ShouldBindUri(&pID); err != nil {
		resputil.BadRequestError(c, "invalid request parameters")
		return
	}

	res := query.GetDB().WithContext(c).Delete(&model.Personnel{}, pID.ID)
	if res.Error != nil {
		klog.Errorf("failed to delete personnel %d: %v", pID.ID, res.Error)
		resputil.Error(c, "failed to delete personnel", resputil.NotSpecified)
		return
	}
	if res.RowsAffected == 0 {
		resputil.HTTPError(c, http.StatusNotFound, "personnel not found", resputil.NotSpecified)
		return
	}

	klog.Infof("deleted personnel %d", pID.ID)
	resputil.Success(c, "delete personnel successfully")
}
