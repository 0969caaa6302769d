package model

import (
	"gorm.io/gorm"
)

// ApproverRank is the review level a personnel member may sign at.
type ApproverRank string

const (
	RankHead     ApproverRank = "head"     // หัวหน้ากลุ่มงาน
	RankDeputy   ApproverRank = "deputy"   // รองผู้อำนวยการ
	RankDirector ApproverRank = "director" // ผู้อำนวยการ
)

// Personnel is a roster entry used to pick the next approver for a stage.
// Entries are maintained by administrators; the workflow engine only keeps
// weak references (ids) into this table.
type Personnel struct {
	gorm.Model
	Name     string       `gorm:"type:varchar(128);not null;comment:full name"`
	Title    string       `gorm:"type:varchar(64);comment:honorific"`
	Position string       `gorm:"type:varchar(128);comment:official position"`
	Rank     ApproverRank `gorm:"type:varchar(16);not null;index;comment:review level"`
	Email    *string      `gorm:"type:varchar(128);comment:notification address"`

	// UserID links the roster entry to its login account. Personnel
	// without an account can be selected as approvers but cannot sign.
	UserID *uint `gorm:"uniqueIndex;comment:login account"`
}

// PersonnelInfo is the roster entry shape returned by the directory API.
type PersonnelInfo struct {
	ID       uint         `json:"id"`
	Name     string       `json:"name"`
	Title    string       `json:"title"`
	Position string       `json:"position"`
	Rank     ApproverRank `json:"rank"`
}
