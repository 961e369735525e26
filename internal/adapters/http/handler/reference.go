package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/hr-records-api/internal/core/department"
	"github.com/ogurasousui/hr-records-api/internal/core/skill"
	"github.com/sirupsen/logrus"
)

// DepartmentLister は部署一覧を返します。
type DepartmentLister interface {
	ListDepartments(ctx context.Context) ([]*department.Department, error)
}

// SkillLister はスキル一覧を返します。
type SkillLister interface {
	ListSkills(ctx context.Context) ([]*skill.Skill, error)
}

// ReferenceHandler は部署とスキルの参照データを返します。
type ReferenceHandler struct {
	departments DepartmentLister
	skills      SkillLister
	logger      logrus.FieldLogger
}

// NewReferenceHandler は ReferenceHandler を生成します。
func NewReferenceHandler(departments DepartmentLister, skills SkillLister, logger logrus.FieldLogger) *ReferenceHandler {
	return &ReferenceHandler{departments: departments, skills: skills, logger: logger}
}

// Departments は部署一覧を名前順で返します。
func (h *ReferenceHandler) Departments(c *gin.Context) {
	departments, err := h.departments.ListDepartments(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toDepartmentResponses(departments))
}

// Skills はスキル一覧を返します。
func (h *ReferenceHandler) Skills(c *gin.Context) {
	skills, err := h.skills.ListSkills(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toSkillResponses(skills))
}
