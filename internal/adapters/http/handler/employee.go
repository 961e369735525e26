package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/hr-records-api/internal/core/employee"
	"github.com/sirupsen/logrus"
)

// EmployeeHandler は社員リソースの HTTP ハンドラーです。
type EmployeeHandler struct {
	svc    employee.UseCase
	logger logrus.FieldLogger
}

// NewEmployeeHandler は EmployeeHandler を生成します。
func NewEmployeeHandler(svc employee.UseCase, logger logrus.FieldLogger) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, logger: logger}
}

// List は検索・並び替え・ページングを適用した社員一覧を返します。
func (h *EmployeeHandler) List(c *gin.Context) {
	result, err := h.svc.ListEmployees(c.Request.Context(), employee.ListEmployeesInput{
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Search:    c.Query("search"),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toListEmployeesResponse(result))
}

// Get は社員を一件返します。
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, h.logger, employee.ErrEmployeeNotFound)
		return
	}

	found, err := h.svc.GetEmployee(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toEmployeeResponse(found))
}

// Create は社員を作成します。
func (h *EmployeeHandler) Create(c *gin.Context) {
	in, ok := h.bindEmployee(c)
	if !ok {
		return
	}

	id, err := h.svc.CreateEmployee(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "Employee created successfully"})
}

// Update は社員の全項目とスキル集合を置き換えます。
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, h.logger, employee.ErrEmployeeNotFound)
		return
	}

	in, ok := h.bindEmployee(c)
	if !ok {
		return
	}

	if err := h.svc.UpdateEmployee(c.Request.Context(), id, in); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee updated successfully"})
}

// Delete は社員を削除します。
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, h.logger, employee.ErrEmployeeNotFound)
		return
	}

	if err := h.svc.DeleteEmployee(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}

// ListSkills は社員のスキルを返します。
func (h *EmployeeHandler) ListSkills(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, h.logger, employee.ErrEmployeeNotFound)
		return
	}

	skills, err := h.svc.ListEmployeeSkills(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toSkillResponses(skills))
}

// AddSkill は社員にスキルを一件関連付けます。
func (h *EmployeeHandler) AddSkill(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, h.logger, employee.ErrEmployeeNotFound)
		return
	}

	var req addSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Debug("invalid add skill payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "skill_id or name is required"})
		return
	}
	in, err := req.toInput()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	skillID, err := h.svc.AddEmployeeSkill(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "skill_id": skillID})
}

// ListProjects は社員が参加しているプロジェクトを返します。失敗時は 500 と空配列を返します。
func (h *EmployeeHandler) ListProjects(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, h.logger, employee.ErrEmployeeNotFound)
		return
	}

	projects, err := h.svc.ListEmployeeProjects(c.Request.Context(), id)
	if err != nil {
		respondEmptyList(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponses(projects))
}

func (h *EmployeeHandler) bindEmployee(c *gin.Context) (employee.EmployeeInput, bool) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Debug("invalid employee payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return employee.EmployeeInput{}, false
	}
	if !req.hasRequiredFields() {
		c.JSON(http.StatusBadRequest, gin.H{"error": requiredFieldsMessage})
		return employee.EmployeeInput{}, false
	}

	in, err := req.toInput()
	if err != nil {
		respondError(c, h.logger, err)
		return employee.EmployeeInput{}, false
	}
	return in, true
}

func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}
