package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/CoderRdm/Placement-Cell/internal/dto"
	"github.com/CoderRdm/Placement-Cell/internal/service"
	"github.com/CoderRdm/Placement-Cell/pkg/response"
	"github.com/CoderRdm/Placement-Cell/pkg/validation"
)

// StudentHandler 学生模块 HTTP 处理器
type StudentHandler struct {
	studentSvc service.StudentService
	seedSvc    service.SeedService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService, seedSvc service.SeedService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc, seedSvc: seedSvc}
}

// Register 学生注册
// POST /Student/api/register-student
func (h *StudentHandler) Register(c *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validation.Messages(err))
		return
	}

	student, err := h.studentSvc.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleStudentError(c, err, "Internal server error")
		return
	}

	response.Created(c, "Student registered successfully", student)
}

// ListStudents 获取全部学生
// GET /Student/students
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.studentSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Error fetching students", err)
		return
	}

	response.OKList(c, students, len(students))
}

// GetStudent 按学号获取学生
// GET /Student/students/:student_id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	student, err := h.studentSvc.GetByStudentID(c.Request.Context(), c.Param("student_id"))
	if err != nil {
		h.handleStudentError(c, err, "Error fetching student")
		return
	}

	response.OK(c, "", student)
}

// Seed 重置参考数据（仅开发环境）
// POST /Student/seed-database
func (h *StudentHandler) Seed(c *gin.Context) {
	resp, err := h.seedSvc.Seed(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrSeedForbidden) {
			response.Forbidden(c, "Seeding is only available in development")
			return
		}
		response.InternalError(c, "Error seeding database", err)
		return
	}

	response.OK(c, "Database seeded successfully", resp)
}

func (h *StudentHandler) handleStudentError(c *gin.Context, err error, fallback string) {
	var refErr *service.UnknownReferenceError
	switch {
	case errors.As(err, &refErr):
		response.BadRequest(c, refErr.Error())
	case errors.Is(err, service.ErrStudentExists):
		response.Conflict(c, "Student with this ID already exists")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, "Student not found")
	case errors.Is(err, service.ErrSpecializationMismatch):
		response.BadRequest(c, "Specialization does not belong to the selected program")
	case errors.Is(err, service.ErrDuplicateSemester):
		response.BadRequest(c, "Duplicate semester in sgpa_records")
	case errors.Is(err, service.ErrConstraintViolation):
		response.ValidationError(c, service.ConstraintMessages(err))
	default:
		response.InternalError(c, fallback, err)
	}
}
