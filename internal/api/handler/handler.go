package handler

import "github.com/koshanqari/gl-app-checkin/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	CheckIn        *CheckInHandler
	UserPreference *UserPreferenceHandler
	Auth           *AuthHandler
	Panel          *PanelHandler
	Export         *ExportHandler
	PublicForm     *PublicFormHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		CheckIn:        NewCheckInHandler(svc.CheckIn),
		UserPreference: NewUserPreferenceHandler(svc.UserPreference),
		Auth:           NewAuthHandler(svc.Auth),
		Panel:          NewPanelHandler(svc.Panel, svc.CheckIn),
		Export:         NewExportHandler(svc.Export),
		PublicForm:     NewPublicFormHandler(svc.CheckIn),
	}
}
