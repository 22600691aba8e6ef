package handler

import (
	"net/http"

	"care_portal_backend/internal/leads/service"
	"care_portal_backend/internal/leads/transport"
	"care_portal_backend/platform/httpkit"
	"care_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.POST("/:id/consultation", h.SaveConsultation)
	rg.POST("/:id/survey", h.SaveSurvey)
	rg.GET("/:id/agreement-check", h.CheckAgreement)
	rg.POST("/:id/agreement", h.CreateAgreement)
	rg.POST("/:id/queue", h.AddToQueue)
	rg.POST("/:id/queue/offer-sent", h.MarkQueueOfferSent)
	rg.POST("/:id/cancel", h.Cancel)
	rg.GET("/:id/queue-position", h.QueuePosition)
	rg.GET("/:id/email", h.EmailContent)
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.CreateProspect(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, lead)
}

func (h *Handler) List(c *gin.Context) {
	var req transport.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	httpkit.OK(c, h.svc.List(c.Request.Context(), req))
}

func (h *Handler) GetByID(c *gin.Context) {
	lead, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

func (h *Handler) SaveConsultation(c *gin.Context) {
	var req transport.ConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.UpgradeToLead(c.Request.Context(), c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

func (h *Handler) SaveSurvey(c *gin.Context) {
	var req transport.SurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.SaveSurvey(c.Request.Context(), c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

func (h *Handler) CheckAgreement(c *gin.Context) {
	check, err := h.svc.CheckAgreementData(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, check)
}

func (h *Handler) CreateAgreement(c *gin.Context) {
	var req transport.CreateAgreementRequest
	// The body is optional; an empty body means no override.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
	}

	lead, err := h.svc.CreateAgreement(c.Request.Context(), c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

func (h *Handler) AddToQueue(c *gin.Context) {
	lead, err := h.svc.AddToQueue(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

func (h *Handler) MarkQueueOfferSent(c *gin.Context) {
	lead, err := h.svc.MarkQueueOfferSent(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

func (h *Handler) Cancel(c *gin.Context) {
	var req transport.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.Cancel(c.Request.Context(), c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

func (h *Handler) QueuePosition(c *gin.Context) {
	position, err := h.svc.QueuePosition(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, position)
}

func (h *Handler) EmailContent(c *gin.Context) {
	scenario := c.Query("scenario")
	if scenario == "" {
		httpkit.Error(c, http.StatusBadRequest, "scenario query parameter is required", nil)
		return
	}

	msg, err := h.svc.EmailContent(c.Request.Context(), c.Param("id"), scenario)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, msg)
}
