package controllers

import (
	"log"
	"net/http"

	"hotel-booking-backend/services"

	"github.com/gin-gonic/gin"
)

type IssueRefundPayload struct {
	Type string `json:"type" binding:"required,oneof=full partial"`

	// Amount (whole currency units) is required for partial refunds; the
	// business rule for the fraction belongs to the admin, not the server.
	Amount int64 `json:"amount"`
}

type RequestRefundPayload struct {
	Reason string `json:"reason" binding:"required"`
}

type RejectRefundPayload struct {
	AdminNotes string `json:"adminNotes"`
}

type RefundController struct {
	RefundSvc *services.RefundService
}

func NewRefundController(svc *services.RefundService) *RefundController {
	return &RefundController{RefundSvc: svc}
}

// IssueRefund is the admin action applying a full or partial refund.
func (ctrl *RefundController) IssueRefund(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var payload IssueRefundPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "type must be full or partial", "details": err.Error()}})
		return
	}

	result, err := ctrl.RefundSvc.IssueRefund(c.Request.Context(), id, payload.Type, payload.Amount)
	if err != nil {
		log.Printf("IssueRefund error (booking=%d type=%s): %v", id, payload.Type, err)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": result})
}

// RequestRefund is the guest-initiated request; queued for admin review.
func (ctrl *RefundController) RequestRefund(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var payload RequestRefundPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "reason is required", "details": err.Error()}})
		return
	}

	booking, err := ctrl.RefundSvc.RequestRefund(id, currentUserID(c), payload.Reason)
	if err != nil {
		log.Printf("RequestRefund error (booking=%d): %v", id, err)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": booking})
}

// RejectRefundRequest closes a pending guest request.
func (ctrl *RefundController) RejectRefundRequest(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var payload RejectRefundPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "invalid payload", "details": err.Error()}})
		return
	}

	booking, err := ctrl.RefundSvc.RejectRefundRequest(id, payload.AdminNotes)
	if err != nil {
		log.Printf("RejectRefundRequest error (booking=%d): %v", id, err)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": booking})
}
