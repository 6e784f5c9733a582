package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	activitydomain "github.com/onebase/onebase/internal/activity/domain"
	"github.com/onebase/onebase/pkg/db/pagination"
)

type createActivityRequest struct {
	Type       string `json:"type"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	OccurredAt string `json:"occurred_at"`
	AccountID  string `json:"account_id"`
	ContactID  string `json:"contact_id"`
	DealID     string `json:"deal_id"`
}

type updateActivityRequest struct {
	Type       *string `json:"type"`
	Subject    *string `json:"subject"`
	Body       *string `json:"body"`
	OccurredAt *string `json:"occurred_at"`
	AccountID  *string `json:"account_id"`
	ContactID  *string `json:"contact_id"`
	DealID     *string `json:"deal_id"`
}

func (s *Server) CreateActivity(c *gin.Context) {
	userID, ok := s.userIDFromSession(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	occurredAt, err := parseOptionalTime(req.OccurredAt, false)
	if err != nil {
		AbortWithError(c, newValidationError("occurred_at", "invalid_occurred_at", "invalid occurred_at"))
		return
	}
	accountID, err := parseOptionalSnowflakeID(req.AccountID)
	if err != nil {
		AbortWithError(c, activitydomain.ErrInvalidAccount)
		return
	}
	contactID, err := parseOptionalSnowflakeID(req.ContactID)
	if err != nil {
		AbortWithError(c, activitydomain.ErrInvalidContact)
		return
	}
	dealID, err := parseOptionalSnowflakeID(req.DealID)
	if err != nil {
		AbortWithError(c, activitydomain.ErrInvalidDeal)
		return
	}

	resp, err := s.activitySvc.Create(c.Request.Context(), activitydomain.CreateActivityRequest{
		Type:            req.Type,
		Subject:         req.Subject,
		Body:            req.Body,
		OccurredAt:      occurredAt,
		AccountID:       accountID,
		ContactID:       contactID,
		DealID:          dealID,
		CreatedByUserID: userID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListActivities(c *gin.Context) {
	var query struct {
		pagination.Pagination
		AccountID string `form:"account_id"`
		ContactID string `form:"contact_id"`
		DealID    string `form:"deal_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	accountID, err := parseOptionalSnowflakeID(query.AccountID)
	if err != nil {
		AbortWithError(c, newValidationError("account_id", "invalid_account_id", "invalid account_id"))
		return
	}
	contactID, err := parseOptionalSnowflakeID(query.ContactID)
	if err != nil {
		AbortWithError(c, newValidationError("contact_id", "invalid_contact_id", "invalid contact_id"))
		return
	}
	dealID, err := parseOptionalSnowflakeID(query.DealID)
	if err != nil {
		AbortWithError(c, newValidationError("deal_id", "invalid_deal_id", "invalid deal_id"))
		return
	}

	resp, err := s.activitySvc.List(c.Request.Context(), activitydomain.ListActivityRequest{
		AccountID: accountID,
		ContactID: contactID,
		DealID:    dealID,
		Page:      query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetActivityByID(c *gin.Context) {
	resp, err := s.activitySvc.GetByID(c.Request.Context(), activitydomain.GetActivityRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateActivity(c *gin.Context) {
	var req updateActivityRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := activitydomain.UpdateActivityRequest{
		ID:      strings.TrimSpace(c.Param("id")),
		Type:    req.Type,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if req.OccurredAt != nil {
		occurredAt, err := parseOptionalTime(*req.OccurredAt, false)
		if err != nil || occurredAt == nil {
			AbortWithError(c, newValidationError("occurred_at", "invalid_occurred_at", "invalid occurred_at"))
			return
		}
		update.OccurredAt = occurredAt
	}
	if bodyHasKey(c, "account_id") {
		update.SetAccount = true
		if req.AccountID != nil {
			accountID, err := parseOptionalSnowflakeID(*req.AccountID)
			if err != nil {
				AbortWithError(c, activitydomain.ErrInvalidAccount)
				return
			}
			update.AccountID = accountID
		}
	}
	if bodyHasKey(c, "contact_id") {
		update.SetContact = true
		if req.ContactID != nil {
			contactID, err := parseOptionalSnowflakeID(*req.ContactID)
			if err != nil {
				AbortWithError(c, activitydomain.ErrInvalidContact)
				return
			}
			update.ContactID = contactID
		}
	}
	if bodyHasKey(c, "deal_id") {
		update.SetDeal = true
		if req.DealID != nil {
			dealID, err := parseOptionalSnowflakeID(*req.DealID)
			if err != nil {
				AbortWithError(c, activitydomain.ErrInvalidDeal)
				return
			}
			update.DealID = dealID
		}
	}

	resp, err := s.activitySvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteActivity(c *gin.Context) {
	err := s.activitySvc.Delete(c.Request.Context(), activitydomain.GetActivityRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isActivityValidationError(err error) bool {
	switch err {
	case activitydomain.ErrInvalidOrganization,
		activitydomain.ErrInvalidType,
		activitydomain.ErrInvalidAccount,
		activitydomain.ErrInvalidContact,
		activitydomain.ErrInvalidDeal,
		activitydomain.ErrInvalidUser,
		activitydomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
