package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	dealdomain "github.com/onebase/onebase/internal/deal/domain"
	"github.com/onebase/onebase/pkg/db/pagination"
)

type createDealRequest struct {
	AccountID         string `json:"account_id"`
	PrimaryContactID  string `json:"primary_contact_id"`
	StageID           string `json:"stage_id"`
	Name              string `json:"name"`
	AmountCents       *int64 `json:"amount_cents"`
	Currency          string `json:"currency"`
	ExpectedCloseDate string `json:"expected_close_date"`
}

type updateDealRequest struct {
	AccountID         *string `json:"account_id"`
	PrimaryContactID  *string `json:"primary_contact_id"`
	StageID           *string `json:"stage_id"`
	Name              *string `json:"name"`
	AmountCents       *int64  `json:"amount_cents"`
	Currency          *string `json:"currency"`
	ExpectedCloseDate *string `json:"expected_close_date"`
}

func (s *Server) CreateDeal(c *gin.Context) {
	var req createDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	primaryContactID, err := parseOptionalSnowflakeID(req.PrimaryContactID)
	if err != nil {
		AbortWithError(c, dealdomain.ErrInvalidContact)
		return
	}

	closeDate, err := parseOptionalTime(req.ExpectedCloseDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("expected_close_date", "invalid_expected_close_date", "invalid expected_close_date"))
		return
	}

	resp, err := s.dealSvc.Create(c.Request.Context(), dealdomain.CreateDealRequest{
		AccountID:         req.AccountID,
		PrimaryContactID:  primaryContactID,
		StageID:           req.StageID,
		Name:              req.Name,
		AmountCents:       req.AmountCents,
		Currency:          req.Currency,
		ExpectedCloseDate: closeDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListDeals(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Search    string `form:"q"`
		StageID   string `form:"stage_id"`
		AccountID string `form:"account_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	stageID, err := parseOptionalSnowflakeID(query.StageID)
	if err != nil {
		AbortWithError(c, newValidationError("stage_id", "invalid_stage_id", "invalid stage_id"))
		return
	}
	accountID, err := parseOptionalSnowflakeID(query.AccountID)
	if err != nil {
		AbortWithError(c, newValidationError("account_id", "invalid_account_id", "invalid account_id"))
		return
	}

	resp, err := s.dealSvc.List(c.Request.Context(), dealdomain.ListDealRequest{
		Search:    strings.TrimSpace(query.Search),
		StageID:   stageID,
		AccountID: accountID,
		Page:      query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDealByID(c *gin.Context) {
	resp, err := s.dealSvc.GetByID(c.Request.Context(), dealdomain.GetDealRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateDeal(c *gin.Context) {
	var req updateDealRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := dealdomain.UpdateDealRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		AccountID:   req.AccountID,
		StageID:     req.StageID,
		Name:        req.Name,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
	}
	if bodyHasKey(c, "primary_contact_id") {
		update.SetPrimaryContact = true
		if req.PrimaryContactID != nil {
			contactID, err := parseOptionalSnowflakeID(*req.PrimaryContactID)
			if err != nil {
				AbortWithError(c, dealdomain.ErrInvalidContact)
				return
			}
			update.PrimaryContactID = contactID
		}
	}
	if bodyHasKey(c, "expected_close_date") {
		update.SetCloseDate = true
		if req.ExpectedCloseDate != nil {
			closeDate, err := parseOptionalTime(*req.ExpectedCloseDate, false)
			if err != nil {
				AbortWithError(c, newValidationError("expected_close_date", "invalid_expected_close_date", "invalid expected_close_date"))
				return
			}
			update.ExpectedCloseDate = closeDate
		}
	}

	resp, err := s.dealSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteDeal(c *gin.Context) {
	err := s.dealSvc.Delete(c.Request.Context(), dealdomain.GetDealRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) ListDealStages(c *gin.Context) {
	resp, err := s.dealSvc.ListStages(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isDealValidationError(err error) bool {
	switch err {
	case dealdomain.ErrInvalidOrganization,
		dealdomain.ErrInvalidName,
		dealdomain.ErrInvalidAccount,
		dealdomain.ErrInvalidContact,
		dealdomain.ErrInvalidStage,
		dealdomain.ErrInvalidAmount,
		dealdomain.ErrInvalidCurrency,
		dealdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
