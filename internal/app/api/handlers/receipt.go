package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lfsadigital/receipt-verifier/internal/app/service/verification"
	"github.com/lfsadigital/receipt-verifier/pkg/logctx"
	"github.com/lfsadigital/receipt-verifier/pkg/response"
)

type verifyReceiptRequest struct {
	ReceiptData string `json:"receiptData"`
}

type verifyReceiptResponse struct {
	Success     bool                    `json:"success"`
	HasLifetime bool                    `json:"hasLifetime"`
	Environment string                  `json:"environment"`
	Purchases   []verification.Purchase `json:"purchases"`
}

// @Summary      Verify Receipt
// @Description  Validates an App Store receipt and reports whether it contains an uncancelled lifetime purchase.
// @Tags         Receipt
// @Accept       json
// @Produce      json
// @Param        request body handlers.verifyReceiptRequest true "Base64 receipt blob"
// @Success      200  {object}  handlers.verifyReceiptResponse
// @Failure      400  {object}  response.VendorRejected
// @Failure      500  {object}  response.ServerError
// @Router       /verifyReceipt [post]
func ApiVerifyReceipt(log *zap.SugaredLogger, checker verification.ReceiptChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req verifyReceiptRequest
		// A body that does not decode is treated the same as a missing field.
		if err := c.ShouldBindJSON(&req); err != nil || req.ReceiptData == "" {
			c.JSON(http.StatusBadRequest, response.NewClientError("Missing receipt data"))
			return
		}

		res, err := checker.CheckReceipt(c.Request.Context(), req.ReceiptData)
		if err != nil {
			var rejection *verification.VendorRejectionError
			if errors.As(err, &rejection) {
				c.JSON(http.StatusBadRequest, response.NewVendorRejected(rejection.Status))
				return
			}
			logctx.FromGin(c, log).Errorw("verify_receipt_failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, response.NewServerError(err.Error()))
			return
		}

		c.JSON(http.StatusOK, verifyReceiptResponse{
			Success:     true,
			HasLifetime: res.HasLifetime,
			Environment: res.Environment,
			Purchases:   res.Purchases,
		})
	}
}

func RegisterReceiptRoutes(r gin.IRouter, log *zap.SugaredLogger, checker verification.ReceiptChecker) {
	r.POST("/verifyReceipt", ApiVerifyReceipt(log, checker))
}
