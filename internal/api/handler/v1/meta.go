package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoenfeld/sfpr-api/internal/config"
	"github.com/schoenfeld/sfpr-api/internal/domain"
)

type MetaHandler struct {
	conf *config.APIConfig
}

func NewMetaHandler(conf *config.APIConfig) *MetaHandler {
	return &MetaHandler{
		conf: conf,
	}
}

// HandleGetMeta godoc
// @Summary      Event constants for the frontend
// @Security     BearerAuth
// @Tags         meta
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /meta [get]
func (h *MetaHandler) HandleGetMeta(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"soliDiscount":        h.conf.SoliDiscount,
		"shiftPointsTarget":   domain.DefaultShiftPointsTarget,
		"paymentInstructions": h.conf.PaymentInstructions,
	})
}
