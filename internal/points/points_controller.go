package points

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yultimate/pavilion/pkg/responses"
)

type PointsController struct {
	calculator *Calculator
}

func NewPointsController(calculator *Calculator) *PointsController {
	return &PointsController{calculator: calculator}
}

// GetPointsTable godoc
// @Summary Get the tournament points table
// @Tags Stats
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} responses.SuccessResponse{data=[]PointsTableEntry}
// @Router /tournaments/{id}/points-table [get]
// @Security BearerAuth
func (pc *PointsController) GetPointsTable(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid tournament ID")
		return
	}

	entries, err := pc.calculator.Table(uint(id))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch points table: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", entries)
}
