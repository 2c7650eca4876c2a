package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grantgco/reading-library/internal/dates"
	"github.com/grantgco/reading-library/internal/library"
)

// DatesController backs live validation of date inputs.
type DatesController struct {
	service *library.Service
}

func NewDatesController(service *library.Service) *DatesController {
	return &DatesController{service: service}
}

type DateParseResponse struct {
	Input   string `json:"input"`
	Valid   bool   `json:"valid"`
	Date    string `json:"date,omitempty"`
	Display string `json:"display,omitempty"`
}

// Parse handles GET /api/dates/parse?text=. Unparseable text is a normal
// response with valid=false.
func (dc *DatesController) Parse(c *gin.Context) {
	text := c.Query("text")
	response := DateParseResponse{Input: text}

	if parsed, ok := dc.service.ParseDate(text); ok {
		response.Valid = true
		response.Date = dates.FormatISO(parsed)
		response.Display = dc.service.FormatDate(parsed)
	}

	c.JSON(http.StatusOK, response)
}
