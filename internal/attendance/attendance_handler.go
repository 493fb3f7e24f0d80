package attendance

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyCacheTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// releaseIdempotency frees the in-flight lock taken by the idempotency
// middleware once the request is done.
func (h *Handler) releaseIdempotency(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	if lk := c.GetString("idempotency_lock_key"); lk != "" {
		h.rdb.Del(c.Request.Context(), lk)
	}
}

// cacheIdempotent stores the successful response under the middleware's cache
// key so a client retry with the same Idempotency-Key gets a replay.
func (h *Handler) cacheIdempotent(c *gin.Context, resp any) {
	if h.rdb == nil {
		return
	}
	if ck := c.GetString("idempotency_cache_key"); ck != "" {
		if payload, err := json.Marshal(resp); err == nil {
			h.rdb.Set(c.Request.Context(), ck, payload, idempotencyCacheTTL)
		}
	}
}

func (h *Handler) CheckIn(c *gin.Context) {
	defer h.releaseIdempotency(c)
	userID := c.GetString("user_id")

	resp, err := h.service.CheckIn(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.cacheIdempotent(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	defer h.releaseIdempotency(c)
	userID := c.GetString("user_id")

	resp, err := h.service.CheckOut(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.cacheIdempotent(c, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) TodayStatus(c *gin.Context) {
	userID := c.GetString("user_id")

	resp, err := h.service.TodayStatus(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if resp == nil {
		response.Success(c, http.StatusOK, gin.H{"message": "Not checked in today"}, nil)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MyHistory(c *gin.Context) {
	userID := c.GetString("user_id")

	resp, err := h.service.MyHistory(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MySummary(c *gin.Context) {
	userID := c.GetString("user_id")

	resp, err := h.service.MySummary(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	filter := RecordFilter{
		EmployeeID: c.Query("employeeId"),
		Date:       c.Query("date"),
		Status:     c.Query("status"),
	}

	resp, err := h.service.AllRecords(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) EmployeeHistory(c *gin.Context) {
	resp, err := h.service.EmployeeHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) FleetSummary(c *gin.Context) {
	resp, err := h.service.FleetSummary(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) TodayFleet(c *gin.Context) {
	resp, err := h.service.TodayFleet(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Export streams all joined records as CSV.
func (h *Handler) Export(c *gin.Context) {
	rows, err := h.service.ExportRows(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="attendance.csv"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Name", "Date", "Status", "Total Hours"})
	for _, row := range rows {
		hours := ""
		if row.Hours != nil {
			hours = strconv.FormatFloat(*row.Hours, 'f', 2, 64)
		}
		if err := w.Write([]string{row.Name, row.Date, row.Status, hours}); err != nil {
			return
		}
	}
	w.Flush()

	if err := w.Error(); err != nil {
		zap.L().Error("csv flush failed", zap.Error(err))
	}
}
