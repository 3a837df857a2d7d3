package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"thriftpos-system/internal/utils"
)

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func successList(c *gin.Context, data interface{}, total int64) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"total":   total,
	})
}

func fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"error":   message,
	})
}

// failFrom maps domain error kinds to HTTP statuses. Unique-key
// clashes (document number collisions under concurrency) are conflicts
// the caller resubmits; other non-domain errors are internal.
func failFrom(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		fail(c, http.StatusConflict, err.Error())
		return
	}
	switch utils.CodeOf(err) {
	case utils.ErrValidation:
		fail(c, http.StatusBadRequest, err.Error())
	case utils.ErrNotFound:
		fail(c, http.StatusNotFound, err.Error())
	case utils.ErrInvalidState, utils.ErrInvalidTransition, utils.ErrOverReceipt,
		utils.ErrIncompleteReconciliation, utils.ErrConstraint:
		fail(c, http.StatusConflict, err.Error())
	default:
		fail(c, http.StatusInternalServerError, err.Error())
	}
}

func actingUser(c *gin.Context) int64 {
	return c.GetInt64("user_id")
}

func parseInt64Param(c *gin.Context, param string) (int64, error) {
	return strconv.ParseInt(c.Param(param), 10, 64)
}

func parseInt32Param(c *gin.Context, param string) (int32, error) {
	val, err := strconv.ParseInt(c.Param(param), 10, 32)
	return int32(val), err
}

func parseInt32Query(c *gin.Context, param string) *int32 {
	str := c.Query(param)
	if str == "" {
		return nil
	}
	val, err := strconv.ParseInt(str, 10, 32)
	if err != nil {
		return nil
	}
	result := int32(val)
	return &result
}

func parseInt64Query(c *gin.Context, param string) *int64 {
	str := c.Query(param)
	if str == "" {
		return nil
	}
	val, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return nil
	}
	return &val
}

func parseStringQuery(c *gin.Context, param string) *string {
	str := c.Query(param)
	if str == "" {
		return nil
	}
	return &str
}

func parseBoolQuery(c *gin.Context, param string) bool {
	val, err := strconv.ParseBool(c.Query(param))
	if err != nil {
		return false
	}
	return val
}

func parsePagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}
