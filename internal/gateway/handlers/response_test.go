package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"thriftpos-system/internal/utils"
)

func TestFailFromStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", utils.NewDomainError(utils.ErrValidation, "vendor is required"), http.StatusBadRequest},
		{"not found", utils.NewDomainError(utils.ErrNotFound, "purchase order 9 not found"), http.StatusNotFound},
		{"invalid state", utils.NewDomainError(utils.ErrInvalidState, "not a draft"), http.StatusConflict},
		{"invalid transition", utils.NewDomainError(utils.ErrInvalidTransition, "draft to closed"), http.StatusConflict},
		{"over receipt", utils.NewDomainError(utils.ErrOverReceipt, "would exceed ordered"), http.StatusConflict},
		{"incomplete reconciliation", utils.NewDomainError(utils.ErrIncompleteReconciliation, "items pending"), http.StatusConflict},
		{"constraint", utils.NewDomainError(utils.ErrConstraint, "stock below zero"), http.StatusConflict},
		{"duplicate document number", gorm.ErrDuplicatedKey, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			failFrom(c, tc.err)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}
