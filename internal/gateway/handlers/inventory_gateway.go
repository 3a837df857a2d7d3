package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"thriftpos-system/internal/database/models"
	inventory "thriftpos-system/internal/services/inventory/handler"
)

type InventoryHTTPHandler struct {
	svc *inventory.InventoryHandler
}

func NewInventoryHTTPHandler(svc *inventory.InventoryHandler) *InventoryHTTPHandler {
	return &InventoryHTTPHandler{svc: svc}
}

func (h *InventoryHTTPHandler) CreateVendor(c *gin.Context) {
	var req inventory.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	vendor, err := h.svc.CreateVendor(c.Request.Context(), req)
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, vendor)
}

func (h *InventoryHTTPHandler) UpdateVendor(c *gin.Context) {
	vendorID, err := parseInt32Param(c, "id")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid vendor id")
		return
	}

	var req inventory.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	vendor, err := h.svc.UpdateVendor(c.Request.Context(), vendorID, req)
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, vendor)
}

func (h *InventoryHTTPHandler) GetVendor(c *gin.Context) {
	vendorID, err := parseInt32Param(c, "id")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid vendor id")
		return
	}

	vendor, err := h.svc.GetVendor(c.Request.Context(), vendorID)
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, vendor)
}

func (h *InventoryHTTPHandler) ListVendors(c *gin.Context) {
	vendors, err := h.svc.ListVendors(c.Request.Context(), parseBoolQuery(c, "active_only"))
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, vendors)
}

func (h *InventoryHTTPHandler) CreateProduct(c *gin.Context) {
	var req inventory.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.svc.CreateProduct(c.Request.Context(), req)
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, product)
}

func (h *InventoryHTTPHandler) UpdateProduct(c *gin.Context) {
	productID, err := parseInt32Param(c, "id")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	var req inventory.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.svc.UpdateProduct(c.Request.Context(), productID, req)
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, product)
}

func (h *InventoryHTTPHandler) GetProduct(c *gin.Context) {
	productID, err := parseInt32Param(c, "id")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := h.svc.GetProduct(c.Request.Context(), productID)
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, product)
}

func (h *InventoryHTTPHandler) ListProducts(c *gin.Context) {
	limit, offset := parsePagination(c)
	products, total, err := h.svc.ListProducts(c.Request.Context(), inventory.ListProductsRequest{
		ActiveOnly: parseBoolQuery(c, "active_only"),
		VendorID:   parseInt32Query(c, "vendor_id"),
		Search:     parseStringQuery(c, "search"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		failFrom(c, err)
		return
	}
	successList(c, products, total)
}

type manualAdjustmentRequest struct {
	ProductID      int32   `json:"product_id" binding:"required"`
	QuantityChange int32   `json:"quantity_change" binding:"required"`
	AdjustmentType string  `json:"adjustment_type" binding:"required"`
	ReasonCode     string  `json:"reason_code" binding:"required"`
	Notes          *string `json:"notes"`
}

// CreateAdjustment is the manual stock correction endpoint. Receiving
// and reconciliation write their adjustments through their own flows;
// this one covers damage, theft and data entry fixes.
func (h *InventoryHTTPHandler) CreateAdjustment(c *gin.Context) {
	var req manualAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	adjustment, err := h.svc.CreateManualAdjustment(c.Request.Context(), inventory.ManualAdjustmentRequest{
		ProductID:      req.ProductID,
		QuantityChange: req.QuantityChange,
		AdjustmentType: models.AdjustmentType(req.AdjustmentType),
		ReasonCode:     models.ReasonCode(req.ReasonCode),
		Notes:          req.Notes,
	}, actingUser(c))
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, adjustment)
}

func (h *InventoryHTTPHandler) ListAdjustments(c *gin.Context) {
	limit, offset := parsePagination(c)
	adjustments, total, err := h.svc.ListAdjustments(c.Request.Context(), inventory.ListAdjustmentsRequest{
		ProductID:      parseInt32Query(c, "product_id"),
		AdjustmentType: parseStringQuery(c, "adjustment_type"),
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		failFrom(c, err)
		return
	}
	successList(c, adjustments, total)
}

func (h *InventoryHTTPHandler) CreateCountSession(c *gin.Context) {
	var req inventory.CreateCountSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	session, err := h.svc.CreateCountSession(c.Request.Context(), req, actingUser(c))
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, session)
}

func (h *InventoryHTTPHandler) ListCountSessions(c *gin.Context) {
	limit, offset := parsePagination(c)
	sessions, total, err := h.svc.ListCountSessions(c.Request.Context(), parseStringQuery(c, "status"), limit, offset)
	if err != nil {
		failFrom(c, err)
		return
	}
	successList(c, sessions, total)
}

func (h *InventoryHTTPHandler) GetCountSession(c *gin.Context) {
	sessionID, err := parseInt64Param(c, "id")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid count session id")
		return
	}

	session, err := h.svc.GetCountSession(c.Request.Context(), sessionID)
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, session)
}

func (h *InventoryHTTPHandler) RecordCount(c *gin.Context) {
	sessionID, err := parseInt64Param(c, "id")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid count session id")
		return
	}
	itemID, err := parseInt64Param(c, "itemId")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid count item id")
		return
	}

	var req inventory.RecordCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.svc.RecordCount(c.Request.Context(), sessionID, itemID, req, actingUser(c))
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, item)
}

func (h *InventoryHTTPHandler) CompleteCountSession(c *gin.Context) {
	sessionID, err := parseInt64Param(c, "id")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid count session id")
		return
	}

	reconciliation, err := h.svc.CompleteCountSession(c.Request.Context(), sessionID, actingUser(c))
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, reconciliation)
}

func (h *InventoryHTTPHandler) GetReconciliation(c *gin.Context) {
	reconciliationID, err := parseInt64Param(c, "id")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid reconciliation id")
		return
	}

	reconciliation, err := h.svc.GetReconciliation(c.Request.Context(), reconciliationID)
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, reconciliation)
}

func (h *InventoryHTTPHandler) ApproveVariances(c *gin.Context) {
	reconciliationID, err := parseInt64Param(c, "id")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid reconciliation id")
		return
	}

	var req inventory.ApproveVariancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	reconciliation, err := h.svc.ApproveVariances(c.Request.Context(), reconciliationID, req, actingUser(c))
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, reconciliation)
}

func (h *InventoryHTTPHandler) CompleteReconciliation(c *gin.Context) {
	reconciliationID, err := parseInt64Param(c, "id")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid reconciliation id")
		return
	}

	reconciliation, err := h.svc.CompleteReconciliation(c.Request.Context(), reconciliationID, actingUser(c))
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, reconciliation)
}
