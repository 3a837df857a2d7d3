package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	procurement "thriftpos-system/internal/services/procurement/handler"
)

type ProcurementHTTPHandler struct {
	svc *procurement.ProcurementHandler
}

func NewProcurementHTTPHandler(svc *procurement.ProcurementHandler) *ProcurementHTTPHandler {
	return &ProcurementHTTPHandler{svc: svc}
}

func (h *ProcurementHTTPHandler) CreatePurchaseOrder(c *gin.Context) {
	var req procurement.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.svc.CreatePurchaseOrder(c.Request.Context(), req, actingUser(c))
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, order)
}

func (h *ProcurementHTTPHandler) ListPurchaseOrders(c *gin.Context) {
	limit, offset := parsePagination(c)
	orders, total, err := h.svc.ListPurchaseOrders(c.Request.Context(), procurement.ListPurchaseOrdersRequest{
		Status:   parseStringQuery(c, "status"),
		VendorID: parseInt32Query(c, "vendor_id"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		failFrom(c, err)
		return
	}
	successList(c, orders, total)
}

func (h *ProcurementHTTPHandler) GetPurchaseOrder(c *gin.Context) {
	orderID, err := parseInt64Param(c, "id")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid purchase order id")
		return
	}

	order, err := h.svc.GetPurchaseOrder(c.Request.Context(), orderID)
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, order)
}

func (h *ProcurementHTTPHandler) UpdateDraft(c *gin.Context) {
	orderID, err := parseInt64Param(c, "id")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid purchase order id")
		return
	}

	var req procurement.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.svc.UpdateDraft(c.Request.Context(), orderID, req, actingUser(c))
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, order)
}

func (h *ProcurementHTTPHandler) AddItem(c *gin.Context) {
	orderID, err := parseInt64Param(c, "id")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid purchase order id")
		return
	}

	var input procurement.OrderItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.svc.AddItem(c.Request.Context(), orderID, input, actingUser(c))
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, order)
}

func (h *ProcurementHTTPHandler) UpdateItem(c *gin.Context) {
	orderID, err := parseInt64Param(c, "id")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid purchase order id")
		return
	}
	itemID, err := parseInt64Param(c, "itemId")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid line item id")
		return
	}

	var req procurement.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.svc.UpdateItem(c.Request.Context(), orderID, itemID, req, actingUser(c))
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, order)
}

func (h *ProcurementHTTPHandler) RemoveItem(c *gin.Context) {
	orderID, err := parseInt64Param(c, "id")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid purchase order id")
		return
	}
	itemID, err := parseInt64Param(c, "itemId")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid line item id")
		return
	}

	order, err := h.svc.RemoveItem(c.Request.Context(), orderID, itemID, actingUser(c))
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, order)
}

func (h *ProcurementHTTPHandler) Submit(c *gin.Context) {
	orderID, err := parseInt64Param(c, "id")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid purchase order id")
		return
	}

	order, err := h.svc.Submit(c.Request.Context(), orderID, actingUser(c))
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, order)
}

func (h *ProcurementHTTPHandler) Approve(c *gin.Context) {
	orderID, err := parseInt64Param(c, "id")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid purchase order id")
		return
	}

	order, err := h.svc.Approve(c.Request.Context(), orderID, actingUser(c))
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, order)
}

func (h *ProcurementHTTPHandler) Cancel(c *gin.Context) {
	orderID, err := parseInt64Param(c, "id")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid purchase order id")
		return
	}

	var req procurement.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.svc.Cancel(c.Request.Context(), orderID, req, actingUser(c))
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, order)
}

func (h *ProcurementHTTPHandler) Close(c *gin.Context) {
	orderID, err := parseInt64Param(c, "id")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid purchase order id")
		return
	}

	order, err := h.svc.Close(c.Request.Context(), orderID, actingUser(c))
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, order)
}

func (h *ProcurementHTTPHandler) ReceiveItems(c *gin.Context) {
	orderID, err := parseInt64Param(c, "id")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid purchase order id")
		return
	}

	var req procurement.ReceiveItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.svc.ReceiveItems(c.Request.Context(), orderID, req, actingUser(c))
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, order)
}

func (h *ProcurementHTTPHandler) ReceiveDonation(c *gin.Context) {
	var req procurement.ReceiveDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	record, err := h.svc.ReceiveDonation(c.Request.Context(), req, actingUser(c))
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, record)
}

func (h *ProcurementHTTPHandler) ListReceivingRecords(c *gin.Context) {
	limit, offset := parsePagination(c)
	records, total, err := h.svc.ListReceivingRecords(c.Request.Context(), procurement.ListReceivingRecordsRequest{
		OrderID:       parseInt64Query(c, "order_id"),
		ReceivingType: parseStringQuery(c, "receiving_type"),
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		failFrom(c, err)
		return
	}
	successList(c, records, total)
}

func (h *ProcurementHTTPHandler) GetReceivingRecord(c *gin.Context) {
	recordID, err := parseInt64Param(c, "id")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid receiving record id")
		return
	}

	record, err := h.svc.GetReceivingRecord(c.Request.Context(), recordID)
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, record)
}

func (h *ProcurementHTTPHandler) ReorderSuggestions(c *gin.Context) {
	suggestions, err := h.svc.GenerateSuggestions(c.Request.Context())
	if err != nil {
		failFrom(c, err)
		return
	}
	success(c, suggestions)
}
