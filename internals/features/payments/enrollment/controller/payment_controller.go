package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"zamanat_backend/internals/features/payments/enrollment/dto"
	"zamanat_backend/internals/features/payments/enrollment/repository"
	"zamanat_backend/internals/features/payments/enrollment/service"
	helper "zamanat_backend/internals/helpers"
)

var validate = validator.New()

type PaymentController struct {
	Store      repository.OrderStore
	Initiator  *service.OrderInitiator
	Reconciler *service.StatusReconciler
	ClientURL  string
}

func NewPaymentController(p *service.Pipeline, clientURL string) *PaymentController {
	return &PaymentController{
		Store:      p.Store,
		Initiator:  p.Initiator,
		Reconciler: p.Reconciler,
		ClientURL:  clientURL,
	}
}

/* =========================================================
   POST /api/payment/pay
========================================================= */

func (ctl *PaymentController) Pay(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.PayRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.ValidationMessage(err))
	}

	res, err := ctl.Initiator.Initiate(c.UserContext(), userID, req.CourseID, req.Amount)
	if err != nil {
		var pie *service.PaymentInitiationError
		switch {
		case errors.As(err, &pie):
			return helper.JsonError(c, fiber.StatusBadGateway, "Could not start payment, please try again")
		case errors.Is(err, service.ErrInvalidAmount):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		default:
			log.Printf("[PAYMENT] ❌ initiate user=%s: %v", userID, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
		}
	}

	return c.JSON(dto.PayResponse{
		Success:               true,
		URL:                   res.URL,
		MerchantTransactionID: res.MerchantTransactionID,
	})
}

/* =========================================================
   ALL /api/payment/redirect
========================================================= */

// Redirect is where the gateway sends the browser back. It never fails and never touches state.
func (ctl *PaymentController) Redirect(c *fiber.Ctx) error {
	var body, query service.RedirectParams
	if len(c.Body()) > 0 {
		_ = c.BodyParser(&body)
	}
	_ = c.QueryParser(&query)

	target := service.ResolveRedirect(body, query)
	log.Printf("[PAYMENT] redirect code=%s order=%s", target.Code, target.OrderID)
	return c.Redirect(target.FrontendURL(ctl.ClientURL), fiber.StatusFound)
}

/* =========================================================
   POST /api/payment/status
========================================================= */

func (ctl *PaymentController) Status(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.StatusRequest
	_ = c.BodyParser(&req)
	req.MerchantTransactionID = strings.TrimSpace(req.MerchantTransactionID)
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Merchant transaction ID is required")
	}

	// someone else's order looks the same as a missing one
	order, err := ctl.Store.FindByMerchantOrderID(c.UserContext(), req.MerchantTransactionID)
	if errors.Is(err, repository.ErrOrderNotFound) || (err == nil && order.PaymentOrderUserID != userID) {
		return helper.JsonError(c, fiber.StatusNotFound, "Payment record not found")
	}
	if err != nil {
		log.Printf("[PAYMENT] ❌ load order=%s: %v", req.MerchantTransactionID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
	}

	res, err := ctl.Reconciler.Reconcile(c.UserContext(), req.MerchantTransactionID)
	if err != nil {
		var nf *service.OrderNotFoundError
		var se *service.GatewayStatusError
		switch {
		case errors.As(err, &nf):
			return helper.JsonError(c, fiber.StatusNotFound, "Payment record not found")
		case errors.As(err, &se):
			log.Printf("[PAYMENT] ❌ status check order=%s: %v", req.MerchantTransactionID, err)
			return helper.JsonError(c, fiber.StatusBadGateway, "Could not verify payment status, please retry")
		default:
			log.Printf("[PAYMENT] ❌ reconcile order=%s: %v", req.MerchantTransactionID, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
		}
	}

	data := dto.ToPaymentOrderResponse(res.Order)
	if res.Paid() {
		return c.JSON(fiber.Map{"success": true, "message": "Payment Successful", "data": data})
	}
	return c.JSON(fiber.Map{"success": false, "message": "Payment Pending or Failed", "data": data})
}

/* =========================================================
   GET /api/payment/user-status
========================================================= */

func (ctl *PaymentController) UserStatus(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	order, err := ctl.Store.LatestPaidByUser(c.UserContext(), userID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return c.JSON(fiber.Map{"isPaid": false})
	}
	if err != nil {
		log.Printf("[PAYMENT] ❌ user-status user=%s: %v", userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Server Error")
	}
	return c.JSON(fiber.Map{"isPaid": true, "payment": dto.ToPaymentOrderResponse(*order)})
}
