package route

import (
	"github.com/gofiber/fiber/v2"

	"zamanat_backend/internals/features/payments/enrollment/controller"
)

// PaymentRoutes mounts /api/payment. auth guards everything except the gateway redirect;
// idem (optional) guards order creation.
func PaymentRoutes(api fiber.Router, ctl *controller.PaymentController, auth fiber.Handler, idem fiber.Handler) {
	payment := api.Group("/payment")

	payment.All("/redirect", ctl.Redirect)

	pay := []fiber.Handler{auth}
	if idem != nil {
		pay = append(pay, idem)
	}
	payment.Post("/pay", append(pay, ctl.Pay)...)
	payment.Post("/status", auth, ctl.Status)
	payment.Get("/user-status", auth, ctl.UserStatus)
}
