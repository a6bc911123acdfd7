package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/Naveen-512/StoreLoop/config"
	"github.com/Naveen-512/StoreLoop/models"
	"github.com/Naveen-512/StoreLoop/pricing"
	"github.com/Naveen-512/StoreLoop/settlement"
	"github.com/Naveen-512/StoreLoop/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
)

// InitiatePaymentRequest represents the request body for starting a payment
type InitiatePaymentRequest struct {
	AddressID uint `json:"address_id" binding:"required"`
}

// VerifyPaymentRequest represents the gateway callback payload
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	AddressID         uint   `json:"address_id" binding:"required"`
}

// InitiateRazorpayPayment creates a gateway order for the current cart total.
// The amount is recomputed server-side; the client never supplies it.
func InitiateRazorpayPayment(c *gin.Context) {
	utils.LogInfo("InitiateRazorpayPayment called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", req.AddressID, user.ID).First(&address).Error; err != nil {
		utils.NotFound(c, "Address not found")
		return
	}

	details, err := utils.GetCartDetails(config.DB, user.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to get cart details", err.Error())
		return
	}
	if len(details.Items) == 0 {
		utils.BadRequest(c, "Cart is empty", nil)
		return
	}
	for _, item := range details.Items {
		if item.Stock < item.Quantity {
			utils.Conflict(c, fmt.Sprintf("Not enough stock for %s", item.Name), gin.H{
				"product_id": item.ProductID,
				"available":  item.Stock,
			})
			return
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.InternalServerError(c, "Failed to load payment configuration", err.Error())
		return
	}

	amountPaise := pricing.Paise(details.FinalTotal)
	client := razorpay.NewClient(cfg.RazorpayKey, cfg.RazorpaySecret)
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  uuid.New().String(),
	}
	body, err := client.Order.Create(data, nil)
	if err != nil {
		utils.LogError("Failed to create gateway order for user ID: %d: %v", user.ID, err)
		utils.ServiceUnavailable(c, "Payment gateway is unavailable")
		return
	}
	remoteOrderID, _ := body["id"].(string)
	utils.LogInfo("Created gateway order %s for user ID: %d, amount: %d paise", remoteOrderID, user.ID, amountPaise)

	utils.Success(c, "Payment initiated", gin.H{
		"razorpay_order_id": remoteOrderID,
		"amount":            amountPaise,
		"currency":          "INR",
		"key":               cfg.RazorpayKey,
	})
}

// VerifyRazorpayPayment checks the gateway signature and settles the order.
// Settlement is idempotent on the payment id, so duplicate callbacks for the
// same payment return the already-created order.
func VerifyRazorpayPayment(c *gin.Context) {
	utils.LogInfo("VerifyRazorpayPayment called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", req.AddressID, user.ID).First(&address).Error; err != nil {
		utils.NotFound(c, "Address not found")
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.InternalServerError(c, "Failed to load payment configuration", err.Error())
		return
	}
	if !validSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, cfg.RazorpaySecret) {
		utils.LogError("Invalid payment signature for user ID: %d, payment ID: %s", user.ID, req.RazorpayPaymentID)
		utils.BadRequest(c, "Invalid payment signature", nil)
		return
	}

	amountPaise, err := fetchPaidAmount(cfg, req.RazorpayPaymentID)
	if err != nil {
		utils.LogError("Failed to fetch payment %s from gateway: %v", req.RazorpayPaymentID, err)
		utils.ServiceUnavailable(c, "Payment gateway is unavailable")
		return
	}

	engine := settlement.NewEngine(settlement.NewGormStore(config.DB))
	result, err := engine.Settle(c.Request.Context(), user.ID, req.AddressID, settlement.PaymentProof{
		PaymentID:     req.RazorpayPaymentID,
		RemoteOrderID: req.RazorpayOrderID,
		Method:        "razorpay",
		AmountPaise:   amountPaise,
	})
	if err != nil {
		switch err {
		case settlement.ErrInsufficientStock:
			utils.Conflict(c, "An item in your cart went out of stock", nil)
		case settlement.ErrCodeRedeemed:
			utils.Conflict(c, "Your discount code was already redeemed", nil)
		case settlement.ErrCodeExpired:
			utils.BadRequest(c, "Your discount code is no longer valid", nil)
		case settlement.ErrEmptyCart:
			utils.BadRequest(c, "Cart is empty", nil)
		case settlement.ErrAmountMismatch:
			utils.BadRequest(c, "Paid amount does not match the order total", nil)
		default:
			utils.LogError("Settlement failed for user ID: %d, payment ID: %s: %v", user.ID, req.RazorpayPaymentID, err)
			utils.InternalServerError(c, "Failed to place order", err.Error())
		}
		return
	}

	response := gin.H{
		"order_number": result.Order.Number,
		"total":        fmt.Sprintf("%.2f", result.Order.Total),
		"status":       result.Order.Status,
	}
	if result.Replayed {
		utils.LogInfo("Duplicate payment callback for payment ID: %s resolved to order #%d", req.RazorpayPaymentID, result.Order.Number)
		utils.Success(c, "Order already placed", response)
		return
	}

	var rewardCode string
	if result.RewardCode != nil {
		rewardCode = result.RewardCode.Code
		response["reward_code"] = gin.H{
			"code":    result.RewardCode.Code,
			"percent": result.RewardCode.Percent,
		}
	}
	utils.LogInfo("Settled order #%d for user ID: %d, payment ID: %s", result.Order.Number, user.ID, req.RazorpayPaymentID)

	// Confirmation email is best-effort; the order is already committed.
	go func(email string, number int64, total float64, reward string) {
		if err := utils.SendOrderConfirmation(email, number, total, reward); err != nil {
			utils.LogError("Failed to send order confirmation for order #%d: %v", number, err)
		}
	}(user.Email, result.Order.Number, result.Order.Total, rewardCode)

	utils.Success(c, "Order placed successfully", response)
}

// validSignature verifies the Razorpay checkout signature, an HMAC-SHA256 of
// "<order_id>|<payment_id>" keyed with the API secret.
func validSignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// fetchPaidAmount asks the gateway what was actually charged for the payment
// so the settlement can compare it against the server-side total.
func fetchPaidAmount(cfg *config.Config, paymentID string) (int64, error) {
	client := razorpay.NewClient(cfg.RazorpayKey, cfg.RazorpaySecret)
	payment, err := client.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		return 0, err
	}
	switch amount := payment["amount"].(type) {
	case float64:
		return int64(amount), nil
	case int64:
		return amount, nil
	default:
		return 0, fmt.Errorf("unexpected amount type in gateway response")
	}
}
