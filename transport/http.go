package transport

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	orderapp "github.com/emmaeryne/amjednamoussa/application/order"
	productapp "github.com/emmaeryne/amjednamoussa/application/product"
	promoapp "github.com/emmaeryne/amjednamoussa/application/promo"
	userapp "github.com/emmaeryne/amjednamoussa/application/user"
	"github.com/emmaeryne/amjednamoussa/constant"
	_ "github.com/emmaeryne/amjednamoussa/docs"
	"github.com/emmaeryne/amjednamoussa/model"
	utilcontext "github.com/emmaeryne/amjednamoussa/utils/context"
	"github.com/emmaeryne/amjednamoussa/utils/errors"
	"github.com/emmaeryne/amjednamoussa/utils/logger"
	validatorx "github.com/emmaeryne/amjednamoussa/utils/validator"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type RestHandler struct {
	UserApp    userapp.UserApp
	ProductApp productapp.ProductApp
	PromoApp   promoapp.PromoApp
	OrderApp   orderapp.OrderApp
}

func NewTransport(userApp userapp.UserApp, productApp productapp.ProductApp, promoApp promoapp.PromoApp, orderApp orderapp.OrderApp) http.Handler {
	router := mux.NewRouter()

	rh := &RestHandler{
		UserApp:    userApp,
		ProductApp: productApp,
		PromoApp:   promoApp,
		OrderApp:   orderApp,
	}

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Storefront routes
	router.HandleFunc("/products", rh.ListProducts).Methods(http.MethodGet)
	router.HandleFunc("/products/{id}", rh.GetProduct).Methods(http.MethodGet)
	router.HandleFunc("/categories", rh.ListCategories).Methods(http.MethodGet)
	router.HandleFunc("/promo-codes/validate", rh.ValidatePromoCode).Methods(http.MethodPost)
	router.HandleFunc("/orders", rh.CreateOrder).Methods(http.MethodPost)

	// Admin routes
	router.HandleFunc("/admin/login", rh.Login).Methods(http.MethodPost)
	router.HandleFunc("/admin/logout", rh.Logout).Methods(http.MethodPost)
	router.HandleFunc("/admin/orders", rh.ListOrders).Methods(http.MethodGet)
	router.HandleFunc("/admin/orders/{id}", rh.GetOrder).Methods(http.MethodGet)
	router.HandleFunc("/admin/orders/{id}/status", rh.UpdateOrderStatus).Methods(http.MethodPut)
	router.HandleFunc("/admin/stats", rh.SalesStats).Methods(http.MethodGet)
	router.HandleFunc("/admin/promo-codes", rh.ListPromoCodes).Methods(http.MethodGet)
	router.HandleFunc("/admin/promo-codes", rh.CreatePromoCode).Methods(http.MethodPost)
	router.HandleFunc("/admin/promo-codes/{id}", rh.UpdatePromoCode).Methods(http.MethodPut)
	router.HandleFunc("/admin/promo-codes/{id}", rh.DeletePromoCode).Methods(http.MethodDelete)
	router.HandleFunc("/admin/products", rh.CreateProduct).Methods(http.MethodPost)
	router.HandleFunc("/admin/products/{id}", rh.UpdateProduct).Methods(http.MethodPut)
	router.HandleFunc("/admin/products/{id}", rh.DeleteProduct).Methods(http.MethodDelete)

	router.Use(LoggingMiddleware())
	router.Use(AuthMiddleware(userApp))

	return router
}

// Login handler
// @Summary Admin login
// @Description Login with email and password and receive JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} errors.CustomError
// @Router /admin/login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Logout handler
// @Summary Admin logout
// @Description Revoke the current session
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} baseResponse
// @Router /admin/logout [post]
func (s *RestHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	if err := s.UserApp.Logout(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// ListProducts handler
// @Summary List products
// @Description List products, optionally filtered by category slug
// @Tags Catalog
// @Produce json
// @Param category query string false "Category slug"
// @Param page query int false "Page"
// @Param per_page query int false "Per page"
// @Success 200 {object} model.ProductListResponse
// @Router /products [get]
func (s *RestHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	categorySlug := r.URL.Query().Get("category")

	res, err := s.ProductApp.ListProducts(ctx, categorySlug, page, perPage)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetProduct handler
// @Summary Get product detail
// @Tags Catalog
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.Product
// @Router /products/{id} [get]
func (s *RestHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ProductApp.GetProduct(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListCategories handler
// @Summary List categories
// @Tags Catalog
// @Produce json
// @Success 200 {array} model.Category
// @Router /categories [get]
func (s *RestHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	res, err := s.ProductApp.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ValidatePromoCode handler
// @Summary Validate a promo code against an order amount
// @Description Checks activation, expiry, usage cap and minimum order amount, and computes the discount. Never consumes usage.
// @Tags Promo
// @Accept json
// @Produce json
// @Param request body model.ValidatePromoCodeRequest true "Validation Request"
// @Success 200 {object} model.PromoValidation
// @Failure 400 {object} errors.CustomError
// @Router /promo-codes/validate [post]
func (s *RestHandler) ValidatePromoCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ValidatePromoCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.PromoApp.Validate(ctx, req.Code, req.OrderAmount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateOrder handler
// @Summary Submit an order
// @Description Persists the order and its item snapshots, then triggers the notification side effect
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body model.CreateOrderRequest true "Order Request"
// @Success 200 {object} model.Order
// @Failure 400 {object} errors.CustomError
// @Router /orders [post]
func (s *RestHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.CreateOrder(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListOrders handler
// @Summary List orders with items
// @Description Pending orders first, then newest first
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.OrderWithItems
// @Router /admin/orders [get]
func (s *RestHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	res, err := s.OrderApp.ListOrders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetOrder handler
// @Summary Get one order with items
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} model.OrderWithItems
// @Router /admin/orders/{id} [get]
func (s *RestHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	res, err := s.OrderApp.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateOrderStatus handler
// @Summary Update order status
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body model.UpdateOrderStatusRequest true "Status Request"
// @Success 200 {object} baseResponse
// @Failure 400 {object} errors.CustomError
// @Router /admin/orders/{id}/status [put]
func (s *RestHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	orderID := mux.Vars(r)["id"]
	if err := s.OrderApp.UpdateOrderStatus(ctx, orderID, req.Status); err != nil {
		writeError(w, err)
		return
	}

	if adminID, ok := utilcontext.GetUserID(ctx); ok {
		logger.Info("order status updated",
			zap.Uint64("admin_id", adminID),
			zap.String("order_id", orderID),
			zap.String("status", string(req.Status)),
		)
	}

	writeSuccess(w, nil)
}

// SalesStats handler
// @Summary Sales statistics for the admin dashboard
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.SalesStats
// @Router /admin/stats [get]
func (s *RestHandler) SalesStats(w http.ResponseWriter, r *http.Request) {
	res, err := s.OrderApp.SalesStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListPromoCodes handler
// @Summary List promo codes
// @Tags Promo
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.PromoCode
// @Router /admin/promo-codes [get]
func (s *RestHandler) ListPromoCodes(w http.ResponseWriter, r *http.Request) {
	res, err := s.PromoApp.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreatePromoCode handler
// @Summary Create a promo code
// @Tags Promo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreatePromoCodeRequest true "Promo Code Request"
// @Success 200 {object} model.PromoCode
// @Failure 400 {object} errors.CustomError
// @Router /admin/promo-codes [post]
func (s *RestHandler) CreatePromoCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CreatePromoCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.PromoApp.Create(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdatePromoCode handler
// @Summary Toggle promo code activation
// @Tags Promo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Promo Code ID"
// @Param request body model.UpdatePromoCodeRequest true "Update Request"
// @Success 200 {object} baseResponse
// @Router /admin/promo-codes/{id} [put]
func (s *RestHandler) UpdatePromoCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.UpdatePromoCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.PromoApp.SetActive(ctx, id, req.IsActive); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// DeletePromoCode handler
// @Summary Delete a promo code
// @Tags Promo
// @Produce json
// @Security BearerAuth
// @Param id path int true "Promo Code ID"
// @Success 200 {object} baseResponse
// @Router /admin/promo-codes/{id} [delete]
func (s *RestHandler) DeletePromoCode(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.PromoApp.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// CreateProduct handler
// @Summary Create a product
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateProductRequest true "Product Request"
// @Success 200 {object} model.Product
// @Router /admin/products [post]
func (s *RestHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ProductApp.CreateProduct(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateProduct handler
// @Summary Update a product
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body model.UpdateProductRequest true "Product Request"
// @Success 200 {object} baseResponse
// @Router /admin/products/{id} [put]
func (s *RestHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.ProductApp.UpdateProduct(ctx, id, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// DeleteProduct handler
// @Summary Delete a product
// @Description Order item snapshots keep the product name and price, past orders are unaffected
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} baseResponse
// @Router /admin/products/{id} [delete]
func (s *RestHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.ProductApp.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}
