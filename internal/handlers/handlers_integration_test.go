package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"dukaan/internal/handlers"
	"dukaan/internal/middleware"
	"dukaan/internal/models"
	"dukaan/internal/repositories"
	"dukaan/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp sets up a Fiber app for testing with in-memory SQLite and all
// handlers and services wired the same way as in production, minus the
// message broker.
func setupApp() (*fiber.App, *gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.TransportationProvider{},
		&models.Vehicle{},
		&models.Shipment{},
		&models.DeliveryRoute{},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	providerRepo := repositories.NewGORMProviderRepository(db)
	vehicleRepo := repositories.NewGORMVehicleRepository(db)
	shipmentRepo := repositories.NewGORMShipmentRepository(db)
	routeRepo := repositories.NewGORMRouteRepository(db)

	authService := services.NewAuthService(userRepo, "test_jwt_secret")
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo, categoryRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	transportService := services.NewTransportService(providerRepo, vehicleRepo, shipmentRepo, routeRepo, orderRepo, nil)
	orderService := services.NewOrderService(orderRepo, productRepo, cartRepo, userRepo, transportService, nil)
	statsService := services.NewStatsService(productRepo, orderRepo, userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService, transportService)
	orderHandler := handlers.NewOrderHandler(orderService)
	transportHandler := handlers.NewTransportHandler(transportService)
	statsHandler := handlers.NewStatsHandler(statsService)

	app := fiber.New()

	requireAuth := middleware.AuthRequired(authService)
	requireAdmin := middleware.AdminRequired()

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1, requireAuth)
	categoryHandler.RegisterRoutes(apiV1, requireAuth, requireAdmin)
	productHandler.RegisterRoutes(apiV1, requireAuth, requireAdmin)
	cartHandler.RegisterRoutes(apiV1, requireAuth)
	orderHandler.RegisterRoutes(apiV1, requireAuth)
	transportHandler.RegisterRoutes(apiV1, requireAuth)

	admin := apiV1.Group("/admin", requireAuth, requireAdmin)
	orderHandler.RegisterAdminRoutes(admin)
	transportHandler.RegisterAdminRoutes(admin)
	statsHandler.RegisterAdminRoutes(admin)

	return app, db, nil
}

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// doJSON performs a request with an optional bearer token and JSON body and
// decodes the JSON response into out when out is non-nil.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}, out interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// registerUser registers a user and returns their token and ID.
func registerUser(t *testing.T, app *fiber.App, email, name string) (string, string) {
	t.Helper()

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	httpResp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    email,
		"password": "password123",
		"name":     name,
	}, &resp)
	assert.Equal(t, http.StatusCreated, httpResp.StatusCode)
	assert.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

// registerAdmin registers a user, promotes them to admin directly in the
// database and logs them back in so the token carries the admin role.
func registerAdmin(t *testing.T, app *fiber.App, db *gorm.DB, email string) string {
	t.Helper()

	registerUser(t, app, email, "Admin User")
	assert.NoError(t, db.Model(&models.User{}).Where("email = ?", email).Update("role", models.RoleAdmin).Error)

	var resp struct {
		Token string `json:"token"`
	}
	httpResp := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	}, &resp)
	assert.Equal(t, http.StatusOK, httpResp.StatusCode)
	return resp.Token
}

func TestAuthEndpoints(t *testing.T) {
	app, _, err := setupApp()
	assert.NoError(t, err)

	token, userID := registerUser(t, app, "test@example.com", "Test User")
	assert.NotEmpty(t, userID)

	// Duplicate registration is a conflict
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
		"name":     "Test User",
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Login with the right password
	var loginResp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	}, &loginResp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, loginResp.Token)
	assert.Equal(t, models.RoleCustomer, loginResp.User.Role)

	// Wrong password
	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "test@example.com",
		"password": "wrongpassword",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// /auth/me returns the user without the password hash
	var me models.User
	resp = doJSON(t, app, http.MethodGet, "/api/v1/auth/me", token, nil, &me)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, userID, me.ID)
	assert.Empty(t, me.Password)

	// /auth/me without a token
	resp = doJSON(t, app, http.MethodGet, "/api/v1/auth/me", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminRoutesRejectCustomers(t *testing.T) {
	app, _, err := setupApp()
	assert.NoError(t, err)

	customerToken, _ := registerUser(t, app, "customer@example.com", "Customer")

	// Mutating catalog routes are admin only
	resp := doJSON(t, app, http.MethodPost, "/api/v1/products", customerToken, map[string]interface{}{
		"name":        "Smartphone",
		"price":       799.99,
		"stock":       50,
		"category_id": "cat-1",
	}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Admin surfaces are admin only
	for _, path := range []string{
		"/api/v1/admin/stats",
		"/api/v1/admin/orders",
		"/api/v1/admin/transportation/providers",
	} {
		resp = doJSON(t, app, http.MethodGet, path, customerToken, nil, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
		resp.Body.Close()
	}

	// Unauthenticated requests are rejected before the role check
	resp = doJSON(t, app, http.MethodGet, "/api/v1/admin/stats", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestStorefrontCheckoutFlow(t *testing.T) {
	app, db, err := setupApp()
	assert.NoError(t, err)

	adminToken := registerAdmin(t, app, db, "admin@example.com")
	customerToken, _ := registerUser(t, app, "shopper@example.com", "Shopper")

	// Admin builds the catalog
	var category models.Category
	resp := doJSON(t, app, http.MethodPost, "/api/v1/categories", adminToken, map[string]string{
		"name":        "Electronics",
		"description": "Gadgets",
	}, &category)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var phone, charger models.Product
	resp = doJSON(t, app, http.MethodPost, "/api/v1/products", adminToken, map[string]interface{}{
		"name":        "Phone",
		"description": "A phone",
		"price":       500.00,
		"stock":       10,
		"category_id": category.ID,
	}, &phone)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Electronics", phone.CategoryName)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/products", adminToken, map[string]interface{}{
		"name":        "Charger",
		"description": "A charger",
		"price":       300.00,
		"stock":       5,
		"category_id": category.ID,
	}, &charger)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Admin sets up a transportation provider with a vehicle
	var provider models.TransportationProvider
	resp = doJSON(t, app, http.MethodPost, "/api/v1/admin/transportation/providers", adminToken, map[string]interface{}{
		"name":           "Standard Shipping Co",
		"service_type":   "standard",
		"base_cost":      8.00,
		"cost_per_km":    1.20,
		"estimated_days": 3,
		"service_areas":  []string{"metro"},
	}, &provider)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var vehicle models.Vehicle
	resp = doJSON(t, app, http.MethodPost, "/api/v1/admin/transportation/vehicles", adminToken, map[string]interface{}{
		"provider_id":    provider.ID,
		"vehicle_number": "VAN-001",
		"driver_name":    "Siti Lestari",
		"vehicle_type":   "van",
		"capacity":       15,
	}, &vehicle)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Customer fills the cart: 2 phones and 1 charger
	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart", customerToken, map[string]interface{}{
		"product_id": phone.ID,
		"quantity":   2,
	}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart", customerToken, map[string]interface{}{
		"product_id": charger.ID,
		"quantity":   1,
	}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var totalResp struct {
		Total float64 `json:"total"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/v1/cart/total", customerToken, nil, &totalResp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1300.00, totalResp.Total)

	// Cost estimate for the cart
	var estimate models.CostEstimate
	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart/transportation-cost", customerToken, map[string]string{
		"shipping_address": "42 Elm Street, Springfield",
	}, &estimate)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, provider.ID, estimate.ProviderID)
	assert.Greater(t, estimate.Cost, 0.0)

	// Checkout
	var order models.Order
	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders", customerToken, map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": phone.ID, "quantity": 2},
			{"product_id": charger.ID, "quantity": 1},
		},
		"shipping_address": "42 Elm Street, Springfield",
	}, &order)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.InDelta(t, 1300.00+order.TransportationCost, order.TotalAmount, 0.001)

	// Stock was decremented
	var stocked models.Product
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/"+phone.ID, "", nil, &stocked)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 8, stocked.Stock)

	// The cart is now empty
	var lines []models.CartLine
	resp = doJSON(t, app, http.MethodGet, "/api/v1/cart", customerToken, nil, &lines)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, lines)

	// The customer sees their shipment
	var shipmentInfo services.TrackingInfo
	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+order.ID+"/shipment", customerToken, nil, &shipmentInfo)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, order.ID, shipmentInfo.Shipment.OrderID)
	assert.Regexp(t, `^TRK[A-Z0-9]{8}$`, shipmentInfo.Shipment.TrackingNumber)

	// Another customer cannot see it
	otherToken, _ := registerUser(t, app, "other@example.com", "Other")
	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+order.ID+"/shipment", otherToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Public tracking works without any token
	var tracked services.TrackingInfo
	resp = doJSON(t, app, http.MethodGet, "/api/v1/track/"+shipmentInfo.Shipment.TrackingNumber, "", nil, &tracked)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, shipmentInfo.Shipment.ID, tracked.Shipment.ID)
	assert.Equal(t, provider.ID, tracked.Provider.ID)

	// Admin advances the shipment to delivered
	var delivered models.Shipment
	resp = doJSON(t, app, http.MethodPut,
		"/api/v1/admin/transportation/shipments/"+shipmentInfo.Shipment.ID+"/status", adminToken,
		map[string]string{"status": models.ShipmentStatusDelivered, "delivery_notes": "left at door"}, &delivered)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.ShipmentStatusDelivered, delivered.Status)
	assert.NotNil(t, delivered.ActualDelivery)

	// A backward move is rejected
	resp = doJSON(t, app, http.MethodPut,
		"/api/v1/admin/transportation/shipments/"+shipmentInfo.Shipment.ID+"/status", adminToken,
		map[string]string{"status": models.ShipmentStatusInTransit}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Delivery marked the order delivered
	var deliveredOrder models.Order
	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+order.ID, customerToken, nil, &deliveredOrder)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.OrderStatusDelivered, deliveredOrder.Status)

	// Admin stats reflect the sale
	var stats struct {
		TotalProducts int64   `json:"total_products"`
		TotalOrders   int64   `json:"total_orders"`
		TotalUsers    int64   `json:"total_users"`
		TotalRevenue  float64 `json:"total_revenue"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/v1/admin/stats", adminToken, nil, &stats)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.TotalOrders)
	assert.InDelta(t, order.TotalAmount, stats.TotalRevenue, 0.001)
}

func TestProductSearchAndCategoryFilter(t *testing.T) {
	app, db, err := setupApp()
	assert.NoError(t, err)

	adminToken := registerAdmin(t, app, db, "admin@example.com")

	var books, kitchen models.Category
	resp := doJSON(t, app, http.MethodPost, "/api/v1/categories", adminToken, map[string]string{"name": "Books"}, &books)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, "/api/v1/categories", adminToken, map[string]string{"name": "Kitchen"}, &kitchen)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	for _, p := range []map[string]interface{}{
		{"name": "Go Programming", "price": 40.00, "stock": 10, "category_id": books.ID},
		{"name": "Cookbook", "price": 30.00, "stock": 10, "category_id": books.ID},
		{"name": "Coffee Maker", "price": 60.00, "stock": 5, "category_id": kitchen.ID},
	} {
		resp = doJSON(t, app, http.MethodPost, "/api/v1/products", adminToken, p, nil)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	// Case-insensitive search
	var found []models.Product
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products?search=cook", "", nil, &found)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, found, 1)
	assert.Equal(t, "Cookbook", found[0].Name)

	// Category filter
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products?category="+books.ID, "", nil, &found)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, found, 2)
}

func TestOrderCancellationRestoresStock(t *testing.T) {
	app, db, err := setupApp()
	assert.NoError(t, err)

	adminToken := registerAdmin(t, app, db, "admin@example.com")
	customerToken, _ := registerUser(t, app, "shopper@example.com", "Shopper")

	var category models.Category
	resp := doJSON(t, app, http.MethodPost, "/api/v1/categories", adminToken, map[string]string{"name": "Electronics"}, &category)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var product models.Product
	resp = doJSON(t, app, http.MethodPost, "/api/v1/products", adminToken, map[string]interface{}{
		"name":        "Laptop",
		"price":       1200.00,
		"stock":       4,
		"category_id": category.ID,
	}, &product)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var order models.Order
	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders", customerToken, map[string]interface{}{
		"items":            []map[string]interface{}{{"product_id": product.ID, "quantity": 3}},
		"shipping_address": "42 Elm Street, Springfield",
	}, &order)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Requesting more than the remaining stock fails
	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders", customerToken, map[string]interface{}{
		"items":            []map[string]interface{}{{"product_id": product.ID, "quantity": 2}},
		"shipping_address": "42 Elm Street, Springfield",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Admin cancels the order; stock comes back
	var cancelled models.Order
	resp = doJSON(t, app, http.MethodPut, "/api/v1/admin/orders/"+order.ID, adminToken,
		map[string]string{"status": models.OrderStatusCancelled}, &cancelled)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	var restocked models.Product
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/"+product.ID, "", nil, &restocked)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 4, restocked.Stock)

	// Cancelled orders do not count towards revenue
	var stats struct {
		TotalRevenue float64 `json:"total_revenue"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/v1/admin/stats", adminToken, nil, &stats)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0.0, stats.TotalRevenue)
}

func TestDeliveryRouteFlow(t *testing.T) {
	app, db, err := setupApp()
	assert.NoError(t, err)

	adminToken := registerAdmin(t, app, db, "admin@example.com")
	customerToken, _ := registerUser(t, app, "shopper@example.com", "Shopper")

	var category models.Category
	resp := doJSON(t, app, http.MethodPost, "/api/v1/categories", adminToken, map[string]string{"name": "Electronics"}, &category)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var product models.Product
	resp = doJSON(t, app, http.MethodPost, "/api/v1/products", adminToken, map[string]interface{}{
		"name":        "Monitor",
		"price":       200.00,
		"stock":       10,
		"category_id": category.ID,
	}, &product)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var provider models.TransportationProvider
	resp = doJSON(t, app, http.MethodPost, "/api/v1/admin/transportation/providers", adminToken, map[string]interface{}{
		"name":           "Budget Freight",
		"service_type":   "economy",
		"base_cost":      5.00,
		"cost_per_km":    0.80,
		"estimated_days": 5,
	}, &provider)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var vehicle models.Vehicle
	resp = doJSON(t, app, http.MethodPost, "/api/v1/admin/transportation/vehicles", adminToken, map[string]interface{}{
		"provider_id":    provider.ID,
		"vehicle_number": "TRK-001",
		"driver_name":    "Rudi Hartono",
		"vehicle_type":   "truck",
		"capacity":       40,
	}, &vehicle)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var order models.Order
	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders", customerToken, map[string]interface{}{
		"items":            []map[string]interface{}{{"product_id": product.ID, "quantity": 1}},
		"shipping_address": "7 Station Road, Shelbyville",
	}, &order)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var shipments []models.Shipment
	resp = doJSON(t, app, http.MethodGet, "/api/v1/admin/transportation/shipments", adminToken, nil, &shipments)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, shipments, 1)
	assert.Equal(t, models.ShipmentStatusPending, shipments[0].Status)

	// Batch the shipment onto a route
	var route models.DeliveryRoute
	resp = doJSON(t, app, http.MethodPost, "/api/v1/admin/transportation/routes", adminToken, map[string]interface{}{
		"vehicle_id":         vehicle.ID,
		"date":               "2026-09-01",
		"shipment_ids":       []string{shipments[0].ID},
		"total_distance":     32.5,
		"estimated_duration": 180,
	}, &route)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, models.RouteStatusPlanned, route.RouteStatus)
	assert.Len(t, route.Shipments, 1)
	assert.Equal(t, models.ShipmentStatusAssigned, route.Shipments[0].Status)

	// Starting the route moves its shipments into transit
	resp = doJSON(t, app, http.MethodPut, "/api/v1/admin/transportation/routes/"+route.ID+"/status", adminToken,
		map[string]string{"status": models.RouteStatusInProgress}, &route)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.RouteStatusInProgress, route.RouteStatus)
	assert.Equal(t, models.ShipmentStatusInTransit, route.Shipments[0].Status)

	// A shipment already in transit cannot be routed again
	resp = doJSON(t, app, http.MethodPost, "/api/v1/admin/transportation/routes", adminToken, map[string]interface{}{
		"vehicle_id":   vehicle.ID,
		"date":         "2026-09-02",
		"shipment_ids": []string{shipments[0].ID},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
