package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/issue-tracker/dto"
	"github.com/issue-tracker/middleware"
	"github.com/issue-tracker/notifier"
	"github.com/issue-tracker/services"
	"github.com/rs/zerolog/log"
)

// ShopController handles the catalogue, the cart and orders
type ShopController struct {
	productService *services.ProductService
	cartService    *services.CartService
	orderService   *services.OrderService
}

// NewShopController creates a new shop controller. n may be nil.
func NewShopController(n notifier.Notifier) *ShopController {
	return &ShopController{
		productService: services.NewProductService(),
		cartService:    services.NewCartService(),
		orderService:   services.NewOrderService(n),
	}
}

// ListProducts returns the catalogue
func (sc *ShopController) ListProducts(c *gin.Context) {
	products, err := sc.productService.ListProducts()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, products)
}

// GetProduct returns one product
func (sc *ShopController) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := sc.productService.GetProduct(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, product)
}

// CreateProduct stocks a new product
func (sc *ShopController) CreateProduct(c *gin.Context) {
	var form dto.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := sc.productService.CreateProduct(form, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, product)
}

// AddToCart adds qty units of a product to the session's cart. An invalid
// quantity, or one above stock, leaves the cart unchanged.
func (sc *ShopController) AddToCart(c *gin.Context) {
	productID, ok := pathID(c, "product_id")
	if !ok {
		return
	}

	var form dto.CartAddForm
	if err := c.ShouldBind(&form); err != nil {
		sc.afterCartChange(c, middleware.SessionKey(c))
		return
	}

	sessionKey := middleware.EnsureSessionKey(c)
	added, err := sc.cartService.Add(sessionKey, productID, form.Quantity())
	if err != nil {
		respondError(c, err)
		return
	}
	if !added {
		log.Debug().Uint("product_id", productID).Int("qty", form.Quantity()).Msg("cart add skipped: not enough stock")
	}
	sc.afterCartChange(c, sessionKey)
}

// ViewCart returns the session's lines and total
func (sc *ShopController) ViewCart(c *gin.Context) {
	cart, err := sc.cartService.View(middleware.SessionKey(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, cart)
}

// RemoveOneFromCart takes one unit off a line
func (sc *ShopController) RemoveOneFromCart(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	sessionKey := middleware.SessionKey(c)
	if err := sc.cartService.RemoveOne(sessionKey, id); err != nil {
		respondError(c, err)
		return
	}
	sc.afterCartChange(c, sessionKey)
}

// RemoveFromCart deletes a line
func (sc *ShopController) RemoveFromCart(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	sessionKey := middleware.SessionKey(c)
	if err := sc.cartService.Remove(sessionKey, id); err != nil {
		respondError(c, err)
		return
	}
	sc.afterCartChange(c, sessionKey)
}

// afterCartChange follows a local "next" path, or shows the cart
func (sc *ShopController) afterCartChange(c *gin.Context, sessionKey string) {
	next := c.PostForm("next")
	if next == "" {
		next = c.Query("next")
	}
	if localPath(next) {
		c.Redirect(http.StatusFound, next)
		return
	}

	cart, err := sc.cartService.View(sessionKey)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, cart)
}

// PlaceOrder turns the session's cart into an order. An invalid form sends
// the caller back to the cart without touching anything.
func (sc *ShopController) PlaceOrder(c *gin.Context) {
	var form dto.OrderForm
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusFound, "/cart/")
		return
	}

	order, err := sc.orderService.PlaceOrder(middleware.SessionKey(c), form, middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, order)
}

// ListOrders returns the caller's orders
func (sc *ShopController) ListOrders(c *gin.Context) {
	orders, err := sc.orderService.ListOrders(middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, orders)
}
