// Package mockapi is a sandbox implementation of the SneakerX REST API. It
// mirrors the request and response shapes the console consumes over an
// in-memory store and backs local development and tests.
package mockapi

import (
	"net/http"
	"strconv"

	"github.com/karanch577/sneakerx-admin/pkg/jwtutil"
	"github.com/karanch577/sneakerx-admin/pkg/logger"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const (
	// BasePath prefixes every API route
	BasePath = "/api/v1"
	// SessionCookie carries the signed session token
	SessionCookie = "token"

	defaultLimit = 10
	claimsKey    = "claims"
	photoBaseURL = "https://res.cloudinary.com/sneakerx/image/upload"
)

// Server serves the sandbox API
type Server struct {
	store *Store
	jwt   *jwtutil.JWTUtil
	echo  *echo.Echo
}

// New builds the sandbox with its routes registered
func New(store *Store, jwt *jwtutil.JWTUtil) *Server {
	s := &Server{store: store, jwt: jwt, echo: echo.New()}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.routes()
	return s
}

// Echo exposes the underlying router for middleware registration and Start
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) routes() {
	e := s.echo
	e.Use(echomiddleware.Recover())

	api := e.Group(BasePath)

	// Session endpoints
	api.POST("/user/signin", s.SignIn)
	api.POST("/user/signup", s.SignUp)
	api.GET("/user/signout", s.SignOut)
	api.GET("/product/id/:id", s.GetProduct)

	auth := api.Group("", s.requireSession)

	auth.GET("/user/getprofile", s.Profile)
	auth.GET("/user/role", s.ListRoles)
	auth.GET("/user/all", s.ListUsers)
	auth.POST("/user/create", s.CreateUser)
	auth.PATCH("/user/update/:id", s.UpdateUser)
	auth.DELETE("/user/:id", s.DeleteUser)

	auth.GET("/category/all", s.ListCategories)
	auth.POST("/category/create", s.CreateCategory)
	auth.PUT("/category/:id", s.UpdateCategory)
	auth.DELETE("/category/:id", s.DeleteCategory)

	auth.GET("/coupon/all", s.ListCoupons)
	auth.POST("/coupon/create", s.CreateCoupon)
	auth.PUT("/coupon/update/:id", s.UpdateCoupon)
	auth.DELETE("/coupon/:id", s.DeleteCoupon)

	auth.GET("/product/list", s.ListProducts)
	auth.POST("/product/create", s.CreateProduct)
	auth.PATCH("/product/update/:id", s.UpdateProduct)
	auth.PATCH("/product/updatePhotos/:id", s.UpdatePhotos)
	auth.DELETE("/product/:id", s.DeleteProduct)

	auth.GET("/order/all", s.ListOrders)
	auth.GET("/order/total-sales", s.TotalSales)
	auth.GET("/order/id/:id", s.GetOrder)
	auth.PATCH("/order/update/:id", s.UpdateOrder)
	auth.DELETE("/order/:id", s.DeleteOrder)
}

// requireSession rejects requests without a valid session cookie
func (s *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)

		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			log.Warn("Missing session cookie", zap.String("path", c.Path()))
			return fail(c, http.StatusUnauthorized, "Please login to access this resource")
		}

		claims, err := s.jwt.ValidateToken(cookie.Value)
		if err != nil {
			log.Warn("Invalid or expired session", zap.Error(err))
			return fail(c, http.StatusUnauthorized, "Session expired, please login again")
		}

		c.Set(claimsKey, claims)
		return next(c)
	}
}

func (s *Server) setSession(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.jwt.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSession(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}

// pageParams reads page and limit, defaulting to the first page of ten
func pageParams(c echo.Context) (int, int) {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}
