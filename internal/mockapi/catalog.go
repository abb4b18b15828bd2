package mockapi

import (
	"net/http"
	"strings"

	"github.com/karanch577/sneakerx-admin/internal/model"
	"github.com/karanch577/sneakerx-admin/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AddCategory stores a category
func (s *Store) AddCategory(name string) model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat := model.Category{ID: newID(), Name: name, Timestamps: s.stamp()}
	s.categories = append(s.categories, cat)
	return cat
}

// AddCoupon stores an active coupon
func (s *Store) AddCoupon(code string, discount int) model.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := model.Coupon{ID: newID(), Code: code, Discount: discount, Active: true, Timestamps: s.stamp()}
	s.coupons = append(s.coupons, cp)
	return cp
}

func (s *Store) categoryNameTaken(name, exceptID string) bool {
	for _, c := range s.categories {
		if strings.EqualFold(c.Name, name) && c.ID != exceptID {
			return true
		}
	}
	return false
}

func (s *Store) couponCodeTaken(code, exceptID string) bool {
	for _, c := range s.coupons {
		if strings.EqualFold(c.Code, code) && c.ID != exceptID {
			return true
		}
	}
	return false
}

func (s *Server) ListCategories(c echo.Context) error {
	page, limit := pageParams(c)

	s.store.mu.RLock()
	items, total := paginate(s.store.categories, page, limit)
	s.store.mu.RUnlock()

	return c.JSON(http.StatusOK, echo.Map{"success": true, "collections": items, "currentPage": page, "totalPage": total})
}

func (s *Server) CreateCategory(c echo.Context) error {
	log := logger.FromEcho(c)

	var req model.CategoryInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse category request", zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	s.store.mu.RLock()
	taken := s.store.categoryNameTaken(req.Name, "")
	s.store.mu.RUnlock()
	if taken {
		log.Warn("Category with this name already exists", zap.String("name", req.Name))
		return fail(c, http.StatusBadRequest, "Category already exists")
	}

	cat := s.store.AddCategory(req.Name)
	log.Info("Category created", zap.String("category_id", cat.ID), zap.String("name", cat.Name))
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Category created", "collection": cat})
}

func (s *Server) UpdateCategory(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	var req model.CategoryInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse category request", zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	i := indexOf(s.store.categories, id, categoryID)
	if i < 0 {
		return fail(c, http.StatusNotFound, "Category not found")
	}
	if s.store.categoryNameTaken(req.Name, id) {
		return fail(c, http.StatusBadRequest, "Category already exists")
	}

	cat := &s.store.categories[i]
	cat.Name = req.Name
	s.store.touch(&cat.Timestamps)
	for j := range s.store.products {
		if s.store.products[j].Collection.ID == id {
			s.store.products[j].Collection.Name = req.Name
		}
	}

	log.Info("Category updated", zap.String("category_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Category updated", "collection": *cat})
}

func (s *Server) DeleteCategory(c echo.Context) error {
	id := c.Param("id")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	i := indexOf(s.store.categories, id, categoryID)
	if i < 0 {
		return fail(c, http.StatusNotFound, "Category not found")
	}
	s.store.categories = remove(s.store.categories, i)

	logger.FromEcho(c).Info("Category deleted", zap.String("category_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Category deleted successfully"})
}

func (s *Server) ListCoupons(c echo.Context) error {
	page, limit := pageParams(c)

	s.store.mu.RLock()
	items, total := paginate(s.store.coupons, page, limit)
	s.store.mu.RUnlock()

	return c.JSON(http.StatusOK, echo.Map{"success": true, "coupons": items, "currentPage": page, "totalPage": total})
}

func (s *Server) CreateCoupon(c echo.Context) error {
	log := logger.FromEcho(c)

	var req model.CouponCreate
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse coupon request", zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	s.store.mu.RLock()
	taken := s.store.couponCodeTaken(req.Name, "")
	s.store.mu.RUnlock()
	if taken {
		return fail(c, http.StatusBadRequest, "Coupon already exists")
	}

	cp := s.store.AddCoupon(req.Name, req.Discount)
	log.Info("Coupon created", zap.String("coupon_id", cp.ID), zap.String("code", cp.Code))
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "coupon": cp})
}

func (s *Server) UpdateCoupon(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	var req model.CouponUpdate
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse coupon request", zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	i := indexOf(s.store.coupons, id, couponID)
	if i < 0 {
		return fail(c, http.StatusNotFound, "Coupon not found")
	}
	if s.store.couponCodeTaken(req.Code, id) {
		return fail(c, http.StatusBadRequest, "Coupon already exists")
	}

	cp := &s.store.coupons[i]
	cp.Code = req.Code
	cp.Discount = req.Discount
	cp.Active = req.Active
	s.store.touch(&cp.Timestamps)

	log.Info("Coupon updated", zap.String("coupon_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "coupon": *cp})
}

func (s *Server) DeleteCoupon(c echo.Context) error {
	id := c.Param("id")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	i := indexOf(s.store.coupons, id, couponID)
	if i < 0 {
		return fail(c, http.StatusNotFound, "Coupon not found")
	}
	s.store.coupons = remove(s.store.coupons, i)

	logger.FromEcho(c).Info("Coupon deleted", zap.String("coupon_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Coupon deleted successfully"})
}
