package mockapi

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path"

	"github.com/karanch577/sneakerx-admin/internal/model"
	"github.com/karanch577/sneakerx-admin/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AddProduct stores a product as given, assigning id and timestamps
func (s *Store) AddProduct(p model.Product) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = newID()
	p.Timestamps = s.stamp()
	for i := range p.Sizes {
		if p.Sizes[i].ID == "" {
			p.Sizes[i].ID = newID()
		}
	}
	s.products = append(s.products, p)
	return p
}

func parseProductForm(c echo.Context) (model.ProductForm, []*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return model.ProductForm{}, nil, fmt.Errorf("invalid multipart body: %w", err)
	}
	f, err := model.ReadProductForm(form)
	if err != nil {
		return model.ProductForm{}, nil, err
	}
	return f, form.File["files"], nil
}

func uploadedPhotos(files []*multipart.FileHeader) []model.Photo {
	photos := make([]model.Photo, 0, len(files))
	for _, fh := range files {
		photos = append(photos, model.Photo{SecureURL: fmt.Sprintf("%s/%s-%s", photoBaseURL, newID(), path.Base(fh.Filename))})
	}
	return photos
}

func stockSizes(in []model.SizeQuantity) []model.StockSize {
	out := make([]model.StockSize, len(in))
	for i, s := range in {
		out[i] = model.StockSize{ID: newID(), Size: s.Size, Quantity: s.Quantity}
	}
	return out
}

func (s *Server) ListProducts(c echo.Context) error {
	page, limit := pageParams(c)

	s.store.mu.RLock()
	items, total := paginate(s.store.productsInCategory(c.QueryParam("categoryId")), page, limit)
	s.store.mu.RUnlock()

	return c.JSON(http.StatusOK, echo.Map{"success": true, "products": items, "currentPage": page, "totalPage": total})
}

func (s *Server) GetProduct(c echo.Context) error {
	id := c.Param("id")

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	i := indexOf(s.store.products, id, productID)
	if i < 0 {
		return fail(c, http.StatusNotFound, "Product not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "product": s.store.products[i]})
}

func (s *Server) CreateProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	f, files, err := parseProductForm(c)
	if err != nil {
		log.Error("Failed to parse product form", zap.Error(err))
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if err := f.Validate(); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	s.store.mu.RLock()
	ci := indexOf(s.store.categories, f.CollectionID, categoryID)
	var collection model.CollectionRef
	if ci >= 0 {
		collection = model.CollectionRef{ID: s.store.categories[ci].ID, Name: s.store.categories[ci].Name}
	}
	s.store.mu.RUnlock()
	if ci < 0 {
		return fail(c, http.StatusBadRequest, "Category not found")
	}

	p := s.store.AddProduct(model.Product{
		Name:         f.Name,
		Price:        f.Price,
		SellingPrice: f.SellingPrice,
		Description:  f.Description,
		ColourShown:  f.ColourShown,
		Style:        f.Style,
		Collection:   collection,
		Sizes:        stockSizes(f.Sizes),
		Sold:         []model.SizeQuantity{},
		Photos:       uploadedPhotos(files),
	})

	log.Info("Product created",
		zap.String("product_id", p.ID),
		zap.String("name", p.Name),
		zap.Int("photos", len(p.Photos)))
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "product": p})
}

func (s *Server) UpdateProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	f, files, err := parseProductForm(c)
	if err != nil {
		log.Error("Failed to parse product form", zap.Error(err))
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if err := f.Validate(); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	i := indexOf(s.store.products, id, productID)
	if i < 0 {
		return fail(c, http.StatusNotFound, "Product not found")
	}
	ci := indexOf(s.store.categories, f.CollectionID, categoryID)
	if ci < 0 {
		return fail(c, http.StatusBadRequest, "Category not found")
	}

	p := &s.store.products[i]
	p.Name = f.Name
	p.Price = f.Price
	p.SellingPrice = f.SellingPrice
	p.Description = f.Description
	p.ColourShown = f.ColourShown
	p.Style = f.Style
	p.Collection = model.CollectionRef{ID: s.store.categories[ci].ID, Name: s.store.categories[ci].Name}
	p.Sizes = stockSizes(f.Sizes)
	if f.Sold != nil {
		p.Sold = f.Sold
	}
	p.Photos = append(p.Photos, uploadedPhotos(files)...)
	s.store.touch(&p.Timestamps)

	log.Info("Product updated", zap.String("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "product": *p})
}

func (s *Server) UpdatePhotos(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	var req model.PhotosUpdate
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse photos request", zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request")
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	i := indexOf(s.store.products, id, productID)
	if i < 0 {
		return fail(c, http.StatusNotFound, "Product not found")
	}
	p := &s.store.products[i]
	if err := model.CheckPhotoRemoval(*p, req.Photos); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	drop := make(map[string]bool, len(req.Photos))
	for _, ph := range req.Photos {
		drop[ph.SecureURL] = true
	}
	kept := make([]model.Photo, 0, len(p.Photos))
	for _, ph := range p.Photos {
		if !drop[ph.SecureURL] {
			kept = append(kept, ph)
		}
	}
	if len(kept) == 0 {
		return fail(c, http.StatusBadRequest, model.ErrLastPhoto.Error())
	}
	removed := len(p.Photos) - len(kept)
	p.Photos = kept
	s.store.touch(&p.Timestamps)

	log.Info("Product photos removed", zap.String("product_id", id), zap.Int("removed", removed))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "product": *p})
}

func (s *Server) DeleteProduct(c echo.Context) error {
	id := c.Param("id")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	i := indexOf(s.store.products, id, productID)
	if i < 0 {
		return fail(c, http.StatusNotFound, "Product not found")
	}
	s.store.products = remove(s.store.products, i)

	logger.FromEcho(c).Info("Product deleted", zap.String("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Product deleted successfully"})
}
