package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/karanch577/sneakerx-admin/internal/apiclient"
	"github.com/karanch577/sneakerx-admin/internal/dashboard"
	"github.com/karanch577/sneakerx-admin/internal/model"
	"github.com/labstack/echo/v4"
)

// ListProducts renders the product list, narrowed by ?categoryId= when
// given
func (h *Handler) ListProducts(c echo.Context) error {
	products := h.dash.Products
	category := c.QueryParam(apiclient.ProductCategoryFilter)
	if category != "" && category != products.Screen.List.Filter(apiclient.ProductCategoryFilter) {
		err := products.FilterByCategory(c.Request().Context(), category)
		if _, ok := pageParam(c); !ok || err != nil {
			return renderList(c, products.Screen, err)
		}
	}
	return showList(c, products.Screen)
}

// ProductCategories lists the categories offered by the filter and forms
func (h *Handler) ProductCategories(c echo.Context) error {
	categories, err := h.dash.Products.Categories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "collections": categories})
}

func (h *Handler) GetProduct(c echo.Context) error {
	product, err := h.dash.Products.Detail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "product": product})
}

// EditProduct returns a product with its prefilled edit form
func (h *Handler) EditProduct(c echo.Context) error {
	product, form, err := h.dash.Products.EditForm(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "product": product, "form": productFormBody(form)})
}

func (h *Handler) CreateProduct(c echo.Context) error {
	form, closeFiles, err := readProductForm(c)
	if err != nil {
		return writeError(c, err)
	}
	defer closeFiles()

	h.dash.Products.Form.Set(form)
	return run(c, h.dash.Products.Add, form, http.StatusCreated, "product")
}

// UpdateProduct edits a product. Photos listed under removePhotos are
// removed first.
func (h *Handler) UpdateProduct(c echo.Context) error {
	id := c.Param("id")
	form, closeFiles, err := readProductForm(c)
	if err != nil {
		return writeError(c, err)
	}
	defer closeFiles()

	current, err := h.dash.Products.Detail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	var removed []model.Photo
	for _, u := range c.Request().MultipartForm.Value["removePhotos"] {
		removed = append(removed, model.Photo{SecureURL: u})
	}
	update := dashboard.ProductUpdate{ID: id, Current: current, RemovePhotos: removed, Form: form}
	return run(c, h.dash.Products.Update, update, http.StatusOK, "product")
}

func (h *Handler) DeleteProduct(c echo.Context) error {
	return remove(c, h.dash.Products.Delete)
}

// readProductForm decodes a multipart product form with its uploads open.
// The returned func closes them.
func readProductForm(c echo.Context) (model.ProductForm, func(), error) {
	mf, err := c.MultipartForm()
	if err != nil {
		return model.ProductForm{}, nil, fmt.Errorf("invalid multipart body: %w", err)
	}
	form, err := model.ReadProductForm(mf)
	if err != nil {
		return model.ProductForm{}, nil, err
	}

	var opened []io.Closer
	closeFiles := func() {
		for _, f := range opened {
			f.Close()
		}
	}
	for _, fh := range mf.File["files"] {
		f, err := fh.Open()
		if err != nil {
			closeFiles()
			return model.ProductForm{}, nil, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		opened = append(opened, f)
		form.Files = append(form.Files, model.Upload{Filename: fh.Filename, Content: f})
	}
	return form, closeFiles, nil
}

type productFormJSON struct {
	Name         string               `json:"name"`
	Price        int                  `json:"price"`
	SellingPrice int                  `json:"sellingPrice"`
	CollectionID string               `json:"collectionId"`
	Description  string               `json:"description"`
	ColourShown  string               `json:"colourShown"`
	Style        string               `json:"style"`
	Sizes        []model.SizeQuantity `json:"sizes"`
	Sold         []model.SizeQuantity `json:"sold"`
}

func productFormBody(f model.ProductForm) productFormJSON {
	return productFormJSON{
		Name:         f.Name,
		Price:        f.Price,
		SellingPrice: f.SellingPrice,
		CollectionID: f.CollectionID,
		Description:  f.Description,
		ColourShown:  f.ColourShown,
		Style:        f.Style,
		Sizes:        f.Sizes,
		Sold:         f.Sold,
	}
}
