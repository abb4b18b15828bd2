package model

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/mail"
	"strconv"
)

const (
	minTextLength     = 2
	minPasswordLength = 6
	phoneNumberLength = 10
)

// CategoryInput creates or renames a category
type CategoryInput struct {
	Name string `json:"name"`
}

// Validate checks the form rules
func (in CategoryInput) Validate() error {
	return minLength("name", in.Name)
}

// CouponCreate creates a coupon. The API takes the code under "name".
type CouponCreate struct {
	Name     string `json:"name"`
	Discount int    `json:"discount"`
}

// Validate checks the form rules
func (in CouponCreate) Validate() error {
	if err := minLength("code", in.Name); err != nil {
		return err
	}
	return discountInRange(in.Discount)
}

// CouponUpdate replaces a coupon's editable fields
type CouponUpdate struct {
	Code     string `json:"code"`
	Discount int    `json:"discount"`
	Active   bool   `json:"active"`
}

// Validate checks the form rules
func (in CouponUpdate) Validate() error {
	if err := minLength("code", in.Code); err != nil {
		return err
	}
	return discountInRange(in.Discount)
}

// OrderUpdate changes delivery details and fulfilment status
type OrderUpdate struct {
	Address     string      `json:"address"`
	PhoneNumber string      `json:"phoneNumber"`
	Status      OrderStatus `json:"status"`
}

// Validate checks the form rules
func (in OrderUpdate) Validate() error {
	if err := minLength("address", in.Address); err != nil {
		return err
	}
	if len(in.PhoneNumber) != phoneNumberLength {
		return ErrInvalidPhoneNumber
	}
	if !in.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOrderStatus, in.Status)
	}
	return nil
}

// UserInput creates or edits a user. Password is required on create only.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
}

// ValidateCreate checks the add-user form rules
func (in UserInput) ValidateCreate() error {
	if err := in.ValidateUpdate(); err != nil {
		return err
	}
	return passwordLength(in.Password)
}

// ValidateUpdate checks the edit-user form rules
func (in UserInput) ValidateUpdate() error {
	if err := minLength("name", in.Name); err != nil {
		return err
	}
	if err := validEmail(in.Email); err != nil {
		return err
	}
	return minLength("role", in.Role)
}

// Credentials sign an operator in
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login form rules
func (in Credentials) Validate() error {
	if err := validEmail(in.Email); err != nil {
		return err
	}
	return passwordLength(in.Password)
}

// SignUp registers a new admin account
type SignUp struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Validate checks the registration form rules
func (in SignUp) Validate() error {
	if err := validEmail(in.Email); err != nil {
		return err
	}
	if err := passwordLength(in.Password); err != nil {
		return err
	}
	return minLength("name", in.Name)
}

// PhotosUpdate lists the photos to remove from a product
type PhotosUpdate struct {
	Photos []Photo `json:"photos"`
}

// Upload is a file attached to a product form
type Upload struct {
	Filename string
	Content  io.Reader
}

// ProductForm is the multipart body of product create and update calls.
// Sold is only sent on update.
type ProductForm struct {
	Name         string
	Price        int
	SellingPrice int
	CollectionID string
	Description  string
	ColourShown  string
	Style        string
	Sizes        []SizeQuantity
	Sold         []SizeQuantity
	Files        []Upload
}

// Validate checks the product form rules
func (f ProductForm) Validate() error {
	for _, kv := range [][2]string{
		{"name", f.Name},
		{"description", f.Description},
		{"colourShown", f.ColourShown},
		{"style", f.Style},
	} {
		if err := minLength(kv[0], kv[1]); err != nil {
			return err
		}
	}
	if f.Price <= 0 {
		return fmt.Errorf("price %w", ErrNonPositivePrice)
	}
	if f.SellingPrice <= 0 {
		return fmt.Errorf("sellingPrice %w", ErrNonPositivePrice)
	}
	if err := validSizes("sizes", f.Sizes); err != nil {
		return err
	}
	return validSizes("sold", f.Sold)
}

// WriteMultipart encodes the form with indexed size fields
func (f ProductForm) WriteMultipart(w *multipart.Writer) error {
	scalars := [][2]string{
		{"name", f.Name},
		{"price", strconv.Itoa(f.Price)},
		{"sellingPrice", strconv.Itoa(f.SellingPrice)},
		{"collectionId", f.CollectionID},
		{"description", f.Description},
		{"colourShown", f.ColourShown},
		{"style", f.Style},
	}
	for _, kv := range scalars {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return err
		}
	}
	if err := writeSizes(w, "sizes", f.Sizes); err != nil {
		return err
	}
	if err := writeSizes(w, "sold", f.Sold); err != nil {
		return err
	}
	for _, file := range f.Files {
		part, err := w.CreateFormFile("files", file.Filename)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return fmt.Errorf("copy %s: %w", file.Filename, err)
		}
	}
	return nil
}

func writeSizes(w *multipart.Writer, field string, sizes []SizeQuantity) error {
	for i, s := range sizes {
		if err := w.WriteField(fmt.Sprintf("%s[%d][size]", field, i), s.Size); err != nil {
			return err
		}
		if err := w.WriteField(fmt.Sprintf("%s[%d][quantity]", field, i), strconv.Itoa(s.Quantity)); err != nil {
			return err
		}
	}
	return nil
}

func minLength(field, v string) error {
	if len([]rune(v)) < minTextLength {
		return fmt.Errorf("%s %w", field, ErrTooShort)
	}
	return nil
}

func discountInRange(d int) error {
	if d < 0 || d > 100 {
		return ErrDiscountOutOfRange
	}
	return nil
}

func passwordLength(p string) error {
	if len(p) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func validEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

func validSizes(field string, sizes []SizeQuantity) error {
	for _, s := range sizes {
		if !IsProductSize(s.Size) {
			return fmt.Errorf("%s: %w: %q", field, ErrUnknownSize, s.Size)
		}
		if s.Quantity < 0 {
			return fmt.Errorf("%s %s: %w", field, s.Size, ErrNegativeQuantity)
		}
	}
	return nil
}

// ReadProductForm decodes the fields written by WriteMultipart. Files are
// left to the caller.
func ReadProductForm(form *multipart.Form) (ProductForm, error) {
	value := func(key string) string {
		if v := form.Value[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	f := ProductForm{
		Name:         value("name"),
		CollectionID: value("collectionId"),
		Description:  value("description"),
		ColourShown:  value("colourShown"),
		Style:        value("style"),
	}
	var err error
	if f.Price, err = strconv.Atoi(value("price")); err != nil {
		return ProductForm{}, fmt.Errorf("price must be a number")
	}
	if f.SellingPrice, err = strconv.Atoi(value("sellingPrice")); err != nil {
		return ProductForm{}, fmt.Errorf("sellingPrice must be a number")
	}
	if f.Sizes, err = readSizes(form.Value, "sizes"); err != nil {
		return ProductForm{}, err
	}
	if f.Sold, err = readSizes(form.Value, "sold"); err != nil {
		return ProductForm{}, err
	}
	return f, nil
}

// readSizes reads field[i][size] and field[i][quantity] until the first gap
func readSizes(values map[string][]string, field string) ([]SizeQuantity, error) {
	var out []SizeQuantity
	for i := 0; ; i++ {
		size, ok := values[fmt.Sprintf("%s[%d][size]", field, i)]
		if !ok || len(size) == 0 {
			return out, nil
		}
		qty := "0"
		if q := values[fmt.Sprintf("%s[%d][quantity]", field, i)]; len(q) > 0 {
			qty = q[0]
		}
		n, err := strconv.Atoi(qty)
		if err != nil {
			return nil, fmt.Errorf("%s[%d][quantity] must be a number", field, i)
		}
		out = append(out, SizeQuantity{Size: size[0], Quantity: n})
	}
}
